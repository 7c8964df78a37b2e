package types

import "fmt"

// Model selects the curve used by the fitter.
type Model int

const (
	ModelGaussian Model = iota
	ModelHyperEMG
)

// String returns the configuration name of the model.
func (m Model) String() string {
	switch m {
	case ModelGaussian:
		return "gaussian"
	case ModelHyperEMG:
		return "hyperemg"
	default:
		return "unknown"
	}
}

// MarshalText encodes the model by name.
func (m Model) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText accepts the names ParseModel does.
func (m *Model) UnmarshalText(b []byte) error {
	v, ok := ParseModel(string(b))
	if !ok {
		return fmt.Errorf("unknown model %q", b)
	}
	*m = v
	return nil
}

// ParseModel maps a configuration name to a Model.
func ParseModel(s string) (Model, bool) {
	switch s {
	case "gaussian", "Gaussian", "gauss":
		return ModelGaussian, true
	case "hyperemg", "HyperEMG", "hyper-emg", "emg":
		return ModelHyperEMG, true
	}
	return ModelGaussian, false
}

// ThresholdConfig drops values below KFactor standard deviations of the centred distribution.
type ThresholdConfig struct {
	Enabled bool    `json:"enabled"`
	KFactor float64 `json:"kFactor"`
}

// FitConfig selects how each channel distribution is characterised.
type FitConfig struct {
	Model     Model           `json:"model"`
	UseFit    bool            `json:"useFit"`
	Threshold ThresholdConfig `json:"threshold"`
}

// FitResult is the outcome of one curve fit. Curve always has the length of the
// input x axis; when OK is false it is all zeros and must be read as "fit not possible".
type FitResult struct {
	Model      Model     `json:"model"`
	Curve      []float64 `json:"curve"`
	Centroid   float64   `json:"centroid"`
	Width      float64   `json:"width"`
	Peak       float64   `json:"peak"`
	RMS        float64   `json:"rms"`
	Tau        float64   `json:"tau,omitempty"`
	Amplitude  float64   `json:"amplitude"`
	Iterations int       `json:"iterations"`
	Converged  bool      `json:"converged"`
	OK         bool      `json:"ok"`
}

// EmptyFitResult returns the defined failure result for an axis of length n.
func EmptyFitResult(model Model, n int) FitResult {
	return FitResult{Model: model, Curve: make([]float64, n)}
}

// Histogram holds bin centres and counts.
type Histogram struct {
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
	Width float64   `json:"width"`
}

// ChannelAnalysis is the per-channel output of the analyzer.
type ChannelAnalysis struct {
	Group     ChannelGroup `json:"group"`
	Channel   int          `json:"channel"`
	Samples   int          `json:"samples"`
	Kept      int          `json:"kept"`
	Mean      float64      `json:"mean"`
	Histogram Histogram    `json:"histogram"`
	Fit       FitResult    `json:"fit"`
}
