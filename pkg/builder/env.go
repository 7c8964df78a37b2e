package builder

import (
	"os"
	"strconv"
	"strings"

	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

// EnvOr returns the trimmed env value or def when empty.
func EnvOr(key, def string) string {
	v := strings.TrimSpace(strings.Trim(os.Getenv(key), `"`))
	if v == "" {
		return def
	}
	return v
}

// EnvIntOr returns the parsed int env value or def on empty/parse failure.
func EnvIntOr(key string, def int) int {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// EnvFloatOr returns the parsed float env value or def on empty/parse failure.
func EnvFloatOr(key string, def float64) float64 {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// EnvBoolOr accepts the strconv.ParseBool spellings plus yes/no and on/off.
func EnvBoolOr(key string, def bool) bool {
	v := strings.ToLower(EnvOr(key, ""))
	switch v {
	case "":
		return def
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// AnalysisEnv is the analysis configuration assembled from FRAMEFIT_* variables.
type AnalysisEnv struct {
	Fit      FitConfig
	Group    ChannelGroup
	Workers  int
	Bins     int
	LogLevel string
}

// DefaultThresholdK is the k factor used when thresholding is enabled without one.
const DefaultThresholdK = 3.0

// AnalysisConfigFromEnv reads FRAMEFIT_MODEL, FRAMEFIT_USE_FIT, FRAMEFIT_THRESHOLD,
// FRAMEFIT_THRESHOLD_K, FRAMEFIT_GROUP, FRAMEFIT_WORKERS, FRAMEFIT_BINS and
// FRAMEFIT_LOG_LEVEL. Unparseable values fall back to the defaults.
func AnalysisConfigFromEnv() AnalysisEnv {
	model, ok := types.ParseModel(EnvOr("FRAMEFIT_MODEL", "gaussian"))
	if !ok {
		model = types.ModelGaussian
	}
	group, ok := types.ParseChannelGroup(EnvOr("FRAMEFIT_GROUP", "A"))
	if !ok {
		group = types.GroupA
	}
	k := EnvFloatOr("FRAMEFIT_THRESHOLD_K", DefaultThresholdK)
	if k < 0 {
		k = DefaultThresholdK
	}
	return AnalysisEnv{
		Fit: FitConfig{
			Model:  model,
			UseFit: EnvBoolOr("FRAMEFIT_USE_FIT", true),
			Threshold: ThresholdConfig{
				Enabled: EnvBoolOr("FRAMEFIT_THRESHOLD", false),
				KFactor: k,
			},
		},
		Group:    group,
		Workers:  EnvIntOr("FRAMEFIT_WORKERS", 0),
		Bins:     EnvIntOr("FRAMEFIT_BINS", 0),
		LogLevel: EnvOr("FRAMEFIT_LOG_LEVEL", "info"),
	}
}
