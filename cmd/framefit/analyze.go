package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joeydtaylor/framefit/pkg/builder"
	"github.com/spf13/cobra"
)

type analyzeFlags struct {
	groups      string
	model       string
	useFit      bool
	threshold   bool
	kFactor     float64
	workers     int
	bins        int
	baselineDir string
	meansDir    string
	smooth      bool
	smoothQ     float64
	smoothR     float64
	records     bool
	inputCodec  string
	output      string
}

// groupReport is the JSON document written for each analysed group.
type groupReport struct {
	Group    builder.ChannelGroup                              `json:"group"`
	Means    [builder.ChannelsPerGroup]float64                 `json:"means"`
	Channels [builder.ChannelsPerGroup]builder.ChannelAnalysis `json:"channels"`
}

type analysisReport struct {
	Inputs  []string          `json:"inputs"`
	Records int               `json:"records"`
	Config  builder.FitConfig `json:"config"`
	Groups  []groupReport     `json:"groups"`
}

func newAnalyzeCmd(env builder.AnalysisEnv) *cobra.Command {
	f := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze [input...]",
		Short: "Histogram and fit every channel of one or more groups",
		Long: `Analyze decodes the inputs, builds one histogram per channel and fits
it with the selected model, writing a JSON report.

With --threshold, values are centred on the channel mean (or on the
means_<G>.txt file found in --baseline-dir) and only those at least
k standard deviations above it are kept. --means-dir writes the
per-channel means of this run in the same sidecar format.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, f)
		},
	}
	kalman := builder.DefaultKalmanConfig()
	cmd.Flags().StringVarP(&f.groups, "group", "g", env.Group.String(), `channel groups to analyse, e.g. "A", "AC" or "all"`)
	cmd.Flags().StringVarP(&f.model, "model", "m", env.Fit.Model.String(), "fit model (gaussian, hyperemg)")
	cmd.Flags().BoolVar(&f.useFit, "fit", env.Fit.UseFit, "run the LM fit; false reports moments only")
	cmd.Flags().BoolVar(&f.threshold, "threshold", env.Fit.Threshold.Enabled, "drop values below k sigma of the centred distribution")
	cmd.Flags().Float64VarP(&f.kFactor, "k-factor", "k", env.Fit.Threshold.KFactor, "threshold k factor")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", env.Workers, "concurrent channel fits (0: min(16, GOMAXPROCS))")
	cmd.Flags().IntVar(&f.bins, "bins", env.Bins, "histogram bins (0: one per ADC count)")
	cmd.Flags().StringVar(&f.baselineDir, "baseline-dir", "", "directory holding means_<G>.txt baselines for thresholding")
	cmd.Flags().StringVar(&f.meansDir, "means-dir", "", "write means_<G>.txt for each analysed group")
	cmd.Flags().BoolVar(&f.smooth, "smooth", false, "Kalman-filter each channel before binning")
	cmd.Flags().Float64Var(&f.smoothQ, "smooth-q", kalman.Q, "Kalman process noise")
	cmd.Flags().Float64Var(&f.smoothR, "smooth-r", kalman.R, "Kalman measurement noise")
	cmd.Flags().BoolVar(&f.records, "records", false, "inputs are NDJSON records from 'framefit decode'")
	cmd.Flags().StringVar(&f.inputCodec, "input-compression", "", "override input decompression (default: by extension)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "report file (default: stdout)")
	return cmd
}

func parseGroups(s string) ([]builder.ChannelGroup, error) {
	if strings.EqualFold(s, "all") {
		return []builder.ChannelGroup{builder.GroupA, builder.GroupB, builder.GroupC, builder.GroupD}, nil
	}
	var out []builder.ChannelGroup
	seen := map[builder.ChannelGroup]bool{}
	for _, r := range strings.ReplaceAll(s, ",", "") {
		g, ok := builder.ParseChannelGroup(string(r))
		if !ok {
			return nil, fmt.Errorf("unknown channel group %q", string(r))
		}
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no channel group selected")
	}
	return out, nil
}

func runAnalyze(cmd *cobra.Command, args []string, f *analyzeFlags) error {
	ctx := cmd.Context()

	groups, err := parseGroups(f.groups)
	if err != nil {
		return err
	}
	model, ok := builder.ParseModel(f.model)
	if !ok {
		return fmt.Errorf("unknown model %q", f.model)
	}
	cfg := builder.FitConfig{
		Model:     model,
		UseFit:    f.useFit,
		Threshold: builder.ThresholdConfig{Enabled: f.threshold, KFactor: f.kFactor},
	}

	rt, err := newRuntime(ctx, usesS3(args))
	if err != nil {
		return err
	}
	defer rt.close()

	inputs, err := rt.expandInputs(ctx, args)
	if err != nil {
		return err
	}

	var records []builder.SampleRecord
	collect := func(rec builder.SampleRecord) error {
		records = append(records, rec)
		return nil
	}
	for _, in := range inputs {
		if f.records {
			err = rt.readRecords(ctx, in, f.inputCodec, collect)
		} else {
			err = rt.decodeInput(ctx, in, f.inputCodec, collect)
		}
		if err != nil {
			return err
		}
	}

	report := analysisReport{Inputs: inputs, Records: len(records), Config: cfg}
	for _, g := range groups {
		opts := []builder.Option[*builder.Analyzer]{
			builder.AnalyzerWithConfig(cfg),
			builder.AnalyzerWithWorkers(f.workers),
			builder.AnalyzerWithBins(f.bins),
			builder.AnalyzerWithLogger(rt.logger),
			builder.AnalyzerWithSensor(rt.meter.Sensor()),
			builder.AnalyzerWithFitter(builder.NewFitter(builder.FitterWithLogger(rt.logger))),
		}
		if f.smooth {
			k := builder.DefaultKalmanConfig()
			k.Q, k.R = f.smoothQ, f.smoothR
			opts = append(opts, builder.AnalyzerWithSmoothing(k))
		}
		if f.baselineDir != "" {
			base, err := builder.ReadMeansFile(builder.MeansFileName(f.baselineDir, g))
			if err != nil {
				return fmt.Errorf("baseline for group %s: %w", g, err)
			}
			opts = append(opts, builder.AnalyzerWithBaseline(base))
		}

		an := builder.NewAnalyzer(opts...)
		an.SetComponentMetadata("analyze-"+g.String(), an.GetComponentMetadata().ID)
		channels, err := an.Analyze(ctx, records, g)
		if err != nil {
			return fmt.Errorf("analyze group %s: %w", g, err)
		}
		gr := groupReport{Group: g, Means: builder.ChannelMeans(records, g), Channels: channels}
		if f.meansDir != "" {
			if err := os.MkdirAll(f.meansDir, 0o755); err != nil {
				return fmt.Errorf("means dir: %w", err)
			}
			if err := builder.WriteMeansFile(builder.MeansFileName(f.meansDir, g), gr.Means); err != nil {
				return err
			}
		}
		report.Groups = append(report.Groups, gr)
	}

	out, closeOut, err := openOutput(f.output, "")
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	err = enc.Encode(report)
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	return err
}
