// Command framefit decodes detector hex frame streams and characterises the
// per-channel distributions of a run.
//
//	framefit decode run.hex.gz > run.ndjson
//	framefit analyze run.hex --group all --model hyperemg --means-dir out/
//	framefit stream --brokers localhost:9092 --topic frames
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joeydtaylor/framefit/pkg/builder"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	devLogs    bool
	logFile    string
	showMeter  bool
	s3Endpoint string
	s3Region   string
)

func newRootCmd() *cobra.Command {
	env := builder.AnalysisConfigFromEnv()
	s3env := builder.S3ClientConfigFromEnv()

	rootCmd := &cobra.Command{
		Use:   "framefit",
		Short: "Decode detector hex streams and fit per-channel distributions",
		Long: `framefit reads the E225-framed hex stream produced by the detector
front-end, extracts 15 samples of 4x16 channels from every frame and
characterises each channel's distribution with a Gaussian or Hyper-EMG fit.

Inputs may be local paths, file:// or s3:// URIs, or "-" for stdin.
.gz, .zst, .lz4, .br and .sz/.snappy inputs are decompressed transparently.
Defaults come from FRAMEFIT_* environment variables; flags override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", env.LogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&devLogs, "dev-logs", false, "human readable console logs")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also append JSON logs to this file")
	rootCmd.PersistentFlags().BoolVar(&showMeter, "summary", false, "print a run summary to stderr when done")
	rootCmd.PersistentFlags().StringVar(&s3Endpoint, "s3-endpoint", s3env.Endpoint, "S3 endpoint override (LocalStack, MinIO)")
	rootCmd.PersistentFlags().StringVar(&s3Region, "s3-region", s3env.Region, "S3 region")

	rootCmd.AddCommand(newDecodeCmd(), newAnalyzeCmd(env), newStreamCmd())
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
