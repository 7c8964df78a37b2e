package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/joeydtaylor/framefit/pkg/builder"
	"github.com/spf13/cobra"
)

type decodeFlags struct {
	format     string
	group      string
	output     string
	compress   string
	inputCodec string
}

func newDecodeCmd() *cobra.Command {
	f := &decodeFlags{}
	cmd := &cobra.Command{
		Use:   "decode [input...]",
		Short: "Decode hex frame streams into sample records",
		Long: `Decode reads every input in order and writes one sample record per line.

  --format ndjson   full records (sequence, index, raw and millivolt values)
  --format lines    tab separated sequence, index and the 16 voltages of --group

An s3:// URI ending in "/" expands to every stream object under that prefix.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, args, f)
		},
	}
	cmd.Flags().StringVarP(&f.format, "format", "f", "ndjson", "output format (ndjson, lines)")
	cmd.Flags().StringVarP(&f.group, "group", "g", "A", "channel group for --format lines")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&f.compress, "compress", "", "compress the output (gzip, zstd, lz4, brotli, snappy)")
	cmd.Flags().StringVar(&f.inputCodec, "input-compression", "", "override input decompression (default: by extension)")
	return cmd
}

type recordWriter interface {
	Encode(builder.SampleRecord) error
}

func runDecode(cmd *cobra.Command, args []string, f *decodeFlags) error {
	ctx := cmd.Context()
	rt, err := newRuntime(ctx, usesS3(args))
	if err != nil {
		return err
	}
	defer rt.close()

	inputs, err := rt.expandInputs(ctx, args)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(f.output, f.compress)
	if err != nil {
		return err
	}

	var (
		enc   recordWriter
		flush func() error
	)
	switch f.format {
	case "ndjson", "json":
		bw := bufio.NewWriter(out)
		enc, flush = builder.NewRecordEncoder(bw), bw.Flush
	case "lines", "line", "tsv":
		group, ok := builder.ParseChannelGroup(f.group)
		if !ok {
			_ = closeOut()
			return fmt.Errorf("unknown channel group %q", f.group)
		}
		le := builder.NewLineEncoder(out, group)
		enc, flush = le, le.Flush
	default:
		_ = closeOut()
		return fmt.Errorf("unknown output format %q", f.format)
	}

	for _, in := range inputs {
		if err = rt.decodeInput(ctx, in, f.inputCodec, enc.Encode); err != nil {
			break
		}
	}
	if ferr := flush(); err == nil {
		err = ferr
	}
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	return err
}

// openOutput returns stdout or a created file, optionally behind a compressor.
// The close func flushes the compressor before closing the file.
func openOutput(path, compression string) (io.Writer, func() error, error) {
	var (
		w       io.Writer = os.Stdout
		closers []io.Closer
	)
	if path != "" && path != "-" {
		file, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("create output: %w", err)
		}
		w = file
		closers = append(closers, file)
	}
	if compression != "" {
		c, ok := builder.ParseCompression(compression)
		if !ok {
			closeAll(closers)
			return nil, nil, fmt.Errorf("unknown compression %q", compression)
		}
		cw, err := builder.NewCompressedWriter(w, c)
		if err != nil {
			closeAll(closers)
			return nil, nil, err
		}
		w = cw
		closers = append([]io.Closer{cw}, closers...)
	}
	return w, func() error { return closeAll(closers) }, nil
}

func closeAll(closers []io.Closer) error {
	var first error
	for _, c := range closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
