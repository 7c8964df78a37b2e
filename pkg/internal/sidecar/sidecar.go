// Package sidecar reads and writes the per-group channel mean files: 16 lines,
// one decimal value per line, no header.
package sidecar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

// ErrShortFile is returned when a sidecar holds fewer than 16 values.
var ErrShortFile = errors.New("sidecar: fewer than 16 channel values")

// FileName returns the conventional sidecar path for group inside dir.
func FileName(dir string, group types.ChannelGroup) string {
	return filepath.Join(dir, "means_"+group.String()+".txt")
}

// Write emits one value per line with two decimals.
func Write(w io.Writer, means [types.ChannelsPerGroup]float64) error {
	bw := bufio.NewWriter(w)
	for _, m := range means {
		if _, err := fmt.Fprintf(bw, "%.2f\n", m); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read parses the first 16 non-blank lines. Lines after the sixteenth value are ignored.
func Read(r io.Reader) ([types.ChannelsPerGroup]float64, error) {
	var out [types.ChannelsPerGroup]float64

	sc := bufio.NewScanner(r)
	n, line := 0, 0
	for n < len(out) && sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return out, fmt.Errorf("sidecar line %d: %w", line, err)
		}
		out[n] = v
		n++
	}
	if err := sc.Err(); err != nil {
		return out, err
	}
	if n < len(out) {
		return out, fmt.Errorf("%w: got %d", ErrShortFile, n)
	}
	return out, nil
}

// WriteFile writes means to path, replacing any existing file.
func WriteFile(path string, means [types.ChannelsPerGroup]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, means); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a sidecar from path.
func ReadFile(path string) ([types.ChannelsPerGroup]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return [types.ChannelsPerGroup]float64{}, err
	}
	defer f.Close()
	return Read(f)
}
