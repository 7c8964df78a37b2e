package builder

import (
	"io"

	"github.com/joeydtaylor/framefit/pkg/internal/sidecar"
)

// ErrShortSidecar is returned when a means file holds fewer than 16 values.
var ErrShortSidecar = sidecar.ErrShortFile

// MeansFileName returns <dir>/means_<G>.txt.
func MeansFileName(dir string, group ChannelGroup) string {
	return sidecar.FileName(dir, group)
}

func WriteMeans(w io.Writer, means [ChannelsPerGroup]float64) error {
	return sidecar.Write(w, means)
}

func ReadMeans(r io.Reader) ([ChannelsPerGroup]float64, error) {
	return sidecar.Read(r)
}

// WriteMeansFile writes the sidecar file at path, replacing any existing one.
func WriteMeansFile(path string, means [ChannelsPerGroup]float64) error {
	return sidecar.WriteFile(path, means)
}

func ReadMeansFile(path string) ([ChannelsPerGroup]float64, error) {
	return sidecar.ReadFile(path)
}
