// Package histogram bins channel readings and applies the k·σ threshold used
// before peak fitting.
package histogram

import (
	"math"
	"sort"

	"github.com/joeydtaylor/framefit/pkg/internal/types"
	"github.com/joeydtaylor/framefit/pkg/internal/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MaxAutoBins caps the number of bins chosen when the caller asks for automatic binning.
const MaxAutoBins = 1024

// Build counts values into equal-width bins. bins > 0 spans [min, max] exactly;
// bins <= 0 centres one bin on every integer between min and max, up to MaxAutoBins.
// X holds bin centres and Y the counts.
func Build(values []float64, bins int) types.Histogram {
	if len(values) == 0 {
		return types.Histogram{}
	}

	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		return types.Histogram{X: []float64{lo}, Y: []float64{float64(len(values))}, Width: 1}
	}

	start, end := lo, hi
	if bins <= 0 {
		bins = int(math.Min(math.Floor(hi-lo)+1, MaxAutoBins))
		start, end = lo-0.5, hi+0.5
	}
	width := (end - start) / float64(bins)

	dividers := make([]float64, bins+1)
	floats.Span(dividers, start, end)
	// stat.Histogram needs every value strictly below the last divider.
	dividers[bins] = math.Nextafter(end, math.Inf(1))

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	counts := stat.Histogram(nil, dividers, sorted, nil)

	centres := make([]float64, bins)
	for i := range centres {
		centres[i] = start + width*(float64(i)+0.5)
	}
	return types.Histogram{X: centres, Y: counts, Width: width}
}

// Threshold centres values on baseline (or on their mean when baseline is nil)
// and keeps the centred values at or above k standard deviations. The returned
// values stay centred.
func Threshold(values []float64, baseline *float64, k float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	var centre float64
	if baseline != nil {
		centre = *baseline
	} else {
		centre = stat.Mean(values, nil)
	}

	centred := make([]float64, len(values))
	copy(centred, values)
	floats.AddConst(-centre, centred)

	sigma := 0.0
	if len(centred) > 1 {
		sigma = stat.StdDev(centred, nil)
	}
	cut := k * sigma
	return utils.Filter(centred, func(v float64) bool { return v >= cut })
}
