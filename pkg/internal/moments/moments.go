// Package moments computes weighted moments of a binned distribution.
package moments

import "math"

// Moments describes a weighted (x, y) distribution.
type Moments struct {
	Mean  float64
	Sigma float64
	Peak  float64
}

// Calculate returns the weighted mean, standard deviation and peak weight of the
// distribution. The mean is taken in a first pass and the spread in a second pass
// around it. A zero total weight yields (0, 0, peak).
func Calculate(x, y []float64) Moments {
	n := min(len(x), len(y))
	if n == 0 {
		return Moments{}
	}

	peak := y[0]
	var sumW, sumWX float64
	for i := 0; i < n; i++ {
		if y[i] > peak {
			peak = y[i]
		}
		sumW += y[i]
		sumWX += x[i] * y[i]
	}
	if sumW == 0 {
		return Moments{Peak: peak}
	}

	mean := sumWX / sumW

	var sumSq float64
	for i := 0; i < n; i++ {
		d := x[i] - mean
		sumSq += y[i] * d * d
	}
	sigma := 0.0
	if v := sumSq / sumW; v > 0 {
		sigma = math.Sqrt(v)
	}

	return Moments{Mean: mean, Sigma: sigma, Peak: peak}
}

// WeightedRMS returns sqrt(Σw·(x-mean)² / Σw), or 0 when the weights sum to zero.
func WeightedRMS(x, w []float64, mean float64) float64 {
	n := min(len(x), len(w))
	var sumW, sumSq float64
	for i := 0; i < n; i++ {
		d := x[i] - mean
		sumW += w[i]
		sumSq += w[i] * d * d
	}
	if sumW == 0 {
		return 0
	}
	v := sumSq / sumW
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}
