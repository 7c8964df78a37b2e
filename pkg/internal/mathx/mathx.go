// Package mathx holds the special functions shared by the curve models: an
// Abramowitz–Stegun complementary error function and overflow-safe exponentials.
package mathx

import "math"

// MaxExpArg bounds every exponent handed to math.Exp.
const MaxExpArg = 100.0

// Abramowitz & Stegun 7.1.26 coefficients.
const (
	erfcP  = 0.3275911
	erfcA1 = 0.254829592
	erfcA2 = -0.284496736
	erfcA3 = 1.421413741
	erfcA4 = -1.453152027
	erfcA5 = 1.061405429
)

// Erfc approximates the complementary error function with a maximum absolute
// error of about 1.5e-7. Negative arguments use erfc(-x) = 2 - erfc(x).
func Erfc(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	if x < 0 {
		return 2 - Erfc(-x)
	}
	t := 1 / (1 + erfcP*x)
	poly := t * (erfcA1 + t*(erfcA2+t*(erfcA3+t*(erfcA4+t*erfcA5))))
	return poly * ClampExp(-x*x)
}

// ClampArg limits an exponent argument to [-MaxExpArg, MaxExpArg].
func ClampArg(x float64) float64 {
	if x > MaxExpArg {
		return MaxExpArg
	}
	if x < -MaxExpArg {
		return -MaxExpArg
	}
	return x
}

// ClampExp evaluates exp(x) with x clamped to ±MaxExpArg.
func ClampExp(x float64) float64 {
	return math.Exp(ClampArg(x))
}

// Finite returns v, or 0 when v is NaN or infinite.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
