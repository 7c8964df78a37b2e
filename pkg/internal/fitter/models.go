package fitter

import (
	"math"

	"github.com/joeydtaylor/framefit/pkg/internal/mathx"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

// Parameter layout: Gaussian [A, mu, sigma]; Hyper-EMG [A, mu, sigma, tau].
const (
	paramAmplitude = 0
	paramMu        = 1
	paramSigma     = 2
	paramTau       = 3
)

// gaussian evaluates A·exp(-(x-mu)²/2σ²).
func gaussian(p []float64, x float64) float64 {
	sigma := p[paramSigma]
	if sigma == 0 {
		return 0
	}
	d := x - p[paramMu]
	return mathx.Finite(p[paramAmplitude] * mathx.ClampExp(-d*d/(2*sigma*sigma)))
}

// hyperEMG evaluates a Gaussian convolved with a one-sided exponential tail:
// (A/2τ)·exp(σ²/2τ² - (x-μ)/τ)·erfc((σ² - τ(x-μ)) / (√2·σ·τ)).
func hyperEMG(p []float64, x float64) float64 {
	a, sigma, tau := p[paramAmplitude], p[paramSigma], p[paramTau]
	if sigma <= 0 || tau <= 0 {
		return 0
	}
	d := x - p[paramMu]
	expArg := sigma*sigma/(2*tau*tau) - d/tau
	erfcArg := (sigma*sigma - tau*d) / (math.Sqrt2 * sigma * tau)
	return mathx.Finite(a / (2 * tau) * mathx.ClampExp(expArg) * mathx.Erfc(erfcArg))
}

// Evaluate writes model(params, x[i]) into dst, growing it as needed, and returns it.
func Evaluate(model types.Model, params []float64, x []float64, dst []float64) []float64 {
	if cap(dst) < len(x) {
		dst = make([]float64, len(x))
	}
	dst = dst[:len(x)]

	eval := gaussian
	if model == types.ModelHyperEMG {
		eval = hyperEMG
	}
	if len(params) < ParamCount(model) {
		for i := range dst {
			dst[i] = 0
		}
		return dst
	}
	for i, xi := range x {
		dst[i] = eval(params, xi)
	}
	return dst
}

// gaussianJacobian fills row-major jac (len(x) x 3) with ∂f/∂A, ∂f/∂μ, ∂f/∂σ.
func gaussianJacobian(p []float64, x []float64, jac []float64) {
	a, mu, sigma := p[paramAmplitude], p[paramMu], p[paramSigma]
	if sigma == 0 {
		for i := range jac {
			jac[i] = 0
		}
		return
	}
	s2 := sigma * sigma
	s3 := s2 * sigma
	for i, xi := range x {
		d := xi - mu
		e := mathx.ClampExp(-d * d / (2 * s2))
		row := jac[i*3 : i*3+3]
		row[0] = mathx.Finite(e)
		row[1] = mathx.Finite(a * e * d / s2)
		row[2] = mathx.Finite(a * e * d * d / s3)
	}
}

// numericJacobian fills row-major jac (len(x) x len(p)) by forward differences.
// base must hold the model evaluated at p; shifted is scratch of len(x).
func numericJacobian(model types.Model, p []float64, x, base, shifted, jac []float64) {
	np := len(p)
	for k := 0; k < np; k++ {
		orig := p[k]
		p[k] = orig + DiffStep
		shifted = Evaluate(model, p, x, shifted)
		p[k] = orig
		for i := range x {
			jac[i*np+k] = mathx.Finite((shifted[i] - base[i]) / DiffStep)
		}
	}
}

// clampParams keeps the Hyper-EMG amplitude, sigma and tau strictly positive.
func clampParams(model types.Model, p []float64) {
	if model != types.ModelHyperEMG {
		return
	}
	for _, k := range [...]int{paramAmplitude, paramSigma, paramTau} {
		if p[k] < ParamFloor {
			p[k] = ParamFloor
		}
	}
}
