package fitter

import (
	"context"
	"math"

	"github.com/joeydtaylor/framefit/pkg/internal/linsolve"
	"github.com/joeydtaylor/framefit/pkg/internal/mathx"
	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

// lmOutcome summarises one run of the LM loop.
type lmOutcome struct {
	iterations int
	converged  bool
	stopReason string
}

// iterate refines ws.params in place against (x, y). A singular or non-finite step
// stops the loop and keeps the last accepted parameters.
func (f *Fitter) iterate(ctx context.Context, ws *workspace, model types.Model, x, y []float64) (lmOutcome, error) {
	np := len(ws.params)
	n := min(len(x), len(y))
	x, y = x[:n], y[:n]
	model3 := np == 3

	var out lmOutcome
	for iter := 0; iter < f.maxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			out.stopReason = "cancelled"
			return out, err
		}

		ws.model = Evaluate(model, ws.params, x, ws.model)
		for i := 0; i < n; i++ {
			ws.resid[i] = y[i] - ws.model[i]
		}

		if model == types.ModelGaussian {
			gaussianJacobian(ws.params, x, ws.jac)
		} else {
			numericJacobian(model, ws.params, x, ws.model, ws.shifted, ws.jac)
		}

		f.buildNormalEquations(ws, n, np)

		if model3 {
			var a [3][3]float64
			var b [3]float64
			for r := 0; r < 3; r++ {
				for c := 0; c < 3; c++ {
					a[r][c] = ws.normal[r][c]
				}
				b[r] = ws.rhs[r]
			}
			d, err := linsolve.Solve3(a, b)
			if err != nil {
				out.stopReason = "singular"
				break
			}
			copy(ws.delta, d[:])
		} else if err := linsolve.SolveInPlace(ws.normal, ws.rhs, ws.delta); err != nil {
			out.stopReason = "singular"
			break
		}

		small := true
		finite := true
		for k := 0; k < np; k++ {
			if !mathx.IsFinite(ws.delta[k]) {
				finite = false
				break
			}
			if math.Abs(ws.delta[k]) >= f.stepTolerance {
				small = false
			}
		}
		if !finite {
			out.stopReason = "non-finite step"
			break
		}

		for k := 0; k < np; k++ {
			ws.params[k] += ws.delta[k]
		}
		clampParams(model, ws.params)
		out.iterations = iter + 1

		if small {
			out.converged = true
			out.stopReason = "converged"
			break
		}
	}
	if out.stopReason == "" {
		out.stopReason = "max iterations"
	}
	return out, nil
}

// buildNormalEquations writes JᵗJ + λI into ws.normal and Jᵗr into ws.rhs.
func (f *Fitter) buildNormalEquations(ws *workspace, n, np int) {
	for r := 0; r < np; r++ {
		row := ws.normal[r]
		for c := 0; c < np; c++ {
			row[c] = 0
		}
		ws.rhs[r] = 0
	}
	for i := 0; i < n; i++ {
		j := ws.jac[i*np : (i+1)*np]
		ri := ws.resid[i]
		for r := 0; r < np; r++ {
			ws.rhs[r] += j[r] * ri
			for c := r; c < np; c++ {
				ws.normal[r][c] += j[r] * j[c]
			}
		}
	}
	for r := 0; r < np; r++ {
		for c := 0; c < r; c++ {
			ws.normal[r][c] = ws.normal[c][r]
		}
		ws.normal[r][r] += f.damping
	}
}
