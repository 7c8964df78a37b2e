// Package linsolve solves the small dense systems produced by the normal equations
// of the curve fitter: a closed-form 3x3 path and Gaussian elimination with partial
// pivoting for larger orders.
package linsolve

import (
	"errors"
	"fmt"
	"math"
)

// SingularThreshold is the smallest determinant or pivot magnitude accepted.
const SingularThreshold = 1e-9

// ErrSingular is returned when the system has no stable solution.
var ErrSingular = errors.New("linsolve: singular matrix")

// Det3 returns the determinant of a 3x3 matrix.
func Det3(a [3][3]float64) float64 {
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

// Solve3 solves a·x = b by Cramer's rule.
func Solve3(a [3][3]float64, b [3]float64) ([3]float64, error) {
	det := Det3(a)
	if math.Abs(det) < SingularThreshold || math.IsNaN(det) {
		return [3]float64{}, ErrSingular
	}

	var x [3]float64
	for col := 0; col < 3; col++ {
		m := a
		for row := 0; row < 3; row++ {
			m[row][col] = b[row]
		}
		x[col] = Det3(m) / det
	}
	return x, nil
}

// SolveInPlace solves a·x = b for a square a, writing the solution into x.
// a and b are overwritten by the elimination.
func SolveInPlace(a [][]float64, b, x []float64) error {
	n := len(a)
	if len(b) != n || len(x) != n {
		return fmt.Errorf("linsolve: dimension mismatch: matrix %d, rhs %d, solution %d", n, len(b), len(x))
	}
	for i := range a {
		if len(a[i]) != n {
			return fmt.Errorf("linsolve: row %d has %d columns, want %d", i, len(a[i]), n)
		}
	}

	for col := 0; col < n; col++ {
		pivot := col
		maxAbs := math.Abs(a[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(a[r][col]); v > maxAbs {
				maxAbs = v
				pivot = r
			}
		}
		if maxAbs < SingularThreshold || math.IsNaN(maxAbs) {
			return ErrSingular
		}
		if pivot != col {
			a[col], a[pivot] = a[pivot], a[col]
			b[col], b[pivot] = b[pivot], b[col]
		}

		for r := col + 1; r < n; r++ {
			factor := a[r][col] / a[col][col]
			if factor == 0 {
				continue
			}
			for c := col; c < n; c++ {
				a[r][c] -= factor * a[col][c]
			}
			b[r] -= factor * b[col]
		}
	}

	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < n; j++ {
			sum -= a[i][j] * x[j]
		}
		x[i] = sum / a[i][i]
	}
	return nil
}

// Solve copies a and b and solves a·x = b without touching the inputs.
func Solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	m := make([][]float64, n)
	for i := range a {
		m[i] = append([]float64(nil), a[i]...)
	}
	rhs := append([]float64(nil), b...)
	x := make([]float64, n)
	if err := SolveInPlace(m, rhs, x); err != nil {
		return nil, err
	}
	return x, nil
}
