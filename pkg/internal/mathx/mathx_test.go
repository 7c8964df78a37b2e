package mathx_test

import (
	"math"
	"testing"

	"github.com/joeydtaylor/framefit/pkg/internal/mathx"
)

func TestErfcAtZero(t *testing.T) {
	if got := mathx.Erfc(0); math.Abs(got-1) > 1e-9 {
		t.Fatalf("Erfc(0) = %v, want 1", got)
	}
}

func TestErfcSymmetry(t *testing.T) {
	for _, x := range []float64{0.01, 0.1, 0.5, 1, 1.5, 2, 3, 5, 10} {
		if got := mathx.Erfc(-x) + mathx.Erfc(x); math.Abs(got-2) > 1e-12 {
			t.Fatalf("Erfc(-%v)+Erfc(%v) = %v, want 2", x, x, got)
		}
	}
}

func TestErfcMatchesStdlib(t *testing.T) {
	for x := -4.0; x <= 4.0; x += 0.05 {
		if diff := math.Abs(mathx.Erfc(x) - math.Erfc(x)); diff > 2e-7 {
			t.Fatalf("Erfc(%v) off by %v", x, diff)
		}
	}
}

func TestClampExp(t *testing.T) {
	if got := mathx.ClampExp(1e6); got != math.Exp(mathx.MaxExpArg) {
		t.Fatalf("expected clamp at +%v, got %v", mathx.MaxExpArg, got)
	}
	if got := mathx.ClampExp(-1e6); got != math.Exp(-mathx.MaxExpArg) {
		t.Fatalf("expected clamp at -%v, got %v", mathx.MaxExpArg, got)
	}
	if math.IsInf(mathx.ClampExp(math.Inf(1)), 0) {
		t.Fatalf("ClampExp(+Inf) overflowed")
	}
}

func TestFinite(t *testing.T) {
	cases := map[float64]float64{
		math.NaN():   0,
		math.Inf(1):  0,
		math.Inf(-1): 0,
		3.5:          3.5,
	}
	for in, want := range cases {
		if got := mathx.Finite(in); got != want {
			t.Fatalf("Finite(%v) = %v, want %v", in, got, want)
		}
	}
}
