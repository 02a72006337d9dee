package anim

import (
	"math"
	"testing"
)

func TestCubicBezierEndpoints(t *testing.T) {
	ease := CubicBezier(0.22, 1, 0.36, 1)
	if ease(0) != 0 || ease(1) != 1 {
		t.Fatalf("expected fixed endpoints, got %v %v", ease(0), ease(1))
	}
	if ease(-1) != 0 || ease(2) != 1 {
		t.Fatalf("expected clamped input")
	}
}

func TestCubicBezierMonotonic(t *testing.T) {
	for _, ease := range []Easing{EaseIn, EaseOut, EaseInOut, CubicBezier(0.22, 1, 0.36, 1)} {
		prev := 0.0
		for i := 1; i <= 100; i++ {
			v := ease(float64(i) / 100)
			if v+1e-9 < prev {
				t.Fatalf("easing decreased at %d: %v < %v", i, v, prev)
			}
			prev = v
		}
	}
}

func TestCubicBezierLinearControlPoints(t *testing.T) {
	ease := CubicBezier(1.0/3, 1.0/3, 2.0/3, 2.0/3)
	for _, x := range []float64{0.1, 0.25, 0.5, 0.9} {
		if got := ease(x); math.Abs(got-x) > 1e-4 {
			t.Fatalf("expected linear curve at %v, got %v", x, got)
		}
	}
}

func TestEaseOutFrontLoaded(t *testing.T) {
	if EaseOut(0.5) <= 0.5 {
		t.Fatalf("expected ease-out to be past halfway at t=0.5, got %v", EaseOut(0.5))
	}
	if EaseIn(0.5) >= 0.5 {
		t.Fatalf("expected ease-in to be behind halfway at t=0.5, got %v", EaseIn(0.5))
	}
	if math.Abs(EaseInOut(0.5)-0.5) > 1e-3 {
		t.Fatalf("expected ease-in-out symmetric at t=0.5, got %v", EaseInOut(0.5))
	}
}

func TestParseEasing(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"linear", false},
		{"easeOut", false},
		{"ease-in-out", false},
		{"cubic-bezier(0.22, 1, 0.36, 1)", false},
		{"cubic-bezier(1.5, 1, 0.36, 1)", true},
		{"bouncy", true},
	}
	for _, tc := range cases {
		ease, err := ParseEasing(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if ease(1) != 1 {
			t.Fatalf("expected %q to end at 1", tc.in)
		}
	}
}
