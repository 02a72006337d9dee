// Package anim plays property transitions and samples their current pose.
package anim

import (
	"fmt"
	"math"
	"strings"
)

// Easing maps elapsed fraction of a duration to progress fraction.
type Easing func(t float64) float64

// Linear progresses at a constant rate.
func Linear(t float64) float64 {
	return clamp01(t)
}

var (
	// EaseIn matches the CSS ease-in curve.
	EaseIn = CubicBezier(0.42, 0, 1, 1)
	// EaseOut matches the CSS ease-out curve.
	EaseOut = CubicBezier(0, 0, 0.58, 1)
	// EaseInOut matches the CSS ease-in-out curve.
	EaseInOut = CubicBezier(0.42, 0, 0.58, 1)
)

// CubicBezier returns the easing described by control points (x1,y1) and (x2,y2),
// with the end points fixed at (0,0) and (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	solve := func(x float64) float64 {
		s := x
		for i := 0; i < 8; i++ {
			dx := sampleX(s) - x
			if math.Abs(dx) < 1e-7 {
				return s
			}
			d := slopeX(s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= dx / d
		}
		lo, hi := 0.0, 1.0
		s = x
		for i := 0; i < 64 && lo < hi; i++ {
			v := sampleX(s)
			if math.Abs(v-x) < 1e-7 {
				return s
			}
			if x > v {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return s
	}

	return func(t float64) float64 {
		t = clamp01(t)
		if t == 0 || t == 1 {
			return t
		}
		return sampleY(solve(t))
	}
}

// ParseEasing resolves an easing name or a cubic-bezier(a,b,c,d) expression.
func ParseEasing(name string) (Easing, error) {
	name = strings.TrimSpace(name)
	switch strings.ToLower(name) {
	case "", "linear":
		return Linear, nil
	case "easein", "ease-in":
		return EaseIn, nil
	case "easeout", "ease-out":
		return EaseOut, nil
	case "easeinout", "ease-in-out":
		return EaseInOut, nil
	}
	var x1, y1, x2, y2 float64
	compact := strings.ReplaceAll(name, " ", "")
	if _, err := fmt.Sscanf(compact, "cubic-bezier(%g,%g,%g,%g)", &x1, &y1, &x2, &y2); err != nil {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	if x1 < 0 || x1 > 1 || x2 < 0 || x2 > 1 {
		return nil, fmt.Errorf("easing %q: x control points must be within [0,1]", name)
	}
	return CubicBezier(x1, y1, x2, y2), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
