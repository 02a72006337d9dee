package anim

import "time"

// Pose is the set of animatable properties of one element.
type Pose struct {
	Opacity float64
	OffsetY float64
	Scale   float64
}

// Visible is the identity pose: in place and fully opaque.
var Visible = Pose{Opacity: 1, Scale: 1}

// Lerp interpolates between two poses by p in [0,1].
func Lerp(from, to Pose, p float64) Pose {
	return Pose{
		Opacity: from.Opacity + (to.Opacity-from.Opacity)*p,
		OffsetY: from.OffsetY + (to.OffsetY-from.OffsetY)*p,
		Scale:   from.Scale + (to.Scale-from.Scale)*p,
	}
}

// Transition describes one keyframe-to-keyframe animation.
type Transition struct {
	From     Pose
	To       Pose
	Delay    time.Duration
	Duration time.Duration
	Easing   Easing
	// Repeat plays From to To and back every Duration, forever, after Delay.
	Repeat bool
}

// End returns the offset from play time at which the transition settles.
// A repeating transition never settles; End is then the end of its first cycle.
func (tr Transition) End() time.Duration {
	return tr.Delay + tr.Duration
}

// At samples the transition elapsed after it was played.
func (tr Transition) At(elapsed time.Duration) Pose {
	if elapsed < tr.Delay {
		return tr.From
	}
	ease := tr.Easing
	if ease == nil {
		ease = Linear
	}
	if tr.Repeat {
		if tr.Duration <= 0 {
			return tr.From
		}
		frac := float64((elapsed-tr.Delay)%tr.Duration) / float64(tr.Duration)
		// Each half of the cycle is eased on its own, there and back.
		if frac < 0.5 {
			return Lerp(tr.From, tr.To, ease(frac*2))
		}
		return Lerp(tr.To, tr.From, ease(frac*2-1))
	}
	if tr.Duration <= 0 || elapsed >= tr.End() {
		return tr.To
	}
	frac := float64(elapsed-tr.Delay) / float64(tr.Duration)
	return Lerp(tr.From, tr.To, ease(frac))
}
