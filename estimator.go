// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import "math"

// An Estimator converts the number of high samples a pin collected during a
// window into an analog level, approximating what a low-pass filtered output
// (an LED, a speaker) would perceive from a fast toggling digital pin.
//
// Every window is an independent estimate: nothing is carried over from one
// window to the next.
//
type Estimator struct {
	scale    float64
	baseline uint8
}

// NewEstimator returns an estimator for a bus of pinCount pins sampled round
// robin, one pin per instruction step of stepNs nanoseconds, over windows of
// windowNs nanoseconds.
//
// A pin held high for a whole window collects windowNs/(stepNs*pinCount)
// samples, which the estimator maps to span+baseline.
//
// With span = 255 the scale is the textbook 255*pinCount*stepNs/windowNs,
// which saturates for any pin high more than about 78% of the window when
// baseline is 55. Boards use DefaultAnalogSpan (200) so that a fully high pin
// reads exactly 255 = 200+55.
//
func NewEstimator(pinCount int, stepNs, windowNs uint64, span float64, baseline uint8) *Estimator {
	assertf(windowNs > 0, "zero estimation window")
	if windowNs == 0 {
		windowNs = 1
	}
	if pinCount < 1 {
		pinCount = 1
	}
	return &Estimator{
		scale:    span * float64(pinCount) * float64(stepNs) / float64(windowNs),
		baseline: baseline,
	}
}

// Scale returns the level increment per high sample.
//
func (e *Estimator) Scale() float64 { return e.scale }

// Baseline returns the resting level of a pin that stayed low.
//
func (e *Estimator) Baseline() uint8 { return e.baseline }

// Estimate returns round(acc*scale) + baseline, clamped to [0, 255].
//
func (e *Estimator) Estimate(acc uint32) uint8 {
	v := math.Round(float64(acc)*e.scale) + float64(e.baseline)
	if v > math.MaxUint8 {
		return math.MaxUint8
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}
