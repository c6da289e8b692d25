/*
Package coaster implements 3D vectors, row-major rotation matrices and the
numeric helpers shared by the spline track engine.

Sub-packages build on it: crspline joins Catmull-Rom segments into an
arc-length parameterized chain, track turns a chain into a ride-able roller
coaster track with banking, trackfile persists tracks and trackplot draws
diagnostic plots.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package coaster

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'coaster'
func tracer() tracing.Trace {
	return tracing.Select("coaster")
}

// === Numeric helpers =======================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = math.Pi / 180

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Lerp interpolates linearly between f0 and f1.
func Lerp(f0, f1, t float64) float64 {
	return (1-t)*f0 + t*f1
}

// Clamp01 clamps x to [0,1]. NaN is mapped to 0.
func Clamp01(x float64) float64 {
	if x > 1 {
		return 1
	} else if x >= 0 {
		return x
	}
	return 0
}
