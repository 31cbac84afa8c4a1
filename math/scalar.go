package math

import "math"

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math.Pi / 180.0
}

// Degrees converts radians to degrees.
func Degrees(rad float32) float32 {
	return rad * 180.0 / math.Pi
}

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func Sin(rad float32) float32 { return float32(math.Sin(float64(rad))) }
func Cos(rad float32) float32 { return float32(math.Cos(float64(rad))) }
