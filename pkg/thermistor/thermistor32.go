package thermistor

import "github.com/chewxy/math32"

// Single precision variants of the stages, matching what firmware on an FPU-less
// or float32-only MCU computes. Results differ from the float64 stages by
// rounding only.

// DividerVoltage32 is DividerVoltage in float32.
func DividerVoltage32(vcc float32, resolution, code int) float32 {
	return vcc * (float32(code) / float32(resolution-1))
}

// Resistance32 is Resistance in float32.
func Resistance32(c Circuit, vcc, vout, rFixed float32) float32 {
	switch c {
	case CircuitLowSide:
		return vout * rFixed / (vcc - vout)
	case CircuitHighSide:
		return (vcc * rFixed / vout) - rFixed
	default:
		return math32.NaN()
	}
}

// Temperature32 is Temperature in float32.
func Temperature32(beta, r25, r float32) float32 {
	kelvin := 1 / (math32.Log(r/r25)/beta + 1/float32(ReferenceKelvin))
	return kelvin - KelvinOffset
}
