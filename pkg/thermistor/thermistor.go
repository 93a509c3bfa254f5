package thermistor

import (
	"fmt"
	"math"
)

const (
	// KelvinOffset converts between Celsius and kelvin.
	KelvinOffset = 273.15
	// ReferenceKelvin is the temperature at which R25 is specified (25 °C).
	ReferenceKelvin = KelvinOffset + 25
)

// Circuit selects which side of the voltage divider the thermistor sits on.
type Circuit int

const (
	// CircuitLowSide: fixed resistor between Vcc and the tap, thermistor between the tap and GND.
	CircuitLowSide Circuit = 1
	// CircuitHighSide: thermistor between Vcc and the tap, fixed resistor between the tap and GND.
	CircuitHighSide Circuit = 2
)

// Valid reports whether c is one of the supported divider variants.
func (c Circuit) Valid() bool {
	return c == CircuitLowSide || c == CircuitHighSide
}

func (c Circuit) String() string {
	switch c {
	case CircuitLowSide:
		return "low-side"
	case CircuitHighSide:
		return "high-side"
	default:
		return fmt.Sprintf("Circuit(%d)", int(c))
	}
}

// DividerVoltage converts an ADC code to the divider tap voltage assuming an
// ideal linear ADC whose full scale is vcc.
// Formula: V_out = Vcc * code / (resolution - 1)
//
// resolution must be >= 2; callers validate it beforehand.
func DividerVoltage(vcc float64, resolution, code int) float64 {
	// code/(resolution-1) is exactly 0 and 1 at both ends of the range, so the
	// first and last codes map exactly onto 0 V and vcc.
	return vcc * (float64(code) / float64(resolution-1))
}

// Resistance returns the thermistor resistance for a divider tap voltage.
//
// Low side:  R_ntc = V_out * R_fixed / (Vcc - V_out)
// High side: R_ntc = Vcc * R_fixed / V_out - R_fixed
//
// At V_out == Vcc (low side) or V_out == 0 (high side) the result is +Inf.
// An unknown circuit yields NaN.
func Resistance(c Circuit, vcc, vout, rFixed float64) float64 {
	switch c {
	case CircuitLowSide:
		return vout * rFixed / (vcc - vout)
	case CircuitHighSide:
		return (vcc * rFixed / vout) - rFixed
	default:
		return math.NaN()
	}
}

// Temperature converts a thermistor resistance to Celsius with the Beta model:
//
//	1/T = ln(R/R25)/B + 1/T25
//
// A negative resistance yields NaN; zero and +Inf both collapse to -273.15.
func Temperature(beta, r25, r float64) float64 {
	kelvin := 1 / (math.Log(r/r25)/beta + 1/ReferenceKelvin)
	return kelvin - KelvinOffset
}
