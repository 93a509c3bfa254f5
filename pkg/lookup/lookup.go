package lookup

import (
	"math"

	"github.com/itohio/thermcalc/pkg/config"
	"github.com/itohio/thermcalc/pkg/thermistor"
)

// Sample holds the computed values for a single ADC code.
type Sample struct {
	Code        int     `yaml:"code"`        // ADC code, 0-based
	Voltage     float64 `yaml:"voltage"`     // Divider output voltage (V)
	Resistance  float64 `yaml:"resistance"`  // Thermistor resistance (ohm)
	Temperature float64 `yaml:"temperature"` // Thermistor temperature (Celsius)
}

// Finite reports whether every computed value of the row is a real number.
// Rows at the ends of the ADC range are expected to be non-finite for one of
// the two circuits (open or shorted divider).
func (s Sample) Finite() bool {
	return finite(s.Voltage) && finite(s.Resistance) && finite(s.Temperature)
}

// Build computes one Sample per ADC code in [0, resolution), in ascending order.
// cfg must have passed Validate. Non-finite values are kept as they are.
func Build(cfg *config.Config) []Sample {
	n := cfg.ADC.Resolution
	rows := make([]Sample, n)

	if cfg.ADC.Float32 {
		vcc := float32(cfg.Divider.Vcc)
		rFixed := float32(cfg.Divider.Resistor)
		beta := float32(cfg.Thermistor.Beta)
		r25 := float32(cfg.Thermistor.R25)
		for code := range rows {
			v := thermistor.DividerVoltage32(vcc, n, code)
			r := thermistor.Resistance32(cfg.Divider.Circuit, vcc, v, rFixed)
			rows[code] = Sample{
				Code:        code,
				Voltage:     float64(v),
				Resistance:  float64(r),
				Temperature: float64(thermistor.Temperature32(beta, r25, r)),
			}
		}
		return rows
	}

	for code := range rows {
		v := thermistor.DividerVoltage(cfg.Divider.Vcc, n, code)
		r := thermistor.Resistance(cfg.Divider.Circuit, cfg.Divider.Vcc, v, cfg.Divider.Resistor)
		rows[code] = Sample{
			Code:        code,
			Voltage:     v,
			Resistance:  r,
			Temperature: thermistor.Temperature(cfg.Thermistor.Beta, cfg.Thermistor.R25, r),
		}
	}
	return rows
}

// NonFinite counts rows holding Inf or NaN.
func NonFinite(rows []Sample) int {
	count := 0
	for _, row := range rows {
		if !row.Finite() {
			count++
		}
	}
	return count
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
