package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/itohio/thermcalc/pkg/thermistor"
)

const (
	// MinResolution is the smallest usable ADC step count (the voltage formula divides by resolution-1).
	MinResolution = 2
	// MaxResolution is the largest supported ADC step count (16-bit ADC).
	MaxResolution = 65536
)

// Output formats understood by the output package.
const (
	FormatTable = "table"
	FormatTSV   = "tsv"
	FormatCSV   = "csv"
	FormatYAML  = "yaml"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the calculator configuration.
type Config struct {
	Divider    DividerConfig    `yaml:"divider" toml:"divider"`
	Thermistor ThermistorConfig `yaml:"thermistor" toml:"thermistor"`
	ADC        ADCConfig        `yaml:"adc" toml:"adc"`
	Output     OutputConfig     `yaml:"output" toml:"output"`
}

// DividerConfig contains voltage divider configuration.
type DividerConfig struct {
	Circuit  thermistor.Circuit `yaml:"circuit" toml:"circuit"`   // 1: NTC on the low side, 2: NTC on the high side
	Vcc      float64            `yaml:"vcc" toml:"vcc"`           // Supply voltage (V)
	Resistor float64            `yaml:"resistor" toml:"resistor"` // Fixed divider resistor (ohm)
}

// ThermistorConfig contains the Beta model parameters.
type ThermistorConfig struct {
	Beta float64 `yaml:"beta" toml:"beta"` // B25/100 coefficient (K)
	R25  float64 `yaml:"r25" toml:"r25"`   // Resistance at 25 °C (ohm)
}

// ADCConfig contains converter parameters.
type ADCConfig struct {
	Resolution int  `yaml:"resolution" toml:"resolution"` // Number of ADC steps, e.g. 256 for 8 bits
	Float32    bool `yaml:"float32" toml:"float32"`       // Compute in single precision
}

// OutputConfig contains table rendering parameters.
type OutputConfig struct {
	Format   string `yaml:"format" toml:"format"`
	Decimals int    `yaml:"decimals" toml:"decimals"` // -1 prints the shortest exact representation
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Divider: DividerConfig{
			Circuit:  thermistor.CircuitLowSide,
			Vcc:      3.3,
			Resistor: 10000,
		},
		Thermistor: ThermistorConfig{
			Beta: 4300,
			R25:  10000,
		},
		ADC: ADCConfig{
			Resolution: 256,
			Float32:    false,
		},
		Output: OutputConfig{
			Format:   FormatTable,
			Decimals: 6,
		},
	}
}

// Load loads configuration from a YAML or TOML file (chosen by extension).
// If the file doesn't exist or fields are missing, it uses default values.
// Values present in the file are kept as written, zeros included.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isTOML(filename) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}


	return cfg, nil
}

// Validate checks every field and reports all violations at once.
// Each reported error wraps ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if !c.Divider.Circuit.Valid() {
		invalid("circuit variant must be 1 or 2, got %d", int(c.Divider.Circuit))
	}
	if !positive(c.Divider.Vcc) {
		invalid("vcc must be a positive voltage, got %v", c.Divider.Vcc)
	}
	if !positive(c.Divider.Resistor) {
		invalid("divider resistor must be a positive resistance, got %v", c.Divider.Resistor)
	}
	if !positive(c.Thermistor.Beta) {
		invalid("beta coefficient must be positive, got %v", c.Thermistor.Beta)
	}
	if !positive(c.Thermistor.R25) {
		invalid("r25 must be a positive resistance, got %v", c.Thermistor.R25)
	}
	if c.ADC.Resolution < MinResolution || c.ADC.Resolution > MaxResolution {
		invalid("ADC resolution must be between %d and %d, got %d", MinResolution, MaxResolution, c.ADC.Resolution)
	}
	switch c.Output.Format {
	case FormatTable, FormatTSV, FormatCSV, FormatYAML:
	default:
		invalid("unknown output format %q", c.Output.Format)
	}
	if c.Output.Decimals < -1 {
		invalid("decimals must be >= -1, got %d", c.Output.Decimals)
	}

	return errors.Join(errs...)
}

func isTOML(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".toml")
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
