package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/itohio/thermcalc/pkg/thermistor"
)

// EnvPrefix prefixes every environment variable the calculator reads.
const EnvPrefix = "THERMCALC_"

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadEnvFile reads KEY=VALUE pairs from a dotenv file without touching the
// process environment. A missing file yields an empty map.
func LoadEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return vars, nil
}

// Chain returns a LookupFunc consulting each source in order.
func Chain(sources ...LookupFunc) LookupFunc {
	return func(key string) (string, bool) {
		for _, src := range sources {
			if src == nil {
				continue
			}
			if v, ok := src(key); ok {
				return v, true
			}
		}
		return "", false
	}
}

// MapLookup adapts a map (e.g. from LoadEnvFile) to a LookupFunc.
func MapLookup(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

// ApplyEnv overlays THERMCALC_* variables onto the configuration.
// Empty values are ignored; malformed values are reported with the variable name.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	var errs []error

	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	float := func(name string, target *float64) {
		if v, ok := get(name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*target = f
		}
	}
	integer := func(name string, target *int) {
		if v, ok := get(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*target = n
		}
	}

	circuit := int(c.Divider.Circuit)
	integer("CIRCUIT", &circuit)
	c.Divider.Circuit = thermistor.Circuit(circuit)
	float("VCC", &c.Divider.Vcc)
	float("RESISTOR", &c.Divider.Resistor)
	float("BETA", &c.Thermistor.Beta)
	float("R25", &c.Thermistor.R25)
	integer("RESOLUTION", &c.ADC.Resolution)
	integer("DECIMALS", &c.Output.Decimals)

	if v, ok := get("FLOAT32"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sFLOAT32: %w", EnvPrefix, err))
		} else {
			c.ADC.Float32 = b
		}
	}
	if v, ok := get("FORMAT"); ok {
		c.Output.Format = v
	}

	return errors.Join(errs...)
}
