package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/thermcalc/pkg/thermistor"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, thermistor.CircuitLowSide, cfg.Divider.Circuit)
	assert.Equal(t, float64(3.3), cfg.Divider.Vcc)
	assert.Equal(t, float64(10000), cfg.Divider.Resistor)
	assert.Equal(t, float64(4300), cfg.Thermistor.Beta)
	assert.Equal(t, float64(10000), cfg.Thermistor.R25)
	assert.Equal(t, 256, cfg.ADC.Resolution)
	assert.False(t, cfg.ADC.Float32)
	assert.Equal(t, FormatTable, cfg.Output.Format)
	assert.Equal(t, 6, cfg.Output.Decimals)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
divider:
  circuit: 2
  vcc: 5
  resistor: 4700

thermistor:
  beta: 3950
  r25: 100000

adc:
  resolution: 4096
  float32: true

output:
  format: csv
  decimals: 3
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)

	assert.Equal(t, thermistor.CircuitHighSide, cfg.Divider.Circuit)
	assert.Equal(t, float64(5), cfg.Divider.Vcc)
	assert.Equal(t, float64(4700), cfg.Divider.Resistor)
	assert.Equal(t, float64(3950), cfg.Thermistor.Beta)
	assert.Equal(t, float64(100000), cfg.Thermistor.R25)
	assert.Equal(t, 4096, cfg.ADC.Resolution)
	assert.True(t, cfg.ADC.Float32)
	assert.Equal(t, FormatCSV, cfg.Output.Format)
	assert.Equal(t, 3, cfg.Output.Decimals)
}

func TestLoad_ValidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thermcalc.toml")
	tomlContent := `
[divider]
circuit = 2
vcc = 1.8

[thermistor]
beta = 3435.0

[adc]
resolution = 1024
`
	require.NoError(t, os.WriteFile(path, []byte(tomlContent), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, thermistor.CircuitHighSide, cfg.Divider.Circuit)
	assert.Equal(t, 1.8, cfg.Divider.Vcc)
	assert.Equal(t, float64(10000), cfg.Divider.Resistor) // default
	assert.Equal(t, float64(3435), cfg.Thermistor.Beta)
	assert.Equal(t, 1024, cfg.ADC.Resolution)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("invalid: yaml: content: [")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[divider\nvcc = "), 0644))

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_PartialYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
thermistor:
  r25: 4700
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)

	// Should use defaults for missing fields
	assert.Equal(t, float64(4700), cfg.Thermistor.R25)
	assert.Equal(t, float64(4300), cfg.Thermistor.Beta) // default
	assert.Equal(t, float64(3.3), cfg.Divider.Vcc)      // default
	assert.Equal(t, 256, cfg.ADC.Resolution)            // default
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ExplicitZeroIsKept(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "yaml", file: "zero.yaml", content: "divider:\n  circuit: 0\n  vcc: 0\n"},
		{name: "toml", file: "zero.toml", content: "[divider]\ncircuit = 0\nvcc = 0.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, thermistor.Circuit(0), cfg.Divider.Circuit)
			assert.Equal(t, 0.0, cfg.Divider.Vcc)
			assert.Equal(t, float64(10000), cfg.Divider.Resistor) // default

			err = cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), "circuit variant must be 1 or 2")
			assert.Contains(t, err.Error(), "vcc must be a positive voltage")
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{name: "circuit zero", modify: func(c *Config) { c.Divider.Circuit = 0 }},
		{name: "circuit three", modify: func(c *Config) { c.Divider.Circuit = 3 }},
		{name: "zero vcc", modify: func(c *Config) { c.Divider.Vcc = 0 }},
		{name: "negative vcc", modify: func(c *Config) { c.Divider.Vcc = -3.3 }},
		{name: "infinite vcc", modify: func(c *Config) { c.Divider.Vcc = math.Inf(1) }},
		{name: "NaN resistor", modify: func(c *Config) { c.Divider.Resistor = math.NaN() }},
		{name: "zero beta", modify: func(c *Config) { c.Thermistor.Beta = 0 }},
		{name: "negative r25", modify: func(c *Config) { c.Thermistor.R25 = -10 }},
		{name: "resolution one", modify: func(c *Config) { c.ADC.Resolution = 1 }},
		{name: "resolution above maximum", modify: func(c *Config) { c.ADC.Resolution = 70000 }},
		{name: "unknown format", modify: func(c *Config) { c.Output.Format = "xml" }},
		{name: "decimals", modify: func(c *Config) { c.Output.Decimals = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestValidate_Bounds(t *testing.T) {
	cfg := Default()
	cfg.ADC.Resolution = MinResolution
	assert.NoError(t, cfg.Validate())

	cfg.ADC.Resolution = MaxResolution
	assert.NoError(t, cfg.Validate())

	cfg.Output.Decimals = -1
	assert.NoError(t, cfg.Validate())
}

func TestValidate_ReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Divider.Circuit = 5
	cfg.ADC.Resolution = 70000

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit variant must be 1 or 2")
	assert.Contains(t, err.Error(), "between 2 and 65536")
}
