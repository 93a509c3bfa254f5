package main

import (
	"fmt"
	"io"

	"github.com/itohio/thermcalc/pkg/config"
)

const circuitDiagrams = `Circuit variant 1        Circuit variant 2
-----------------        -----------------

      Vcc                      Vcc
       |                        |
      +-+                      +-+
      | | Resistor             | | NTC
      +-+                      +-+
       |                        |
       |--- Vntc                |--- Vntc
       |                        |
      +-+                      +-+
      | | NTC                  | | Resistor
      +-+                      +-+
       |                        |
      GND                      GND
`

// printHelp writes the program description, the supported circuits and every
// option with its default value taken from def.
func printHelp(w io.Writer, program string, def *config.Config) {
	fmt.Fprintf(w, `Compute the ADC lookup table (Celsius temperatures) of an NTC thermistor
wired into a voltage divider, one row per ADC code.
Only Negative Temperature Coefficient thermistors are supported.

Supported voltage divider circuits:

%s
Usage: %s [-c circuit] [-B beta] [-R r25] [-r resistor] [-v vcc] [-a resolution] [flags]

  -c, --circuit int       circuit variant, 1 or 2 (see above). Default %d.
  -B, --beta float        thermistor Beta coefficient (kelvin), the B25/100 datasheet value. Default %g.
  -R, --r25 float         thermistor resistance at 25 Celsius degrees (ohm). Default %g.
  -r, --resistor float    other resistor of the voltage divider (ohm). Default %g.
  -v, --vcc float         divider supply voltage (volt). Default %g.
  -a, --resolution int    ADC resolution, i.e. number of table rows (%d to %d). Default %d.
      --float32           compute in single precision, as firmware would.
      --format string     output format: %s, %s, %s or %s. Default %s.
      --decimals int      digits after the decimal point, -1 for the shortest form. Default %d.
      --config string     YAML or TOML configuration file. Default %s.
      --env-file string   dotenv file with %s* variables. Default %s.
      --verbose           log configuration details to stderr.
  -h, --help              display this help.

Precedence: defaults, configuration file, env file, environment, flags.
`,
		circuitDiagrams,
		program,
		int(def.Divider.Circuit),
		def.Thermistor.Beta,
		def.Thermistor.R25,
		def.Divider.Resistor,
		def.Divider.Vcc,
		config.MinResolution, config.MaxResolution, def.ADC.Resolution,
		config.FormatTable, config.FormatTSV, config.FormatCSV, config.FormatYAML, def.Output.Format,
		def.Output.Decimals,
		defaultConfigFile,
		config.EnvPrefix, defaultEnvFile,
	)
}
