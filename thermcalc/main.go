package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/itohio/thermcalc/pkg/config"
	"github.com/itohio/thermcalc/pkg/lookup"
	"github.com/itohio/thermcalc/pkg/output"
	"github.com/itohio/thermcalc/pkg/thermistor"
)

const (
	defaultConfigFile = "thermcalc.yaml"
	defaultEnvFile    = ".env"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("thermcalc: ")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options mirrors the command line. Values only override the configuration
// when the matching flag was set explicitly.
type options struct {
	configPath string
	envFile    string
	verbose    bool

	circuit    int
	beta       float64
	r25        float64
	resistor   float64
	vcc        float64
	resolution int
	float32    bool
	format     string
	decimals   int
}

func newRootCmd() *cobra.Command {
	def := config.Default()
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "thermcalc",
		Short: "NTC thermistor ADC lookup table calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.SortFlags = false
	flags.IntVarP(&opts.circuit, "circuit", "c", int(def.Divider.Circuit), "circuit variant (1 or 2)")
	flags.Float64VarP(&opts.beta, "beta", "B", def.Thermistor.Beta, "thermistor Beta coefficient (K)")
	flags.Float64VarP(&opts.r25, "r25", "R", def.Thermistor.R25, "thermistor resistance at 25 °C (ohm)")
	flags.Float64VarP(&opts.resistor, "resistor", "r", def.Divider.Resistor, "divider resistor (ohm)")
	flags.Float64VarP(&opts.vcc, "vcc", "v", def.Divider.Vcc, "divider supply voltage (V)")
	flags.IntVarP(&opts.resolution, "resolution", "a", def.ADC.Resolution, "ADC resolution (steps)")
	flags.BoolVar(&opts.float32, "float32", def.ADC.Float32, "compute in single precision")
	flags.StringVar(&opts.format, "format", def.Output.Format, "output format")
	flags.IntVar(&opts.decimals, "decimals", def.Output.Decimals, "digits after the decimal point")
	flags.StringVar(&opts.configPath, "config", defaultConfigFile, "configuration file")
	flags.StringVar(&opts.envFile, "env-file", defaultEnvFile, "dotenv file")
	flags.BoolVar(&opts.verbose, "verbose", false, "log configuration details")

	// One help text for -h and for every error path.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		printHelp(cmd.OutOrStdout(), cmd.Name(), def)
	})
	rootCmd.SetUsageFunc(func(cmd *cobra.Command) error {
		printHelp(cmd.OutOrStderr(), cmd.Name(), def)
		return nil
	})

	return rootCmd
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	envVars, err := config.LoadEnvFile(opts.envFile)
	if err != nil {
		return err
	}
	// Process environment wins over the env file.
	if err := cfg.ApplyEnv(config.Chain(os.LookupEnv, config.MapLookup(envVars))); err != nil {
		return err
	}

	opts.apply(cmd.Flags(), cfg)

	// Unknown names are left for Validate to report with the other errors.
	if format, err := output.ParseFormat(cfg.Output.Format); err == nil {
		cfg.Output.Format = format
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if opts.verbose {
		log.Printf("circuit %d (%s), vcc %g V, resistor %g ohm, beta %g K, r25 %g ohm, %d steps, float32 %t",
			int(cfg.Divider.Circuit), cfg.Divider.Circuit, cfg.Divider.Vcc, cfg.Divider.Resistor,
			cfg.Thermistor.Beta, cfg.Thermistor.R25, cfg.ADC.Resolution, cfg.ADC.Float32)
	}

	rows := lookup.Build(cfg)

	if opts.verbose {
		if n := lookup.NonFinite(rows); n > 0 {
			log.Printf("%d of %d rows are not finite (divider open or shorted at the end of the range)", n, len(rows))
		}
	}

	out := cmd.OutOrStdout()
	outOpts := output.OptionsFrom(cfg)
	outOpts.Styled = isTerminal(out)
	return output.Write(out, rows, outOpts)
}

func (o *options) apply(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("circuit") {
		cfg.Divider.Circuit = thermistor.Circuit(o.circuit)
	}
	if flags.Changed("beta") {
		cfg.Thermistor.Beta = o.beta
	}
	if flags.Changed("r25") {
		cfg.Thermistor.R25 = o.r25
	}
	if flags.Changed("resistor") {
		cfg.Divider.Resistor = o.resistor
	}
	if flags.Changed("vcc") {
		cfg.Divider.Vcc = o.vcc
	}
	if flags.Changed("resolution") {
		cfg.ADC.Resolution = o.resolution
	}
	if flags.Changed("float32") {
		cfg.ADC.Float32 = o.float32
	}
	if flags.Changed("format") {
		cfg.Output.Format = o.format
	}
	if flags.Changed("decimals") {
		cfg.Output.Decimals = o.decimals
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
