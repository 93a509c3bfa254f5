// Package output renders lookup tables as text, TSV, CSV or YAML.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/itohio/thermcalc/pkg/config"
	"github.com/itohio/thermcalc/pkg/lookup"
)

// Headers are the column titles, in column order.
var Headers = []string{
	"ADC value",
	"Thermistor voltage (V)",
	"Thermistor resistance (ohm)",
	"Thermistor temperature (Celsius)",
}

const columnSeparator = " | "

var headerStyle = lipgloss.NewStyle().Bold(true)

// Options control rendering.
type Options struct {
	Format   string // One of the config.Format* values
	Decimals int    // Digits after the decimal point, -1 for the shortest exact form
	Styled   bool   // Highlight the table header (terminals only)
}

// OptionsFrom builds Options from the output section of a configuration.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		Format:   cfg.Output.Format,
		Decimals: cfg.Output.Decimals,
	}
}

// ParseFormat normalises a format name (case and surrounding spaces) and
// rejects names Write does not know.
func ParseFormat(name string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(name))
	switch format {
	case config.FormatTable, config.FormatTSV, config.FormatCSV, config.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: unknown output format %q", config.ErrInvalid, name)
	}
}

// Write renders rows to w in the requested format.
func Write(w io.Writer, rows []lookup.Sample, opts Options) error {
	format := config.FormatTable
	if opts.Format != "" {
		var err error
		if format, err = ParseFormat(opts.Format); err != nil {
			return err
		}
	}

	switch format {
	case config.FormatTable:
		return writeTable(w, rows, opts)
	case config.FormatTSV:
		return writeTSV(w, rows, opts)
	case config.FormatCSV:
		return writeCSV(w, rows, opts)
	default:
		return writeYAML(w, rows)
	}
}

// FormatValue prints v with the given number of decimals; Inf and NaN are
// printed as "+Inf", "-Inf" and "NaN".
func FormatValue(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func cells(row lookup.Sample, decimals int) []string {
	return []string{
		strconv.Itoa(row.Code),
		FormatValue(row.Voltage, decimals),
		FormatValue(row.Resistance, decimals),
		FormatValue(row.Temperature, decimals),
	}
}

func writeTable(w io.Writer, rows []lookup.Sample, opts Options) error {
	body := make([][]string, len(rows))
	for i, row := range rows {
		body[i] = cells(row, opts.Decimals)
	}

	widths := make([]int, len(Headers))
	for i, header := range Headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range body {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	header := formatRow(Headers, widths, false)
	if opts.Styled {
		header = headerStyle.Render(header)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	for _, row := range body {
		if _, err := fmt.Fprintln(w, formatRow(row, widths, true)); err != nil {
			return err
		}
	}
	return nil
}

func formatRow(row []string, widths []int, rightAlign bool) string {
	var b strings.Builder
	for i, cell := range row {
		if i > 0 {
			b.WriteString(columnSeparator)
		}
		if i == len(row)-1 && !rightAlign {
			// no trailing padding on the header
			b.WriteString(cell)
			continue
		}
		b.WriteString(padCell(cell, widths[i], rightAlign))
	}
	return b.String()
}

func padCell(value string, width int, rightAlign bool) string {
	padding := width - runewidth.StringWidth(value)
	if padding <= 0 {
		return value
	}
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

// writeTSV keeps the historical tab layout of the calculator output.
func writeTSV(w io.Writer, rows []lookup.Sample, opts Options) error {
	if _, err := fmt.Fprintln(w, strings.Join(Headers, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		c := cells(row, opts.Decimals)
		if _, err := fmt.Fprintf(w, "%s\t\t%s\t\t%s\t\t\t%s\n", c[0], c[1], c[2], c[3]); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(w io.Writer, rows []lookup.Sample, opts Options) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(cells(row, opts.Decimals)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeYAML(w io.Writer, rows []lookup.Sample) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	return enc.Close()
}
