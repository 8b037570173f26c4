package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Printer writes records to the configured output destination.
type Printer struct {
	output     io.Writer
	useColors  bool
	jsonOutput bool
}

// NewPrinter creates a Printer writing to stdout with colors enabled.
func NewPrinter() *Printer {
	return &Printer{
		output:    os.Stdout,
		useColors: true,
	}
}

// WithOutput sets the output destination.
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored output.
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	return p
}

// WithJSON enables JSON output mode.
func (p *Printer) WithJSON(enabled bool) *Printer {
	p.jsonOutput = enabled
	return p
}

// PrintRecords writes all records in the configured format.
func (p *Printer) PrintRecords(records []Record) error {
	if p.jsonOutput {
		enc := json.NewEncoder(p.output)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	for _, rec := range records {
		p.printRecord(rec)
	}

	return nil
}

func (p *Printer) printRecord(rec Record) {
	status := "OK"
	paint := color.GreenString
	if !rec.Complete() {
		status = "MISSING"
		paint = color.RedString
	}

	if p.useColors {
		fmt.Fprintf(p.output, "%s %s\n", paint("%-7s", status), color.CyanString(rec.Path))
	} else {
		fmt.Fprintf(p.output, "%-7s %s\n", status, rec.Path)
	}

	p.printField("license", rec.Licenses)
	p.printField("copyright", rec.Copyrights)
	p.printField("contributor", rec.Contributors)

	for _, e := range rec.Errors {
		if p.useColors {
			fmt.Fprintf(p.output, "        %s %s\n", color.YellowString("error:"), e)
		} else {
			fmt.Fprintf(p.output, "        error: %s\n", e)
		}
	}
}

func (p *Printer) printField(label string, values []string) {
	for _, v := range values {
		fmt.Fprintf(p.output, "        %s: %s\n", label, strings.TrimSpace(v))
	}
}
