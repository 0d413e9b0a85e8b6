package diagnostic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/walteh/lolmark/pkg/position"
	"gitlab.com/tozd/go/errors"
)

// Diagnostics represents diagnostic information that can be formatted in different ways
type Diagnostics struct {
	File     string       `json:"file"`
	Errors   []Diagnostic `json:"errors"`
	Warnings []Diagnostic `json:"warnings"`
	Hints    []Diagnostic `json:"hints"`
}

// Diagnostic represents a single diagnostic message. Line is 1-based and
// Column is 0-based, the way the scanner counts them.
type Diagnostic struct {
	Message  string             `json:"message"`
	Kind     Kind               `json:"kind,omitempty"`
	Line     int                `json:"line"`
	Column   int                `json:"column"`
	EndLine  int                `json:"end_line"`
	EndCol   int                `json:"end_col"`
	Severity DiagnosticSeverity `json:"severity"`
}

// DiagnosticSeverity represents the severity level of a diagnostic
type DiagnosticSeverity string

const (
	SeverityError       DiagnosticSeverity = "error"
	SeverityWarning     DiagnosticSeverity = "warning"
	SeverityInformation DiagnosticSeverity = "info"
	SeverityHint        DiagnosticSeverity = "hint"
)

func NewDiagnostics(file string) *Diagnostics {
	return &Diagnostics{
		File:     file,
		Errors:   make([]Diagnostic, 0),
		Warnings: make([]Diagnostic, 0),
		Hints:    make([]Diagnostic, 0),
	}
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// At builds a diagnostic covering pos.
func At(pos position.RawPosition, severity DiagnosticSeverity, message string) Diagnostic {
	rng := pos.GetRange()
	return Diagnostic{
		Message:  message,
		Line:     rng.Start.Line,
		Column:   rng.Start.Character,
		EndLine:  rng.End.Line,
		EndCol:   rng.End.Character,
		Severity: severity,
	}
}

// AddError records err. Compile errors keep their position; anything else
// is pinned to the start of the file.
func (d *Diagnostics) AddError(err error) {
	if de, ok := AsError(err); ok {
		diag := At(de.Position, SeverityError, de.Error())
		diag.Kind = de.Kind
		d.Errors = append(d.Errors, diag)
		return
	}
	d.Errors = append(d.Errors, Diagnostic{
		Message:  err.Error(),
		Line:     1,
		EndLine:  1,
		Severity: SeverityError,
	})
}

func (d *Diagnostics) AddWarning(pos position.RawPosition, message string) {
	d.Warnings = append(d.Warnings, At(pos, SeverityWarning, message))
}

func (d *Diagnostics) AddHint(pos position.RawPosition, message string) {
	d.Hints = append(d.Hints, At(pos, SeverityHint, message))
}

// Formatter formats diagnostics into different output formats
type Formatter interface {
	// Format formats diagnostics into a specific output format
	Format(diagnostics *Diagnostics) ([]byte, error)
}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string, colorize bool) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", "text":
		return &TextFormatter{Color: colorize}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "vscode":
		return &VSCodeFormatter{}, nil
	default:
		return nil, errors.Errorf("unknown diagnostics format %q", name)
	}
}

// TextFormatter prints one "file:line:col: severity: message" line per diagnostic.
type TextFormatter struct {
	Color bool
}

func (f *TextFormatter) Format(diagnostics *Diagnostics) ([]byte, error) {
	if diagnostics == nil {
		return nil, errors.Errorf("diagnostics is nil")
	}

	var buf bytes.Buffer
	write := func(diags []Diagnostic, attr color.Attribute) {
		for _, d := range diags {
			sev := string(d.Severity)
			loc := fmt.Sprintf("%s:%d:%d", diagnostics.File, d.Line, d.Column)
			if f.Color {
				sev = color.New(attr, color.Bold).Sprint(sev)
				loc = color.New(color.Bold).Sprint(loc)
			}
			fmt.Fprintf(&buf, "%s: %s: %s\n", loc, sev, d.Message)
		}
	}

	write(diagnostics.Errors, color.FgRed)
	write(diagnostics.Warnings, color.FgYellow)
	write(diagnostics.Hints, color.FgCyan)

	return buf.Bytes(), nil
}

// JSONFormatter emits the diagnostics structure as-is.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(diagnostics *Diagnostics) ([]byte, error) {
	if diagnostics == nil {
		return nil, errors.Errorf("diagnostics is nil")
	}
	return json.Marshal(diagnostics)
}

// VSCodeFormatter formats diagnostics into VSCode-compatible format
type VSCodeFormatter struct{}

type vscodePosition struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type vscodeRange struct {
	Start vscodePosition `json:"start"`
	End   vscodePosition `json:"end"`
}

type vscodeDiagnostic struct {
	Severity int         `json:"severity"`
	Message  string      `json:"message"`
	Source   string      `json:"source"`
	Range    vscodeRange `json:"range"`
}

// Format implements Formatter
func (f *VSCodeFormatter) Format(diagnostics *Diagnostics) ([]byte, error) {
	if diagnostics == nil {
		return nil, errors.Errorf("diagnostics is nil")
	}

	result := make([]vscodeDiagnostic, 0, len(diagnostics.Errors)+len(diagnostics.Warnings)+len(diagnostics.Hints))

	convert := func(diags []Diagnostic, severity int) {
		for _, d := range diags {
			result = append(result, vscodeDiagnostic{
				Severity: severity,
				Message:  d.Message,
				Source:   "lolmark",
				Range: vscodeRange{
					// VSCode lines are 0-based, columns already are
					Start: vscodePosition{Line: max(d.Line-1, 0), Character: d.Column},
					End:   vscodePosition{Line: max(d.EndLine-1, 0), Character: d.EndCol},
				},
			})
		}
	}

	// Error = 1, Warning = 2, Information = 3, Hint = 4
	convert(diagnostics.Errors, 1)
	convert(diagnostics.Warnings, 2)
	convert(diagnostics.Hints, 4)

	return json.Marshal(result)
}
