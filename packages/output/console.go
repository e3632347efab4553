package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) FormatView(v *View) {
	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	if f.verbose && v.Method != "" {
		fmt.Fprintf(f.writer, "%s %s %s\n", bold(v.Method), v.URL, cyan(fmt.Sprintf("(%dms)", v.DurationMs)))
	}

	if v.Failed() {
		fmt.Fprintf(f.writer, "%s\n", red(v.ErrorMessage()))
		return
	}

	status := fmt.Sprintf("%d", v.StatusCode)
	switch {
	case v.StatusCode >= 200 && v.StatusCode < 300:
		status = green(status)
	case v.StatusCode >= 400:
		status = red(status)
	default:
		status = yellow(status)
	}
	fmt.Fprintf(f.writer, "Status: %s\n", status)

	if v.IsJSON {
		fmt.Fprint(f.writer, ensureNewline(v.Pretty))
		return
	}

	if f.verbose {
		fmt.Fprintf(f.writer, "%s\n", bold("Raw response (text)"))
	}
	fmt.Fprint(f.writer, ensureNewline(v.Text))
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", bold("userportal"), version)
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
