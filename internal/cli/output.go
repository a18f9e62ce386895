// Package cli provides the command-line interface for the scanner.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Output handles formatted command output, honoring the global --json flag.
type Output struct {
	writer   io.Writer
	jsonMode bool
}

// NewOutput creates an Output bound to the command's stdout.
func NewOutput(cmd *cobra.Command) *Output {
	jsonMode, _ := cmd.Flags().GetBool("json")
	return &Output{
		writer:   cmd.OutOrStdout(),
		jsonMode: jsonMode,
	}
}

// IsJSON reports whether JSON output mode is enabled.
func (o *Output) IsJSON() bool {
	return o.jsonMode
}

// JSON writes data as indented JSON.
func (o *Output) JSON(data interface{}) error {
	enc := json.NewEncoder(o.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Printf writes formatted text.
func (o *Output) Printf(format string, args ...interface{}) {
	fmt.Fprintf(o.writer, format, args...)
}

// Println writes a line.
func (o *Output) Println(args ...interface{}) {
	fmt.Fprintln(o.writer, args...)
}

// Bold writes a bold line.
func (o *Output) Bold(format string, args ...interface{}) {
	color.New(color.Bold).Fprintf(o.writer, format+"\n", args...)
}

// Success writes a green line.
func (o *Output) Success(format string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(o.writer, format+"\n", args...)
}

// Warn writes a yellow line.
func (o *Output) Warn(format string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(o.writer, format+"\n", args...)
}

// Fail writes a red line.
func (o *Output) Fail(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(o.writer, format+"\n", args...)
}

// Dim writes a faint line.
func (o *Output) Dim(format string, args ...interface{}) {
	color.New(color.Faint).Fprintf(o.writer, format+"\n", args...)
}
