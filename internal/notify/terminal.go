package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// TerminalSink prints notifications to a writer, converting the Telegram
// HTML markup into plain colored text.
type TerminalSink struct {
	out io.Writer
}

// NewTerminalSink creates a TerminalSink writing to stdout.
func NewTerminalSink() *TerminalSink {
	return &TerminalSink{out: os.Stdout}
}

// NewTerminalSinkTo creates a TerminalSink writing to w.
func NewTerminalSinkTo(w io.Writer) *TerminalSink {
	return &TerminalSink{out: w}
}

// Send implements Sink. The recipient is ignored.
func (t *TerminalSink) Send(_ context.Context, _, text string) error {
	_, err := fmt.Fprintln(t.out, renderPlain(text))
	return err
}

// renderPlain strips HTML tags, bolding <b> spans with ANSI when the
// terminal supports it.
func renderPlain(text string) string {
	bold := color.New(color.Bold)

	var b strings.Builder
	rest := text
	for {
		start := strings.Index(rest, "<b>")
		if start < 0 {
			break
		}
		end := strings.Index(rest[start:], "</b>")
		if end < 0 {
			break
		}
		b.WriteString(rest[:start])
		b.WriteString(bold.Sprint(rest[start+3 : start+end]))
		rest = rest[start+end+4:]
	}
	b.WriteString(rest)

	// Inverse of EscapeHTML: the ampersand goes last so escaped entity
	// text is not unescaped twice.
	s := b.String()
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&amp;", "&")
	return s
}
