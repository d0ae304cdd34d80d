package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// TextSink renders a Sink's diagnostics to a writer, one line per
// diagnostic, colorizing the severity tag when the writer is a real
// terminal. This is a reference pretty-printer for tests and demos, not a
// CLI feature; the shape of the rendered line follows §6/§7's structured
// record (file, line, column, severity, code, message).
type TextSink struct {
	W     io.Writer
	Color bool
}

// NewTextSink builds a TextSink writing to w, auto-detecting color support
// the way a terminal-aware builtin would: not a TTY means no color, and
// NO_COLOR is honored regardless of TTY status.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{W: w, Color: detectColor(w)}
}

func detectColor(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

// Render writes every diagnostic in s, in source order, to t.W.
func (t *TextSink) Render(s *Sink) {
	for _, d := range s.All() {
		tag := "error"
		color := ansiRed
		if d.Code == ErrInternal {
			tag = "internal_error"
			color = ansiYellow
		}
		if t.Color {
			fmt.Fprintf(t.W, "%s: %s%s: %s%s [%s]\n", d.Pos, color, tag, d.Message, ansiReset, d.Code)
		} else {
			fmt.Fprintf(t.W, "%s: %s: %s [%s]\n", d.Pos, tag, d.Message, d.Code)
		}
		for _, n := range d.Notes {
			fmt.Fprintf(t.W, "    note: %s\n", n)
		}
	}
}
