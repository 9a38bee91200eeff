package report

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Writer renders run reports to a destination. Color output is only
// enabled when the destination is an interactive terminal.
type Writer struct {
	formatter Formatter
	output    io.Writer
	isTTY     bool
}

// NewWriter creates a writer targeting stdout.
func NewWriter(format Format, config Config) *Writer {
	return NewWriterTo(format, config, os.Stdout)
}

// NewWriterTo creates a writer targeting out. When out is not a
// terminal, colors are stripped regardless of config.
func NewWriterTo(format Format, config Config, out io.Writer) *Writer {
	isTTY := false
	if f, ok := out.(*os.File); ok && f != nil {
		isTTY = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	if !isTTY {
		config.Colors = false
	}

	return &Writer{
		formatter: NewFormatter(format, config),
		output:    out,
		isTTY:     isTTY,
	}
}

// Write formats and writes the run report.
func (w *Writer) Write(report *RunReport) error {
	data, err := w.formatter.Format(report)
	if err != nil {
		return err
	}

	_, err = w.output.Write(data)
	return err
}

// IsTTY returns whether the output is a terminal.
func (w *Writer) IsTTY() bool {
	return w.isTTY
}
