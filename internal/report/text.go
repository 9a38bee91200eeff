package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/LineVall/linevall-frameworks-libs-net/internal/core"
)

// TextFormatter formats run reports as compact human-readable text.
type TextFormatter struct {
	config Config
	colors *ColorScheme
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(config Config) *TextFormatter {
	var colors *ColorScheme
	if config.Colors {
		colors = DefaultColorScheme()
	}

	return &TextFormatter{
		config: config,
		colors: colors,
	}
}

// Format formats the run report as text output.
func (f *TextFormatter) Format(report *RunReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "scanned %s: %d packets, %d bytes in %s\n\n",
		report.File, report.Summary.Packets, report.Summary.Bytes,
		report.Summary.Duration.Round(time.Millisecond))

	for _, pkt := range report.Packets {
		f.formatPacket(&buf, &pkt)
	}
	if len(report.Packets) > 0 {
		buf.WriteString("\n")
	}

	f.formatSummary(&buf, report.Summary)

	return buf.Bytes(), nil
}

// FormatPacket formats a single packet finding and returns it as a
// string, for streaming output while the scan runs.
func (f *TextFormatter) FormatPacket(pkt *core.PacketReport) string {
	var buf bytes.Buffer
	f.formatPacket(&buf, pkt)
	return buf.String()
}

func (f *TextFormatter) formatPacket(buf *bytes.Buffer, pkt *core.PacketReport) {
	idx := fmt.Sprintf("#%-6d", pkt.Index)
	if f.colors != nil {
		idx = f.colors.Index.Sprint(idx)
	}
	buf.WriteString(idx)

	fmt.Fprintf(buf, " %-40s ", pkt.Flow)

	for i, res := range pkt.Results {
		if i > 0 {
			buf.WriteString("  ")
		}
		buf.WriteString(f.formatResult(&res))
	}

	if pkt.Fixed {
		fixed := "[fixed]"
		if f.colors != nil {
			fixed = f.colors.Fixed.Sprint(fixed)
		}
		buf.WriteString(" ")
		buf.WriteString(fixed)
	}

	buf.WriteString("\n")
}

func (f *TextFormatter) formatResult(res *core.ChecksumResult) string {
	switch res.Status {
	case core.StatusBad:
		s := fmt.Sprintf("%s bad (stored 0x%04x, computed 0x%04x)",
			res.Layer, res.Stored, res.Computed)
		if f.colors != nil {
			s = f.colors.Bad.Sprint(s)
		}
		return s
	case core.StatusAbsent:
		s := fmt.Sprintf("%s absent", res.Layer)
		if f.colors != nil {
			s = f.colors.Absent.Sprint(s)
		}
		return s
	case core.StatusSkipped:
		s := fmt.Sprintf("%s skipped (%s)", res.Layer, res.Reason)
		if f.colors != nil {
			s = f.colors.Skipped.Sprint(s)
		}
		return s
	default:
		s := fmt.Sprintf("%s ok", res.Layer)
		if f.colors != nil {
			s = f.colors.OK.Sprint(s)
		}
		return s
	}
}

func (f *TextFormatter) formatSummary(buf *bytes.Buffer, s core.RunSummary) {
	fmt.Fprintf(buf, "checked:  %d\n", s.Checked)

	bad := fmt.Sprintf("%d", s.Bad)
	if f.colors != nil && s.Bad > 0 {
		bad = f.colors.Bad.Sprint(bad)
	}
	fmt.Fprintf(buf, "bad:      %s\n", bad)
	fmt.Fprintf(buf, "absent:   %d\n", s.Absent)
	fmt.Fprintf(buf, "skipped:  %d\n", s.Skipped)
	if s.Fixed > 0 {
		fixed := fmt.Sprintf("%d", s.Fixed)
		if f.colors != nil {
			fixed = f.colors.Fixed.Sprint(fixed)
		}
		fmt.Fprintf(buf, "fixed:    %s\n", fixed)
	}
	if s.Errors > 0 {
		fmt.Fprintf(buf, "errors:   %d\n", s.Errors)
	}
}

// ContentType returns the MIME type for text output.
func (f *TextFormatter) ContentType() string {
	return "text/plain"
}

// FileExtension returns the file extension for text output.
func (f *TextFormatter) FileExtension() string {
	return "txt"
}

// ColorScheme defines colors for different output elements.
type ColorScheme struct {
	Index   *color.Color
	OK      *color.Color
	Bad     *color.Color
	Absent  *color.Color
	Skipped *color.Color
	Fixed   *color.Color
	Header  *color.Color
}

// DefaultColorScheme returns the default color scheme.
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Index:   color.New(color.FgCyan, color.Bold),
		OK:      color.New(color.FgGreen),
		Bad:     color.New(color.FgRed, color.Bold),
		Absent:  color.New(color.FgYellow),
		Skipped: color.New(color.FgMagenta),
		Fixed:   color.New(color.FgGreen, color.Bold),
		Header:  color.New(color.FgWhite, color.Bold),
	}
}
