// Package report renders scan results for terminal and file output.
package report

import (
	"fmt"

	"github.com/LineVall/linevall-frameworks-libs-net/internal/core"
)

// Format represents the output format type.
type Format int

const (
	// FormatText is the compact human-readable output
	FormatText Format = iota
	// FormatTable is the detailed table output
	FormatTable
	// FormatJSON is JSON output
	FormatJSON
	// FormatCSV is CSV output
	FormatCSV
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatTable:
		return "table"
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// ParseFormat converts a format name into a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "text", "":
		return FormatText, nil
	case "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return FormatText, fmt.Errorf("unknown output format %q", name)
	}
}

// RunReport is the full result of one scan run: the aggregate counters
// plus the per-packet findings worth showing (bad, absent or skipped
// checksums, and fixed packets).
type RunReport struct {
	File    string
	Summary core.RunSummary
	Packets []core.PacketReport
}

// Formatter defines the interface for report formatters.
type Formatter interface {
	// Format converts a RunReport to formatted output bytes.
	Format(report *RunReport) ([]byte, error)

	// ContentType returns the MIME type for the output.
	ContentType() string

	// FileExtension returns the typical file extension for the output.
	FileExtension() string
}

// Config holds configuration for formatters.
type Config struct {
	// Colors enables ANSI color output
	Colors bool

	// Verbose includes per-packet detail for non-failing findings
	Verbose bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Colors: true,
	}
}

// NewFormatter creates a formatter based on the specified format.
func NewFormatter(format Format, config Config) Formatter {
	switch format {
	case FormatText:
		return NewTextFormatter(config)
	case FormatTable:
		return NewTableFormatter(config)
	case FormatJSON:
		return NewJSONFormatter(config)
	case FormatCSV:
		return NewCSVFormatter(config)
	default:
		return NewTextFormatter(config)
	}
}
