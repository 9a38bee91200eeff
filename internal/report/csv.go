package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/LineVall/linevall-frameworks-libs-net/internal/core"
)

// CSVFormatter formats run reports as CSV, one row per checksum result.
type CSVFormatter struct {
	config  Config
	columns []string
}

var defaultCSVColumns = []string{
	"index", "timestamp", "flow", "layer", "status",
	"stored", "computed", "reason", "fixed",
}

// NewCSVFormatter creates a new CSV formatter.
func NewCSVFormatter(config Config) *CSVFormatter {
	return &CSVFormatter{
		config:  config,
		columns: defaultCSVColumns,
	}
}

// SetColumns allows customizing which columns to include.
func (f *CSVFormatter) SetColumns(columns []string) {
	f.columns = columns
}

// Format formats the run report as CSV.
func (f *CSVFormatter) Format(report *RunReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(f.columns); err != nil {
		return nil, err
	}

	for _, pkt := range report.Packets {
		for _, res := range pkt.Results {
			if err := writer.Write(f.formatRow(&pkt, &res)); err != nil {
				return nil, err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (f *CSVFormatter) formatRow(pkt *core.PacketReport, res *core.ChecksumResult) []string {
	row := make([]string, len(f.columns))

	for i, col := range f.columns {
		row[i] = f.getValue(pkt, res, col)
	}

	return row
}

func (f *CSVFormatter) getValue(pkt *core.PacketReport, res *core.ChecksumResult, column string) string {
	switch column {
	case "index":
		return strconv.Itoa(pkt.Index)

	case "timestamp":
		if pkt.Timestamp.IsZero() {
			return ""
		}
		return pkt.Timestamp.Format(time.RFC3339Nano)

	case "flow":
		return pkt.Flow

	case "layer":
		return res.Layer

	case "status":
		return res.Status.String()

	case "stored":
		if res.Status == core.StatusOK || res.Status == core.StatusBad {
			return hexWord(res.Stored)
		}
		return ""

	case "computed":
		if res.Status == core.StatusOK || res.Status == core.StatusBad {
			return hexWord(res.Computed)
		}
		return ""

	case "reason":
		return res.Reason

	case "fixed":
		if pkt.Fixed {
			return "true"
		}
		return "false"

	default:
		return ""
	}
}

func hexWord(v uint16) string {
	return fmt.Sprintf("0x%04x", v)
}

// ContentType returns the MIME type for CSV output.
func (f *CSVFormatter) ContentType() string {
	return "text/csv"
}

// FileExtension returns the file extension for CSV output.
func (f *CSVFormatter) FileExtension() string {
	return "csv"
}
