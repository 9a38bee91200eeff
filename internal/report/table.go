package report

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"

	"github.com/LineVall/linevall-frameworks-libs-net/internal/core"
)

// TableFormatter formats run reports as a detailed table.
type TableFormatter struct {
	config Config
	colors *ColorScheme
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(config Config) *TableFormatter {
	var colors *ColorScheme
	if config.Colors {
		colors = DefaultColorScheme()
	}

	return &TableFormatter{
		config: config,
		colors: colors,
	}
}

// Format formats the run report as a table.
func (f *TableFormatter) Format(report *RunReport) ([]byte, error) {
	var buf bytes.Buffer

	f.writeHeader(&buf, report)

	if len(report.Packets) > 0 {
		table := tablewriter.NewWriter(&buf)
		f.configureTable(table)
		table.SetHeader([]string{"Packet", "Flow", "Layer", "Status", "Stored", "Computed", "Note"})

		for _, pkt := range report.Packets {
			for _, row := range f.formatPacketRows(&pkt) {
				table.Append(row)
			}
		}

		table.Render()
	}

	f.writeSummary(&buf, report.Summary)

	return buf.Bytes(), nil
}

func (f *TableFormatter) writeHeader(buf *bytes.Buffer, report *RunReport) {
	header := fmt.Sprintf("File: %s\n", report.File)
	header += fmt.Sprintf("Packets: %d | Bytes: %d | Duration: %s\n\n",
		report.Summary.Packets, report.Summary.Bytes, report.Summary.Duration)

	if f.colors != nil {
		header = f.colors.Header.Sprint(header)
	}
	buf.WriteString(header)
}

func (f *TableFormatter) configureTable(table *tablewriter.Table) {
	table.SetBorder(true)
	table.SetRowLine(false)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(true)
	table.SetTablePadding(" ")
}

// formatPacketRows renders one table row per checksum result.
func (f *TableFormatter) formatPacketRows(pkt *core.PacketReport) [][]string {
	rows := make([][]string, 0, len(pkt.Results))

	for i, res := range pkt.Results {
		index, flow := "", ""
		if i == 0 {
			index = fmt.Sprintf("%d", pkt.Index)
			flow = pkt.Flow
		}

		status := res.Status.String()
		if pkt.Fixed && res.Status == core.StatusBad {
			status = "fixed"
		}
		if f.colors != nil {
			status = f.colorizeStatus(status)
		}

		stored, computed := "-", "-"
		if res.Status == core.StatusOK || res.Status == core.StatusBad {
			stored = fmt.Sprintf("0x%04x", res.Stored)
			computed = fmt.Sprintf("0x%04x", res.Computed)
		}

		rows = append(rows, []string{index, flow, res.Layer, status, stored, computed, res.Reason})
	}

	return rows
}

func (f *TableFormatter) colorizeStatus(status string) string {
	switch status {
	case "ok":
		return f.colors.OK.Sprint(status)
	case "bad":
		return f.colors.Bad.Sprint(status)
	case "absent":
		return f.colors.Absent.Sprint(status)
	case "skipped":
		return f.colors.Skipped.Sprint(status)
	case "fixed":
		return f.colors.Fixed.Sprint(status)
	default:
		return status
	}
}

func (f *TableFormatter) writeSummary(buf *bytes.Buffer, s core.RunSummary) {
	buf.WriteString("\nSummary:\n")
	fmt.Fprintf(buf, "  Checked:   %d\n", s.Checked)
	fmt.Fprintf(buf, "  Bad:       %d\n", s.Bad)
	fmt.Fprintf(buf, "  Absent:    %d\n", s.Absent)
	fmt.Fprintf(buf, "  Skipped:   %d\n", s.Skipped)
	fmt.Fprintf(buf, "  Fixed:     %d\n", s.Fixed)
	fmt.Fprintf(buf, "  Errors:    %d\n", s.Errors)
}

// ContentType returns the MIME type for table output.
func (f *TableFormatter) ContentType() string {
	return "text/plain"
}

// FileExtension returns the file extension for table output.
func (f *TableFormatter) FileExtension() string {
	return "txt"
}
