package report

import (
	"encoding/json"
	"time"

	"github.com/LineVall/linevall-frameworks-libs-net/internal/core"
)

// JSONFormatter formats run reports as JSON.
type JSONFormatter struct {
	config Config
	pretty bool
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(config Config) *JSONFormatter {
	return &JSONFormatter{
		config: config,
		pretty: true,
	}
}

// SetPretty enables or disables pretty-printing.
func (f *JSONFormatter) SetPretty(pretty bool) {
	f.pretty = pretty
}

// Format formats the run report as JSON.
func (f *JSONFormatter) Format(report *RunReport) ([]byte, error) {
	output := f.toJSONOutput(report)

	if f.pretty {
		return json.MarshalIndent(output, "", "  ")
	}
	return json.Marshal(output)
}

// JSONOutput is the JSON-serializable representation of a run report.
type JSONOutput struct {
	File    string       `json:"file"`
	Packets []JSONPacket `json:"packets"`
	Summary JSONSummary  `json:"summary"`
}

// JSONPacket represents one packet finding in JSON format.
type JSONPacket struct {
	Index     int          `json:"index"`
	Timestamp string       `json:"timestamp,omitempty"`
	Flow      string       `json:"flow,omitempty"`
	Results   []JSONResult `json:"results"`
	Fixed     bool         `json:"fixed,omitempty"`
}

// JSONResult represents one checksum verification in JSON format.
type JSONResult struct {
	Layer    string `json:"layer"`
	Status   string `json:"status"`
	Stored   string `json:"stored,omitempty"`
	Computed string `json:"computed,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// JSONSummary represents the run counters in JSON format.
type JSONSummary struct {
	Packets    uint64  `json:"packets"`
	Bytes      uint64  `json:"bytes"`
	Checked    uint64  `json:"checked"`
	Bad        uint64  `json:"bad"`
	Absent     uint64  `json:"absent"`
	Skipped    uint64  `json:"skipped"`
	Fixed      uint64  `json:"fixed"`
	Errors     uint64  `json:"errors"`
	DurationMs float64 `json:"duration_ms"`
}

func (f *JSONFormatter) toJSONOutput(report *RunReport) *JSONOutput {
	output := &JSONOutput{
		File:    report.File,
		Packets: make([]JSONPacket, len(report.Packets)),
		Summary: JSONSummary{
			Packets:    report.Summary.Packets,
			Bytes:      report.Summary.Bytes,
			Checked:    report.Summary.Checked,
			Bad:        report.Summary.Bad,
			Absent:     report.Summary.Absent,
			Skipped:    report.Summary.Skipped,
			Fixed:      report.Summary.Fixed,
			Errors:     report.Summary.Errors,
			DurationMs: float64(report.Summary.Duration) / float64(time.Millisecond),
		},
	}

	for i, pkt := range report.Packets {
		output.Packets[i] = f.toJSONPacket(&pkt)
	}

	return output
}

func (f *JSONFormatter) toJSONPacket(pkt *core.PacketReport) JSONPacket {
	jp := JSONPacket{
		Index:   pkt.Index,
		Flow:    pkt.Flow,
		Results: make([]JSONResult, len(pkt.Results)),
		Fixed:   pkt.Fixed,
	}

	if !pkt.Timestamp.IsZero() {
		jp.Timestamp = pkt.Timestamp.Format(time.RFC3339Nano)
	}

	for i, res := range pkt.Results {
		jp.Results[i] = toJSONResult(&res)
	}

	return jp
}

func toJSONResult(res *core.ChecksumResult) JSONResult {
	jr := JSONResult{
		Layer:  res.Layer,
		Status: res.Status.String(),
		Reason: res.Reason,
	}

	if res.Status == core.StatusOK || res.Status == core.StatusBad {
		jr.Stored = hexWord(res.Stored)
		jr.Computed = hexWord(res.Computed)
	}

	return jr
}

// ContentType returns the MIME type for JSON output.
func (f *JSONFormatter) ContentType() string {
	return "application/json"
}

// FileExtension returns the file extension for JSON output.
func (f *JSONFormatter) FileExtension() string {
	return "json"
}
