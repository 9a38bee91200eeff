package core

import (
	"errors"
	"testing"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusOK, "ok"},
		{StatusBad, "bad"},
		{StatusAbsent, "absent"},
		{StatusSkipped, "skipped"},
		{Status(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, expected %q", tt.status, got, tt.want)
		}
	}
}

func TestPacketReportHasBad(t *testing.T) {
	report := PacketReport{
		Results: []ChecksumResult{
			{Layer: LayerIPv4, Status: StatusOK},
			{Layer: LayerUDP, Status: StatusAbsent},
		},
	}
	if report.HasBad() {
		t.Error("HasBad = true without any bad result")
	}

	report.Results = append(report.Results, ChecksumResult{Layer: LayerTCP, Status: StatusBad})
	if !report.HasBad() {
		t.Error("HasBad = false with a bad result")
	}
}

func TestRawPacketTruncated(t *testing.T) {
	if (RawPacket{CaptureLen: 64, OrigLen: 64}).Truncated() {
		t.Error("full capture reported as truncated")
	}
	if !(RawPacket{CaptureLen: 64, OrigLen: 1500}).Truncated() {
		t.Error("clipped capture not reported as truncated")
	}
}

func TestSentinelErrors(t *testing.T) {
	wrapped := errors.Join(ErrPacketTooShort)
	if !errors.Is(wrapped, ErrPacketTooShort) {
		t.Error("errors.Is failed for wrapped ErrPacketTooShort")
	}
	if errors.Is(ErrPacketTooShort, ErrNotIP) {
		t.Error("distinct sentinels compare equal")
	}
}
