// Package core defines core data structures.
package core

import "time"

// Checksum layer names used in results, metrics and reports.
const (
	LayerIPv4   = "ipv4"
	LayerTCP    = "tcp"
	LayerUDP    = "udp"
	LayerICMPv4 = "icmpv4"
	LayerICMPv6 = "icmpv6"
)

// Status classifies a single checksum field after verification.
type Status int

const (
	// StatusOK means the stored checksum matches the recomputed value.
	StatusOK Status = iota
	// StatusBad means the stored checksum does not match.
	StatusBad
	// StatusAbsent means the field legitimately carries no checksum
	// (zero UDP checksum over IPv4).
	StatusAbsent
	// StatusSkipped means the checksum could not be verified (fragment,
	// unsupported transport, truncated span).
	StatusSkipped
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBad:
		return "bad"
	case StatusAbsent:
		return "absent"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// ChecksumResult is the verification outcome of one checksum field.
type ChecksumResult struct {
	Layer    string // LayerIPv4 / LayerTCP / ...
	Status   Status
	Stored   uint16 // Value found in the packet
	Computed uint16 // Freshly computed value (zero when skipped)
	Reason   string // Why verification was skipped, empty otherwise
}

// PacketReport collects the checksum results of one packet.
type PacketReport struct {
	Index     int       // Packet position in the capture file
	Timestamp time.Time
	Flow      string // "src:port > dst:port" rendering
	Results   []ChecksumResult
	Fixed     bool // Whether fix mode rewrote any field
}

// HasBad reports whether any checksum in the packet failed verification.
func (r PacketReport) HasBad() bool {
	for _, res := range r.Results {
		if res.Status == StatusBad {
			return true
		}
	}
	return false
}

// RunSummary aggregates counters over one scan run.
type RunSummary struct {
	Packets uint64 // Packets read from the capture
	Bytes   uint64 // Capture bytes scanned
	Checked uint64 // Checksum fields verified
	Bad     uint64 // Fields that failed verification
	Absent  uint64 // UDP-over-IPv4 fields with no checksum
	Skipped uint64 // Fields that could not be verified
	Fixed   uint64 // Packets rewritten in fix mode
	Errors  uint64 // Packets that could not be processed at all

	Duration time.Duration
}
