// Package core defines core types with zero external dependencies.
package core

import (
	"net/netip"
	"time"
)

// RawPacket is a single packet read from a capture file.
type RawPacket struct {
	Data       []byte    // Raw frame data
	Timestamp  time.Time // Capture timestamp from the file
	CaptureLen uint32    // Captured length
	OrigLen    uint32    // Original frame length on the wire
	Index      int       // Zero-based position in the capture file
}

// Truncated reports whether the capture clipped the original frame.
func (p RawPacket) Truncated() bool {
	return p.CaptureLen < p.OrigLen
}

// Layout holds the offsets and fields located inside a raw frame that the
// checksum functions need as inputs.
type Layout struct {
	IPOffset        int    // Byte offset of the IP header in the frame
	Version         uint8  // 4 or 6
	Protocol        uint8  // Transport protocol / next header
	TransportOffset int    // Byte offset of the transport segment
	TransportLen    int    // Transport segment length, header + payload
	Fragment        bool   // Non-first or MF-flagged IPv4 fragment
	VLANs           []uint16

	SrcIP   netip.Addr
	DstIP   netip.Addr
	SrcPort uint16 // Zero for ICMP
	DstPort uint16
}
