package inspect

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/google/gopacket/layers"

	"github.com/LineVall/linevall-frameworks-libs-net/internal/core"
)

// ipv4UDPPacket is a 30-byte IPv4 packet carrying a UDP datagram with
// correct header and transport checksums, payload "hi".
var ipv4UDPPacket = []byte{
	// IPv4 header
	0x45, 0x00, // Version 4, IHL 5, TOS 0
	0x00, 0x1e, // Total length 30
	0x00, 0x02, // Identification
	0x00, 0x00, // Flags, fragment offset
	0x40, 0x11, // TTL 64, protocol UDP
	0x66, 0xcb, // Header checksum
	0x0a, 0x00, 0x00, 0x01, // Source 10.0.0.1
	0x0a, 0x00, 0x00, 0x02, // Destination 10.0.0.2
	// UDP header
	0x13, 0xc4, // Source port 5060
	0x13, 0xc4, // Destination port 5060
	0x00, 0x0a, // Length 10
	0x5b, 0xe6, // Checksum
	0x68, 0x69, // Payload "hi"
}

// ipv6ICMPv6Packet is a 50-byte IPv6 packet carrying an ICMPv6 echo
// request with a correct transport checksum.
var ipv6ICMPv6Packet = []byte{
	// IPv6 header
	0x60, 0x00, 0x00, 0x00, // Version 6, traffic class, flow label
	0x00, 0x0a, // Payload length 10
	0x3a,       // Next header ICMPv6
	0x40,       // Hop limit 64
	0x20, 0x01, 0x0d, 0xb8, 0x00, 0x00, 0x00, 0x00, // Source 2001:db8::1
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
	0x20, 0x01, 0x0d, 0xb8, 0x00, 0x00, 0x00, 0x00, // Destination 2001:db8::2
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02,
	// ICMPv6 echo request
	0x80, 0x00, // Type 128, code 0
	0xa9, 0xa7, // Checksum
	0x12, 0x34, // Identifier
	0x00, 0x01, // Sequence
	0x68, 0x69, // Payload "hi"
}

// ethernetHeader is an untagged Ethernet header carrying IPv4.
var ethernetHeader = []byte{
	0x00, 0x11, 0x22, 0x33, 0x44, 0x55, // Destination MAC
	0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, // Source MAC
	0x08, 0x00, // EtherType IPv4
}

func ethFrame(payload []byte) []byte {
	return append(clone(ethernetHeader), payload...)
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func TestLocateEthernetIPv4(t *testing.T) {
	frame := ethFrame(ipv4UDPPacket)

	layout, err := Locate(frame, layers.LinkTypeEthernet)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}

	if layout.IPOffset != 14 {
		t.Errorf("IPOffset = %d, expected 14", layout.IPOffset)
	}
	if layout.Version != 4 {
		t.Errorf("Version = %d, expected 4", layout.Version)
	}
	if layout.Protocol != 17 {
		t.Errorf("Protocol = %d, expected 17", layout.Protocol)
	}
	if layout.TransportOffset != 34 {
		t.Errorf("TransportOffset = %d, expected 34", layout.TransportOffset)
	}
	if layout.TransportLen != 10 {
		t.Errorf("TransportLen = %d, expected 10", layout.TransportLen)
	}
	if layout.Fragment {
		t.Error("Fragment = true for an unfragmented packet")
	}
	if layout.SrcIP != netip.MustParseAddr("10.0.0.1") {
		t.Errorf("SrcIP = %v, expected 10.0.0.1", layout.SrcIP)
	}
	if layout.SrcPort != 5060 || layout.DstPort != 5060 {
		t.Errorf("ports = %d/%d, expected 5060/5060", layout.SrcPort, layout.DstPort)
	}
}

func TestLocateVLANTagged(t *testing.T) {
	// Ethernet + single VLAN tag (ID 100)
	frame := clone(ethernetHeader)
	frame[12], frame[13] = 0x81, 0x00 // EtherType VLAN
	frame = append(frame,
		0x00, 0x64, // TCI: VLAN ID 100
		0x08, 0x00, // EtherType IPv4
	)
	frame = append(frame, ipv4UDPPacket...)

	layout, err := Locate(frame, layers.LinkTypeEthernet)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if layout.IPOffset != 18 {
		t.Errorf("IPOffset = %d, expected 18", layout.IPOffset)
	}
	if len(layout.VLANs) != 1 || layout.VLANs[0] != 100 {
		t.Errorf("VLANs = %v, expected [100]", layout.VLANs)
	}
}

func TestLocateQinQ(t *testing.T) {
	frame := clone(ethernetHeader)
	frame[12], frame[13] = 0x88, 0xa8 // EtherType QinQ outer
	frame = append(frame,
		0x00, 0xc8, // Outer TCI: VLAN ID 200
		0x81, 0x00, // Inner VLAN
		0x00, 0x64, // Inner TCI: VLAN ID 100
		0x08, 0x00, // EtherType IPv4
	)
	frame = append(frame, ipv4UDPPacket...)

	layout, err := Locate(frame, layers.LinkTypeEthernet)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if layout.IPOffset != 22 {
		t.Errorf("IPOffset = %d, expected 22", layout.IPOffset)
	}
	if len(layout.VLANs) != 2 || layout.VLANs[0] != 200 || layout.VLANs[1] != 100 {
		t.Errorf("VLANs = %v, expected [200 100]", layout.VLANs)
	}
}

func TestLocateRawIPv6(t *testing.T) {
	layout, err := Locate(ipv6ICMPv6Packet, layers.LinkTypeRaw)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}

	if layout.IPOffset != 0 {
		t.Errorf("IPOffset = %d, expected 0", layout.IPOffset)
	}
	if layout.Version != 6 {
		t.Errorf("Version = %d, expected 6", layout.Version)
	}
	if layout.Protocol != 58 {
		t.Errorf("Protocol = %d, expected 58", layout.Protocol)
	}
	if layout.TransportOffset != 40 {
		t.Errorf("TransportOffset = %d, expected 40", layout.TransportOffset)
	}
	if layout.TransportLen != 10 {
		t.Errorf("TransportLen = %d, expected 10", layout.TransportLen)
	}
	if layout.SrcIP != netip.MustParseAddr("2001:db8::1") {
		t.Errorf("SrcIP = %v, expected 2001:db8::1", layout.SrcIP)
	}
}

func TestLocateFragment(t *testing.T) {
	pkt := clone(ipv4UDPPacket)
	pkt[6] = 0x20 // MF flag
	// Refresh the header checksum so only the fragment bit differs.
	pkt[10], pkt[11] = 0x46, 0xcb

	layout, err := Locate(pkt, layers.LinkTypeRaw)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if !layout.Fragment {
		t.Error("Fragment = false with MF flag set")
	}
}

func TestLocateNonIPFrame(t *testing.T) {
	// ARP frame
	frame := clone(ethernetHeader)
	frame[12], frame[13] = 0x08, 0x06
	frame = append(frame, make([]byte, 28)...)

	if _, err := Locate(frame, layers.LinkTypeEthernet); !errors.Is(err, core.ErrNotIP) {
		t.Errorf("err = %v, expected ErrNotIP", err)
	}
}

func TestLocateUnsupportedLinkType(t *testing.T) {
	if _, err := Locate(ipv4UDPPacket, layers.LinkTypePPP); !errors.Is(err, core.ErrUnsupportedLinkType) {
		t.Errorf("err = %v, expected ErrUnsupportedLinkType", err)
	}
}

func TestLocateTruncated(t *testing.T) {
	if _, err := Locate(ipv4UDPPacket[:10], layers.LinkTypeRaw); !errors.Is(err, core.ErrPacketTooShort) {
		t.Errorf("short IPv4: err = %v, expected ErrPacketTooShort", err)
	}
	if _, err := Locate(ethernetHeader[:8], layers.LinkTypeEthernet); !errors.Is(err, core.ErrPacketTooShort) {
		t.Errorf("short Ethernet: err = %v, expected ErrPacketTooShort", err)
	}
	if _, err := Locate(ipv6ICMPv6Packet[:30], layers.LinkTypeRaw); !errors.Is(err, core.ErrPacketTooShort) {
		t.Errorf("short IPv6: err = %v, expected ErrPacketTooShort", err)
	}
}

func TestFlow(t *testing.T) {
	layout, err := Locate(ipv4UDPPacket, layers.LinkTypeRaw)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if got := Flow(layout); got != "10.0.0.1:5060 > 10.0.0.2:5060" {
		t.Errorf("Flow = %q", got)
	}

	layout6, err := Locate(ipv6ICMPv6Packet, layers.LinkTypeRaw)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if got := Flow(layout6); got != "2001:db8::1 > 2001:db8::2" {
		t.Errorf("Flow = %q", got)
	}
}
