package checksum

import (
	"encoding/binary"
	"net"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv6"
)

// Cross-checks against independent checksum implementations: packets
// serialized by gopacket with computed checksums, and ICMPv6 messages
// marshalled by x/net/icmp.

func serialize(t *testing.T, ls ...gopacket.SerializableLayer) []byte {
	t.Helper()

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, ls...); err != nil {
		t.Fatalf("SerializeLayers() error = %v", err)
	}
	return buf.Bytes()
}

func TestIPv4TCPAgainstGopacket(t *testing.T) {
	ip := &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: layers.IPProtocolTCP,
		SrcIP:    net.IPv4(10, 1, 2, 3).To4(),
		DstIP:    net.IPv4(10, 4, 5, 6).To4(),
	}
	tcp := &layers.TCP{
		SrcPort: 49152,
		DstPort: 80,
		Seq:     0x12345678,
		Window:  65535,
		SYN:     true,
	}
	if err := tcp.SetNetworkLayerForChecksum(ip); err != nil {
		t.Fatalf("SetNetworkLayerForChecksum() error = %v", err)
	}

	pkt := serialize(t, ip, tcp, gopacket.Payload("cross-check payload"))

	wantIP := binary.BigEndian.Uint16(pkt[10:12])
	pkt[10], pkt[11] = 0, 0
	if got := IPChecksum(pkt, 0); got != wantIP {
		t.Errorf("IPChecksum() = 0x%04x, gopacket computed 0x%04x", got, wantIP)
	}

	transportLen := len(pkt) - 20
	wantTCP := binary.BigEndian.Uint16(pkt[36:38])
	pkt[36], pkt[37] = 0, 0
	got, err := TCPChecksum(pkt, 0, 20, transportLen)
	if err != nil {
		t.Fatalf("TCPChecksum() error = %v", err)
	}
	if got != wantTCP {
		t.Errorf("TCPChecksum() = 0x%04x, gopacket computed 0x%04x", got, wantTCP)
	}
}

func TestIPv6UDPAgainstGopacket(t *testing.T) {
	ip := &layers.IPv6{
		Version:    6,
		HopLimit:   64,
		NextHeader: layers.IPProtocolUDP,
		SrcIP:      net.ParseIP("2001:db8::10"),
		DstIP:      net.ParseIP("2001:db8::20"),
	}
	udp := &layers.UDP{
		SrcPort: 5353,
		DstPort: 5353,
	}
	if err := udp.SetNetworkLayerForChecksum(ip); err != nil {
		t.Fatalf("SetNetworkLayerForChecksum() error = %v", err)
	}

	pkt := serialize(t, ip, udp, gopacket.Payload("mdns"))

	want := binary.BigEndian.Uint16(pkt[46:48])
	pkt[46], pkt[47] = 0, 0
	got, err := UDPChecksum(pkt, 0, 40)
	if err != nil {
		t.Fatalf("UDPChecksum() error = %v", err)
	}
	if got != want {
		t.Errorf("UDPChecksum() = 0x%04x, gopacket computed 0x%04x", got, want)
	}
}

func TestICMPv4AgainstGopacket(t *testing.T) {
	ip := &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: layers.IPProtocolICMPv4,
		SrcIP:    net.IPv4(192, 0, 2, 1).To4(),
		DstIP:    net.IPv4(192, 0, 2, 2).To4(),
	}
	echo := &layers.ICMPv4{
		TypeCode: layers.CreateICMPv4TypeCode(layers.ICMPv4TypeEchoRequest, 0),
		Id:       0x4242,
		Seq:      7,
	}

	pkt := serialize(t, ip, echo, gopacket.Payload("ping"))

	transportLen := len(pkt) - 20
	want := binary.BigEndian.Uint16(pkt[22:24])
	pkt[22], pkt[23] = 0, 0
	if got := ICMPChecksum(pkt, 20, transportLen); got != want {
		t.Errorf("ICMPChecksum() = 0x%04x, gopacket computed 0x%04x", got, want)
	}
}

func TestICMPv6AgainstXNet(t *testing.T) {
	src := net.ParseIP("2001:db8::1")
	dst := net.ParseIP("2001:db8::2")

	msg := icmp.Message{
		Type: ipv6.ICMPTypeEchoRequest,
		Body: &icmp.Echo{ID: 0x1234, Seq: 1, Data: []byte("hi")},
	}
	wire, err := msg.Marshal(icmp.IPv6PseudoHeader(src, dst))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	// Assemble the full IPv6 packet around the marshalled message.
	pkt := make([]byte, 40+len(wire))
	pkt[0] = 0x60
	binary.BigEndian.PutUint16(pkt[4:6], uint16(len(wire)))
	pkt[6] = ProtocolICMPv6
	pkt[7] = 64
	copy(pkt[8:24], src.To16())
	copy(pkt[24:40], dst.To16())
	copy(pkt[40:], wire)

	want := binary.BigEndian.Uint16(pkt[42:44])
	pkt[42], pkt[43] = 0, 0
	got, err := ICMPv6Checksum(pkt, 0, 40, len(wire))
	if err != nil {
		t.Fatalf("ICMPv6Checksum() error = %v", err)
	}
	if got != want {
		t.Errorf("ICMPv6Checksum() = 0x%04x, x/net computed 0x%04x", got, want)
	}
}
