package rewrite

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LineVall/linevall-frameworks-libs-net/internal/core"
	"github.com/LineVall/linevall-frameworks-libs-net/pkg/checksum"
	"github.com/LineVall/linevall-frameworks-libs-net/pkg/header"
)

// ipv4UDPPacket is a 30-byte IPv4 packet carrying a UDP datagram with
// correct header and transport checksums, payload "hi".
var ipv4UDPPacket = []byte{
	0x45, 0x00, 0x00, 0x1e, 0x00, 0x02, 0x00, 0x00,
	0x40, 0x11, 0x66, 0xcb,
	0x0a, 0x00, 0x00, 0x01, // Source 10.0.0.1
	0x0a, 0x00, 0x00, 0x02, // Destination 10.0.0.2
	0x13, 0xc4, 0x13, 0xc4, // Ports 5060 > 5060
	0x00, 0x0a, 0x5b, 0xe6, // Length 10, checksum
	0x68, 0x69, // Payload "hi"
}

// ipv6ICMPv6Packet is a 50-byte IPv6 packet carrying an ICMPv6 echo
// request with a correct transport checksum.
var ipv6ICMPv6Packet = []byte{
	0x60, 0x00, 0x00, 0x00, 0x00, 0x0a, 0x3a, 0x40,
	0x20, 0x01, 0x0d, 0xb8, 0x00, 0x00, 0x00, 0x00, // Source 2001:db8::1
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
	0x20, 0x01, 0x0d, 0xb8, 0x00, 0x00, 0x00, 0x00, // Destination 2001:db8::2
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02,
	0x80, 0x00, 0xa9, 0xa7, 0x12, 0x34, 0x00, 0x01,
	0x68, 0x69,
}

var udpLayout = core.Layout{
	IPOffset:        0,
	Version:         4,
	Protocol:        checksum.ProtocolUDP,
	TransportOffset: 20,
	TransportLen:    10,
}

var icmpv6Layout = core.Layout{
	IPOffset:        0,
	Version:         6,
	Protocol:        checksum.ProtocolICMPv6,
	TransportOffset: 40,
	TransportLen:    10,
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func TestParseRules(t *testing.T) {
	rw, err := ParseRules([]byte(`
rules:
  - type: address_map
    config:
      map:
        "10.0.0.1": "192.168.1.1"
  - type: port_map
    config:
      map:
        5060: 15060
`))
	require.NoError(t, err)
	assert.Equal(t, 2, rw.Len())
}

func TestParseRulesErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", `rules: []`},
		{"unknown type", "rules:\n  - type: mac_map\n    config: {}"},
		{"bad address", "rules:\n  - type: address_map\n    config:\n      map:\n        \"nonsense\": \"10.0.0.1\""},
		{"cross family", "rules:\n  - type: address_map\n    config:\n      map:\n        \"10.0.0.1\": \"2001:db8::1\""},
		{"bad port", "rules:\n  - type: port_map\n    config:\n      map:\n        5060: 70000"},
		{"zero port", "rules:\n  - type: port_map\n    config:\n      map:\n        0: 5060"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRules([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestApplyAddressMap(t *testing.T) {
	rw, err := ParseRules([]byte(`
rules:
  - type: address_map
    config:
      map:
        "10.0.0.1": "192.168.1.1"
`))
	require.NoError(t, err)

	pkt := clone(ipv4UDPPacket)
	changed, err := rw.Apply(pkt, udpLayout)
	require.NoError(t, err)
	assert.True(t, changed)

	h := header.IPv4(pkt)
	assert.Equal(t, netip.MustParseAddr("192.168.1.1"), h.SourceAddr())
	assert.Equal(t, netip.MustParseAddr("10.0.0.2"), h.DestinationAddr())

	// Checksums must be coherent again after the rewrite.
	assert.True(t, header.VerifyIPChecksum(pkt, 0))
	state, err := header.VerifyTransportChecksum(pkt, checksum.ProtocolUDP, 0, 20, 10)
	require.NoError(t, err)
	assert.Equal(t, header.ChecksumValid, state)
}

func TestApplyPortMap(t *testing.T) {
	rw, err := ParseRules([]byte(`
rules:
  - type: port_map
    config:
      map:
        5060: 15060
`))
	require.NoError(t, err)

	pkt := clone(ipv4UDPPacket)
	changed, err := rw.Apply(pkt, udpLayout)
	require.NoError(t, err)
	assert.True(t, changed)

	h := header.UDP(pkt[20:])
	assert.Equal(t, uint16(15060), h.SourcePort())
	assert.Equal(t, uint16(15060), h.DestinationPort())

	state, err := header.VerifyTransportChecksum(pkt, checksum.ProtocolUDP, 0, 20, 10)
	require.NoError(t, err)
	assert.Equal(t, header.ChecksumValid, state)
}

func TestApplyNoMatchLeavesPacket(t *testing.T) {
	rw, err := ParseRules([]byte(`
rules:
  - type: address_map
    config:
      map:
        "172.16.0.1": "172.16.0.2"
`))
	require.NoError(t, err)

	pkt := clone(ipv4UDPPacket)
	changed, err := rw.Apply(pkt, udpLayout)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, ipv4UDPPacket, pkt)
}

func TestApplyKeepsAbsentUDPChecksum(t *testing.T) {
	rw, err := ParseRules([]byte(`
rules:
  - type: address_map
    config:
      map:
        "10.0.0.1": "192.168.1.1"
`))
	require.NoError(t, err)

	pkt := clone(ipv4UDPPacket)
	pkt[26], pkt[27] = 0, 0 // no checksum used
	header.ResetIPChecksum(pkt, 0)

	changed, err := rw.Apply(pkt, udpLayout)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, uint16(0), header.UDP(pkt[20:]).Checksum())
}

func TestApplyIPv6(t *testing.T) {
	rw, err := ParseRules([]byte(`
rules:
  - type: address_map
    config:
      map:
        "2001:db8::2": "2001:db8::99"
`))
	require.NoError(t, err)

	pkt := clone(ipv6ICMPv6Packet)
	changed, err := rw.Apply(pkt, icmpv6Layout)
	require.NoError(t, err)
	assert.True(t, changed)

	h := header.IPv6(pkt)
	assert.Equal(t, netip.MustParseAddr("2001:db8::99"), h.DestinationAddr())

	state, err := header.VerifyTransportChecksum(pkt, checksum.ProtocolICMPv6, 0, 40, 10)
	require.NoError(t, err)
	assert.Equal(t, header.ChecksumValid, state)
}
