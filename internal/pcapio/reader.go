// Package pcapio reads and writes classic pcap capture files. Both byte
// orders and microsecond/nanosecond timestamp resolution are handled by
// the underlying pcapgo reader. pcapng is not supported.
package pcapio

import (
	"fmt"
	"io"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// Reader reads packets from a pcap capture file.
type Reader struct {
	file *os.File
	r    *pcapgo.Reader
}

// OpenFile opens a pcap file for reading.
func OpenFile(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pcap file %s: %w", path, err)
	}

	r, err := pcapgo.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to parse pcap file %s: %w", path, err)
	}

	return &Reader{file: f, r: r}, nil
}

// ReadPacket returns the next packet and its capture info. io.EOF signals
// the end of the file.
func (r *Reader) ReadPacket() ([]byte, gopacket.CaptureInfo, error) {
	data, ci, err := r.r.ReadPacketData()
	if err != nil {
		if err == io.EOF {
			return nil, gopacket.CaptureInfo{}, io.EOF
		}
		return nil, gopacket.CaptureInfo{}, fmt.Errorf("failed to read packet: %w", err)
	}
	return data, ci, nil
}

// LinkType returns the capture's link type.
func (r *Reader) LinkType() layers.LinkType {
	return r.r.LinkType()
}

// Snaplen returns the capture's snapshot length.
func (r *Reader) Snaplen() uint32 {
	return r.r.Snaplen()
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
