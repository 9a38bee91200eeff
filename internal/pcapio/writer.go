package pcapio

import (
	"fmt"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// Writer writes packets to a classic pcap capture file.
type Writer struct {
	file *os.File
	w    *pcapgo.Writer
}

// CreateFile creates a pcap file and writes its global header.
func CreateFile(path string, snaplen uint32, linkType layers.LinkType) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create pcap file %s: %w", path, err)
	}

	w := pcapgo.NewWriter(f)
	if err := w.WriteFileHeader(snaplen, linkType); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to write pcap header: %w", err)
	}

	return &Writer{file: f, w: w}, nil
}

// WritePacket appends one packet record.
func (w *Writer) WritePacket(ci gopacket.CaptureInfo, data []byte) error {
	if err := w.w.WritePacket(ci, data); err != nil {
		return fmt.Errorf("failed to write packet: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	return w.file.Close()
}
