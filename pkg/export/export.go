// Package export writes analysis reports as JSON snapshots, optionally
// snappy-compressed with a checksummed header so a truncated or corrupted
// snapshot is detected on read instead of being half-parsed.
package export

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-ubo/pkg/engine"
	"github.com/dd0wney/cluso-ubo/pkg/logging"
)

// Compressed snapshot format: [magic:4][checksum:4][snappy data:N].
// The checksum covers the compressed payload.
var snapshotMagic = [4]byte{'U', 'B', 'O', 'S'}

// Exporter serializes reports for downstream consumers
type Exporter struct {
	log      logging.Logger
	compress bool
}

// NewExporter creates an exporter. With compress set, snapshots are
// snappy-compressed behind a checksummed header.
func NewExporter(log logging.Logger, compress bool) *Exporter {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Exporter{log: log, compress: compress}
}

// Write serializes the report to w and returns the bytes written
func (e *Exporter) Write(w io.Writer, report *engine.Report) (int, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("marshal report: %w", err)
	}

	if !e.compress {
		return w.Write(data)
	}

	compressed := snappy.Encode(nil, data)

	var header [8]byte
	copy(header[:4], snapshotMagic[:])
	binary.BigEndian.PutUint32(header[4:], crc32.ChecksumIEEE(compressed))

	n, err := w.Write(header[:])
	if err != nil {
		return n, err
	}
	m, err := w.Write(compressed)
	n += m
	if err != nil {
		return n, err
	}

	e.log.Debug("snapshot written",
		logging.RunID(report.RunID),
		logging.Int("bytes_uncompressed", len(data)),
		logging.Int("bytes_compressed", len(compressed)),
	)
	return n, nil
}

// WriteFile writes the report snapshot to path
func (e *Exporter) WriteFile(path string, report *engine.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", path, err)
	}

	if _, err := e.Write(f, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a snapshot written by WriteFile, transparently handling
// both plain and compressed forms
func ReadFile(path string) (*engine.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses a snapshot from its serialized bytes
func Decode(data []byte) (*engine.Report, error) {
	if len(data) >= 8 && bytes.Equal(data[:4], snapshotMagic[:]) {
		want := binary.BigEndian.Uint32(data[4:8])
		compressed := data[8:]
		if got := crc32.ChecksumIEEE(compressed); got != want {
			return nil, fmt.Errorf("snapshot checksum mismatch: got %08x, want %08x", got, want)
		}
		data, err := snappy.Decode(nil, compressed)
		if err != nil {
			return nil, fmt.Errorf("decompress snapshot: %w", err)
		}
		return unmarshalReport(data)
	}
	return unmarshalReport(data)
}

func unmarshalReport(data []byte) (*engine.Report, error) {
	var report engine.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &report, nil
}
