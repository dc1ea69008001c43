package report

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// WriteArenaSnapshot writes the arena bytes to w, zstd-compressed.
func WriteArenaSnapshot(w io.Writer, arena []byte) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return fmt.Errorf("create snapshot encoder: %w", err)
	}
	if _, err := enc.Write(arena); err != nil {
		enc.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	return enc.Close()
}

// ReadArenaSnapshot decodes a snapshot written by WriteArenaSnapshot.
func ReadArenaSnapshot(r io.Reader) ([]byte, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create snapshot decoder: %w", err)
	}
	defer dec.Close()
	b, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return b, nil
}
