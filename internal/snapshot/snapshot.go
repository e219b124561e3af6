// Package snapshot persists save states as compressed, checksummed
// files.
//
// A snapshot is laid out as:
//
//	magic    [4]byte  "SM83"
//	version  uint8
//	checksum uint64   xxhash64 of the uncompressed state, little-endian
//	payload  []byte   brotli-compressed state
package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/thelolagemann/sm83/internal/types"
)

// Magic identifies a snapshot.
const Magic = "SM83"

// Version is the snapshot format version written by Encode.
const Version uint8 = 1

const headerSize = len(Magic) + 1 + 8

// Quality is the brotli quality used for snapshot payloads.
var Quality = 9

var (
	// ErrMagic is returned when the data is not a snapshot.
	ErrMagic = errors.New("snapshot: bad magic")
	// ErrVersion is returned for snapshots written by a newer format.
	ErrVersion = errors.New("snapshot: unsupported version")
	// ErrChecksum is returned when the payload does not match its checksum.
	ErrChecksum = errors.New("snapshot: checksum mismatch")
)

// Encode compresses st into a snapshot.
func Encode(st *types.State) ([]byte, error) {
	raw := st.Bytes()
	payload, err := cbrotli.Encode(raw, cbrotli.WriterOptions{
		Quality: Quality,
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: compressing: %w", err)
	}

	out := make([]byte, headerSize, headerSize+len(payload))
	copy(out, Magic)
	out[len(Magic)] = Version
	binary.LittleEndian.PutUint64(out[len(Magic)+1:], xxhash.Sum64(raw))
	return append(out, payload...), nil
}

// Decode verifies and decompresses a snapshot.
func Decode(b []byte) (*types.State, error) {
	if len(b) < headerSize || !bytes.Equal(b[:len(Magic)], []byte(Magic)) {
		return nil, ErrMagic
	}
	if v := b[len(Magic)]; v != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, v)
	}
	sum := binary.LittleEndian.Uint64(b[len(Magic)+1:])

	raw, err := cbrotli.Decode(b[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChecksum, err)
	}
	if got := xxhash.Sum64(raw); got != sum {
		return nil, fmt.Errorf("%w: want %016x, got %016x", ErrChecksum, sum, got)
	}
	return types.StateFromBytes(raw), nil
}

// Write encodes st and writes it to w.
func Write(w io.Writer, st *types.State) error {
	b, err := Encode(st)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Read reads a snapshot from r.
func Read(r io.Reader) (*types.State, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(b)
}

// Save saves s to the file at path.
func Save(path string, s types.Stater) error {
	st := types.NewState()
	s.Save(st)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, st); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Open reads the snapshot at path.
func Open(path string) (*types.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
