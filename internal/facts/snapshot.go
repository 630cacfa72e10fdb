package facts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// SnapshotSchema is bumped whenever Document changes shape.
const SnapshotSchema uint16 = 1

// Snapshot bundles decoded documents into one binary file.
type Snapshot struct {
	Schema    uint16      `msgpack:"schema"`
	Documents []*Document `msgpack:"documents"`
}

// WriteSnapshot encodes docs with the current schema.
func WriteSnapshot(w io.Writer, docs []*Document) error {
	return msgpack.NewEncoder(w).Encode(&Snapshot{Schema: SnapshotSchema, Documents: docs})
}

// ReadSnapshot decodes a snapshot and checks its schema.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Schema != SnapshotSchema {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSnapshotVersion, snap.Schema, SnapshotSchema)
	}
	return &snap, nil
}

// SaveSnapshot writes docs to path through a temporary file in the same
// directory, replacing path atomically.
func SaveSnapshot(path string, docs []*Document) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err = WriteSnapshot(f, docs); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
