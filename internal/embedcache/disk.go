package embedcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Disk is the filesystem cache backend: one JSON-encoded vector per
// unique text, named "<model>-<hash>.json" under the cache directory.
type Disk struct {
	dir   string
	model string
}

// NewDisk creates a disk cache for the given model, creating the cache
// directory idempotently.
func NewDisk(dir, model string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Disk{dir: dir, model: model}, nil
}

// Get reads the vector for text. Any read or decode failure is a miss.
func (d *Disk) Get(text string) ([]float32, bool) {
	data, err := os.ReadFile(d.path(text))
	if err != nil {
		return nil, false
	}
	var vector []float32
	if err := json.Unmarshal(data, &vector); err != nil {
		return nil, false
	}
	return vector, true
}

// Put writes the vector for text via a temp file and rename, so an
// aborted request never leaves a partial entry. Failures are dropped;
// the entry will simply be recomputed next time.
func (d *Disk) Put(text string, vector []float32) {
	data, err := json.Marshal(vector)
	if err != nil {
		return
	}
	tmp, err := os.CreateTemp(d.dir, "embed-*.tmp")
	if err != nil {
		return
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return
	}
	if err := os.Rename(tmp.Name(), d.path(text)); err != nil {
		_ = os.Remove(tmp.Name())
	}
}

// Close is a no-op for the disk backend.
func (d *Disk) Close() error { return nil }

func (d *Disk) path(text string) string {
	return filepath.Join(d.dir, Key(d.model, text)+".json")
}
