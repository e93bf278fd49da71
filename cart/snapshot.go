package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/imamnura/mini-ecommerce-api/models"
)

// SnapshotStore persists whole cart snapshots by name. Save rewrites the
// snapshot in full every time; Load returns (nil, nil) when no snapshot
// exists yet.
type SnapshotStore interface {
	Save(name string, snap *models.CartSnapshot) error
	Load(name string) (*models.CartSnapshot, error)
}

// FileSnapshotStore keeps one JSON file per snapshot under a base directory.
// Writes go through a temp file and rename, so readers never observe a
// half-written snapshot.
type FileSnapshotStore struct {
	dir string
}

func NewFileSnapshotStore(dir string) (*FileSnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileSnapshotStore{dir: dir}, nil
}

func (f *FileSnapshotStore) path(name string) string {
	return filepath.Join(f.dir, name+".json")
}

func (f *FileSnapshotStore) Save(name string, snap *models.CartSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	tmp := f.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path(name))
}

func (f *FileSnapshotStore) Load(name string) (*models.CartSnapshot, error) {
	data, err := os.ReadFile(f.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap models.CartSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", name, err)
	}
	return &snap, nil
}
