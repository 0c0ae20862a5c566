package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/vibeshot/core/internal/ports"
)

// FileKV persists each key as a file inside a data directory. Writes go
// through a temp file and a rename so a single key is never left half
// written. An optional byte budget models the bounded quota of the storage
// the dataset originally lived in; a write that would exceed it fails with
// ports.ErrCapacityExceeded and leaves the previous value in place.
type FileKV struct {
	fs       afero.Fs
	dir      string
	maxBytes int64
}

// NewFileKV creates a file-backed KV rooted at dir. maxBytes of zero means
// no budget.
func NewFileKV(fs afero.Fs, dir string, maxBytes int64) (*FileKV, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileKV{fs: fs, dir: dir, maxBytes: maxBytes}, nil
}

func (kv *FileKV) path(key string) string {
	return filepath.Join(kv.dir, key+".json")
}

func (kv *FileKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(kv.fs, kv.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (kv *FileKV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if kv.maxBytes > 0 {
		used, err := kv.usedBytes(key)
		if err != nil {
			return err
		}
		if used+int64(len(value)) > kv.maxBytes {
			return fmt.Errorf("write %s: %w", key, ports.ErrCapacityExceeded)
		}
	}

	tmp := filepath.Join(kv.dir, fmt.Sprintf(".%s.%s.tmp", key, uuid.NewString()))
	if err := afero.WriteFile(kv.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := kv.fs.Rename(tmp, kv.path(key)); err != nil {
		_ = kv.fs.Remove(tmp)
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (kv *FileKV) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := kv.fs.Remove(kv.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (kv *FileKV) Close() error { return nil }

// usedBytes sums the sizes of all stored keys except the one about to be
// replaced.
func (kv *FileKV) usedBytes(replacing string) (int64, error) {
	entries, err := afero.ReadDir(kv.fs, kv.dir)
	if err != nil {
		return 0, fmt.Errorf("scan data dir: %w", err)
	}
	var total int64
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if e.Name() == replacing+".json" {
			continue
		}
		total += e.Size()
	}
	return total, nil
}
