// Package artifact stores built application packages and hands out
// download locations.
package artifact

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
)

var ErrNotFound = errors.New("artifact: not found")

// Store persists a built artifact and resolves a download location for it.
type Store interface {
	Put(ctx context.Context, jobID, srcPath, name string) error
	URL(ctx context.Context, jobID, name string) (string, error)
}

// DiskStore keeps artifacts under a local directory, one subdirectory per
// job.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

func (d *DiskStore) Put(_ context.Context, jobID, srcPath, name string) error {
	dstDir := filepath.Join(d.dir, jobID)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return err
	}
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create(filepath.Join(dstDir, name))
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

// URL returns the local path, which the download handler serves directly.
func (d *DiskStore) URL(_ context.Context, jobID, name string) (string, error) {
	path := filepath.Join(d.dir, jobID, name)
	if _, err := os.Stat(path); err != nil {
		return "", ErrNotFound
	}
	return path, nil
}
