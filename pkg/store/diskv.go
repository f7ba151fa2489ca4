package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/devo/pkg/entry"
)

const tempDirName = ".tmp"

type diskvPersistence struct {
	d        *diskv.Diskv
	basePath string
	key      string
}

func newDiskv(basePath, key string) (*diskvPersistence, error) {
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &diskvPersistence{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(string) []string { return []string{} },
			TempDir:      filepath.Join(basePath, tempDirName),
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		basePath: basePath,
		key:      key,
	}, nil
}

func (p *diskvPersistence) Load(_ context.Context) ([]*entry.Entry, error) {
	if !p.d.Has(p.key) {
		return nil, ErrNotFound
	}
	// Read through to disk, another process may have replaced the file.
	rc, err := p.d.ReadStream(p.key, true)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", p.key, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", p.key, err)
	}
	return decode(data)
}

func (p *diskvPersistence) Save(_ context.Context, entries []*entry.Entry) error {
	data, err := encode(entries)
	if err != nil {
		return err
	}
	if err := p.d.WriteStream(p.key, bytes.NewReader(data), true); err != nil {
		return fmt.Errorf("store: write %s: %w", p.key, err)
	}
	return nil
}

func (p *diskvPersistence) Watch(ctx context.Context) (<-chan Event, error) {
	return watchFiles(ctx, p.basePath, func(name string) bool {
		return name == p.key
	})
}

func (p *diskvPersistence) Close() error {
	return nil
}
