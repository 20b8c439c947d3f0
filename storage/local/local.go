package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mwantia/cliapi/storage"
)

// LocalBackend keeps files below a directory on the host filesystem.
type LocalBackend struct {
	mu   sync.RWMutex
	root string
}

func New(root string) *LocalBackend {
	return &LocalBackend{
		root: filepath.Clean(root),
	}
}

func (*LocalBackend) Name() string {
	return "local"
}

// Open creates the root directory when it does not exist yet.
func (lb *LocalBackend) Open(ctx context.Context) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	info, err := os.Stat(lb.root)
	if errors.Is(err, fs.ErrNotExist) {
		return os.MkdirAll(lb.root, 0o755)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", lb.root)
	}

	return nil
}

func (lb *LocalBackend) Close(ctx context.Context) error {
	return nil
}

func (lb *LocalBackend) Read(ctx context.Context, key string) ([]byte, error) {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	data, err := os.ReadFile(lb.resolvePath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotExist, key)
	}
	return data, err
}

func (lb *LocalBackend) Write(ctx context.Context, key string, data []byte) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	fullPath := lb.resolvePath(key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, data, 0o644)
}

func (lb *LocalBackend) Delete(ctx context.Context, key string) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	err := os.Remove(lb.resolvePath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", storage.ErrNotExist, key)
	}
	return err
}

func (lb *LocalBackend) List(ctx context.Context, prefix string) ([]string, error) {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	var keys []string
	err := filepath.WalkDir(lb.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(lb.root, path)
		if err != nil {
			return err
		}

		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})

	return keys, err
}

func (lb *LocalBackend) resolvePath(key string) string {
	return filepath.Join(lb.root, filepath.FromSlash(filepath.Clean("/"+key)))
}
