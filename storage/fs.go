// Package storage is a small mount table over file backends, used to persist
// console state such as the command history.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

type FileSystem struct {
	mu     sync.RWMutex
	mounts map[string]*mountEntry
}

type mountEntry struct {
	backend Backend
	info    MountInfo
}

func New() *FileSystem {
	return &FileSystem{
		mounts: make(map[string]*mountEntry),
	}
}

// Mount opens backend and attaches it at path.
func (fs *FileSystem) Mount(ctx context.Context, path string, backend Backend, opts ...MountOption) error {
	if backend == nil {
		return fmt.Errorf("%w: backend cannot be nil", ErrInvalid)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	path = cleanPath(path)
	if _, exists := fs.mounts[path]; exists {
		return fmt.Errorf("%w: /%s", ErrAlreadyMounted, path)
	}

	if err := backend.Open(ctx); err != nil {
		return fmt.Errorf("%w: %s at /%s: %v", ErrMountFailed, backend.Name(), path, err)
	}

	info := MountInfo{
		Path:      "/" + path,
		Backend:   backend.Name(),
		MountedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(&info)
	}

	fs.mounts[path] = &mountEntry{
		backend: backend,
		info:    info,
	}

	return nil
}

// Unmount closes and detaches the backend at path.
func (fs *FileSystem) Unmount(ctx context.Context, path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	path = cleanPath(path)
	entry, exists := fs.mounts[path]
	if !exists {
		return fmt.Errorf("%w: /%s", ErrNotMounted, path)
	}

	for mountPoint := range fs.mounts {
		if mountPoint != path && hasPrefix(mountPoint, path) {
			return fmt.Errorf("%w: /%s has child mounts", ErrMountBusy, path)
		}
	}

	delete(fs.mounts, path)
	return entry.backend.Close(ctx)
}

// UnmountAll detaches every mount, children first.
func (fs *FileSystem) UnmountAll(ctx context.Context) error {
	infos := fs.Mounts()
	sort.Slice(infos, func(i, j int) bool {
		return len(infos[i].Path) > len(infos[j].Path)
	})

	var errs []error
	for _, info := range infos {
		if err := fs.Unmount(ctx, info.Path); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (fs *FileSystem) IsMounted(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	_, exists := fs.mounts[cleanPath(path)]
	return exists
}

// Mounts returns information about all mounts ordered by path.
func (fs *FileSystem) Mounts() []MountInfo {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	infos := make([]MountInfo, 0, len(fs.mounts))
	for _, entry := range fs.mounts {
		infos = append(infos, entry.info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Path < infos[j].Path
	})
	return infos
}

func (fs *FileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	entry, key, err := fs.resolve(path)
	if err != nil {
		return nil, err
	}

	return entry.backend.Read(ctx, key)
}

func (fs *FileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	entry, key, err := fs.resolveWritable(path)
	if err != nil {
		return err
	}

	return entry.backend.Write(ctx, key, data)
}

// AppendFile adds data to the end of path, creating it when missing.
func (fs *FileSystem) AppendFile(ctx context.Context, path string, data []byte) error {
	entry, key, err := fs.resolveWritable(path)
	if err != nil {
		return err
	}

	current, err := entry.backend.Read(ctx, key)
	if err != nil && !errors.Is(err, ErrNotExist) {
		return err
	}

	return entry.backend.Write(ctx, key, append(current, data...))
}

func (fs *FileSystem) Remove(ctx context.Context, path string) error {
	entry, key, err := fs.resolveWritable(path)
	if err != nil {
		return err
	}

	return entry.backend.Delete(ctx, key)
}

// List returns the absolute paths of the files under dir.
func (fs *FileSystem) List(ctx context.Context, dir string) ([]string, error) {
	entry, key, err := fs.resolve(dir)
	if err != nil {
		return nil, err
	}

	prefix := key
	if prefix != "" {
		prefix += "/"
	}

	keys, err := entry.backend.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(keys))
	for i, k := range keys {
		paths[i] = entry.info.Path
		if entry.info.Path != "/" {
			paths[i] += "/"
		}
		paths[i] += k
	}
	return paths, nil
}

func (fs *FileSystem) resolve(path string) (*mountEntry, string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	path = cleanPath(path)

	// Find longest matching mount point
	best := ""
	var match *mountEntry
	for mountPoint, entry := range fs.mounts {
		if hasPrefix(path, mountPoint) && (match == nil || len(mountPoint) > len(best)) {
			best = mountPoint
			match = entry
		}
	}

	if match == nil {
		return nil, "", fmt.Errorf("%w: no mount for path /%s", ErrNotMounted, path)
	}

	return match, relative(path, best), nil
}

func (fs *FileSystem) resolveWritable(path string) (*mountEntry, string, error) {
	entry, key, err := fs.resolve(path)
	if err != nil {
		return nil, "", err
	}
	if entry.info.ReadOnly {
		return nil, "", fmt.Errorf("%w: %s", ErrReadOnly, entry.info.Path)
	}
	if key == "" {
		return nil, "", fmt.Errorf("%w: %s is a mount point", ErrInvalid, entry.info.Path)
	}

	return entry, key, nil
}
