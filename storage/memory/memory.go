package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mwantia/cliapi/storage"
	"github.com/tidwall/btree"
)

// MemoryBackend keeps files in process memory. Keys map to object ids in an
// ordered index so listings come out sorted.
type MemoryBackend struct {
	mu sync.RWMutex

	keys    *btree.Map[string, string]
	objects map[string][]byte
}

func New() *MemoryBackend {
	return &MemoryBackend{
		keys:    btree.NewMap[string, string](0),
		objects: make(map[string][]byte),
	}
}

func (*MemoryBackend) Name() string {
	return "memory"
}

func (mb *MemoryBackend) Open(ctx context.Context) error {
	return nil
}

// Close drops every stored file.
func (mb *MemoryBackend) Close(ctx context.Context) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.keys.Clear()
	for id := range mb.objects {
		delete(mb.objects, id)
	}

	return nil
}

func (mb *MemoryBackend) Read(ctx context.Context, key string) ([]byte, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	id, ok := mb.keys.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotExist, key)
	}

	data := mb.objects[id]
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (mb *MemoryBackend) Write(ctx context.Context, key string, data []byte) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	id, ok := mb.keys.Get(key)
	if !ok {
		id = uuid.Must(uuid.NewV7()).String()
		mb.keys.Set(key, id)
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	mb.objects[id] = stored
	return nil
}

func (mb *MemoryBackend) Delete(ctx context.Context, key string) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	id, ok := mb.keys.Delete(key)
	if !ok {
		return fmt.Errorf("%w: %s", storage.ErrNotExist, key)
	}

	delete(mb.objects, id)
	return nil
}

func (mb *MemoryBackend) List(ctx context.Context, prefix string) ([]string, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	var keys []string
	mb.keys.Ascend(prefix, func(key, _ string) bool {
		if !strings.HasPrefix(key, prefix) {
			return false
		}
		keys = append(keys, key)
		return true
	})

	return keys, nil
}
