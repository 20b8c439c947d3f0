package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mwantia/cliapi/nvs"
	"github.com/tidwall/btree"
)

type Config struct {
	MaxEntries int

	// Version pretends the partition was written by the given format.
	Version int
}

// MemoryStore is a volatile partition, ordered by namespace and key.
type MemoryStore struct {
	mu sync.RWMutex

	entries *btree.Map[string, []byte]
	config  Config
	opened  bool
}

func New(config Config) *MemoryStore {
	if config.MaxEntries <= 0 {
		config.MaxEntries = nvs.DefaultMaxEntries
	}
	if config.Version == 0 {
		config.Version = nvs.FormatVersion
	}

	return &MemoryStore{
		entries: btree.NewMap[string, []byte](0),
		config:  config,
	}
}

func (*MemoryStore) Name() string {
	return "memory"
}

func (ms *MemoryStore) Open(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.config.Version > nvs.FormatVersion {
		return fmt.Errorf("%w: version %d", nvs.ErrNewVersionFound, ms.config.Version)
	}
	if ms.entries.Len() >= ms.config.MaxEntries {
		return nvs.ErrNoFreePages
	}

	ms.opened = true
	return nil
}

func (ms *MemoryStore) Close(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.opened = false
	return nil
}

func (ms *MemoryStore) Erase(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.entries.Clear()
	ms.config.Version = nvs.FormatVersion
	return nil
}

func (ms *MemoryStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	if err := nvs.ValidateEntry(namespace, key); err != nil {
		return nil, err
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if !ms.opened {
		return nil, nvs.ErrNotOpen
	}

	value, ok := ms.entries.Get(buildKey(namespace, key))
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", nvs.ErrNotFound, namespace, key)
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (ms *MemoryStore) Set(ctx context.Context, namespace, key string, value []byte) error {
	if err := nvs.ValidateEntry(namespace, key); err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if !ms.opened {
		return nvs.ErrNotOpen
	}

	full := buildKey(namespace, key)
	if _, exists := ms.entries.Get(full); !exists && ms.entries.Len() >= ms.config.MaxEntries {
		return nvs.ErrNoFreePages
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	ms.entries.Set(full, stored)
	return nil
}

func (ms *MemoryStore) Delete(ctx context.Context, namespace, key string) error {
	if err := nvs.ValidateEntry(namespace, key); err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if !ms.opened {
		return nvs.ErrNotOpen
	}

	if _, ok := ms.entries.Delete(buildKey(namespace, key)); !ok {
		return fmt.Errorf("%w: %s/%s", nvs.ErrNotFound, namespace, key)
	}
	return nil
}

func (ms *MemoryStore) Keys(ctx context.Context, namespace string) ([]string, error) {
	if err := nvs.ValidateName(namespace); err != nil {
		return nil, err
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if !ms.opened {
		return nil, nvs.ErrNotOpen
	}

	prefix := namespace + "/"
	var keys []string
	ms.entries.Ascend(prefix, func(full string, _ []byte) bool {
		if !strings.HasPrefix(full, prefix) {
			return false
		}
		keys = append(keys, strings.TrimPrefix(full, prefix))
		return true
	})

	return keys, nil
}

func buildKey(namespace, key string) string {
	return namespace + "/" + key
}
