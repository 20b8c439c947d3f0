package consul

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/cliapi/nvs"
)

// ConsulStore keeps the partition in the Consul KV store.
//
// Layout:
// - Entries are stored under <prefix>/<namespace>/<key>
// - The format version is stored under <prefix>/.format
//
// Consul KV has a 512KB limit per value, which is far above what a settings
// partition needs.
type ConsulStore struct {
	mu     sync.RWMutex
	client *api.Client
	kv     *api.KV

	config *Config
	opened bool
}

// Config contains configuration options for the Consul store
type Config struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Token for Consul ACL authentication (optional)
	Token string

	// Datacenter to use (optional)
	Datacenter string

	// Prefix for all keys of this partition (default: "nvs")
	Prefix string

	MaxEntries int
}

func New(config *Config) (*ConsulStore, error) {
	if config == nil {
		config = &Config{}
	}

	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}
	config.Prefix = strings.Trim(config.Prefix, "/")
	if config.Prefix == "" {
		config.Prefix = "nvs"
	}
	if config.MaxEntries <= 0 {
		config.MaxEntries = nvs.DefaultMaxEntries
	}

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &ConsulStore{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

func (*ConsulStore) Name() string {
	return "consul"
}

func (cs *ConsulStore) Open(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	pair, _, err := cs.kv.Get(cs.formatKey(), cs.query(ctx))
	if err != nil {
		return fmt.Errorf("failed to read format version: %w", err)
	}

	if pair == nil {
		if _, err := cs.kv.Put(&api.KVPair{
			Key:   cs.formatKey(),
			Value: []byte(strconv.Itoa(nvs.FormatVersion)),
		}, cs.write(ctx)); err != nil {
			return fmt.Errorf("failed to write format version: %w", err)
		}
	} else {
		version, err := strconv.Atoi(string(pair.Value))
		if err != nil {
			return fmt.Errorf("%w: unreadable format marker %q", nvs.ErrNewVersionFound, pair.Value)
		}
		if version > nvs.FormatVersion {
			return fmt.Errorf("%w: version %d", nvs.ErrNewVersionFound, version)
		}
	}

	count, err := cs.count(ctx)
	if err != nil {
		return err
	}
	if count >= cs.config.MaxEntries {
		return nvs.ErrNoFreePages
	}

	cs.opened = true
	return nil
}

func (cs *ConsulStore) Close(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.opened = false
	return nil
}

func (cs *ConsulStore) Erase(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, err := cs.kv.DeleteTree(cs.config.Prefix+"/", cs.write(ctx)); err != nil {
		return fmt.Errorf("failed to erase partition: %w", err)
	}

	cs.opened = false
	return nil
}

func (cs *ConsulStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	if err := nvs.ValidateEntry(namespace, key); err != nil {
		return nil, err
	}

	cs.mu.RLock()
	defer cs.mu.RUnlock()

	if !cs.opened {
		return nil, nvs.ErrNotOpen
	}

	pair, _, err := cs.kv.Get(cs.buildKey(namespace, key), cs.query(ctx))
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, fmt.Errorf("%w: %s/%s", nvs.ErrNotFound, namespace, key)
	}

	return pair.Value, nil
}

func (cs *ConsulStore) Set(ctx context.Context, namespace, key string, value []byte) error {
	if err := nvs.ValidateEntry(namespace, key); err != nil {
		return err
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !cs.opened {
		return nvs.ErrNotOpen
	}

	consulKey := cs.buildKey(namespace, key)
	pair, _, err := cs.kv.Get(consulKey, cs.query(ctx))
	if err != nil {
		return err
	}

	if pair == nil {
		count, err := cs.count(ctx)
		if err != nil {
			return err
		}
		if count >= cs.config.MaxEntries {
			return nvs.ErrNoFreePages
		}
	}

	if value == nil {
		value = []byte{}
	}
	_, err = cs.kv.Put(&api.KVPair{Key: consulKey, Value: value}, cs.write(ctx))
	return err
}

func (cs *ConsulStore) Delete(ctx context.Context, namespace, key string) error {
	if err := nvs.ValidateEntry(namespace, key); err != nil {
		return err
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !cs.opened {
		return nvs.ErrNotOpen
	}

	consulKey := cs.buildKey(namespace, key)
	pair, _, err := cs.kv.Get(consulKey, cs.query(ctx))
	if err != nil {
		return err
	}
	if pair == nil {
		return fmt.Errorf("%w: %s/%s", nvs.ErrNotFound, namespace, key)
	}

	_, err = cs.kv.Delete(consulKey, cs.write(ctx))
	return err
}

func (cs *ConsulStore) Keys(ctx context.Context, namespace string) ([]string, error) {
	if err := nvs.ValidateName(namespace); err != nil {
		return nil, err
	}

	cs.mu.RLock()
	defer cs.mu.RUnlock()

	if !cs.opened {
		return nil, nvs.ErrNotOpen
	}

	prefix := cs.config.Prefix + "/" + namespace + "/"
	consulKeys, _, err := cs.kv.Keys(prefix, "", cs.query(ctx))
	if err != nil {
		return nil, err
	}

	// Consul returns keys in lexical order
	keys := make([]string, 0, len(consulKeys))
	for _, k := range consulKeys {
		keys = append(keys, strings.TrimPrefix(k, prefix))
	}
	return keys, nil
}

func (cs *ConsulStore) buildKey(namespace, key string) string {
	return cs.config.Prefix + "/" + namespace + "/" + key
}

func (cs *ConsulStore) formatKey() string {
	return cs.config.Prefix + "/.format"
}

func (cs *ConsulStore) count(ctx context.Context) (int, error) {
	keys, _, err := cs.kv.Keys(cs.config.Prefix+"/", "", cs.query(ctx))
	if err != nil {
		return 0, err
	}

	count := 0
	for _, k := range keys {
		if k != cs.formatKey() {
			count++
		}
	}
	return count, nil
}

func (cs *ConsulStore) query(ctx context.Context) *api.QueryOptions {
	return (&api.QueryOptions{}).WithContext(ctx)
}

func (cs *ConsulStore) write(ctx context.Context) *api.WriteOptions {
	return (&api.WriteOptions{}).WithContext(ctx)
}
