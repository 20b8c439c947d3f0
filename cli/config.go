package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mwantia/cliapi"
	"github.com/mwantia/cliapi/log"
	"github.com/mwantia/cliapi/nvs"
	"github.com/mwantia/cliapi/nvs/consul"
	"github.com/mwantia/cliapi/nvs/memory"
	"github.com/mwantia/cliapi/nvs/postgres"
	"github.com/mwantia/cliapi/nvs/sqlite"
	"github.com/mwantia/cliapi/storage"
	"github.com/mwantia/cliapi/storage/local"
	storagememory "github.com/mwantia/cliapi/storage/memory"
	"github.com/mwantia/cliapi/storage/s3"
	"github.com/mwantia/cliapi/transport"
)

type Config struct {
	Prompt  string `toml:"prompt"`
	Banner  string `toml:"banner"`
	History bool   `toml:"history"`
	NoHelp  bool   `toml:"no_help"`

	Log       LogConfig       `toml:"log"`
	Transport TransportConfig `toml:"transport"`
	NVS       NVSConfig       `toml:"nvs"`
	Storage   StorageConfig   `toml:"storage"`
}

type LogConfig struct {
	Level       string `toml:"level"`
	File        string `toml:"file"`
	JSON        bool   `toml:"json"`
	DeviceStyle bool   `toml:"device_style"`
}

type TransportConfig struct {
	Kind   string `toml:"kind"`
	Device string `toml:"device"` // Empty runs on the process terminal
	Baud   int    `toml:"baud"`
}

type NVSConfig struct {
	Backend    string `toml:"backend"` // memory, sqlite, postgres or consul
	MaxEntries int    `toml:"max_entries"`

	Path string `toml:"path"`

	ConnString string `toml:"conn_string"`
	Partition  string `toml:"partition"`

	Address    string `toml:"address"`
	Token      string `toml:"token"`
	Datacenter string `toml:"datacenter"`
	Prefix     string `toml:"prefix"`
}

type StorageConfig struct {
	Backend string `toml:"backend"` // memory, local or s3
	Root    string `toml:"root"`

	Endpoint  string `toml:"endpoint"`
	Bucket    string `toml:"bucket"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl"`
	Prefix    string `toml:"prefix"`
}

func defaultConfig() *Config {
	return &Config{
		Prompt:  cliapi.DefaultPrompt,
		History: true,
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Kind: "uart",
			Baud: 115200,
		},
		NVS: NVSConfig{
			Backend: "memory",
		},
		Storage: StorageConfig{
			Backend: "memory",
		},
	}
}

// loadConfig reads path over the defaults. A missing file is only an error
// when the path was given explicitly.
func loadConfig(path string, explicit bool) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) logger() (*log.Logger, error) {
	level, err := log.Parse(c.Log.Level)
	if err != nil {
		return nil, err
	}

	logger := log.NewLogger("cli-api", level, c.Log.File, false)
	logger.JSON = c.Log.JSON
	logger.DeviceStyle = c.Log.DeviceStyle
	return logger, nil
}

func (c *Config) transport() (transport.Transport, error) {
	kind, err := transport.ParseKind(c.Transport.Kind)
	if err != nil {
		return nil, err
	}

	if c.Transport.Device == "" {
		return transport.NewStdio(kind), nil
	}
	return transport.NewSerial(c.Transport.Device, c.Transport.Baud, kind), nil
}

func (c *Config) store() (nvs.Store, error) {
	switch strings.ToLower(c.NVS.Backend) {
	case "", "memory":
		return memory.New(memory.Config{MaxEntries: c.NVS.MaxEntries}), nil
	case "sqlite":
		if c.NVS.Path == "" {
			return nil, fmt.Errorf("nvs backend sqlite needs a path")
		}
		return sqlite.New(c.NVS.Path, c.NVS.MaxEntries), nil
	case "postgres":
		if c.NVS.ConnString == "" {
			return nil, fmt.Errorf("nvs backend postgres needs a conn_string")
		}
		return postgres.New(c.NVS.ConnString, c.NVS.Partition, c.NVS.MaxEntries), nil
	case "consul":
		store, err := consul.New(&consul.Config{
			Address:    c.NVS.Address,
			Token:      c.NVS.Token,
			Datacenter: c.NVS.Datacenter,
			Prefix:     c.NVS.Prefix,
			MaxEntries: c.NVS.MaxEntries,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown nvs backend: %q", c.NVS.Backend)
	}
}

func (c *Config) filesystem() (storage.Backend, error) {
	switch strings.ToLower(c.Storage.Backend) {
	case "", "memory":
		return storagememory.New(), nil
	case "local":
		if c.Storage.Root == "" {
			return nil, fmt.Errorf("storage backend local needs a root")
		}
		return local.New(c.Storage.Root), nil
	case "s3":
		backend, err := s3.New(s3.Config{
			Endpoint:  c.Storage.Endpoint,
			Bucket:    c.Storage.Bucket,
			AccessKey: c.Storage.AccessKey,
			SecretKey: c.Storage.SecretKey,
			UseSSL:    c.Storage.UseSSL,
			Prefix:    c.Storage.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", c.Storage.Backend)
	}
}

func (c *Config) console() *cliapi.Config {
	return &cliapi.Config{
		Prompt:       c.Prompt,
		Banner:       c.Banner,
		RegisterHelp: !c.NoHelp,
		StoreHistory: c.History,
	}
}
