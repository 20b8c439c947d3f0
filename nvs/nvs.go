// Package nvs provides the non-volatile key/value partition a console keeps its
// settings in, with interchangeable storage backends.
package nvs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mwantia/cliapi/log"
)

var (
	ErrNoFreePages     = errors.New("nvs: no free pages")
	ErrNewVersionFound = errors.New("nvs: partition contains data in a newer format")
	ErrNotFound        = errors.New("nvs: key not found")
	ErrNotOpen         = errors.New("nvs: store not open")
	ErrInvalidName     = errors.New("nvs: invalid namespace or key name")
)

const (
	// FormatVersion is the newest layout this package writes and understands.
	FormatVersion = 1

	// MaxNameLen bounds namespace and key names.
	MaxNameLen = 15

	DefaultMaxEntries = 256
)

type Store interface {
	// Name returns the identifier of this backend
	Name() string

	// Open attaches the partition. It returns ErrNoFreePages when the partition
	// is full and ErrNewVersionFound when it was written by a newer format.
	Open(ctx context.Context) error

	Close(ctx context.Context) error

	// Erase wipes the partition, including its format marker.
	Erase(ctx context.Context) error

	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Set(ctx context.Context, namespace, key string, value []byte) error
	Delete(ctx context.Context, namespace, key string) error
	Keys(ctx context.Context, namespace string) ([]string, error)
}

// Init opens store, erasing and reopening it once when the partition is full
// or versioned forward. Any other failure is returned unchanged.
func Init(ctx context.Context, store Store, logger *log.Logger) error {
	if logger == nil {
		logger = log.Nop()
	}

	err := store.Open(ctx)
	if errors.Is(err, ErrNoFreePages) || errors.Is(err, ErrNewVersionFound) {
		logger.Warn("NVS partition truncated, erasing...")
		if err := store.Erase(ctx); err != nil {
			return fmt.Errorf("failed to erase %s partition: %w", store.Name(), err)
		}
		err = store.Open(ctx)
	}
	if err != nil {
		return err
	}

	logger.Info("NVS initialized")
	return nil
}

// ValidateName checks a namespace or key name.
func ValidateName(name string) error {
	if name == "" || len(name) > MaxNameLen {
		return fmt.Errorf("%w: %q must be 1 to %d characters", ErrInvalidName, name, MaxNameLen)
	}
	if strings.ContainsAny(name, "/\x00") {
		return fmt.Errorf("%w: %q contains a separator", ErrInvalidName, name)
	}

	return nil
}

func ValidateEntry(namespace, key string) error {
	if err := ValidateName(namespace); err != nil {
		return err
	}
	return ValidateName(key)
}
