package cliapi

import (
	"fmt"
	"io"

	"github.com/mwantia/cliapi/editor"
	"github.com/mwantia/cliapi/log"
	"github.com/mwantia/cliapi/nvs"
	"github.com/mwantia/cliapi/storage"
	"github.com/mwantia/cliapi/transport"
)

type ConsoleOptions struct {
	Logger           *log.Logger
	Store            nvs.Store
	Filesystem       storage.Backend
	Transport        transport.Transport
	EditorFactory    editor.Factory
	Output           io.Writer
	ErrorOutput      io.Writer
	LogColors        bool
	IgnoreEmptyLines bool
	Limits           Limits
}

type ConsoleOption func(*ConsoleOptions) error

func newDefaultConsoleOptions() *ConsoleOptions {
	return &ConsoleOptions{
		EditorFactory:    editor.DefaultFactory,
		LogColors:        true,
		IgnoreEmptyLines: true,
		Limits:           DefaultLimits(),
	}
}

func WithLogger(logger *log.Logger) ConsoleOption {
	return func(opts *ConsoleOptions) error {
		opts.Logger = logger
		return nil
	}
}

// WithStore sets the key/value partition initialized by Init.
func WithStore(store nvs.Store) ConsoleOption {
	return func(opts *ConsoleOptions) error {
		if store == nil {
			return fmt.Errorf("%w: store cannot be nil", ErrInvalidArgument)
		}
		opts.Store = store
		return nil
	}
}

// WithFilesystem sets the backend mounted at MountPath for the history file.
func WithFilesystem(backend storage.Backend) ConsoleOption {
	return func(opts *ConsoleOptions) error {
		if backend == nil {
			return fmt.Errorf("%w: filesystem cannot be nil", ErrInvalidArgument)
		}
		opts.Filesystem = backend
		return nil
	}
}

func WithTransport(t transport.Transport) ConsoleOption {
	return func(opts *ConsoleOptions) error {
		if t == nil {
			return fmt.Errorf("%w: transport cannot be nil", ErrInvalidArgument)
		}
		opts.Transport = t
		return nil
	}
}

func WithEditorFactory(factory editor.Factory) ConsoleOption {
	return func(opts *ConsoleOptions) error {
		if factory == nil {
			return fmt.Errorf("%w: editor factory cannot be nil", ErrInvalidArgument)
		}
		opts.EditorFactory = factory
		return nil
	}
}

// WithOutput redirects console messages, which go to the transport by default.
func WithOutput(w io.Writer) ConsoleOption {
	return func(opts *ConsoleOptions) error {
		opts.Output = w
		return nil
	}
}

// WithErrorOutput redirects parse error listings. By default they go to the
// transport's error stream when it has one, and to the console output otherwise.
func WithErrorOutput(w io.Writer) ConsoleOption {
	return func(opts *ConsoleOptions) error {
		opts.ErrorOutput = w
		return nil
	}
}

// WithLogColors controls whether the prompt is coloured on smart terminals.
func WithLogColors(enabled bool) ConsoleOption {
	return func(opts *ConsoleOptions) error {
		opts.LogColors = enabled
		return nil
	}
}

// WithIgnoreEmptyLines controls whether an empty line keeps Run going or ends it.
func WithIgnoreEmptyLines(ignore bool) ConsoleOption {
	return func(opts *ConsoleOptions) error {
		opts.IgnoreEmptyLines = ignore
		return nil
	}
}

func WithLimits(limits Limits) ConsoleOption {
	return func(opts *ConsoleOptions) error {
		if err := limits.validate(); err != nil {
			return err
		}
		opts.Limits = limits
		return nil
	}
}
