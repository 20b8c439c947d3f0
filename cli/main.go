package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwantia/cliapi"
	"github.com/mwantia/cliapi/cmd/builtin"
	"github.com/shayne/yargs"
)

const defaultConfigPath = "cliapi.toml"

type flags struct {
	Config    string `flag:"config" short:"c" help:"Path to the TOML configuration (default: cliapi.toml)"`
	LogLevel  string `flag:"log-level" help:"Log level (debug|info|warn|error)"`
	Transport string `flag:"transport" short:"t" help:"Peripheral kind (uart|usb-cdc|usb-serial-jtag)"`
	Device    string `flag:"device" short:"d" help:"Serial device, the process terminal when empty"`
	Baud      int    `flag:"baud" short:"b" help:"Serial baud rate"`
	Prompt    string `flag:"prompt" help:"Console prompt"`
	NoHistory bool   `flag:"no-history" help:"Do not persist the command history"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 0 && args[0] == consoleCommand {
		args = args[1:]
	}
	if help, llm := helpRequested(args); help {
		fmt.Print(helpText(llm))
		return nil
	}

	result, err := yargs.ParseFlags[flags](args)
	if err != nil {
		return fmt.Errorf("%w\nRun '%s --help' for usage", err, commandName)
	}

	f := result.Flags

	cfg, err := loadConfig(configPath(f), f.Config != "")
	if err != nil {
		return err
	}
	applyFlags(cfg, f)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := cfg.logger()
	if err != nil {
		return err
	}

	store, err := cfg.store()
	if err != nil {
		return fmt.Errorf("failed to create nvs backend: %w", err)
	}
	fs, err := cfg.filesystem()
	if err != nil {
		return fmt.Errorf("failed to create storage backend: %w", err)
	}
	tr, err := cfg.transport()
	if err != nil {
		return err
	}

	console, err := cliapi.New(
		cliapi.WithLogger(logger),
		cliapi.WithStore(store),
		cliapi.WithFilesystem(fs),
		cliapi.WithTransport(tr),
	)
	if err != nil {
		return err
	}

	if err := console.Init(ctx, cfg.console()); err != nil {
		return err
	}
	defer func() {
		if err := console.Deinit(context.Background()); err != nil {
			logger.Error("Failed to finalize console: %v", err)
		}
	}()

	if err := builtin.Register(console, logger.Named("builtin")); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	logger.Info("Console ready")
	if err := console.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func configPath(f flags) string {
	if f.Config != "" {
		return f.Config
	}
	return defaultConfigPath
}

// applyFlags overrides the loaded configuration with explicitly given flags.
func applyFlags(cfg *Config, f flags) {
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.Transport != "" {
		cfg.Transport.Kind = f.Transport
	}
	if f.Device != "" {
		cfg.Transport.Device = f.Device
	}
	if f.Baud > 0 {
		cfg.Transport.Baud = f.Baud
	}
	if f.Prompt != "" {
		cfg.Prompt = f.Prompt
	}
	if f.NoHistory {
		cfg.History = false
	}
}
