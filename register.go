package cliapi

import (
	"fmt"

	"github.com/mwantia/cliapi/argtable"
	"github.com/mwantia/cliapi/host"
)

// RegisterCommand adds cmd to the registry and to the command host.
// The registry keeps cmd by reference.
func (c *Console) RegisterCommand(cmd *Command) error {
	if err := cmd.validate(c.limits.MaxArgs); err != nil {
		return err
	}

	if c.registry.full() {
		return fmt.Errorf("%w: registry holds %d commands", ErrOutOfMemory, c.registry.capacity)
	}
	if c.registry.find(cmd.Name) != nil {
		return fmt.Errorf("%w: command %q already registered", ErrInvalidArgument, cmd.Name)
	}

	var table *argtable.Table
	if len(cmd.Args) > 0 {
		var err error
		if table, err = buildTable(cmd); err != nil {
			c.log.Error("Failed to build arguments of '%s': %v", cmd.Name, err)
			return err
		}
	}

	if err := c.host.Register(host.Command{
		Name:     cmd.Name,
		Help:     cmd.Help,
		Hint:     cmd.Hint,
		Func:     c.dispatch,
		ArgTable: table,
	}); err != nil {
		if table != nil {
			table.Free()
		}
		c.log.Error("Failed to register command '%s': %v", cmd.Name, err)
		return fmt.Errorf("%w: %w", ErrHostRegistrationFailed, err)
	}

	c.registry.add(record{
		cmd:      cmd,
		table:    table,
		argCount: len(cmd.Args),
	})

	c.log.Debug("Registered command '%s' with %d arguments", cmd.Name, len(cmd.Args))
	return nil
}

// RegisterSimple registers a command that receives its raw argument vector.
// It goes straight to the command host and does not use a registry slot.
func (c *Console) RegisterSimple(name, help string, fn RawHandler) error {
	if name == "" || fn == nil {
		return fmt.Errorf("%w: simple command needs a name and a callback", ErrInvalidArgument)
	}

	if err := c.host.Register(host.Command{
		Name: name,
		Help: help,
		Func: host.Func(fn),
	}); err != nil {
		c.log.Error("Failed to register command '%s': %v", name, err)
		return fmt.Errorf("%w: %w", ErrHostRegistrationFailed, err)
	}

	return nil
}

// RegisterCommands registers each command in order and stops at the first
// failure. Commands registered before the failure stay registered.
func (c *Console) RegisterCommands(cmds []Command) error {
	if len(cmds) == 0 {
		return fmt.Errorf("%w: no commands given", ErrInvalidArgument)
	}

	for i := range cmds {
		if err := c.RegisterCommand(&cmds[i]); err != nil {
			return err
		}
	}

	return nil
}
