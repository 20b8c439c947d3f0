package cliapi

import "github.com/mwantia/cliapi/argtable"

// dispatch is the host entry point of every declared command.
func (c *Console) dispatch(argv []string) int {
	if len(argv) == 0 {
		return 1
	}

	rec := c.registry.find(argv[0])
	if rec == nil {
		c.log.Error("Command '%s' not found internally", argv[0])
		return 1
	}

	ctx := &Context{
		Argc:     len(argv),
		Argv:     argv,
		Args:     make([]Value, rec.argCount),
		ArgCount: rec.argCount,
		Ctx:      c.runCtx,
		Out:      c.out,
	}

	if rec.table != nil {
		if argtable.Parse(rec.table, argv) > 0 {
			argtable.PrintErrors(c.errOut, rec.table.End(), argv[0])
			return 1
		}

		for i, a := range rec.cmd.Args {
			entry := rec.table.Entry(i)
			v := Value{Kind: a.Kind, Count: entry.Count()}

			switch a.Kind {
			case ArgInt:
				v.Int = entry.Int(0)
			case ArgString:
				v.Str = entry.Str(0)
			case ArgFlag:
				v.Flag = v.Count > 0
			}
			ctx.Args[i] = v
		}
	}

	return rec.cmd.Func(ctx)
}
