package log

import "github.com/fatih/color"

var levelColors = map[LogLevel]*color.Color{
	Debug: color.New(color.FgBlue),
	Info:  color.New(color.FgGreen),
	Warn:  color.New(color.FgYellow),
	Error: color.New(color.FgRed),
	Fatal: color.New(color.FgMagenta),
}

// Color returns the colour attached to the given level.
// Colour output is forced on so the writer decides, not the process stdout.
func Color(l LogLevel) *color.Color {
	c, ok := levelColors[l]
	if !ok {
		c = color.New(color.Reset)
	}
	c.EnableColor()
	return c
}
