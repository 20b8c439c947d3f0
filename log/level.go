package log

import (
	"fmt"
	"strings"
)

type LogLevel int

const (
	Debug LogLevel = iota
	Info
	Warn
	Error
	Fatal
)

func (l LogLevel) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Letter returns the single-letter level marker used by device style output (I, W, E...).
func (l LogLevel) Letter() string {
	switch l {
	case Debug:
		return "D"
	case Info:
		return "I"
	case Warn:
		return "W"
	case Error:
		return "E"
	case Fatal:
		return "F"
	default:
		return "?"
	}
}

func Parse(level string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG", "D", "VERBOSE":
		return Debug, nil
	case "INFO", "I", "":
		return Info, nil
	case "WARN", "WARNING", "W":
		return Warn, nil
	case "ERROR", "E":
		return Error, nil
	case "FATAL", "F":
		return Fatal, nil
	default:
		return Info, fmt.Errorf("invalid log level: %q", level)
	}
}
