package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	mu     *sync.Mutex
	writer io.Writer
	output io.Writer

	Name  string
	Level LogLevel
	start time.Time

	TimeFormat  string
	DeviceStyle bool // "I (1234) name: message" lines, timed in ms since creation
	File        string
	NoColor     bool
	JSON        bool
	NoTerminal  bool
	Rotation    *LoggerRotation
}

type LoggerRotation struct {
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service,omitempty"`
	Message   string `json:"message"`
}

func NewLogger(name string, level LogLevel, file string, noTerminal bool) *Logger {
	return NewLoggerWriter(name, level, os.Stdout, file, noTerminal)
}

// NewLoggerWriter behaves like NewLogger but sends terminal output to w.
func NewLoggerWriter(name string, level LogLevel, w io.Writer, file string, noTerminal bool) *Logger {
	l := &Logger{
		mu:         &sync.Mutex{},
		output:     w,
		Name:       name,
		Level:      level,
		File:       file,
		NoTerminal: noTerminal,
		start:      time.Now(),

		TimeFormat: "2006-01-02 15:04:05",
		Rotation: &LoggerRotation{
			MaxSize:    16,
			MaxBackups: 3,
			MaxAge:     16,
			Compress:   false,
		},
	}

	l.setupWriter()

	return l
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	l := NewLoggerWriter("", Fatal+1, io.Discard, "", false)
	l.NoColor = true
	return l
}

func (l *Logger) setupWriter() {
	var writers []io.Writer

	if !l.NoTerminal && l.output != nil {
		writers = append(writers, l.output)
	}

	if l.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   l.File,
			MaxSize:    l.Rotation.MaxSize,
			MaxBackups: l.Rotation.MaxBackups,
			MaxAge:     l.Rotation.MaxAge,
			Compress:   l.Rotation.Compress,
		}
		writers = append(writers, fileWriter)
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	l.writer = io.MultiWriter(writers...)
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	if level < l.Level {
		return
	}

	timestamp := time.Now().Format(l.TimeFormat)
	formattedMsg := fmt.Sprintf(msg, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.JSON {
		entry := logEntry{
			Timestamp: timestamp,
			Level:     level.String(),
			Message:   formattedMsg,
		}
		if l.Name != "" {
			entry.Service = l.Name
		}

		jsonBytes, _ := json.Marshal(entry)
		fmt.Fprintf(l.writer, "%s\n", jsonBytes)
	} else {
		var line string
		if l.DeviceStyle {
			line = fmt.Sprintf("%s (%d)", level.Letter(), time.Since(l.start).Milliseconds())
			if l.Name != "" {
				line = fmt.Sprintf("%s %s:", line, l.Name)
			}
		} else {
			line = fmt.Sprintf("[%s] %-5s", timestamp, level)
			if l.Name != "" {
				line = fmt.Sprintf("%s [%s]", line, l.Name)
			}
		}
		line = fmt.Sprintf("%s %s", line, formattedMsg)

		if !l.NoTerminal && !l.NoColor {
			fmt.Fprintln(l.writer, Color(level).Sprint(line))
		} else {
			fmt.Fprintln(l.writer, line)
		}
	}

	if level == Fatal {
		os.Exit(1)
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(Debug, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(Info, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(Warn, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(Error, msg, args...)
}

func (l *Logger) Fatal(msg string, args ...any) {
	l.log(Fatal, msg, args...)
}

func (l *Logger) Named(name string) *Logger {
	full := name
	if l.Name != "" {
		full = fmt.Sprintf("%s/%s", l.Name, name)
	}

	return &Logger{
		mu:     l.mu,
		writer: l.writer, // Share the same writer
		output: l.output,

		Name:  full,
		Level: l.Level,
		start: l.start,

		TimeFormat:  l.TimeFormat,
		DeviceStyle: l.DeviceStyle,
		File:        l.File,
		NoColor:     l.NoColor,
		NoTerminal:  l.NoTerminal,
		JSON:        l.JSON,
		Rotation:    l.Rotation,
	}
}
