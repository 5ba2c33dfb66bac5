// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package corelog builds the zerolog loggers the consensus packages emit
// through. Each package holds a logger set via its UseLogger function and
// defaults to Disabled; a host binary constructs one logger here and fans
// it out.
package corelog

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Disabled is the no-op logger every package starts with.
var Disabled = zerolog.Nop()

// DefaultLogFile is the rolling log file name used when Config.Filename is
// left empty.
const DefaultLogFile = "auxchaind.log"

// Config selects the logger's output sinks. The zero value logs
// human-readable lines to stderr only.
type Config struct {
	// DisableConsoleLog drops the stderr sink.
	DisableConsoleLog bool `yaml:"disable_console_log"`
	// LogsAsJson switches the console sink to raw JSON on stdout.
	LogsAsJson bool `yaml:"logs_as_json"`
	// FileLoggingEnabled adds a size-rotated file sink; the fields below
	// are ignored when it is false.
	FileLoggingEnabled bool   `yaml:"file_logging_enabled"`
	Directory          string `yaml:"directory"`
	Filename           string `yaml:"filename"`
	// MaxSize is the size in MB at which the log file is rolled.
	MaxSize int `yaml:"max_size"`
	// MaxBackups is the number of rolled files kept.
	MaxBackups int `yaml:"max_backups"`
	// MaxAge is the number of days a rolled file is kept.
	MaxAge int `yaml:"max_age"`
}

// ParseLevel maps a configuration string to a zerolog level, defaulting to
// info for anything unrecognized.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New constructs a logger tagged with the given unit name, filtered to
// logLevel, writing to the sinks config selects.
func New(unit string, logLevel zerolog.Level, config Config) zerolog.Logger {
	var writers []io.Writer
	if !config.DisableConsoleLog {
		if config.LogsAsJson {
			writers = append(writers, os.Stdout)
		} else {
			writers = append(writers, consoleWriter(unit))
		}
	}
	if config.FileLoggingEnabled {
		if w := rollingFileWriter(config); w != nil {
			writers = append(writers, w)
		}
	}

	logger := zerolog.New(io.MultiWriter(writers...)).
		Level(logLevel).
		With().
		Str("app", "auxchaind").
		Timestamp().
		Logger()

	logger.Trace().
		Bool("fileLogging", config.FileLoggingEnabled).
		Bool("jsonLogOutput", config.LogsAsJson).
		Str("logDirectory", config.Directory).
		Str("fileName", config.Filename).
		Msg("logging configured")

	return logger
}

func consoleWriter(unit string) io.Writer {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	out.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s| %s |", i, unit))
	}
	out.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%-6s  ", i)
	}
	return out
}

func rollingFileWriter(config Config) io.Writer {
	if err := os.MkdirAll(config.Directory, 0744); err != nil {
		fmt.Fprintf(os.Stderr, "can't create log directory %q: %v\n", config.Directory, err)
		return nil
	}

	filename := config.Filename
	if filename == "" {
		filename = DefaultLogFile
	}

	return &lumberjack.Logger{
		Filename:   path.Join(config.Directory, filename),
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
	}
}
