// SPDX-License-Identifier: AGPL-3.0-only

package commands

import (
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	dslog "github.com/grafana/dskit/log"
)

// LoggerConfig holds the global logging flags and the logger built from them.
type LoggerConfig struct {
	level  dslog.Level
	format string

	out    io.Writer
	logger log.Logger
}

// Register the logging flags. It must be called before any other command registers,
// so that its PreAction builds the logger first.
func (l *LoggerConfig) Register(app *kingpin.Application, envVars EnvVarNames) {
	app.PreAction(l.setup)

	app.Flag("log.level", "Only log messages with the given severity or above. Valid levels: [debug, info, warn, error]").
		Envar(envVars.LogLevel).Default("info").SetValue(&l.level)
	app.Flag("log.format", "Output log messages in the given format. Valid formats: [logfmt, json]").
		Envar(envVars.LogFormat).Default(dslog.LogfmtFormat).EnumVar(&l.format, dslog.LogfmtFormat, dslog.JSONFormat)
}

func (l *LoggerConfig) setup(_ *kingpin.ParseContext) error {
	out := l.out
	if out == nil {
		out = log.NewSyncWriter(os.Stderr)
	}
	l.logger = level.NewFilter(dslog.NewGoKitWithWriter(l.format, out), l.level.Option)
	return nil
}

// Logger returns the configured logger, or a no-op logger before flags are parsed.
func (l *LoggerConfig) Logger() log.Logger {
	if l.logger == nil {
		return log.NewNopLogger()
	}
	return l.logger
}
