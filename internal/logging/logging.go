// Package logging adapts zerolog to soocial.Logger.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fivetwenty-io/soocial/pkg/soocial"
)

// New returns a zerolog logger writing to out at the given level. Unknown
// levels fall back to info.
func New(out io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(out).With().Timestamp().Logger().Level(lvl)
}

// NewConsole is New with human readable output.
func NewConsole(out io.Writer, level string) zerolog.Logger {
	return New(zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}, level)
}

// Adapter implements soocial.Logger on top of zerolog.
type Adapter struct {
	logger zerolog.Logger
}

var _ soocial.Logger = (*Adapter)(nil)

// NewAdapter wraps logger.
func NewAdapter(logger zerolog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

func (a *Adapter) Debug(msg string, fields map[string]interface{}) {
	a.logger.Debug().Fields(fields).Msg(msg)
}

func (a *Adapter) Info(msg string, fields map[string]interface{}) {
	a.logger.Info().Fields(fields).Msg(msg)
}

func (a *Adapter) Warn(msg string, fields map[string]interface{}) {
	a.logger.Warn().Fields(fields).Msg(msg)
}

func (a *Adapter) Error(msg string, fields map[string]interface{}) {
	a.logger.Error().Fields(fields).Msg(msg)
}
