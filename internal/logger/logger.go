// Package logger builds the logr.Logger handed to the puzzle solvers.
package logger

import (
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// Config selects level and output format.
type Config struct {
	Level       string `yaml:"level"`       // debug, info, warn, error
	Encoding    string `yaml:"encoding"`    // console or json
	Development bool   `yaml:"development"` // stack traces on warn, caller info
}

func DefaultConfig() Config {
	return Config{Level: "info", Encoding: EncodingConsole}
}

// ParseLevel maps a level name onto zap's levels.
func ParseLevel(s string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return lvl, errors.Errorf("unknown log level %q", s)
	}
	switch lvl {
	case zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel:
		return lvl, nil
	}
	return lvl, errors.Errorf("unsupported log level %q", s)
}

func (c Config) Validate() error {
	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}
	switch c.Encoding {
	case "", EncodingConsole, EncodingJSON:
		return nil
	}
	return errors.Errorf("unknown log encoding %q", c.Encoding)
}

// New returns a logger writing to stderr. Debug level enables the solvers'
// V(1) output. The returned flush func should be called before exit.
func New(name string, c Config) (logr.Logger, func(), error) {
	return NewWithSink(name, c, zapcore.Lock(os.Stderr))
}

// NewWithSink is New with an explicit destination.
func NewWithSink(name string, c Config, sink zapcore.WriteSyncer) (logr.Logger, func(), error) {
	lvl, err := ParseLevel(c.Level)
	if err != nil {
		return logr.Discard(), func() {}, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	var encoder zapcore.Encoder
	switch c.Encoding {
	case "", EncodingConsole:
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	case EncodingJSON:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		return logr.Discard(), func() {}, errors.Errorf("unknown log encoding %q", c.Encoding)
	}

	opts := []zap.Option{}
	if c.Development {
		opts = append(opts, zap.Development(), zap.AddCaller())
	}
	core := zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(lvl))
	zl := zap.New(core, opts...)

	flush := func() { _ = zl.Sync() }
	return zapr.NewLogger(zl).WithName(name), flush, nil
}
