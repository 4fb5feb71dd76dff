// Package logger provides logrus-backed implementation of go-home logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/go-home-io/guestkey/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Logger provider implementation.
type provider struct {
	logger *logrus.Logger
	nodeID string
}

// Settings describes logger config record.
type Settings struct {
	Level  string `yaml:"level" default:"info"`
	Format string `yaml:"format" default:"text"`
}

// ConstructLogger has data required for a new logger.
type ConstructLogger struct {
	RawConfig []byte
	NodeID    string
	Output    io.Writer
	ExitFunc  func(int)
}

// NewConsoleLogger constructs a default text logger.
// Used until logger record is loaded from the config.
func NewConsoleLogger() common.ILoggerProvider {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return &provider{logger: l}
}

// NewLoggerProvider constructs a new logger out of config record.
func NewLoggerProvider(ctor *ConstructLogger) (common.ILoggerProvider, error) {
	set := &Settings{Level: "info", Format: "text"}
	if len(ctor.RawConfig) > 0 {
		if err := yaml.Unmarshal(ctor.RawConfig, set); err != nil {
			return nil, errors.Wrap(err, "logger config")
		}
	}

	level, err := logrus.ParseLevel(strings.ToLower(set.Level))
	if err != nil {
		return nil, errors.Wrap(err, "logger level")
	}

	l := logrus.New()
	l.SetLevel(level)

	switch strings.ToLower(set.Format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, &ErrUnknownFormat{Format: set.Format}
	}

	if ctor.Output != nil {
		l.SetOutput(ctor.Output)
	} else {
		l.SetOutput(os.Stdout)
	}

	if ctor.ExitFunc != nil {
		l.ExitFunc = ctor.ExitFunc
	}

	return &provider{
		logger: l,
		nodeID: ctor.NodeID,
	}, nil
}

// Debug sends debug level message.
func (p *provider) Debug(msg string, fields ...string) {
	p.entry(fields...).Debug(msg)
}

// Info sends info level message.
func (p *provider) Info(msg string, fields ...string) {
	p.entry(fields...).Info(msg)
}

// Warn sends warning level message.
func (p *provider) Warn(msg string, fields ...string) {
	p.entry(fields...).Warn(msg)
}

// Error sends error level message.
func (p *provider) Error(msg string, err error, fields ...string) {
	p.entry(fields...).WithError(err).Error(msg)
}

// Fatal sends fatal level message and exits.
func (p *provider) Fatal(msg string, err error, fields ...string) {
	p.entry(fields...).WithError(err).Fatal(msg)
}

// Flush is not needed for logrus, writes are synchronous.
func (p *provider) Flush() {
}

// Converts key-value pairs into logrus fields.
// Dangling key without value is ignored.
func (p *provider) entry(fields ...string) *logrus.Entry {
	fLen := len(fields)
	result := make(logrus.Fields, fLen/2+1)
	for ii := 0; ii+1 < fLen; ii += 2 {
		result[fields[ii]] = fields[ii+1]
	}

	if p.nodeID != "" {
		result["node"] = p.nodeID
	}

	return p.logger.WithFields(result)
}
