// Package logger builds the structured zap logger used by the command-line
// tools. Output goes to stderr so reports on stdout stay machine-readable;
// an optional file sink is rotated by lumberjack.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects level, encoding and sinks.
type Options struct {
	Level  string // debug | info | warn | error
	Format string // console | json
	File   string // optional path; empty disables the file sink

	// Out overrides the terminal sink (default os.Stderr). Used by tests.
	Out io.Writer
}

// New returns a logger writing to Out (or stderr) and, when File is set,
// to a size-rotated JSON file. It does not install itself globally.
func New(o Options) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if o.Level != "" {
		var err error
		if lvl, err = zapcore.ParseLevel(o.Level); err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	var enc zapcore.Encoder
	switch o.Format {
	case "", "console":
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("logger: unknown format %q (use console or json)", o.Format)
	}

	out := o.Out
	if out == nil {
		out = os.Stderr
	}
	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.AddSync(out), lvl)}

	if o.File != "" {
		sink := &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    50, // MB
			MaxBackups: 7,
			MaxAge:     14, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(sink), lvl))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
