package logger

import (
	"io"
	"os"

	"github.com/saransh1220/image-depot/internal/shared/infrastructure/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Option configures New
type Option func(*options)

type options struct {
	writers []io.Writer
}

// WithWriters replaces the default stdout sink
func WithWriters(w ...io.Writer) Option {
	return func(o *options) {
		o.writers = w
	}
}

// New builds a JSON zap logger from cfg. Development mode switches to the
// console encoder and debug level.
func New(cfg config.LogConfig, opts ...Option) *zap.Logger {
	opt := options{writers: []io.Writer{os.Stdout}}
	for _, o := range opts {
		o(&opt)
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zapcore.EncoderConfig{
		MessageKey: "message",

		LevelKey:    "level",
		EncodeLevel: zapcore.CapitalLevelEncoder,

		TimeKey:    "time",
		EncodeTime: zapcore.ISO8601TimeEncoder,

		CallerKey:    "caller",
		EncodeCaller: zapcore.ShortCallerEncoder,

		EncodeDuration: zapcore.StringDurationEncoder,
	}

	var enc zapcore.Encoder
	if cfg.Development {
		level = zapcore.DebugLevel
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	cores := make([]zapcore.Core, 0, len(opt.writers))
	for _, w := range opt.writers {
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(w), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}
