package log

import (
	"sort"
	"time"

	"github.com/Invicton-Labs/go-stackerr"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})

	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// Error will add the error's fields as log fields and log the
	// error message at the Error level.
	Error(err error)

	With(args ...interface{}) Logger
	WithOptions(opts ...zap.Option) Logger
	WithError(err error) Logger

	// Sync flushes the log output and the error output.
	Sync() error

	// Config gets the config values that can be used to re-create this logger
	Config() NewInput

	// Clone returns a copy of the logger
	Clone() Logger
}

type logger struct {
	*zap.SugaredLogger
	config  NewInput
	errSink zapcore.WriteSyncer
}

func (l logger) Clone() Logger {
	return logger{
		SugaredLogger: l.SugaredLogger.With(),
		config:        l.config.Clone(),
		errSink:       l.errSink,
	}
}

func (l logger) Config() NewInput {
	return l.config.Clone()
}

func (l logger) Error(err error) {
	if err == nil {
		return
	}
	serr := stackerr.Wrap(err)
	kvp := make([]any, 0, 2*len(serr.Fields()))
	for k, v := range serr.Fields() {
		kvp = append(kvp, k, v)
	}
	l.SugaredLogger.WithOptions(zap.AddCallerSkip(1)).Errorw(err.Error(), kvp...)
}

func (l logger) With(args ...interface{}) Logger {
	return logger{l.SugaredLogger.With(args...), l.config.Clone(), l.errSink}
}

func (l logger) WithOptions(opts ...zap.Option) Logger {
	return logger{l.SugaredLogger.WithOptions(opts...), l.config.Clone(), l.errSink}
}

// WithError will return a new logger with the error message in the "error"
// field and any stackerr fields of the error added as well.
func (l logger) WithError(err error) Logger {
	if err == nil {
		return l
	}
	args := []any{zap.Error(err)}
	if serr, ok := err.(stackerr.Error); ok {
		for k, v := range serr.Fields() {
			args = append(args, k, v)
		}
	}
	return l.With(args...)
}

func (l logger) Sync() error {
	err := l.SugaredLogger.Sync()
	if l.errSink != nil {
		err = multierr.Append(err, l.errSink.Sync())
	}
	return err
}

type NewInput struct {
	Name          string
	Level         zapcore.Level
	IsDevelopment bool
	InitialFields map[string]any
	SkippedFrames int
}

func (ni *NewInput) Clone() NewInput {
	var fields map[string]any
	if ni.InitialFields != nil {
		fields = make(map[string]any, len(ni.InitialFields))
		for k, v := range ni.InitialFields {
			fields[k] = v
		}
	}
	return NewInput{
		Name:          ni.Name,
		Level:         ni.Level,
		IsDevelopment: ni.IsDevelopment,
		InitialFields: fields,
		SkippedFrames: ni.SkippedFrames,
	}
}

func newEncoder(isDevelopment bool) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if isDevelopment {
		// If it's development mode, modify some settings
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}

// New creates a logger that writes to stdout, JSON encoded unless
// IsDevelopment is set.
func New(input NewInput) Logger {
	sink, closeOut, err := zap.Open("stdout")
	if err != nil {
		panic(err)
	}
	errSink, _, err := zap.Open("stderr")
	if err != nil {
		closeOut()
		panic(err)
	}

	buildOpts := []zap.Option{
		zap.ErrorOutput(errSink),
		zap.AddCaller(),
		zap.AddStacktrace(zap.WarnLevel),
	}

	if input.IsDevelopment {
		buildOpts = append(buildOpts, zap.Development())
	} else {
		buildOpts = append(buildOpts, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewSamplerWithOptions(core, time.Second, 100, 100)
		}))
	}

	// Add any initial field as a build option, in a stable order
	if len(input.InitialFields) > 0 {
		keys := make([]string, 0, len(input.InitialFields))
		for k := range input.InitialFields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fs := make([]zap.Field, 0, len(keys))
		for _, k := range keys {
			if f, ok := input.InitialFields[k].(zap.Field); ok {
				f.Key = k
				fs = append(fs, f)
			} else {
				fs = append(fs, zap.Any(k, input.InitialFields[k]))
			}
		}
		buildOpts = append(buildOpts, zap.Fields(fs...))
	}

	if input.SkippedFrames != 0 {
		buildOpts = append(buildOpts, zap.AddCallerSkip(input.SkippedFrames))
	}

	core := zapcore.NewCore(newEncoder(input.IsDevelopment), sink, zap.NewAtomicLevelAt(input.Level))
	zapLogger := zap.New(core, buildOpts...)
	if input.Name != "" {
		zapLogger = zapLogger.Named(input.Name)
	}

	return logger{zapLogger.Sugar(), input.Clone(), errSink}
}

// FromZap wraps an existing zap logger, for example one built on a
// test observer core.
func FromZap(zapLogger *zap.Logger) Logger {
	return logger{
		SugaredLogger: zapLogger.Sugar(),
	}
}
