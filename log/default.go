package log

import (
	"sync"

	"github.com/Invicton-Labs/go-stackerr"
	"go.uber.org/zap/zapcore"
)

var defaultLogger Logger
var defaultLoggerLock sync.Mutex

var Debugf func(template string, args ...interface{})
var Infof func(template string, args ...interface{})
var Warnf func(template string, args ...interface{})
var Errorf func(template string, args ...interface{})

var Debugw func(msg string, keysAndValues ...interface{})
var Infow func(msg string, keysAndValues ...interface{})
var Warnw func(msg string, keysAndValues ...interface{})
var Errorw func(msg string, keysAndValues ...interface{})

var Error func(err error)

var With func(args ...interface{}) Logger
var WithError func(err error) Logger

func init() {
	if err := InitDefault(NewInput{
		Level: zapcore.InfoLevel,
	}); err != nil {
		panic(err)
	}
}

// InitDefault will create a new logger with the given settings
// and will set it as the default global logger. This function
// IS NOT thread-safe and cannot be used while other routines
// are using the existing global default logger.
func InitDefault(input NewInput) stackerr.Error {
	return SetDefault(New(input))
}

// SetDefault will set an existing logger as the default global logger,
// with the same restrictions as InitDefault.
func SetDefault(l Logger) stackerr.Error {
	if l == nil {
		return stackerr.Errorf("cannot set a nil default logger")
	}

	defaultLoggerLock.Lock()
	defer defaultLoggerLock.Unlock()

	defaultLogger = l

	Debugf = defaultLogger.Debugf
	Infof = defaultLogger.Infof
	Warnf = defaultLogger.Warnf
	Errorf = defaultLogger.Errorf

	Debugw = defaultLogger.Debugw
	Infow = defaultLogger.Infow
	Warnw = defaultLogger.Warnw
	Errorw = defaultLogger.Errorw

	Error = defaultLogger.Error

	With = defaultLogger.With
	WithError = defaultLogger.WithError
	return nil
}

// Default returns the current default logger.
func Default() Logger {
	defaultLoggerLock.Lock()
	defer defaultLoggerLock.Unlock()
	return defaultLogger
}

// SweetenDefaultLogger will add fields to the default logger.
func SweetenDefaultLogger(fields map[string]any) stackerr.Error {
	input := Default().Config()
	if input.InitialFields == nil {
		input.InitialFields = map[string]any{}
	}
	for k, v := range fields {
		input.InitialFields[k] = v
	}
	return InitDefault(input)
}
