package log

import (
	"context"
	"errors"
	"testing"

	"github.com/Invicton-Labs/go-stackerr"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return FromZap(zap.New(core)), logs
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Error("a context without a logger should give the default logger")
	}

	l, logs := observed(zapcore.DebugLevel)
	ctx := LogContext(context.Background(), l)
	ctx = ContextWith(ctx, "request", "abc")
	FromContext(ctx).Debugw("hello", "n", 3)

	entries := logs.FilterMessage("hello").All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries; want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if got := fields["request"]; got != "abc" {
		t.Errorf("request field: got %v; want abc", got)
	}
	if got := fields["n"]; got != int64(3) {
		t.Errorf("n field: got %v (%T); want 3", got, got)
	}
}

func TestLevelFiltering(t *testing.T) {
	l, logs := observed(zapcore.InfoLevel)
	l.Debugw("hidden")
	l.Infof("shown %d", 1)
	if got := logs.Len(); got != 1 {
		t.Fatalf("got %d entries; want 1", got)
	}
	if got := logs.All()[0].Message; got != "shown 1" {
		t.Errorf("got %q; want %q", got, "shown 1")
	}
}

func TestWithError(t *testing.T) {
	l, logs := observed(zapcore.DebugLevel)
	err := stackerr.Errorf("out of range").With(map[string]any{
		"index": 4,
	})
	l.WithError(err).Warnw("failed")

	entries := logs.FilterMessage("failed").All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries; want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if _, ok := fields["error"]; !ok {
		t.Error("missing error field")
	}
	if _, ok := fields["index"]; !ok {
		t.Error("missing index field")
	}
}

func TestError(t *testing.T) {
	l, logs := observed(zapcore.DebugLevel)
	l.Error(errors.New("boom"))
	l.Error(nil)
	if got := logs.FilterMessage("boom").FilterLevelExact(zapcore.ErrorLevel).Len(); got != 1 {
		t.Errorf("got %d error entries; want 1", got)
	}
	if got := logs.Len(); got != 1 {
		t.Errorf("got %d entries; want 1", got)
	}
}

func TestNewAndConfig(t *testing.T) {
	input := NewInput{
		Name:          "lists",
		Level:         zapcore.WarnLevel,
		IsDevelopment: true,
		InitialFields: map[string]any{"service": "test"},
	}
	l := New(input)
	cfg := l.Config()
	if cfg.Name != "lists" || cfg.Level != zapcore.WarnLevel || !cfg.IsDevelopment {
		t.Errorf("got config %+v; want %+v", cfg, input)
	}

	// The returned config is a copy
	cfg.InitialFields["service"] = "changed"
	if got := l.Config().InitialFields["service"]; got != "test" {
		t.Errorf("config was shared: got %v", got)
	}
}

func TestSetDefault(t *testing.T) {
	previous := Default()
	defer SetDefault(previous)

	if err := SetDefault(nil); err == nil {
		t.Error("expected an error for a nil logger")
	}

	l, logs := observed(zapcore.DebugLevel)
	if err := SetDefault(l); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Infow("through default")
	if got := logs.FilterMessage("through default").Len(); got != 1 {
		t.Errorf("got %d entries; want 1", got)
	}
}

type failingSyncer struct {
	err error
}

func (f failingSyncer) Write(p []byte) (int, error) {
	return len(p), nil
}

func (f failingSyncer) Sync() error {
	return f.err
}

func TestSyncCombinesErrors(t *testing.T) {
	outErr := errors.New("out failed")
	errOutErr := errors.New("error output failed")
	core := zapcore.NewCore(newEncoder(false), failingSyncer{outErr}, zapcore.DebugLevel)
	l := logger{
		SugaredLogger: zap.New(core).Sugar(),
		errSink:       failingSyncer{errOutErr},
	}

	errs := multierr.Errors(l.Sync())
	if len(errs) != 2 {
		t.Fatalf("got %d errors (%v); want 2", len(errs), errs)
	}
	if !errors.Is(errs[0], outErr) || !errors.Is(errs[1], errOutErr) {
		t.Errorf("got %v; want [%v %v]", errs, outErr, errOutErr)
	}

	// Without an error sink only the log output is synced
	l.errSink = nil
	if err := l.Sync(); !errors.Is(err, outErr) || len(multierr.Errors(err)) != 1 {
		t.Errorf("got %v; want %v", err, outErr)
	}

	if err := FromZap(zap.New(core)).Sync(); !errors.Is(err, outErr) {
		t.Errorf("FromZap: got %v; want %v", err, outErr)
	}
}

func TestSweetenDefaultLogger(t *testing.T) {
	previous := Default()
	defer SetDefault(previous)

	if err := InitDefault(NewInput{
		Name:          "lists",
		Level:         zapcore.WarnLevel,
		InitialFields: map[string]any{"service": "test"},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := SweetenDefaultLogger(map[string]any{"a": 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := Default().Config()
	if got := cfg.InitialFields["a"]; got != 1 {
		t.Errorf("a: got %v; want 1", got)
	}
	if got := cfg.InitialFields["service"]; got != "test" {
		t.Errorf("service: got %v; want test", got)
	}
	if cfg.Name != "lists" || cfg.Level != zapcore.WarnLevel {
		t.Errorf("settings were not kept: got %+v", cfg)
	}
}
