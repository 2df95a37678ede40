package log

import "context"

type nopLogger struct{}

// NewNop returns a Logger that discards everything. Intended for tests.
func NewNop() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(ctx context.Context, args ...interface{})                    {}
func (nopLogger) Debugf(ctx context.Context, template string, args ...interface{})  {}
func (nopLogger) Info(ctx context.Context, args ...interface{})                     {}
func (nopLogger) Infof(ctx context.Context, template string, args ...interface{})   {}
func (nopLogger) Warn(ctx context.Context, args ...interface{})                     {}
func (nopLogger) Warnf(ctx context.Context, template string, args ...interface{})   {}
func (nopLogger) Error(ctx context.Context, args ...interface{})                    {}
func (nopLogger) Errorf(ctx context.Context, template string, args ...interface{})  {}
func (nopLogger) Fatal(ctx context.Context, args ...interface{})                    {}
func (nopLogger) Fatalf(ctx context.Context, template string, args ...interface{})  {}
func (nopLogger) DPanic(ctx context.Context, args ...interface{})                   {}
func (nopLogger) DPanicf(ctx context.Context, template string, args ...interface{}) {}
func (nopLogger) Panic(ctx context.Context, args ...interface{})                    {}
func (nopLogger) Panicf(ctx context.Context, template string, args ...interface{})  {}
