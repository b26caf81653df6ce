package logger

import "log/slog"

// Interface is the key/value logger injected into the gateway client and the CLI.
type Interface interface {
	// Named scopes every record to a component, e.g. "ninepay".
	Named(component string) Interface

	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

type slogAdapter struct {
	base *slog.Logger
}

// NewLogger wraps the package logger configured by Init.
func NewLogger() Interface {
	return slogAdapter{base: Get()}
}

// NewLoggerWithSlog wraps l, falling back to the package logger when l is nil.
func NewLoggerWithSlog(l *slog.Logger) Interface {
	if l == nil {
		return NewLogger()
	}
	return slogAdapter{base: l}
}

func (a slogAdapter) Named(component string) Interface {
	return slogAdapter{base: a.base.With("component", component)}
}

func (a slogAdapter) Debugw(msg string, keysAndValues ...any) {
	a.base.Debug(msg, keysAndValues...)
}

func (a slogAdapter) Infow(msg string, keysAndValues ...any) {
	a.base.Info(msg, keysAndValues...)
}

func (a slogAdapter) Warnw(msg string, keysAndValues ...any) {
	a.base.Warn(msg, keysAndValues...)
}

func (a slogAdapter) Errorw(msg string, keysAndValues ...any) {
	a.base.Error(msg, keysAndValues...)
}
