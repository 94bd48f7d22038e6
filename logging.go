package lumen

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		debug:  debug,
		prefix: prefix,
		out:    log.New(os.Stdout, "", flags),
		err:    log.New(os.Stderr, "", flags),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) prefixf(level string, format string, args ...any) string {
	if l.prefix != "" {
		return fmt.Sprintf("[%s] %s: %s", l.prefix, level, fmt.Sprintf(format, args...))
	}
	return fmt.Sprintf("%s: %s", level, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.out.Print(l.prefixf("DEBUG", format, args...))
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.out.Print(l.prefixf("INFO", format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.err.Print(l.prefixf("WARN", format, args...))
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.err.Print(l.prefixf("ERROR", format, args...))
}

// ThrottledLogger drops Warnf/Errorf lines beyond a rate, so a caller that
// keeps sending bad queries every frame cannot flood the log.
type ThrottledLogger struct {
	Logger
	limiter *rate.Limiter
	mu      sync.Mutex
	dropped int
}

func NewThrottledLogger(inner Logger, every time.Duration, burst int) *ThrottledLogger {
	return &ThrottledLogger{
		Logger:  inner,
		limiter: rate.NewLimiter(rate.Every(every), burst),
	}
}

func (l *ThrottledLogger) allow() (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.limiter.Allow() {
		l.dropped++
		return false, 0
	}
	dropped := l.dropped
	l.dropped = 0
	return true, dropped
}

func (l *ThrottledLogger) Warnf(format string, args ...any) {
	ok, dropped := l.allow()
	if !ok {
		return
	}
	if dropped > 0 {
		l.Logger.Warnf("%d similar messages suppressed", dropped)
	}
	l.Logger.Warnf(format, args...)
}

func (l *ThrottledLogger) Errorf(format string, args ...any) {
	ok, dropped := l.allow()
	if !ok {
		return
	}
	if dropped > 0 {
		l.Logger.Warnf("%d similar messages suppressed", dropped)
	}
	l.Logger.Errorf(format, args...)
}

// Dropped returns how many lines are waiting to be reported as suppressed.
func (l *ThrottledLogger) Dropped() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

// LoggingModule installs a default logger as a resource.
type LoggingModule struct {
	Prefix string
	Debug  bool
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewDefaultLogger(m.Prefix, m.Debug))
}

type nopLogger struct{}

func NewNopLogger() Logger { return &nopLogger{} }

func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
// Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
