// Package logging provides per-invocation file logging for the cloudtools
// binaries. Each process run gets a session ID and appends to a single
// log file under ~/.cloudtools/logs, keeping stdout free for command
// output.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger writes structured log lines for one component. All levels write
// unconditionally; there is no filtering.
type Logger struct {
	sessionID string
	component string
	file      *os.File
	logger    *log.Logger
	mu        sync.Mutex
	closeOnce sync.Once
}

var (
	sessionID     string
	sessionIDOnce sync.Once

	logDir   string
	initOnce sync.Once
	initErr  error
)

// SessionID returns the process-wide session ID, generating it on first use.
func SessionID() string {
	sessionIDOnce.Do(func() {
		sessionID = uuid.New().String()
	})
	return sessionID
}

func initLogDir() error {
	initOnce.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			initErr = fmt.Errorf("failed to get home directory: %w", err)
			return
		}
		logDir = filepath.Join(home, ".cloudtools", "logs")
		if err := os.MkdirAll(logDir, 0750); err != nil {
			initErr = fmt.Errorf("failed to create log directory: %w", err)
		}
	})
	return initErr
}

// New creates a logger for the named component. The logger appends to
// ~/.cloudtools/logs/<session-id>-cloudtools.log; if that file cannot be
// opened it falls back to stderr and returns the underlying error so the
// caller can warn about degraded logging.
func New(component string) (*Logger, error) {
	if err := initLogDir(); err != nil {
		return fallback(component, err), err
	}

	path := filepath.Join(logDir, fmt.Sprintf("%s-cloudtools.log", SessionID()))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fallback(component, fmt.Errorf("failed to open log file: %w", err)), err
	}

	return &Logger{
		sessionID: SessionID(),
		component: component,
		file:      file,
		logger:    log.New(file, "", 0),
	}, nil
}

func fallback(component string, err error) *Logger {
	logger := log.New(os.Stderr, fmt.Sprintf("[%s] ", component), log.LstdFlags)
	logger.Printf("file logging unavailable, using stderr: %v", err)
	return &Logger{
		sessionID: SessionID(),
		component: component,
		logger:    logger,
	}
}

func (l *Logger) write(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ts := time.Now().Format("2006-01-02 15:04:05.000")
	l.logger.Printf("[%s] [%s] [%s] %s", ts, l.component, level, fmt.Sprintf(format, v...))
}

// Debugf logs a debug-level message.
func (l *Logger) Debugf(format string, v ...interface{}) { l.write("DEBUG", format, v...) }

// Infof logs an info-level message.
func (l *Logger) Infof(format string, v ...interface{}) { l.write("INFO", format, v...) }

// Warnf logs a warning-level message.
func (l *Logger) Warnf(format string, v ...interface{}) { l.write("WARN", format, v...) }

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, v ...interface{}) { l.write("ERROR", format, v...) }

// Close closes the underlying file. Safe to call multiple times.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}

// Dir returns the log directory, creating it if needed.
func Dir() (string, error) {
	if err := initLogDir(); err != nil {
		return "", err
	}
	return logDir, nil
}

// LogPath returns the path of the active session log file, or empty when
// running in stderr fallback mode.
func (l *Logger) LogPath() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}
