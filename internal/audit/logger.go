package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/iam-policy-generator/internal/config"
)

// Outcomes recorded for a generation request
const (
	OutcomeGenerated = "generated"
	OutcomeEmpty     = "empty"
	OutcomeError     = "error"
)

// Entry represents an audit log entry for one policy generation
type Entry struct {
	Timestamp       time.Time `json:"timestamp"`
	RequestID       string    `json:"requestId"`
	ClientID        string    `json:"clientId,omitempty"`
	Source          string    `json:"source"` // "cli" or "http"
	Resources       []string  `json:"resources,omitempty"`
	Actions         []string  `json:"actions,omitempty"`
	Statements      int       `json:"statements"`
	PermissionCodes int       `json:"permissionCodes"`
	Scope           string    `json:"scope,omitempty"`
	Outcome         string    `json:"outcome"`
	DurationMs      int64     `json:"durationMs"`
	StatusCode      int       `json:"statusCode,omitempty"`
	ErrorMsg        string    `json:"error,omitempty"`
}

// Logger is the interface for audit logging
type Logger interface {
	Log(entry *Entry) error
	Close() error
}

// JSONLogger writes audit logs in JSON lines format
type JSONLogger struct {
	mu      sync.Mutex
	writers []io.Writer
	file    *os.File
	enabled bool
}

// NewLogger creates a new audit logger based on configuration
func NewLogger(cfg *config.AuditConfig) (*JSONLogger, error) {
	logger := &JSONLogger{
		enabled: cfg.Enabled,
		writers: []io.Writer{},
	}

	if !cfg.Enabled {
		return logger, nil
	}

	switch cfg.Output {
	case "file":
		if err := logger.openFile(cfg.FilePath); err != nil {
			return nil, err
		}
	case "both":
		logger.writers = append(logger.writers, os.Stdout)
		if err := logger.openFile(cfg.FilePath); err != nil {
			return nil, err
		}
	default:
		logger.writers = append(logger.writers, os.Stdout)
	}

	return logger, nil
}

// NewWriterLogger creates an enabled logger that writes to w
func NewWriterLogger(w io.Writer) *JSONLogger {
	return &JSONLogger{
		enabled: true,
		writers: []io.Writer{w},
	}
}

func (l *JSONLogger) openFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log file: %w", err)
	}
	l.file = file
	l.writers = append(l.writers, file)
	return nil
}

// Log writes an audit entry
func (l *JSONLogger) Log(entry *Entry) error {
	if !l.enabled || len(l.writers) == 0 {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, w := range l.writers {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write audit entry: %w", err)
		}
	}

	return nil
}

// Close closes the audit logger
func (l *JSONLogger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// NewGenerationEntry creates an audit entry for a completed generation.
// The outcome is "empty" when no statement was produced.
func NewGenerationEntry(requestID, clientID, source string, resources, actions []string, statements, permissionCodes int, scope string, duration time.Duration) *Entry {
	outcome := OutcomeGenerated
	if statements == 0 {
		outcome = OutcomeEmpty
	}
	return &Entry{
		Timestamp:       time.Now().UTC(),
		RequestID:       requestID,
		ClientID:        clientID,
		Source:          source,
		Resources:       resources,
		Actions:         actions,
		Statements:      statements,
		PermissionCodes: permissionCodes,
		Scope:           scope,
		Outcome:         outcome,
		DurationMs:      duration.Milliseconds(),
	}
}

// NewErrorEntry creates an audit entry for a generation that failed
func NewErrorEntry(requestID, clientID, source, errMsg string, duration time.Duration, statusCode int) *Entry {
	return &Entry{
		Timestamp:  time.Now().UTC(),
		RequestID:  requestID,
		ClientID:   clientID,
		Source:     source,
		Outcome:    OutcomeError,
		DurationMs: duration.Milliseconds(),
		StatusCode: statusCode,
		ErrorMsg:   errMsg,
	}
}
