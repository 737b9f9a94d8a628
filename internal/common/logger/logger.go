package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Logger writes one JSON object per line to stdout. Logging is
// fire-and-forget: it never fails or blocks the calling operation.
type Logger struct{ service string }

func New(service string) *Logger { return &Logger{service: service} }

func (l *Logger) log(level, action, msg string, fields map[string]any, err error) {
	entry := map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"level":     level,
		"service":   l.service,
		"action":    action,
		"message":   msg,
		"hostname":  hostname(),
	}
	if fields != nil {
		for k, v := range fields {
			entry[k] = v
		}
	}
	if err != nil {
		entry["error"] = map[string]any{"msg": err.Error(), "stack": fmt.Sprintf("%T", err)}
	}
	_ = json.NewEncoder(os.Stdout).Encode(entry)
}

// Fine records a state-changing operation that succeeded.
func (l *Logger) Fine(action, msg string, fields map[string]any) {
	l.log("FINE", action, msg, fields, nil)
}

// Warn records an operation rejected by a precondition check.
func (l *Logger) Warn(action, msg string, fields map[string]any) {
	l.log("WARNING", action, msg, fields, nil)
}

func (l *Logger) Info(action, msg string, fields map[string]any) {
	l.log("INFO", action, msg, fields, nil)
}

func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.log("ERROR", action, action, fields, err)
}

func hostname() string { h, _ := os.Hostname(); return h }
