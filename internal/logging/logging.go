package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Fields carries structured context attached to a log entry.
type Fields map[string]interface{}

// Level is the minimum severity a logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

var (
	mu       sync.Mutex
	out      io.Writer = os.Stderr
	minLevel           = levelFromEnv()
)

func levelFromEnv() Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return LevelDebug
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetOutput redirects log output. Intended for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Logger emits structured JSON log lines tagged with a component name.
type Logger struct {
	component string
}

// New creates a logger for the given component.
func New(component string) *Logger {
	return &Logger{component: component}
}

func (l *Logger) Debug(msg string, fields Fields) { emit(LevelDebug, "debug", l.component, msg, fields) }
func (l *Logger) Info(msg string, fields Fields)  { emit(LevelInfo, "info", l.component, msg, fields) }
func (l *Logger) Error(msg string, fields Fields) { emit(LevelError, "error", l.component, msg, fields) }

// Fatal logs at error level and exits the process.
func (l *Logger) Fatal(msg string, fields Fields) {
	emit(LevelError, "fatal", l.component, msg, fields)
	os.Exit(1)
}

// Infof is a convenience for unstructured messages outside request paths.
func Infof(format string, args ...interface{}) {
	emit(LevelInfo, "info", "", fmt.Sprintf(format, args...), nil)
}

func emit(level Level, label, component, msg string, fields Fields) {
	if level < minLevel {
		return
	}

	entry := make(map[string]interface{}, len(fields)+4)
	for k, v := range fields {
		entry[k] = v
	}
	entry["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = label
	entry["msg"] = msg
	if component != "" {
		entry["component"] = component
	}

	line, err := json.Marshal(entry)
	if err != nil {
		line = []byte(fmt.Sprintf(`{"level":%q,"msg":%q}`, label, msg))
	}

	mu.Lock()
	defer mu.Unlock()
	out.Write(append(line, '\n'))
}
