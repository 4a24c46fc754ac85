package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/kingrea/singleton-contextmenu/internal/config"
)

const (
	tailCapacity = 64

	maxLogSizeMB  = 8
	maxLogBackups = 3
)

// Logger appends timestamped lines to .contextmenu/logs/contextmenu.log so
// menu activity can be inspected after the terminal closes. The most recent
// lines are also kept in memory for the activity pane. The file is rotated
// once it grows past maxLogSizeMB.
type Logger struct {
	file io.WriteCloser
	mu   sync.Mutex
	tail []string
}

// New creates (or reuses) the log file for the current project directory.
func New(projectDir string) (*Logger, error) {
	logDir := filepath.Join(projectDir, config.Dir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	return &Logger{file: &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "contextmenu.log"),
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
	}}, nil
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Printf writes a single timestamped line to the log file.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	line = strings.TrimRight(line, "\n")
	timestamp := time.Now().Format(time.RFC3339)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.tail = append(l.tail, line)
	if len(l.tail) > tailCapacity {
		l.tail = l.tail[len(l.tail)-tailCapacity:]
	}
	if l.file != nil {
		fmt.Fprintf(l.file, "[%s] %s\n", timestamp, line)
	}
}

// Tail returns up to maxLines of the most recent lines, oldest first.
func (l *Logger) Tail(maxLines int) []string {
	if l == nil || maxLines <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	lines := l.tail
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return append([]string(nil), lines...)
}
