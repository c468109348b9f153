// Package applog appends caller-formatted text to files in a log directory.
//
// The logger imposes no structure: no timestamp, no newline, no separator.
// Writes are not serialised in-process; concurrent appends to one file rely
// on O_APPEND.
package applog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidName is returned when a target file name would escape the log directory.
var ErrInvalidName = errors.New("invalid log file name")

// Logger appends text to files inside Dir.
type Logger struct {
	Dir         string
	DefaultFile string
}

// New returns a Logger writing to dir, with defaultFile as the AppendLog target.
func New(dir, defaultFile string) *Logger {
	return &Logger{Dir: dir, DefaultFile: defaultFile}
}

// AppendLog appends text to the default log file.
func (l *Logger) AppendLog(ctx context.Context, text string) error {
	return l.AppendLogTo(ctx, l.DefaultFile, text)
}

// AppendLogTo appends text to Dir/filename, creating Dir and the file as
// needed. Filesystem errors are returned wrapped, so errors.Is against
// fs.ErrPermission and friends still works.
func (l *Logger) AppendLogTo(ctx context.Context, filename, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validName(filename); err != nil {
		return err
	}

	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return fmt.Errorf("create log dir %q: %w", l.Dir, err)
	}

	path := filepath.Join(l.Dir, filename)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %q: %w", path, err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return fmt.Errorf("append to %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", path, err)
	}
	return nil
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
