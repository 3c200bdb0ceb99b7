// Package pmset acquires raw power-management log text, either from
// the pmset utility itself or from a saved log file.
package pmset

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"batglance/internal/config"
)

// DefaultCommand is the pmset binary used when none is configured.
const DefaultCommand = "pmset"

// Source yields the raw text of the power log. Callers treat a failed
// read as an empty log; the analyzer is total over empty input.
type Source interface {
	Read(ctx context.Context) (string, error)
	Describe() string
}

// NewSource picks a source based on configuration: a saved log file
// when one is set, otherwise the pmset subprocess.
func NewSource(cfg *config.Config) Source {
	if cfg != nil && cfg.LogFile != "" {
		return NewFileSource(cfg.LogFile)
	}
	path := DefaultCommand
	if cfg != nil && cfg.PmsetPath != "" {
		path = cfg.PmsetPath
	}
	return NewCommandSource(path)
}

// CommandSource shells out to `pmset -g log`.
type CommandSource struct {
	path string
}

// NewCommandSource creates a source running the given pmset binary.
func NewCommandSource(path string) *CommandSource {
	if path == "" {
		path = DefaultCommand
	}
	return &CommandSource{path: path}
}

// Read runs the subprocess and returns its output.
func (s *CommandSource) Read(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, s.path, "-g", "log").Output()
	if err != nil {
		return "", fmt.Errorf("run %s -g log: %w", s.path, err)
	}
	return string(out), nil
}

// Describe returns a human-readable description of the source.
func (s *CommandSource) Describe() string {
	return fmt.Sprintf("%s -g log", s.path)
}

// FileSource reads a previously saved power log from disk. It exists
// for working from captured logs; the file can be watched so changes
// trigger a re-analysis.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading the given file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Read returns the file contents.
func (s *FileSource) Read(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("read log file: %w", err)
	}
	return string(data), nil
}

// Describe returns a human-readable description of the source.
func (s *FileSource) Describe() string {
	return fmt.Sprintf("file %s", s.path)
}

// Path returns the watched file path.
func (s *FileSource) Path() string {
	return s.path
}
