package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/iqis/logthis/core"
	"github.com/iqis/logthis/formatter"
)

// FileConfig holds configuration for the line-oriented file sink
type FileConfig struct {
	// Path is the log file to append to
	Path string
	// MaxSize is the size in bytes at which the file rotates (0 = no rotation)
	MaxSize int64
	// MaxFiles is the number of rotated files kept as path.1..path.N
	// (default 5 when rotation is enabled)
	MaxFiles int
}

// File writes one formatted line per event, rotating by size. Rotated
// files are named path.1 (newest) through path.N (oldest); the oldest
// is evicted when the shift would exceed MaxFiles. The size check runs
// on the per-event write path, not on a timer.
type File struct {
	mu       sync.Mutex
	f        formatter.Formatter
	path     string
	file     *os.File
	size     int64
	maxSize  int64
	maxFiles int
}

// NewFile creates a file sink, failing fast when the path cannot be
// opened for appending.
func NewFile(f formatter.Formatter, cfg FileConfig) (*File, error) {
	if f == nil {
		return nil, &core.ConfigError{Param: "formatter", Reason: "must not be nil"}
	}
	if cfg.Path == "" {
		return nil, &core.ConfigError{Param: "file path", Reason: "must not be empty"}
	}
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = 5
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	return &File{
		f:        f,
		path:     cfg.Path,
		file:     file,
		size:     info.Size(),
		maxSize:  cfg.MaxSize,
		maxFiles: cfg.MaxFiles,
	}, nil
}

// Receive formats and writes one event, rotating first when the file
// has reached MaxSize.
func (s *File) Receive(evt core.Event) error {
	data, err := s.f.Format(evt)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return fmt.Errorf("file sink %s: closed", s.path)
	}
	if err := s.rotateIfNeeded(); err != nil {
		return err
	}
	n, err := s.file.Write(data)
	s.size += int64(n)
	return err
}

// rotateIfNeeded shifts path.1..N-1 to path.2..N (discarding beyond N),
// renames the live file to path.1, and reopens a fresh file.
func (s *File) rotateIfNeeded() error {
	if s.maxSize <= 0 || s.size < s.maxSize {
		return nil
	}

	if err := s.file.Sync(); err != nil {
		return err
	}
	if err := s.file.Close(); err != nil {
		return err
	}

	for i := s.maxFiles - 1; i >= 1; i-- {
		older := fmt.Sprintf("%s.%d", s.path, i)
		if _, err := os.Stat(older); err != nil {
			continue
		}
		if err := os.Rename(older, fmt.Sprintf("%s.%d", s.path, i+1)); err != nil {
			return fmt.Errorf("rotation shift failed: %w", err)
		}
	}
	if err := os.Rename(s.path, s.path+".1"); err != nil {
		// Keep writing to the old file rather than lose events.
		file, openErr := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if openErr != nil {
			return fmt.Errorf("rotation failed: %v, reopen failed: %v", err, openErr)
		}
		s.file = file
		return err
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	s.file = file
	s.size = 0
	return nil
}

// Flush syncs the file to disk. Lines are written per event, so there
// is nothing buffered beyond the OS page cache.
func (s *File) Flush(force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	return s.file.Sync()
}

// Close syncs and closes the file. Further Receive calls fail.
func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	file := s.file
	s.file = nil
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
