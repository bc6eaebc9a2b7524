package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pthm-cable/bunnygarden/config"
)

// ErrNoSave is returned by Slot.Read when nothing has been saved.
var ErrNoSave = errors.New("no saved state")

// Slot is a single named save location, overwritten on each write.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
	Close() error
}

// Open creates the slot backend selected in config.
func Open(cfg config.PersistenceConfig) (Slot, error) {
	switch cfg.Backend {
	case "file":
		return NewFileSlot(cfg.Path), nil
	case "sqlite":
		return OpenSQLiteSlot(cfg.Path, cfg.Slot)
	case "memory":
		return NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("unknown persistence backend %q", cfg.Backend)
	}
}

// FileSlot stores the record as a single JSON file.
type FileSlot struct {
	path string
}

// NewFileSlot creates a slot backed by the file at path.
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

// Read returns the stored bytes or ErrNoSave.
func (s *FileSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSave
		}
		return nil, fmt.Errorf("read save file: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoSave
	}
	return data, nil
}

// Write replaces the file contents via a temp file and rename.
func (s *FileSlot) Write(ctx context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp save: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace save file: %w", err)
	}
	return nil
}

// Clear removes the save file. A missing file is not an error.
func (s *FileSlot) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove save file: %w", err)
	}
	return nil
}

// Close is a no-op for file slots.
func (s *FileSlot) Close() error {
	return nil
}

// MemorySlot keeps the record in memory. Safe for concurrent use.
type MemorySlot struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemorySlot creates an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// Read returns a copy of the stored bytes or ErrNoSave.
func (s *MemorySlot) Read(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, ErrNoSave
	}
	return append([]byte(nil), s.data...), nil
}

// Write stores a copy of data.
func (s *MemorySlot) Write(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}

// Clear drops the stored bytes.
func (s *MemorySlot) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}

// Close is a no-op for memory slots.
func (s *MemorySlot) Close() error {
	return nil
}
