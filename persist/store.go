package persist

import (
	"context"
	"errors"
	"log/slog"
)

// Store is the best-effort boundary around a Slot. Failures are logged and
// reported as "no data" or "save skipped"; they never reach the caller as errors.
type Store struct {
	slot Slot
}

// NewStore wraps a slot.
func NewStore(slot Slot) *Store {
	return &Store{slot: slot}
}

// Save writes the record. Returns false if the save was skipped.
func (s *Store) Save(ctx context.Context, rec *Record) bool {
	if s == nil || s.slot == nil {
		return false
	}
	data, err := Marshal(rec)
	if err != nil {
		slog.Error("save skipped", "error", err)
		return false
	}
	if err := s.slot.Write(ctx, data); err != nil {
		slog.Error("save skipped", "error", err)
		return false
	}
	return true
}

// Load reads the record. Returns false when nothing usable is stored.
func (s *Store) Load(ctx context.Context) (*Record, bool) {
	if s == nil || s.slot == nil {
		return nil, false
	}
	data, err := s.slot.Read(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoSave) {
			slog.Error("failed to load saved state", "error", err)
		}
		return nil, false
	}
	rec, err := Unmarshal(data)
	if err != nil {
		slog.Error("saved state is corrupt, starting fresh", "error", err)
		return nil, false
	}
	return rec, true
}

// Clear removes the stored record. Returns false if the clear failed.
func (s *Store) Clear(ctx context.Context) bool {
	if s == nil || s.slot == nil {
		return false
	}
	if err := s.slot.Clear(ctx); err != nil {
		slog.Error("failed to clear saved state", "error", err)
		return false
	}
	return true
}

// Close releases the slot.
func (s *Store) Close() error {
	if s == nil || s.slot == nil {
		return nil
	}
	return s.slot.Close()
}
