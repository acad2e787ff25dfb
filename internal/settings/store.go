// Package settings persists user-configured SLA thresholds as a small JSON
// file. The analysis core never reads this store directly: thresholds are
// loaded here and passed into every run explicitly.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"epiclens/internal/tracker"

	"github.com/rs/zerolog/log"
)

// Defaults returns the built-in threshold set used until the user saves
// their own.
func Defaults() tracker.Thresholds {
	return tracker.Thresholds{
		"to do":            14,
		"in progress":      20,
		"code review":      7,
		"testing":          10,
		"blocked":          5,
		tracker.DefaultKey: 15,
	}
}

// Store is a thread-safe JSON-file-backed threshold store.
type Store struct {
	mu   sync.RWMutex
	path string
}

// NewStore creates a store backed by the given file path. The file does not
// need to exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted thresholds, or Defaults when no file exists
// yet. Corrupt files are reported and replaced by defaults rather than
// failing the caller.
func (s *Store) Load() tracker.Thresholds {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", s.path).Msg("Failed to read thresholds file; using defaults")
		}
		return Defaults()
	}

	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Invalid thresholds file; using defaults")
		return Defaults()
	}

	t := make(tracker.Thresholds, len(raw))
	for k, v := range raw {
		t[k] = v
	}
	if _, ok := t[tracker.DefaultKey]; !ok {
		t[tracker.DefaultKey] = Defaults()[tracker.DefaultKey]
	}
	return t
}

// Save validates and persists a threshold set atomically (tmp file +
// rename).
func (s *Store) Save(t tracker.Thresholds) error {
	if err := Validate(t); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode thresholds: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write thresholds: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace thresholds file: %w", err)
	}

	log.Info().Str("path", s.path).Int("entries", len(t)).Msg("Saved SLA thresholds")
	return nil
}

// Validate rejects threshold sets that would make SLA classification
// meaningless.
func Validate(t tracker.Thresholds) error {
	if len(t) == 0 {
		return fmt.Errorf("thresholds are empty")
	}
	if _, ok := t[tracker.DefaultKey]; !ok {
		return fmt.Errorf("thresholds are missing the %q entry", tracker.DefaultKey)
	}
	for status, days := range t {
		if days < 0 {
			return fmt.Errorf("threshold for %q is negative", status)
		}
	}
	return nil
}
