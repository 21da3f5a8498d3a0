// Package snapshot persists captured frame attribute sequences to disk and
// reads them back.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/1broseidon/framekeep/internal/frame"
)

// Sequence is an ordered list of per-window attribute snapshots. The first
// element is the primary snapshot (the window that becomes the first window
// on restart); the rest are secondary snapshots.
type Sequence []frame.Attributes

// Primary returns the head snapshot, or an empty map for an empty sequence.
func (s Sequence) Primary() frame.Attributes {
	if len(s) == 0 {
		return frame.New()
	}
	return s[0]
}

// Secondaries returns the tail of the sequence.
func (s Sequence) Secondaries() Sequence {
	if len(s) <= 1 {
		return nil
	}
	return s[1:]
}

// ErrNotFound means no snapshot file exists yet.
var ErrNotFound = errors.New("no saved frame snapshots")

// ErrCorrupt means the snapshot file exists but cannot be decoded. Callers
// treat it the same as ErrNotFound: no prior state available.
var ErrCorrupt = errors.New("frame snapshot file is not valid")

// DefaultPath returns the standard snapshot file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "framekeep", "frames.json"), nil
}

// Store reads and writes one Sequence at a fixed path. Tracked is the
// attribute key set applied on load, so a tracked-key list that changed since
// the file was written narrows old files instead of invalidating them.
type Store struct {
	Path    string
	Tracked []string
}

// Save serializes the full sequence to the store path, replacing any existing
// content wholesale. The write is a plain truncate-and-write; a crash
// mid-write can leave a file that the next Load reports as corrupt, which
// callers already treat as a cold start.
func (s *Store) Save(seq Sequence) error {
	if seq == nil {
		seq = Sequence{}
	}
	data, err := json.MarshalIndent(seq, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode frame snapshots: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if err := os.WriteFile(s.Path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write frame snapshots: %w", err)
	}
	return nil
}

// Load reads the sequence back and applies the current tracked-key filter to
// every element. Returns ErrNotFound when the file does not exist and
// ErrCorrupt when its content cannot be decoded.
func (s *Store) Load() (Sequence, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.Path)
		}
		return nil, fmt.Errorf("failed to read frame snapshots: %w", err)
	}
	var seq Sequence
	if err := json.Unmarshal(data, &seq); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	out := make(Sequence, 0, len(seq))
	for _, snap := range seq {
		out = append(out, frame.Filter(snap, s.Tracked))
	}
	return out, nil
}
