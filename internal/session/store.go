// Package session persists the mutable working data of one processing
// session as a JSON document on disk, keyed by content fingerprint. The
// pipeline orchestrator is the only writer for a given fingerprint; clients
// mutate records through whole-record read-modify-write at the API boundary.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/textwaves/censor-api/internal/profanity"
)

// ErrSessionNotFound is returned when no session exists for a fingerprint
var ErrSessionNotFound = errors.New("session not found")

// Subtitle is one editable subtitle line. Text carries the masked form shown
// to the user, RawText the original transcription used to recompute beeps.
type Subtitle struct {
	ID         int     `json:"id"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	RawText    string  `json:"raw_text"`
	Confidence float64 `json:"confidence"`
}

// VideoInfo is write-once metadata captured at transcription time
type VideoInfo struct {
	Filename string  `json:"filename"`
	Duration float64 `json:"duration"`
}

// Record is the whole working state for one fingerprint
type Record struct {
	VideoHash      string               `json:"video_hash"`
	VideoPath      string               `json:"video_path"`
	Subtitles      []Subtitle           `json:"subtitles"`
	VideoInfo      VideoInfo            `json:"video_info"`
	ForbiddenWords []string             `json:"forbidden_words"`
	BeepIntervals  []profanity.Interval `json:"beep_intervals"`
}

// Store reads and writes session records under a base directory
type Store struct {
	dir string
}

// NewStore creates a session store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the on-disk location of a fingerprint's session file
func (s *Store) Path(hash string) string {
	return filepath.Join(s.dir, fmt.Sprintf("session_%s.json", hash))
}

// Save writes the whole record, replacing any previous content. The write
// goes through a temp file and rename so readers never observe a torn file.
func (s *Store) Save(record *Record) error {
	if record.VideoHash == "" {
		return fmt.Errorf("session record has no video hash")
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", record.VideoHash, err)
	}

	path := s.Path(record.VideoHash)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing session %s: %w", record.VideoHash, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("committing session %s: %w", record.VideoHash, err)
	}

	return nil
}

// Load reads the record for a fingerprint, returning ErrSessionNotFound
// when no session exists
func (s *Store) Load(hash string) (*Record, error) {
	data, err := os.ReadFile(s.Path(hash))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("session %s: %w", hash, ErrSessionNotFound)
		}
		return nil, fmt.Errorf("reading session %s: %w", hash, err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", hash, err)
	}

	return &record, nil
}

// Exists reports whether a session file is present for a fingerprint
func (s *Store) Exists(hash string) bool {
	_, err := os.Stat(s.Path(hash))
	return err == nil
}

// Delete removes a fingerprint's session file. Deleting a missing session
// is not an error.
func (s *Store) Delete(hash string) error {
	if err := os.Remove(s.Path(hash)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting session %s: %w", hash, err)
	}
	return nil
}
