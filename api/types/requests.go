package types

import (
	"encoding/json"
	"strings"
)

// WordList accepts a forbidden-word list either as a JSON array of strings
// or as a single comma-separated string. A present-but-empty list is
// meaningful: it resets the session to the default word list.
type WordList []string

// UnmarshalJSON implements the two accepted wire shapes
func (w *WordList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*w = list
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	parts := strings.Split(joined, ",")
	list = make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	*w = list
	return nil
}

// SubtitleInput is one subtitle line in an edit request. The full shape
// round-trips: an edited list is stored as given and comes back unchanged
// from the session endpoint.
type SubtitleInput struct {
	ID         int     `json:"id"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	RawText    string  `json:"raw_text"`
	Confidence float64 `json:"confidence"`
}

// IntervalInput is one beep interval in a render request
type IntervalInput struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// UpdateSubtitlesRequest edits a session's subtitles, forbidden words
// and/or beep intervals. Nil fields are left unchanged.
type UpdateSubtitlesRequest struct {
	VideoHash      string           `json:"video_hash" binding:"required"`
	Subtitles      []SubtitleInput  `json:"subtitles"`
	ForbiddenWords WordList         `json:"forbidden_words"`
	BeepIntervals  *[]IntervalInput `json:"beep_intervals"`
}

// RenderRequest starts the final render pass. A present ForbiddenWords
// recomputes the beep intervals first; a non-nil BeepIntervals then
// replaces the intervals wholesale.
type RenderRequest struct {
	VideoHash      string           `json:"video_hash" binding:"required"`
	ForbiddenWords WordList         `json:"forbidden_words"`
	BeepIntervals  *[]IntervalInput `json:"beep_intervals"`
}

// ParseWordList decodes a forbidden-word form field: a JSON array of
// strings or a comma-separated string. Blank or undecodable input counts
// as absent and returns nil.
func ParseWordList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return nil
		}
		return list
	}
	parts := strings.Split(raw, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	if len(list) == 0 {
		return nil
	}
	return list
}
