// Package profanity masks forbidden words in transcribed segments and
// derives the beep intervals for the final render. It is pure text
// processing, no I/O.
package profanity

import (
	"regexp"
	"strings"
)

// MaskToken replaces every forbidden word occurrence in subtitle text
const MaskToken = "******"

// Segment is a timed span of transcribed text
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Interval is a (start, end) time span to be beeped in the final audio
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Detector masks forbidden words against a configured default word list
type Detector struct {
	defaultWords []string
}

// NewDetector creates a detector that falls back to defaultWords when a
// caller supplies no forbidden words of its own
func NewDetector(defaultWords []string) *Detector {
	return &Detector{defaultWords: defaultWords}
}

// DefaultWords returns a copy of the fallback forbidden-word list
func (d *Detector) DefaultWords() []string {
	words := make([]string, len(d.defaultWords))
	copy(words, d.defaultWords)
	return words
}

// EffectiveWords normalizes a caller-supplied word list: entries are
// trimmed, blanks dropped, and an empty result falls back to the defaults.
func (d *Detector) EffectiveWords(words []string) []string {
	filtered := make([]string, 0, len(words))
	for _, word := range words {
		if trimmed := strings.TrimSpace(word); trimmed != "" {
			filtered = append(filtered, trimmed)
		}
	}
	if len(filtered) == 0 {
		return d.DefaultWords()
	}
	return filtered
}

// Censor masks every whole-word, case-insensitive occurrence of a forbidden
// word in each segment. A segment with at least one match contributes its
// own (start, end) to the returned intervals exactly once; intervals are
// segment-granular and never merged. Output order follows input order, so
// identical inputs always produce identical outputs.
func (d *Detector) Censor(segments []Segment, forbiddenWords []string) ([]Segment, []Interval) {
	pattern := buildPattern(d.EffectiveWords(forbiddenWords))

	sanitized := make([]Segment, 0, len(segments))
	intervals := make([]Interval, 0)

	for _, segment := range segments {
		masked := pattern.ReplaceAllString(segment.Text, MaskToken)
		if masked != segment.Text {
			intervals = append(intervals, Interval{Start: segment.Start, End: segment.End})
		}
		sanitized = append(sanitized, Segment{
			Start: segment.Start,
			End:   segment.End,
			Text:  masked,
		})
	}

	return sanitized, intervals
}

// buildPattern compiles a case-insensitive whole-word alternation over the
// given words. An empty word set compiles to a pattern that never matches.
func buildPattern(words []string) *regexp.Regexp {
	escaped := make([]string, 0, len(words))
	for _, word := range words {
		if word != "" {
			escaped = append(escaped, regexp.QuoteMeta(word))
		}
	}
	if len(escaped) == 0 {
		return regexp.MustCompile(`^\x00$`)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(escaped, "|") + `)\b`)
}
