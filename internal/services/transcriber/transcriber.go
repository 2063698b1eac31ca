// Package transcriber runs whisper.cpp over an extracted audio track and
// returns timed transcription segments.
package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/textwaves/censor-api/internal/profanity"
)

// Common errors
var (
	ErrBinaryNotFound = errors.New("whisper binary not found")
	ErrModelNotFound  = errors.New("whisper model not found")
	ErrEmptyResult    = errors.New("transcription produced no segments")
)

// Config holds the whisper.cpp invocation settings
type Config struct {
	BinaryPath string
	ModelPath  string
	Language   string
	Timeout    time.Duration
}

// Client transcribes audio files by shelling out to whisper.cpp. The binary
// and model locations are resolved once, on first use, and reused by every
// subsequent call.
type Client struct {
	config Config

	mu         sync.Mutex
	resolved   bool
	resolveErr error
	binaryPath string
}

// New creates a whisper.cpp client. Resolution of the binary and model is
// deferred until the first transcription.
func New(config Config) *Client {
	if config.Language == "" {
		config.Language = "auto"
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Minute
	}
	return &Client{config: config}
}

// resolve locates the whisper binary and checks the model file. The check
// runs once; later calls return the cached result.
func (c *Client) resolve() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.resolved {
		return c.binaryPath, c.resolveErr
	}

	c.resolved = true

	binary := c.config.BinaryPath
	if binary == "" {
		binary = "whisper-cli"
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		c.resolveErr = fmt.Errorf("%w: %s", ErrBinaryNotFound, binary)
		return "", c.resolveErr
	}

	if _, err := os.Stat(c.config.ModelPath); err != nil {
		c.resolveErr = fmt.Errorf("%w: %s", ErrModelNotFound, c.config.ModelPath)
		return "", c.resolveErr
	}

	c.binaryPath = path
	return c.binaryPath, nil
}

// Transcribe runs whisper.cpp over audioPath and returns the ordered
// segments plus the audio duration in seconds, taken from the end of the
// last segment.
func (c *Client) Transcribe(ctx context.Context, audioPath string) ([]profanity.Segment, float64, error) {
	binary, err := c.resolve()
	if err != nil {
		return nil, 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	outputPrefix := audioPath + ".whisper"
	outputPath := outputPrefix + ".json"
	defer os.Remove(outputPath)

	args := []string{
		"-m", c.config.ModelPath,
		"-f", audioPath,
		"-l", c.config.Language,
		"-t", "4",
		"-oj",
		"-of", outputPrefix,
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, 0, fmt.Errorf("transcription timed out after %s", c.config.Timeout)
		}
		return nil, 0, fmt.Errorf("running whisper: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, 0, fmt.Errorf("reading whisper output: %w", err)
	}

	return parseOutput(data)
}

// whisperOutput mirrors the whisper.cpp full JSON output. Offsets are
// millisecond integers relative to the start of the audio.
type whisperOutput struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// parseOutput converts whisper.cpp JSON into ordered segments. Entries with
// blank text are dropped; segment times come from the millisecond offsets.
func parseOutput(data []byte) ([]profanity.Segment, float64, error) {
	var output whisperOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, 0, fmt.Errorf("decoding whisper output: %w", err)
	}

	segments := make([]profanity.Segment, 0, len(output.Transcription))
	var duration float64
	for _, entry := range output.Transcription {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}
		segment := profanity.Segment{
			Start: float64(entry.Offsets.From) / 1000,
			End:   float64(entry.Offsets.To) / 1000,
			Text:  text,
		}
		segments = append(segments, segment)
		if segment.End > duration {
			duration = segment.End
		}
	}

	if len(segments) == 0 {
		return nil, 0, ErrEmptyResult
	}

	return segments, duration, nil
}
