package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// FFmpeg wraps ffmpeg and ffprobe functionality
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// New creates a new FFmpeg instance
func New(ffmpegPath, ffprobePath string, timeout time.Duration) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (f *FFmpeg) ValidateBinaries() error {
	if _, err := exec.LookPath(f.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, f.ffmpegPath)
	}

	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, f.ffprobePath)
	}

	return nil
}

// ExtractAudio extracts the audio track of a video into a standalone WAV file
// suitable for speech transcription (16 kHz, mono, 16-bit PCM).
func (f *FFmpeg) ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	if _, err := os.Stat(videoPath); err != nil {
		return NewProcessingError("audio_extraction", videoPath, ErrInvalidVideoFile, "")
	}

	if dir := filepath.Dir(audioPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return NewProcessingError("audio_extraction", videoPath, err, "")
		}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	args := []string{
		"-i", videoPath,
		"-vn",             // Drop the video stream
		"-acodec", "pcm_s16le",
		"-ar", "16000",    // Whisper expects 16 kHz
		"-ac", "1",        // Mono
		"-y",              // Overwrite output
		audioPath,
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Partial output is useless to the pipeline, drop it
		os.Remove(audioPath)
		if ctx.Err() == context.DeadlineExceeded {
			return NewProcessingError("audio_extraction", videoPath, ErrProcessingTimeout, stderr.String())
		}
		return NewProcessingError("audio_extraction", videoPath, err, stderr.String())
	}

	return nil
}
