// Package pipeline orchestrates the two processing passes over an uploaded
// video: the preview pass (extract audio, transcribe, censor) and the render
// pass (beep audio, burn subtitles, produce the final artifact).
package pipeline

import (
	"context"

	"github.com/textwaves/censor-api/internal/profanity"
	"github.com/textwaves/censor-api/pkg/ffmpeg"
)

// AudioExtractor pulls a mono 16kHz audio track out of a video file
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoPath, audioPath string) error
}

// Transcriber converts an audio file into ordered, timed text segments and
// reports the audio duration in seconds
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]profanity.Segment, float64, error)
}

// VideoRenderer produces the final video with burned-in subtitles and
// beeped audio
type VideoRenderer interface {
	RenderVideo(ctx context.Context, videoPath, outputPath string, subtitles []ffmpeg.SubtitleCue, beeps []ffmpeg.BeepInterval, opts ffmpeg.RenderOptions) error
}
