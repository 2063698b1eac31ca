package ffmpeg

// VideoMetadata represents metadata extracted from a video file
type VideoMetadata struct {
	Duration   float64 `json:"duration"`    // Duration in seconds
	Width      int     `json:"width"`       // Video width in pixels
	Height     int     `json:"height"`      // Video height in pixels
	SampleRate int     `json:"sample_rate"` // Audio sample rate in Hz
	Channels   int     `json:"channels"`    // Number of audio channels
	Format     string  `json:"format"`      // Container format
	VideoCodec string  `json:"video_codec"` // Video codec
	AudioCodec string  `json:"audio_codec"` // Audio codec
	Size       int64   `json:"size"`        // File size in bytes
}

// SubtitleCue is one timed text line burned into the output video
type SubtitleCue struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// BeepInterval is a time span where the original audio is ducked and
// overlaid with a synthesized tone
type BeepInterval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// SubtitleStyle defines how burned-in subtitles are rendered
type SubtitleStyle struct {
	FontName     string // Font family name, empty uses the libass default
	FontColor    string // Primary text color as &HBBGGRR (ASS order)
	BackColor    string // Background box color as &HAABBGGRR
	OutlineColor string
	OutlineWidth int
}

// DefaultSubtitleStyle returns the standard white-on-translucent-black style
func DefaultSubtitleStyle() SubtitleStyle {
	return SubtitleStyle{
		FontColor: "&H00FFFFFF",
		BackColor: "&HCC000000",
	}
}

// RenderOptions defines options for the final video render
type RenderOptions struct {
	Style         SubtitleStyle
	BeepFrequency int     // Tone frequency in Hz
	BeepVolume    float64 // Tone volume, 0..1
	DuckingVolume float64 // Original audio volume under a beep, 0..1
	Codec         string  // Video codec, defaults to libx264
	FPS           int     // Output frame rate, defaults to 24
}

// DefaultRenderOptions returns sensible defaults for the final render
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Style:         DefaultSubtitleStyle(),
		BeepFrequency: 1000,
		BeepVolume:    0.4,
		DuckingVolume: 0.35,
		Codec:         "libx264",
		FPS:           24,
	}
}

// subtitleParams holds layout values computed from the source resolution
type subtitleParams struct {
	FontSize     int
	SideMargin   int
	BottomMargin int
}
