package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// RenderVideo produces the final artifact: the source video with subtitles
// burned in, the original audio attenuated under each beep interval, and a
// synthesized tone overlaid for the span of every interval.
func (f *FFmpeg) RenderVideo(ctx context.Context, videoPath, outputPath string, subtitles []SubtitleCue, beeps []BeepInterval, opts RenderOptions) error {
	metadata, err := f.GetMetadata(ctx, videoPath)
	if err != nil {
		return err
	}

	if opts.Codec == "" {
		opts.Codec = "libx264"
	}
	if opts.FPS <= 0 {
		opts.FPS = 24
	}

	params := calculateSubtitleParams(metadata.Width, metadata.Height)

	subtitleFile, err := f.writeSubtitleFile(outputPath, subtitles, metadata, params, opts.Style)
	if err != nil {
		return err
	}
	defer os.Remove(subtitleFile)

	hasAudio := metadata.AudioCodec != ""
	filter, outputs := buildFilterGraph(subtitleFile, beeps, hasAudio, opts)

	args := []string{"-i", videoPath, "-filter_complex", filter}
	for _, output := range outputs {
		args = append(args, "-map", output)
	}
	args = append(args,
		"-c:v", opts.Codec,
		"-r", fmt.Sprintf("%d", opts.FPS),
	)
	if hasAudio {
		args = append(args, "-c:a", "aac")
	}
	args = append(args, "-y", outputPath)

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(outputPath)
		if ctx.Err() == context.DeadlineExceeded {
			return NewProcessingError("render", videoPath, ErrProcessingTimeout, stderr.String())
		}
		return NewProcessingError("render", videoPath, err, stderr.String())
	}

	return nil
}

// buildFilterGraph assembles the filter_complex expression for the render.
// The video chain burns the ASS subtitle track; the audio chain ducks the
// original track inside beep intervals and mixes one sine tone per interval.
func buildFilterGraph(subtitleFile string, beeps []BeepInterval, hasAudio bool, opts RenderOptions) (string, []string) {
	var chains []string

	chains = append(chains, fmt.Sprintf("[0:v]ass=%s[vout]", escapeFilterPath(subtitleFile)))
	outputs := []string{"[vout]"}

	if !hasAudio {
		return strings.Join(chains, ";"), outputs
	}

	if len(beeps) == 0 {
		chains = append(chains, "[0:a]anull[aout]")
		outputs = append(outputs, "[aout]")
		return strings.Join(chains, ";"), outputs
	}

	var enables []string
	for _, beep := range beeps {
		enables = append(enables, fmt.Sprintf("between(t,%.3f,%.3f)", beep.Start, beep.End))
	}
	chains = append(chains, fmt.Sprintf("[0:a]volume=%.2f:enable='%s'[ducked]",
		clampUnit(opts.DuckingVolume), strings.Join(enables, "+")))

	mixInputs := []string{"[ducked]"}
	for i, beep := range beeps {
		duration := math.Max(0.05, beep.End-beep.Start)
		delayMs := int(beep.Start * 1000)
		label := fmt.Sprintf("[beep%d]", i)
		chains = append(chains, fmt.Sprintf(
			"sine=frequency=%d:duration=%.3f,volume=%.2f,adelay=%d:all=1%s",
			opts.BeepFrequency, duration, clampUnit(opts.BeepVolume), delayMs, label))
		mixInputs = append(mixInputs, label)
	}

	chains = append(chains, fmt.Sprintf("%samix=inputs=%d:duration=first:normalize=0[aout]",
		strings.Join(mixInputs, ""), len(mixInputs)))
	outputs = append(outputs, "[aout]")

	return strings.Join(chains, ";"), outputs
}

// writeSubtitleFile renders the cue list into a styled ASS file next to the
// output artifact. The caller removes it after the render.
func (f *FFmpeg) writeSubtitleFile(outputPath string, subtitles []SubtitleCue, metadata *VideoMetadata, params subtitleParams, style SubtitleStyle) (string, error) {
	path := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".ass"

	var b strings.Builder
	b.WriteString("[Script Info]\n")
	b.WriteString("ScriptType: v4.00+\n")
	fmt.Fprintf(&b, "PlayResX: %d\n", metadata.Width)
	fmt.Fprintf(&b, "PlayResY: %d\n", metadata.Height)
	b.WriteString("WrapStyle: 0\n\n")

	fontName := style.FontName
	if fontName == "" {
		fontName = "DejaVu Sans"
	}
	fontColor := style.FontColor
	if fontColor == "" {
		fontColor = "&H00FFFFFF"
	}
	backColor := style.BackColor
	if backColor == "" {
		backColor = "&HCC000000"
	}
	outlineColor := style.OutlineColor
	if outlineColor == "" {
		outlineColor = backColor
	}

	b.WriteString("[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, OutlineColour, BackColour, Bold, BorderStyle, Outline, Alignment, MarginL, MarginR, MarginV\n")
	// BorderStyle 3 draws an opaque box behind the text, Alignment 2 is bottom-center
	fmt.Fprintf(&b, "Style: Default,%s,%d,%s,%s,%s,0,3,%d,2,%d,%d,%d\n\n",
		fontName, params.FontSize, fontColor, outlineColor, backColor,
		style.OutlineWidth, params.SideMargin, params.SideMargin, params.BottomMargin)

	b.WriteString("[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Text\n")
	for _, cue := range subtitles {
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,Default,%s\n",
			formatASSTime(cue.Start), formatASSTime(cue.End), escapeASSText(cue.Text))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", NewProcessingError("subtitle_file_creation", outputPath, err, "")
	}

	return path, nil
}

// calculateSubtitleParams derives subtitle layout from the source resolution.
// Wider aspect ratios get slightly larger relative font sizes, portrait and
// square sources get smaller ones.
func calculateSubtitleParams(width, height int) subtitleParams {
	if width <= 0 || height <= 0 {
		return subtitleParams{FontSize: 16, SideMargin: 10, BottomMargin: 10}
	}

	aspectRatio := float64(width) / float64(height)
	baseSize := int(math.Sqrt(float64(width*height)) * 0.02)

	var fontSize int
	switch {
	case aspectRatio >= 2.0: // Ultrawide
		fontSize = maxInt(18, int(float64(baseSize)*1.1))
	case aspectRatio >= 1.7: // Widescreen
		fontSize = maxInt(16, baseSize)
	case aspectRatio >= 1.3: // Standard
		fontSize = maxInt(14, int(float64(baseSize)*0.9))
	default: // Square or portrait
		fontSize = maxInt(12, int(float64(baseSize)*0.8))
	}

	return subtitleParams{
		FontSize:     fontSize,
		SideMargin:   maxInt(10, int(float64(width)*0.05)),
		BottomMargin: maxInt(10, int(float64(height)*0.02)),
	}
}

// formatASSTime formats seconds as an ASS timestamp (H:MM:SS.cc)
func formatASSTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalCentis := int(math.Round(seconds * 100))
	hours := totalCentis / 360000
	minutes := (totalCentis % 360000) / 6000
	secs := (totalCentis % 6000) / 100
	centis := totalCentis % 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}

// escapeASSText escapes override braces and converts newlines to ASS breaks
func escapeASSText(text string) string {
	replacer := strings.NewReplacer(
		"{", "\\{",
		"}", "\\}",
		"\r\n", "\\N",
		"\n", "\\N",
	)
	return replacer.Replace(text)
}

// escapeFilterPath escapes a path for use inside a filter_complex expression
func escapeFilterPath(path string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		":", "\\:",
		"'", "\\'",
		"[", "\\[",
		"]", "\\]",
		",", "\\,",
		";", "\\;",
	)
	return replacer.Replace(path)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
