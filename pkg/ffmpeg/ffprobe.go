package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
)

// ffprobeOutput represents the JSON structure returned by ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration   string `json:"duration"`
		Size       string `json:"size"`
		FormatName string `json:"format_name"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
	} `json:"streams"`
}

// GetMetadata extracts container and stream metadata from a media file
func (f *FFmpeg) GetMetadata(ctx context.Context, input string) (*VideoMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		input,
	}

	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, NewProcessingError("metadata_extraction", input, err, stderr.String())
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &probe); err != nil {
		return nil, NewProcessingError("metadata_parsing", input, err, "")
	}

	metadata := &VideoMetadata{
		Format: probe.Format.FormatName,
	}
	metadata.Duration, _ = strconv.ParseFloat(probe.Format.Duration, 64)
	metadata.Size, _ = strconv.ParseInt(probe.Format.Size, 10, 64)

	for _, stream := range probe.Streams {
		switch stream.CodecType {
		case "video":
			if metadata.VideoCodec == "" {
				metadata.VideoCodec = stream.CodecName
				metadata.Width = stream.Width
				metadata.Height = stream.Height
			}
		case "audio":
			if metadata.AudioCodec == "" {
				metadata.AudioCodec = stream.CodecName
				metadata.Channels = stream.Channels
				metadata.SampleRate, _ = strconv.Atoi(stream.SampleRate)
			}
		}
	}

	if metadata.VideoCodec == "" {
		return nil, NewProcessingError("metadata_extraction", input, ErrInvalidVideoFile, "no video stream found")
	}

	return metadata, nil
}
