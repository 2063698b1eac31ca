package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/textwaves/censor-api/internal/models"
	"github.com/textwaves/censor-api/internal/profanity"
	"github.com/textwaves/censor-api/internal/progress"
	"github.com/textwaves/censor-api/internal/services/tasks"
	"github.com/textwaves/censor-api/internal/session"
	pkgerrors "github.com/textwaves/censor-api/pkg/errors"
	"github.com/textwaves/censor-api/pkg/ffmpeg"
)

// FingerprintLength is the number of hex characters kept from the sha256 of
// the uploaded bytes. Two uploads with the same bytes always map to the
// same fingerprint, which is what makes re-uploads reset instead of fork.
const FingerprintLength = 10

// Fingerprint computes the content fingerprint for an upload
func Fingerprint(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hashing upload: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil))[:FingerprintLength], nil
}

// Config wires the orchestrator's collaborators and censor settings
type Config struct {
	Registry    *progress.Registry
	Tasks       tasks.TaskService
	Sessions    *session.Store
	Extractor   AudioExtractor
	Transcriber Transcriber
	Renderer    VideoRenderer

	UploadDir      string
	ForbiddenWords []string
	BeepFrequency  int
	BeepVolume     float64
	DuckingVolume  float64
}

// Orchestrator runs the preview and render passes. Each pass reports its own
// 0 to 100 progress scale through the registry and mirrors the checkpoints
// into the durable task record. At most one pass runs per fingerprint at a
// time.
type Orchestrator struct {
	registry    *progress.Registry
	tasks       tasks.TaskService
	sessions    *session.Store
	extractor   AudioExtractor
	transcriber Transcriber
	renderer    VideoRenderer

	uploadDir     string
	detector      *profanity.Detector
	beepFrequency int
	beepVolume    float64
	duckingVolume float64

	mu      sync.Mutex
	running map[string]bool
}

// NewOrchestrator creates a pipeline orchestrator
func NewOrchestrator(config Config) *Orchestrator {
	opts := ffmpeg.DefaultRenderOptions()
	if config.BeepFrequency <= 0 {
		config.BeepFrequency = opts.BeepFrequency
	}
	if config.BeepVolume <= 0 {
		config.BeepVolume = opts.BeepVolume
	}
	if config.DuckingVolume <= 0 {
		config.DuckingVolume = opts.DuckingVolume
	}

	return &Orchestrator{
		registry:      config.Registry,
		tasks:         config.Tasks,
		sessions:      config.Sessions,
		extractor:     config.Extractor,
		transcriber:   config.Transcriber,
		renderer:      config.Renderer,
		uploadDir:     config.UploadDir,
		detector:      profanity.NewDetector(config.ForbiddenWords),
		beepFrequency: config.BeepFrequency,
		beepVolume:    config.BeepVolume,
		duckingVolume: config.DuckingVolume,
		running:       make(map[string]bool),
	}
}

// PreviewRequest describes one accepted upload. A nil or blank
// ForbiddenWords falls back to the configured default word list.
type PreviewRequest struct {
	OwnerID        string
	VideoHash      string
	VideoPath      string
	Filename       string
	ForbiddenWords []string
}

// SubmitPreview registers the upload and starts the preview pass in the
// background. It returns once the task record exists and progress tracking
// has begun, so callers can immediately poll or stream progress.
func (o *Orchestrator) SubmitPreview(ctx context.Context, req PreviewRequest) error {
	if !o.tryStart(req.VideoHash) {
		return fmt.Errorf("%w: %s", ErrAlreadyProcessing, req.VideoHash)
	}

	if _, err := o.tasks.CreateOrReset(ctx, req.OwnerID, req.VideoHash, req.Filename); err != nil {
		o.finish(req.VideoHash)
		return err
	}
	o.registry.Init(req.VideoHash)

	go func() {
		defer o.finish(req.VideoHash)
		if err := o.ProcessPreview(context.Background(), req); err != nil {
			log.Printf("[ERROR] Preview pass failed for %s: %v", req.VideoHash, err)
		}
	}()

	return nil
}

// ProcessPreview runs the preview pass synchronously: extract audio,
// transcribe, censor, persist the session. On failure the task moves to the
// error state with its progress left at the last checkpoint reached.
func (o *Orchestrator) ProcessPreview(ctx context.Context, req PreviewRequest) error {
	o.checkpoint(ctx, req.VideoHash, models.TaskStatusProcessing, models.StageUploading, 5, "Upload received")

	audioPath := filepath.Join(o.uploadDir, req.VideoHash+".wav")
	defer os.Remove(audioPath)

	o.checkpoint(ctx, req.VideoHash, models.TaskStatusProcessing, models.StageExtractingAudio, 10, "Extracting audio...")
	if err := o.extractor.ExtractAudio(ctx, req.VideoPath, audioPath); err != nil {
		return o.fail(ctx, req.VideoHash, models.StageExtractingAudio, err)
	}

	o.checkpoint(ctx, req.VideoHash, models.TaskStatusProcessing, models.StageTranscribing, 40, "Transcribing...")
	segments, duration, err := o.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return o.fail(ctx, req.VideoHash, models.StageTranscribing, err)
	}

	o.checkpoint(ctx, req.VideoHash, models.TaskStatusProcessing, models.StageCensoring, 70, "Censoring transcript...")
	words := o.detector.EffectiveWords(req.ForbiddenWords)
	sanitized, intervals := o.detector.Censor(segments, words)

	record := &session.Record{
		VideoHash: req.VideoHash,
		VideoPath: req.VideoPath,
		Subtitles: make([]session.Subtitle, 0, len(segments)),
		VideoInfo: session.VideoInfo{
			Filename: req.Filename,
			Duration: duration,
		},
		ForbiddenWords: words,
		BeepIntervals:  intervals,
	}
	for i, segment := range sanitized {
		record.Subtitles = append(record.Subtitles, session.Subtitle{
			ID:         i,
			Start:      segment.Start,
			End:        segment.End,
			Text:       segment.Text,
			RawText:    segments[i].Text,
			Confidence: 1,
		})
	}

	if err := o.sessions.Save(record); err != nil {
		return o.fail(ctx, req.VideoHash, models.StageCensoring, err)
	}
	if err := o.tasks.UpdateMetadata(ctx, req.VideoHash, &duration, o.sessions.Path(req.VideoHash)); err != nil {
		return o.fail(ctx, req.VideoHash, models.StageCensoring, err)
	}

	o.checkpoint(ctx, req.VideoHash, models.TaskStatusPreviewReady, models.StageCompleted, 100, "Preview ready")
	return nil
}

// RenderRequest starts a render pass over an existing session. A non-nil
// ForbiddenWords recomputes the masking and intervals before rendering. A
// non-nil BeepIntervals replaces the intervals wholesale, including an
// explicit empty list meaning no beeps at all; it wins over recomputation.
type RenderRequest struct {
	OwnerID        string
	VideoHash      string
	ForbiddenWords []string
	BeepIntervals  []profanity.Interval
}

// SubmitRender validates the session and starts the render pass in the
// background. The render pass reports a fresh 0 to 100 scale.
func (o *Orchestrator) SubmitRender(ctx context.Context, req RenderRequest) error {
	if !o.sessions.Exists(req.VideoHash) {
		return fmt.Errorf("session %s: %w", req.VideoHash, session.ErrSessionNotFound)
	}
	if _, err := o.tasks.GetForOwner(ctx, req.OwnerID, req.VideoHash, false); err != nil {
		return err
	}
	if !o.tryStart(req.VideoHash) {
		return fmt.Errorf("%w: %s", ErrAlreadyProcessing, req.VideoHash)
	}

	o.registry.Init(req.VideoHash)

	go func() {
		defer o.finish(req.VideoHash)
		if err := o.RenderFinal(context.Background(), req); err != nil {
			log.Printf("[ERROR] Render pass failed for %s: %v", req.VideoHash, err)
		}
	}()

	return nil
}

// RenderFinal runs the render pass synchronously: load the session, resolve
// the beep intervals, render the final video, purge the working data.
func (o *Orchestrator) RenderFinal(ctx context.Context, req RenderRequest) error {
	o.checkpoint(ctx, req.VideoHash, models.TaskStatusRendering, models.StageLoadingSession, 5, "Loading session...")
	record, err := o.sessions.Load(req.VideoHash)
	if err != nil {
		return o.fail(ctx, req.VideoHash, models.StageLoadingSession, err)
	}
	if len(record.Subtitles) == 0 {
		return o.fail(ctx, req.VideoHash, models.StageLoadingSession, ErrNoSubtitles)
	}

	o.checkpoint(ctx, req.VideoHash, models.TaskStatusRendering, models.StageProcessingBeeps, 20, "Processing beep intervals...")
	intervals := record.BeepIntervals
	if req.ForbiddenWords != nil {
		words := o.detector.EffectiveWords(req.ForbiddenWords)
		segments := rawSegments(record.Subtitles)
		sanitized, recomputed := o.detector.Censor(segments, words)
		for i := range record.Subtitles {
			record.Subtitles[i].Text = sanitized[i].Text
		}
		intervals = recomputed
	}
	if req.BeepIntervals != nil {
		intervals = req.BeepIntervals
	}

	subtitles := make([]ffmpeg.SubtitleCue, 0, len(record.Subtitles))
	for _, subtitle := range record.Subtitles {
		subtitles = append(subtitles, ffmpeg.SubtitleCue{
			Start: subtitle.Start,
			End:   subtitle.End,
			Text:  subtitle.Text,
		})
	}
	beeps := make([]ffmpeg.BeepInterval, 0, len(intervals))
	for _, interval := range intervals {
		beeps = append(beeps, ffmpeg.BeepInterval{Start: interval.Start, End: interval.End})
	}

	o.checkpoint(ctx, req.VideoHash, models.TaskStatusRendering, models.StageRenderingVideo, 40, "Rendering video...")
	outputPath := o.FinalVideoPath(req.VideoHash)
	opts := ffmpeg.DefaultRenderOptions()
	opts.BeepFrequency = o.beepFrequency
	opts.BeepVolume = o.beepVolume
	opts.DuckingVolume = o.duckingVolume
	if err := o.renderer.RenderVideo(ctx, record.VideoPath, outputPath, subtitles, beeps, opts); err != nil {
		return o.fail(ctx, req.VideoHash, models.StageRenderingVideo, err)
	}

	// Working data is purged once the final artifact exists. The source
	// video and session file go, the rendered output stays.
	o.checkpoint(ctx, req.VideoHash, models.TaskStatusRendering, models.StageFinalizing, 90, "Finalizing...")
	if err := o.sessions.Delete(req.VideoHash); err != nil {
		log.Printf("[WARN] Failed to delete session for %s: %v", req.VideoHash, err)
	}
	if record.VideoPath != outputPath {
		if err := os.Remove(record.VideoPath); err != nil && !os.IsNotExist(err) {
			log.Printf("[WARN] Failed to delete source video for %s: %v", req.VideoHash, err)
		}
	}
	if err := o.tasks.ClearSessionReference(ctx, req.VideoHash); err != nil {
		log.Printf("[WARN] Failed to clear session reference for %s: %v", req.VideoHash, err)
	}

	if err := o.tasks.MarkCompleted(ctx, req.VideoHash, outputPath); err != nil {
		return o.fail(ctx, req.VideoHash, models.StageFinalizing, err)
	}
	o.registry.Update(req.VideoHash, models.StageCompleted, 100, "Processing completed")
	return nil
}

// SessionUpdate carries a subtitle edit. Nil slices mean "leave unchanged";
// a non-nil empty ForbiddenWords resets the session to the default word
// list, and a non-nil BeepIntervals overrides the recomputed intervals.
type SessionUpdate struct {
	Subtitles      []session.Subtitle
	ForbiddenWords []string
	BeepIntervals  []profanity.Interval
}

// UpdateSession applies an edit to a session. Edited subtitles replace the
// stored list wholesale and are persisted exactly as given, so a subsequent
// fetch returns what the user wrote. Only the beep intervals are re-derived,
// from the raw text and the effective word list, with a supplied interval
// override winning. The updated record is saved and returned.
func (o *Orchestrator) UpdateSession(ctx context.Context, videoHash string, update SessionUpdate) (*session.Record, error) {
	record, err := o.sessions.Load(videoHash)
	if err != nil {
		return nil, err
	}

	if update.Subtitles != nil {
		record.Subtitles = update.Subtitles
	}

	words := record.ForbiddenWords
	if update.ForbiddenWords != nil {
		words = o.detector.EffectiveWords(update.ForbiddenWords)
	}
	record.ForbiddenWords = words

	_, intervals := o.detector.Censor(rawSegments(record.Subtitles), words)
	record.BeepIntervals = intervals
	if update.BeepIntervals != nil {
		record.BeepIntervals = update.BeepIntervals
	}

	if err := o.sessions.Save(record); err != nil {
		return nil, err
	}
	return record, nil
}

// rawSegments rebuilds censoring input from a session's subtitles,
// preferring the unmasked raw text
func rawSegments(subtitles []session.Subtitle) []profanity.Segment {
	segments := make([]profanity.Segment, 0, len(subtitles))
	for _, subtitle := range subtitles {
		text := subtitle.RawText
		if text == "" {
			text = subtitle.Text
		}
		segments = append(segments, profanity.Segment{
			Start: subtitle.Start,
			End:   subtitle.End,
			Text:  text,
		})
	}
	return segments
}

// FinalVideoPath returns where the rendered artifact for a fingerprint lives
func (o *Orchestrator) FinalVideoPath(videoHash string) string {
	return filepath.Join(o.uploadDir, "final_"+videoHash+".mp4")
}

// checkpoint reports a pipeline stage to the registry and mirrors it into
// the durable task record
func (o *Orchestrator) checkpoint(ctx context.Context, videoHash string, status models.TaskStatus, stage string, percent float64, message string) {
	o.registry.Update(videoHash, stage, percent, message)
	if err := o.tasks.RecordProgress(ctx, videoHash, status, stage, percent, message); err != nil {
		log.Printf("[WARN] Failed to record progress for %s: %v", videoHash, err)
	}
}

// fail marks both the registry and the task record as failed, keeping the
// progress where the pipeline stopped
func (o *Orchestrator) fail(ctx context.Context, videoHash, stage string, err error) error {
	stageErr := pkgerrors.StageError(stage, err)
	o.registry.SetError(videoHash, stageErr.Error())
	if markErr := o.tasks.MarkError(ctx, videoHash, stageErr.Error()); markErr != nil {
		log.Printf("[WARN] Failed to mark task %s as errored: %v", videoHash, markErr)
	}
	return stageErr
}

func (o *Orchestrator) tryStart(videoHash string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.running[videoHash] {
		return false
	}
	o.running[videoHash] = true
	return true
}

func (o *Orchestrator) finish(videoHash string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.running, videoHash)
}
