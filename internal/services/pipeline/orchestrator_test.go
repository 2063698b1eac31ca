package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/textwaves/censor-api/internal/models"
	"github.com/textwaves/censor-api/internal/profanity"
	"github.com/textwaves/censor-api/internal/progress"
	"github.com/textwaves/censor-api/internal/services/tasks"
	"github.com/textwaves/censor-api/internal/session"
	"github.com/textwaves/censor-api/pkg/ffmpeg"
)

// mockExtractor mocks the AudioExtractor interface
type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	args := m.Called(ctx, videoPath, audioPath)
	return args.Error(0)
}

// mockTranscriber mocks the Transcriber interface
type mockTranscriber struct {
	mock.Mock
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audioPath string) ([]profanity.Segment, float64, error) {
	args := m.Called(ctx, audioPath)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]profanity.Segment), args.Get(1).(float64), args.Error(2)
}

// mockRenderer mocks the VideoRenderer interface
type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) RenderVideo(ctx context.Context, videoPath, outputPath string, subtitles []ffmpeg.SubtitleCue, beeps []ffmpeg.BeepInterval, opts ffmpeg.RenderOptions) error {
	args := m.Called(ctx, videoPath, outputPath, subtitles, beeps, opts)
	return args.Error(0)
}

// memoryTaskService is an in-memory TaskService recording state transitions
type memoryTaskService struct {
	byHash map[string]*models.VideoTask
}

func newMemoryTaskService() *memoryTaskService {
	return &memoryTaskService{byHash: make(map[string]*models.VideoTask)}
}

func (m *memoryTaskService) CreateOrReset(ctx context.Context, ownerID, videoHash, filename string) (*models.VideoTask, error) {
	task := &models.VideoTask{
		VideoHash:        videoHash,
		OwnerID:          ownerID,
		OriginalFilename: filename,
		Status:           models.TaskStatusProcessing,
		Stage:            models.StageUploading,
	}
	m.byHash[videoHash] = task
	return task, nil
}

func (m *memoryTaskService) RecordProgress(ctx context.Context, videoHash string, status models.TaskStatus, stage string, percent float64, message string) error {
	task, ok := m.byHash[videoHash]
	if !ok {
		return tasks.NewNotFoundError(videoHash)
	}
	task.Status = status
	task.Stage = stage
	task.Progress = models.ClampProgress(percent)
	task.Message = message
	return nil
}

func (m *memoryTaskService) UpdateMetadata(ctx context.Context, videoHash string, durationSeconds *float64, sessionFilePath string) error {
	task, ok := m.byHash[videoHash]
	if !ok {
		return tasks.NewNotFoundError(videoHash)
	}
	task.DurationSeconds = durationSeconds
	task.SessionFilePath = sessionFilePath
	return nil
}

func (m *memoryTaskService) MarkCompleted(ctx context.Context, videoHash, finalVideoPath string) error {
	task, ok := m.byHash[videoHash]
	if !ok {
		return tasks.NewNotFoundError(videoHash)
	}
	task.Status = models.TaskStatusCompleted
	task.Stage = models.StageCompleted
	task.Progress = 100
	task.FinalVideoPath = finalVideoPath
	return nil
}

func (m *memoryTaskService) MarkError(ctx context.Context, videoHash, message string) error {
	task, ok := m.byHash[videoHash]
	if !ok {
		return tasks.NewNotFoundError(videoHash)
	}
	task.Status = models.TaskStatusError
	task.Stage = models.StageError
	task.LastError = models.TruncateError(message)
	return nil
}

func (m *memoryTaskService) ClearSessionReference(ctx context.Context, videoHash string) error {
	task, ok := m.byHash[videoHash]
	if !ok {
		return tasks.NewNotFoundError(videoHash)
	}
	task.SessionFilePath = ""
	return nil
}

func (m *memoryTaskService) GetForOwner(ctx context.Context, ownerID, videoHash string, includeDeleted bool) (*models.VideoTask, error) {
	task, ok := m.byHash[videoHash]
	if !ok || task.OwnerID != ownerID {
		return nil, tasks.NewNotFoundError(videoHash)
	}
	return task, nil
}

func (m *memoryTaskService) ListForOwner(ctx context.Context, ownerID string) ([]models.VideoTask, error) {
	return nil, nil
}

func (m *memoryTaskService) MarkDeleted(ctx context.Context, ownerID, videoHash string) error {
	return nil
}

type testPipeline struct {
	orchestrator *Orchestrator
	registry     *progress.Registry
	sessions     *session.Store
	taskService  *memoryTaskService
	extractor    *mockExtractor
	transcriber  *mockTranscriber
	renderer     *mockRenderer
	uploadDir    string
}

func newTestPipeline(t *testing.T) *testPipeline {
	t.Helper()

	dir := t.TempDir()
	p := &testPipeline{
		registry:    progress.NewRegistry(),
		sessions:    session.NewStore(dir),
		taskService: newMemoryTaskService(),
		extractor:   &mockExtractor{},
		transcriber: &mockTranscriber{},
		renderer:    &mockRenderer{},
		uploadDir:   dir,
	}
	p.orchestrator = NewOrchestrator(Config{
		Registry:       p.registry,
		Tasks:          p.taskService,
		Sessions:       p.sessions,
		Extractor:      p.extractor,
		Transcriber:    p.transcriber,
		Renderer:       p.renderer,
		UploadDir:      dir,
		ForbiddenWords: []string{"merda", "porra"},
		BeepFrequency:  1000,
		BeepVolume:     0.4,
		DuckingVolume:  0.35,
	})
	return p
}

func (p *testPipeline) writeVideo(t *testing.T, hash string) string {
	t.Helper()
	path := filepath.Join(p.uploadDir, "video_"+hash+".mp4")
	require.NoError(t, os.WriteFile(path, []byte("fake video bytes"), 0644))
	return path
}

func TestFingerprint(t *testing.T) {
	first, err := Fingerprint(strings.NewReader("same bytes"))
	require.NoError(t, err)
	second, err := Fingerprint(strings.NewReader("same bytes"))
	require.NoError(t, err)
	other, err := Fingerprint(strings.NewReader("different bytes"))
	require.NoError(t, err)

	assert.Len(t, first, FingerprintLength)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestProcessPreviewHappyPath(t *testing.T) {
	p := newTestPipeline(t)
	ctx := context.Background()
	videoPath := p.writeVideo(t, "abc1234567")

	p.extractor.On("ExtractAudio", mock.Anything, videoPath, mock.Anything).Return(nil)
	p.transcriber.On("Transcribe", mock.Anything, mock.Anything).Return([]profanity.Segment{
		{Start: 0, End: 1.5, Text: "que merda total"},
		{Start: 1.5, End: 3, Text: "tudo limpo"},
	}, 3.0, nil)

	_, err := p.taskService.CreateOrReset(ctx, "owner-1", "abc1234567", "clip.mp4")
	require.NoError(t, err)
	p.registry.Init("abc1234567")

	err = p.orchestrator.ProcessPreview(ctx, PreviewRequest{
		OwnerID:   "owner-1",
		VideoHash: "abc1234567",
		VideoPath: videoPath,
		Filename:  "clip.mp4",
	})
	require.NoError(t, err)

	record, err := p.sessions.Load("abc1234567")
	require.NoError(t, err)
	require.Len(t, record.Subtitles, 2)
	assert.Equal(t, "que ****** total", record.Subtitles[0].Text)
	assert.Equal(t, "que merda total", record.Subtitles[0].RawText)
	assert.Equal(t, "tudo limpo", record.Subtitles[1].Text)
	assert.Equal(t, []profanity.Interval{{Start: 0, End: 1.5}}, record.BeepIntervals)
	assert.Equal(t, session.VideoInfo{Filename: "clip.mp4", Duration: 3.0}, record.VideoInfo)

	task := p.taskService.byHash["abc1234567"]
	assert.Equal(t, models.TaskStatusPreviewReady, task.Status)
	assert.Equal(t, 100.0, task.Progress)
	require.NotNil(t, task.DurationSeconds)
	assert.Equal(t, 3.0, *task.DurationSeconds)
	assert.Equal(t, p.sessions.Path("abc1234567"), task.SessionFilePath)

	snapshot := p.registry.Get("abc1234567")
	assert.Equal(t, models.StageCompleted, snapshot.Stage)
	assert.Equal(t, 100.0, snapshot.Progress)

	// The temp audio file does not survive the pass
	_, statErr := os.Stat(filepath.Join(p.uploadDir, "abc1234567.wav"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestProcessPreviewCustomForbiddenWords(t *testing.T) {
	p := newTestPipeline(t)
	ctx := context.Background()
	videoPath := p.writeVideo(t, "abc1234567")

	p.extractor.On("ExtractAudio", mock.Anything, videoPath, mock.Anything).Return(nil)
	p.transcriber.On("Transcribe", mock.Anything, mock.Anything).Return([]profanity.Segment{
		{Start: 0, End: 1, Text: "que merda total"},
		{Start: 1, End: 2, Text: "tudo limpo"},
	}, 2.0, nil)

	_, err := p.taskService.CreateOrReset(ctx, "owner-1", "abc1234567", "clip.mp4")
	require.NoError(t, err)
	p.registry.Init("abc1234567")

	err = p.orchestrator.ProcessPreview(ctx, PreviewRequest{
		OwnerID:        "owner-1",
		VideoHash:      "abc1234567",
		VideoPath:      videoPath,
		Filename:       "clip.mp4",
		ForbiddenWords: []string{"limpo"},
	})
	require.NoError(t, err)

	record, err := p.sessions.Load("abc1234567")
	require.NoError(t, err)
	assert.Equal(t, []string{"limpo"}, record.ForbiddenWords)
	// The default words are not applied when the upload supplies its own
	assert.Equal(t, "que merda total", record.Subtitles[0].Text)
	assert.Equal(t, "tudo ******", record.Subtitles[1].Text)
	assert.Equal(t, []profanity.Interval{{Start: 1, End: 2}}, record.BeepIntervals)
}

func TestProcessPreviewTranscriptionFailure(t *testing.T) {
	p := newTestPipeline(t)
	ctx := context.Background()
	videoPath := p.writeVideo(t, "abc1234567")

	p.extractor.On("ExtractAudio", mock.Anything, videoPath, mock.Anything).Return(nil)
	p.transcriber.On("Transcribe", mock.Anything, mock.Anything).Return(nil, 0.0, errors.New("model exploded"))

	_, err := p.taskService.CreateOrReset(ctx, "owner-1", "abc1234567", "clip.mp4")
	require.NoError(t, err)
	p.registry.Init("abc1234567")

	err = p.orchestrator.ProcessPreview(ctx, PreviewRequest{
		OwnerID:   "owner-1",
		VideoHash: "abc1234567",
		VideoPath: videoPath,
		Filename:  "clip.mp4",
	})
	require.Error(t, err)

	task := p.taskService.byHash["abc1234567"]
	assert.Equal(t, models.TaskStatusError, task.Status)
	assert.Contains(t, task.LastError, "transcribing")
	// Progress stays at the checkpoint where the pipeline stopped
	assert.Equal(t, 40.0, task.Progress)

	snapshot := p.registry.Get("abc1234567")
	require.NotNil(t, snapshot.Error)
	assert.Equal(t, 40.0, snapshot.Progress)
	assert.True(t, snapshot.Terminal())
}

func TestRenderFinalHappyPath(t *testing.T) {
	p := newTestPipeline(t)
	ctx := context.Background()
	videoPath := p.writeVideo(t, "abc1234567")

	record := &session.Record{
		VideoHash: "abc1234567",
		VideoPath: videoPath,
		Subtitles: []session.Subtitle{
			{ID: 0, Start: 0, End: 1.5, Text: "que ****** total", RawText: "que merda total"},
		},
		VideoInfo:      session.VideoInfo{Filename: "clip.mp4", Duration: 3},
		ForbiddenWords: []string{"merda"},
		BeepIntervals:  []profanity.Interval{{Start: 0, End: 1.5}},
	}
	require.NoError(t, p.sessions.Save(record))
	_, err := p.taskService.CreateOrReset(ctx, "owner-1", "abc1234567", "clip.mp4")
	require.NoError(t, err)
	p.registry.Init("abc1234567")

	outputPath := p.orchestrator.FinalVideoPath("abc1234567")
	p.renderer.On("RenderVideo", mock.Anything, videoPath, outputPath,
		[]ffmpeg.SubtitleCue{{Start: 0, End: 1.5, Text: "que ****** total"}},
		[]ffmpeg.BeepInterval{{Start: 0, End: 1.5}},
		mock.Anything).Return(nil)

	err = p.orchestrator.RenderFinal(ctx, RenderRequest{OwnerID: "owner-1", VideoHash: "abc1234567"})
	require.NoError(t, err)

	p.renderer.AssertExpectations(t)

	task := p.taskService.byHash["abc1234567"]
	assert.Equal(t, models.TaskStatusCompleted, task.Status)
	assert.Equal(t, outputPath, task.FinalVideoPath)
	assert.Empty(t, task.SessionFilePath)

	// Working data is purged, only the artifact reference remains
	assert.False(t, p.sessions.Exists("abc1234567"))
	_, statErr := os.Stat(videoPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderFinalBeepOverrideWins(t *testing.T) {
	p := newTestPipeline(t)
	ctx := context.Background()
	videoPath := p.writeVideo(t, "abc1234567")

	record := &session.Record{
		VideoHash:     "abc1234567",
		VideoPath:     videoPath,
		Subtitles:     []session.Subtitle{{Start: 0, End: 1, Text: "hello"}},
		BeepIntervals: []profanity.Interval{{Start: 0, End: 1}, {Start: 2, End: 3}},
	}
	require.NoError(t, p.sessions.Save(record))
	_, err := p.taskService.CreateOrReset(ctx, "owner-1", "abc1234567", "clip.mp4")
	require.NoError(t, err)

	// The override replaces the stored intervals wholesale, it is not merged
	p.renderer.On("RenderVideo", mock.Anything, videoPath, mock.Anything, mock.Anything,
		[]ffmpeg.BeepInterval{{Start: 5, End: 6}},
		mock.Anything).Return(nil)

	err = p.orchestrator.RenderFinal(ctx, RenderRequest{
		OwnerID:       "owner-1",
		VideoHash:     "abc1234567",
		BeepIntervals: []profanity.Interval{{Start: 5, End: 6}},
	})
	require.NoError(t, err)
	p.renderer.AssertExpectations(t)
}

func TestRenderFinalForbiddenWordsRecompute(t *testing.T) {
	p := newTestPipeline(t)
	ctx := context.Background()
	videoPath := p.writeVideo(t, "abc1234567")

	record := &session.Record{
		VideoHash: "abc1234567",
		VideoPath: videoPath,
		Subtitles: []session.Subtitle{
			{ID: 0, Start: 0, End: 1, Text: "que ****** total", RawText: "que merda total"},
			{ID: 1, Start: 1, End: 2, Text: "tudo limpo", RawText: "tudo limpo"},
		},
		ForbiddenWords: []string{"merda"},
		BeepIntervals:  []profanity.Interval{{Start: 0, End: 1}},
	}
	require.NoError(t, p.sessions.Save(record))
	_, err := p.taskService.CreateOrReset(ctx, "owner-1", "abc1234567", "clip.mp4")
	require.NoError(t, err)

	// New words re-mask the raw text and rebuild the intervals
	p.renderer.On("RenderVideo", mock.Anything, videoPath, mock.Anything,
		[]ffmpeg.SubtitleCue{
			{Start: 0, End: 1, Text: "que merda total"},
			{Start: 1, End: 2, Text: "tudo ******"},
		},
		[]ffmpeg.BeepInterval{{Start: 1, End: 2}},
		mock.Anything).Return(nil)

	err = p.orchestrator.RenderFinal(ctx, RenderRequest{
		OwnerID:        "owner-1",
		VideoHash:      "abc1234567",
		ForbiddenWords: []string{"limpo"},
	})
	require.NoError(t, err)
	p.renderer.AssertExpectations(t)
}

func TestRenderFinalEmptyOverrideMeansNoBeeps(t *testing.T) {
	p := newTestPipeline(t)
	ctx := context.Background()
	videoPath := p.writeVideo(t, "abc1234567")

	record := &session.Record{
		VideoHash:     "abc1234567",
		VideoPath:     videoPath,
		Subtitles:     []session.Subtitle{{Start: 0, End: 1, Text: "hello"}},
		BeepIntervals: []profanity.Interval{{Start: 0, End: 1}},
	}
	require.NoError(t, p.sessions.Save(record))
	_, err := p.taskService.CreateOrReset(ctx, "owner-1", "abc1234567", "clip.mp4")
	require.NoError(t, err)

	p.renderer.On("RenderVideo", mock.Anything, videoPath, mock.Anything, mock.Anything,
		[]ffmpeg.BeepInterval{},
		mock.Anything).Return(nil)

	err = p.orchestrator.RenderFinal(ctx, RenderRequest{
		OwnerID:       "owner-1",
		VideoHash:     "abc1234567",
		BeepIntervals: []profanity.Interval{},
	})
	require.NoError(t, err)
	p.renderer.AssertExpectations(t)
}

func TestRenderFinalFailureKeepsSession(t *testing.T) {
	p := newTestPipeline(t)
	ctx := context.Background()
	videoPath := p.writeVideo(t, "abc1234567")

	record := &session.Record{
		VideoHash: "abc1234567",
		VideoPath: videoPath,
		Subtitles: []session.Subtitle{{Start: 0, End: 1, Text: "hello"}},
	}
	require.NoError(t, p.sessions.Save(record))
	_, err := p.taskService.CreateOrReset(ctx, "owner-1", "abc1234567", "clip.mp4")
	require.NoError(t, err)
	p.registry.Init("abc1234567")

	p.renderer.On("RenderVideo", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("ffmpeg crashed"))

	err = p.orchestrator.RenderFinal(ctx, RenderRequest{OwnerID: "owner-1", VideoHash: "abc1234567"})
	require.Error(t, err)

	task := p.taskService.byHash["abc1234567"]
	assert.Equal(t, models.TaskStatusError, task.Status)
	assert.Equal(t, 40.0, task.Progress)

	// A failed render leaves the session intact so the user can retry
	assert.True(t, p.sessions.Exists("abc1234567"))
	_, statErr := os.Stat(videoPath)
	assert.NoError(t, statErr)
}

func TestSubmitRenderRequiresSession(t *testing.T) {
	p := newTestPipeline(t)

	err := p.orchestrator.SubmitRender(context.Background(), RenderRequest{OwnerID: "owner-1", VideoHash: "missing"})
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestSubmitPreviewRejectsInFlightFingerprint(t *testing.T) {
	p := newTestPipeline(t)

	require.True(t, p.orchestrator.tryStart("abc1234567"))

	err := p.orchestrator.SubmitPreview(context.Background(), PreviewRequest{
		OwnerID:   "owner-1",
		VideoHash: "abc1234567",
		VideoPath: "/tmp/video.mp4",
		Filename:  "clip.mp4",
	})
	assert.ErrorIs(t, err, ErrAlreadyProcessing)

	// Once the pass finishes the fingerprint can be resubmitted
	p.orchestrator.finish("abc1234567")
	assert.True(t, p.orchestrator.tryStart("abc1234567"))
}

func TestUpdateSessionRecomputesBeepsFromNewWords(t *testing.T) {
	p := newTestPipeline(t)

	record := &session.Record{
		VideoHash: "abc1234567",
		VideoPath: "/tmp/video.mp4",
		Subtitles: []session.Subtitle{
			{ID: 0, Start: 0, End: 1, Text: "que ****** total", RawText: "que merda total"},
			{ID: 1, Start: 1, End: 2, Text: "tudo limpo", RawText: "tudo limpo"},
		},
		ForbiddenWords: []string{"merda"},
		BeepIntervals:  []profanity.Interval{{Start: 0, End: 1}},
	}
	require.NoError(t, p.sessions.Save(record))

	updated, err := p.orchestrator.UpdateSession(context.Background(), "abc1234567", SessionUpdate{
		ForbiddenWords: []string{"limpo"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"limpo"}, updated.ForbiddenWords)
	// Stored subtitle text is never rewritten by an edit, only the
	// intervals follow the new words
	assert.Equal(t, "que ****** total", updated.Subtitles[0].Text)
	assert.Equal(t, "tudo limpo", updated.Subtitles[1].Text)
	assert.Equal(t, []profanity.Interval{{Start: 1, End: 2}}, updated.BeepIntervals)

	// The edit is persisted
	reloaded, err := p.sessions.Load("abc1234567")
	require.NoError(t, err)
	assert.Equal(t, updated, reloaded)
}

func TestUpdateSessionSubtitleRoundTrip(t *testing.T) {
	p := newTestPipeline(t)

	require.NoError(t, p.sessions.Save(&session.Record{
		VideoHash: "abc1234567",
		VideoPath: "/tmp/video.mp4",
		Subtitles: []session.Subtitle{
			{ID: 0, Start: 0, End: 1, Text: "original", RawText: "original", Confidence: 1},
		},
		ForbiddenWords: []string{"merda"},
	}))

	edited := []session.Subtitle{
		{ID: 0, Start: 0, End: 1, Text: "hello merda", RawText: "hello there", Confidence: 0.9},
		{ID: 7, Start: 1, End: 2.5, Text: "second line", RawText: "second line", Confidence: 0.5},
	}
	updated, err := p.orchestrator.UpdateSession(context.Background(), "abc1234567", SessionUpdate{
		Subtitles: edited,
	})
	require.NoError(t, err)

	// The edited list comes back exactly as given, no field rewritten
	assert.Equal(t, edited, updated.Subtitles)

	reloaded, err := p.sessions.Load("abc1234567")
	require.NoError(t, err)
	assert.Equal(t, edited, reloaded.Subtitles)

	// Intervals follow the raw text, which stays clean here
	assert.Empty(t, reloaded.BeepIntervals)
}

func TestUpdateSessionEmptyWordListResetsToDefaults(t *testing.T) {
	p := newTestPipeline(t)

	record := &session.Record{
		VideoHash: "abc1234567",
		VideoPath: "/tmp/video.mp4",
		Subtitles: []session.Subtitle{
			{ID: 0, Start: 0, End: 1, Text: "que merda total", RawText: "que merda total"},
		},
		ForbiddenWords: []string{"total"},
	}
	require.NoError(t, p.sessions.Save(record))

	updated, err := p.orchestrator.UpdateSession(context.Background(), "abc1234567", SessionUpdate{
		ForbiddenWords: []string{},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"merda", "porra"}, updated.ForbiddenWords)
	assert.Equal(t, "que merda total", updated.Subtitles[0].Text)
	assert.Equal(t, []profanity.Interval{{Start: 0, End: 1}}, updated.BeepIntervals)
}

func TestUpdateSessionSubtitleEditRebuildsIntervals(t *testing.T) {
	p := newTestPipeline(t)

	record := &session.Record{
		VideoHash: "abc1234567",
		VideoPath: "/tmp/video.mp4",
		Subtitles: []session.Subtitle{
			{ID: 0, Start: 0, End: 1, Text: "hello", RawText: "hello"},
		},
		ForbiddenWords: []string{"merda"},
	}
	require.NoError(t, p.sessions.Save(record))

	updated, err := p.orchestrator.UpdateSession(context.Background(), "abc1234567", SessionUpdate{
		Subtitles: []session.Subtitle{
			{ID: 0, Start: 0, End: 1, Text: "hello merda", RawText: "hello merda"},
			{ID: 1, Start: 1, End: 2, Text: "new line", RawText: "new line"},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Subtitles, 2)
	assert.Equal(t, "hello merda", updated.Subtitles[0].Text)
	assert.Equal(t, []profanity.Interval{{Start: 0, End: 1}}, updated.BeepIntervals)
}

func TestUpdateSessionBeepOverride(t *testing.T) {
	p := newTestPipeline(t)

	record := &session.Record{
		VideoHash: "abc1234567",
		VideoPath: "/tmp/video.mp4",
		Subtitles: []session.Subtitle{
			{ID: 0, Start: 0, End: 1, Text: "que ****** total", RawText: "que merda total"},
		},
		ForbiddenWords: []string{"merda"},
		BeepIntervals:  []profanity.Interval{{Start: 0, End: 1}},
	}
	require.NoError(t, p.sessions.Save(record))

	updated, err := p.orchestrator.UpdateSession(context.Background(), "abc1234567", SessionUpdate{
		BeepIntervals: []profanity.Interval{{Start: 5, End: 6}},
	})
	require.NoError(t, err)

	// The override wins over the recomputed intervals but masking is kept
	assert.Equal(t, "que ****** total", updated.Subtitles[0].Text)
	assert.Equal(t, []profanity.Interval{{Start: 5, End: 6}}, updated.BeepIntervals)
}

func TestUpdateSessionMissing(t *testing.T) {
	p := newTestPipeline(t)

	_, err := p.orchestrator.UpdateSession(context.Background(), "missing", SessionUpdate{})
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
