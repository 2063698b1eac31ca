package tasks

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textwaves/censor-api/internal/models"
)

// fakeRepository is an in-memory TaskRepository keyed by video hash
type fakeRepository struct {
	byHash map[string]*models.VideoTask
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byHash: make(map[string]*models.VideoTask)}
}

func (f *fakeRepository) Create(ctx context.Context, task *models.VideoTask) error {
	copied := *task
	f.byHash[task.VideoHash] = &copied
	return nil
}

func (f *fakeRepository) Save(ctx context.Context, task *models.VideoTask) error {
	if _, ok := f.byHash[task.VideoHash]; !ok {
		return NewNotFoundError(task.VideoHash)
	}
	copied := *task
	f.byHash[task.VideoHash] = &copied
	return nil
}

func (f *fakeRepository) GetByHash(ctx context.Context, videoHash string) (*models.VideoTask, error) {
	task, ok := f.byHash[videoHash]
	if !ok {
		return nil, NewNotFoundError(videoHash)
	}
	copied := *task
	return &copied, nil
}

func (f *fakeRepository) GetByOwnerAndHash(ctx context.Context, ownerID, videoHash string, includeDeleted bool) (*models.VideoTask, error) {
	task, ok := f.byHash[videoHash]
	if !ok || task.OwnerID != ownerID {
		return nil, NewNotFoundError(videoHash)
	}
	if task.IsDeleted && !includeDeleted {
		return nil, NewNotFoundError(videoHash)
	}
	copied := *task
	return &copied, nil
}

func (f *fakeRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.VideoTask, error) {
	var list []models.VideoTask
	for _, task := range f.byHash {
		if task.OwnerID == ownerID && !task.IsDeleted {
			list = append(list, *task)
		}
	}
	return list, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCreateOrResetCreatesNewTask(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)

	task, err := service.CreateOrReset(context.Background(), "owner-1", "abc1234567", "clip.mp4")
	require.NoError(t, err)

	assert.Equal(t, models.TaskStatusProcessing, task.Status)
	assert.Equal(t, models.StageUploading, task.Stage)
	assert.Equal(t, 0.0, task.Progress)
	assert.Equal(t, "clip.mp4", task.OriginalFilename)
}

func TestCreateOrResetResetsExistingRecord(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	_, err := service.CreateOrReset(ctx, "owner-1", "abc1234567", "clip.mp4")
	require.NoError(t, err)
	require.NoError(t, service.MarkError(ctx, "abc1234567", "transcription failed"))
	require.NoError(t, service.MarkDeleted(ctx, "owner-1", "abc1234567"))

	// Same bytes produce the same fingerprint, so the record is reset, not duplicated
	task, err := service.CreateOrReset(ctx, "owner-1", "abc1234567", "clip-renamed.mp4")
	require.NoError(t, err)

	assert.Equal(t, models.TaskStatusProcessing, task.Status)
	assert.Equal(t, models.StageUploading, task.Stage)
	assert.Equal(t, 0.0, task.Progress)
	assert.Empty(t, task.LastError)
	assert.False(t, task.IsDeleted)
	assert.Nil(t, task.DeletedAt)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, "clip-renamed.mp4", task.OriginalFilename)
	assert.Len(t, repo.byHash, 1)
}

func TestRecordProgressClamps(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	_, err := service.CreateOrReset(ctx, "owner-1", "abc1234567", "clip.mp4")
	require.NoError(t, err)

	require.NoError(t, service.RecordProgress(ctx, "abc1234567", models.TaskStatusProcessing, models.StageTranscribing, 150, "Transcribing..."))

	task, err := service.GetForOwner(ctx, "owner-1", "abc1234567", false)
	require.NoError(t, err)
	assert.Equal(t, 100.0, task.Progress)
	assert.Equal(t, models.StageTranscribing, task.Stage)
}

func TestRecordProgressUnknownTask(t *testing.T) {
	service := NewService(newFakeRepository())

	err := service.RecordProgress(context.Background(), "missing", models.TaskStatusProcessing, models.StageUploading, 5, "")
	assert.True(t, IsNotFound(err))
}

func TestMarkErrorTruncatesAndKeepsProgress(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	_, err := service.CreateOrReset(ctx, "owner-1", "abc1234567", "clip.mp4")
	require.NoError(t, err)
	require.NoError(t, service.RecordProgress(ctx, "abc1234567", models.TaskStatusProcessing, models.StageTranscribing, 40, "Transcribing..."))

	long := strings.Repeat("x", 400)
	require.NoError(t, service.MarkError(ctx, "abc1234567", long))

	task, err := service.GetForOwner(ctx, "owner-1", "abc1234567", false)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusError, task.Status)
	assert.Equal(t, models.StageError, task.Stage)
	assert.Len(t, task.LastError, models.MaxErrorLength)
	// Progress stays at the last checkpoint reached before the failure
	assert.Equal(t, 40.0, task.Progress)
	assert.True(t, task.IsTerminal())
}

func TestMarkCompleted(t *testing.T) {
	repo := newFakeRepository()
	now := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	service := NewService(repo, WithClock(fixedClock(now)))
	ctx := context.Background()

	_, err := service.CreateOrReset(ctx, "owner-1", "abc1234567", "clip.mp4")
	require.NoError(t, err)

	require.NoError(t, service.MarkCompleted(ctx, "abc1234567", "/uploads/final_abc1234567.mp4"))

	task, err := service.GetForOwner(ctx, "owner-1", "abc1234567", false)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, task.Status)
	assert.Equal(t, 100.0, task.Progress)
	assert.Equal(t, "/uploads/final_abc1234567.mp4", task.FinalVideoPath)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, now, *task.CompletedAt)
}

func TestUpdateMetadata(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	_, err := service.CreateOrReset(ctx, "owner-1", "abc1234567", "clip.mp4")
	require.NoError(t, err)

	duration := 12.5
	require.NoError(t, service.UpdateMetadata(ctx, "abc1234567", &duration, "/uploads/session_abc1234567.json"))

	task, err := service.GetForOwner(ctx, "owner-1", "abc1234567", false)
	require.NoError(t, err)
	require.NotNil(t, task.DurationSeconds)
	assert.Equal(t, 12.5, *task.DurationSeconds)
	assert.Equal(t, "/uploads/session_abc1234567.json", task.SessionFilePath)
}

func TestClearSessionReference(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	_, err := service.CreateOrReset(ctx, "owner-1", "abc1234567", "clip.mp4")
	require.NoError(t, err)
	duration := 5.0
	require.NoError(t, service.UpdateMetadata(ctx, "abc1234567", &duration, "/uploads/session_abc1234567.json"))

	require.NoError(t, service.ClearSessionReference(ctx, "abc1234567"))

	task, err := service.GetForOwner(ctx, "owner-1", "abc1234567", false)
	require.NoError(t, err)
	assert.Empty(t, task.SessionFilePath)
	// Other metadata survives the clear
	require.NotNil(t, task.DurationSeconds)
}

func TestMarkDeletedIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	now := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	service := NewService(repo, WithClock(fixedClock(now)))
	ctx := context.Background()

	_, err := service.CreateOrReset(ctx, "owner-1", "abc1234567", "clip.mp4")
	require.NoError(t, err)

	require.NoError(t, service.MarkDeleted(ctx, "owner-1", "abc1234567"))

	task, err := service.GetForOwner(ctx, "owner-1", "abc1234567", true)
	require.NoError(t, err)
	require.True(t, task.IsDeleted)
	firstDeletedAt := *task.DeletedAt

	// Second delete succeeds and does not touch the timestamp
	require.NoError(t, service.MarkDeleted(ctx, "owner-1", "abc1234567"))

	task, err = service.GetForOwner(ctx, "owner-1", "abc1234567", true)
	require.NoError(t, err)
	assert.Equal(t, firstDeletedAt, *task.DeletedAt)
}

func TestMarkDeletedScopedToOwner(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	_, err := service.CreateOrReset(ctx, "owner-1", "abc1234567", "clip.mp4")
	require.NoError(t, err)

	err = service.MarkDeleted(ctx, "owner-2", "abc1234567")
	assert.True(t, IsNotFound(err))
}

func TestGetForOwnerExcludesDeletedByDefault(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	_, err := service.CreateOrReset(ctx, "owner-1", "abc1234567", "clip.mp4")
	require.NoError(t, err)
	require.NoError(t, service.MarkDeleted(ctx, "owner-1", "abc1234567"))

	_, err = service.GetForOwner(ctx, "owner-1", "abc1234567", false)
	assert.True(t, IsNotFound(err))

	task, err := service.GetForOwner(ctx, "owner-1", "abc1234567", true)
	require.NoError(t, err)
	assert.True(t, task.IsDeleted)
}
