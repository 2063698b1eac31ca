package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textwaves/censor-api/internal/database"
	"github.com/textwaves/censor-api/internal/models"
)

func setupRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.AutoMigrate(&models.VideoTask{}))
	return NewRepository(db.DB)
}

func TestRepositoryCreateAndGetByHash(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	task := &models.VideoTask{
		VideoHash:        "abc1234567",
		OwnerID:          "owner-1",
		OriginalFilename: "clip.mp4",
		Status:           models.TaskStatusProcessing,
		Stage:            models.StageUploading,
	}
	require.NoError(t, repo.Create(ctx, task))
	assert.NotZero(t, task.ID)

	loaded, err := repo.GetByHash(ctx, "abc1234567")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", loaded.OwnerID)
	assert.Equal(t, models.TaskStatusProcessing, loaded.Status)
}

func TestRepositoryGetByHashNotFound(t *testing.T) {
	repo := setupRepository(t)

	_, err := repo.GetByHash(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
}

func TestRepositorySavePersistsChanges(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	task := &models.VideoTask{VideoHash: "abc1234567", OwnerID: "owner-1", OriginalFilename: "clip.mp4"}
	require.NoError(t, repo.Create(ctx, task))

	task.Status = models.TaskStatusPreviewReady
	task.Progress = 100
	require.NoError(t, repo.Save(ctx, task))

	loaded, err := repo.GetByHash(ctx, "abc1234567")
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusPreviewReady, loaded.Status)
	assert.Equal(t, 100.0, loaded.Progress)
}

func TestRepositoryGetByOwnerAndHashFiltersDeleted(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	now := time.Now().UTC()
	task := &models.VideoTask{
		VideoHash:        "abc1234567",
		OwnerID:          "owner-1",
		OriginalFilename: "clip.mp4",
		IsDeleted:        true,
		DeletedAt:        &now,
	}
	require.NoError(t, repo.Create(ctx, task))

	_, err := repo.GetByOwnerAndHash(ctx, "owner-1", "abc1234567", false)
	assert.True(t, IsNotFound(err))

	loaded, err := repo.GetByOwnerAndHash(ctx, "owner-1", "abc1234567", true)
	require.NoError(t, err)
	assert.True(t, loaded.IsDeleted)

	_, err = repo.GetByOwnerAndHash(ctx, "other-owner", "abc1234567", true)
	assert.True(t, IsNotFound(err))
}

func TestRepositoryListByOwner(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	for _, task := range []*models.VideoTask{
		{VideoHash: "aaa1111111", OwnerID: "owner-1", OriginalFilename: "a.mp4"},
		{VideoHash: "bbb2222222", OwnerID: "owner-1", OriginalFilename: "b.mp4", IsDeleted: true},
		{VideoHash: "ccc3333333", OwnerID: "owner-2", OriginalFilename: "c.mp4"},
	} {
		require.NoError(t, repo.Create(ctx, task))
	}

	list, err := repo.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "aaa1111111", list[0].VideoHash)
}
