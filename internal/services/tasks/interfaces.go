// Package tasks manages the durable video task records backing the
// processing pipeline and the per-owner video listing API.
package tasks

import (
	"context"

	"github.com/textwaves/censor-api/internal/models"
)

// TaskRepository defines data access for video task records
type TaskRepository interface {
	Create(ctx context.Context, task *models.VideoTask) error
	Save(ctx context.Context, task *models.VideoTask) error
	GetByHash(ctx context.Context, videoHash string) (*models.VideoTask, error)
	GetByOwnerAndHash(ctx context.Context, ownerID, videoHash string, includeDeleted bool) (*models.VideoTask, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.VideoTask, error)
}

// TaskService defines the business operations over video task records
type TaskService interface {
	// CreateOrReset starts tracking a new upload. If a record already exists
	// for the fingerprint it is reset in place rather than duplicated.
	CreateOrReset(ctx context.Context, ownerID, videoHash, filename string) (*models.VideoTask, error)

	// RecordProgress persists a pipeline checkpoint
	RecordProgress(ctx context.Context, videoHash string, status models.TaskStatus, stage string, progress float64, message string) error

	// UpdateMetadata records transcription-time facts about the video
	UpdateMetadata(ctx context.Context, videoHash string, durationSeconds *float64, sessionFilePath string) error

	// MarkCompleted finishes a render pass and records the final artifact
	MarkCompleted(ctx context.Context, videoHash, finalVideoPath string) error

	// MarkError moves the task to the error state, keeping the last progress
	MarkError(ctx context.Context, videoHash, message string) error

	// ClearSessionReference drops the session file path once the working
	// data has been purged
	ClearSessionReference(ctx context.Context, videoHash string) error

	// GetForOwner returns one task scoped to its owner
	GetForOwner(ctx context.Context, ownerID, videoHash string, includeDeleted bool) (*models.VideoTask, error)

	// ListForOwner returns the owner's non-deleted tasks, newest first
	ListForOwner(ctx context.Context, ownerID string) ([]models.VideoTask, error)

	// MarkDeleted soft-deletes a task. Deleting an already deleted task
	// succeeds without changes.
	MarkDeleted(ctx context.Context, ownerID, videoHash string) error
}
