package tasks

import (
	"context"
	"time"

	"github.com/textwaves/censor-api/internal/models"
)

// Service implements the TaskService interface with business logic
type Service struct {
	repository TaskRepository
	now        func() time.Time
}

// Ensure Service implements TaskService interface
var _ TaskService = (*Service)(nil)

// ServiceOption is a functional option for configuring the service
type ServiceOption func(*Service)

// WithClock overrides the time source, used by tests
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a new task service
func NewService(repository TaskRepository, opts ...ServiceOption) *Service {
	s := &Service{
		repository: repository,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrReset starts tracking a new upload. The fingerprint is derived
// from the uploaded bytes, so re-uploading the same file finds the existing
// record and resets it in place instead of creating a duplicate. A reset
// also revives a soft-deleted record.
func (s *Service) CreateOrReset(ctx context.Context, ownerID, videoHash, filename string) (*models.VideoTask, error) {
	existing, err := s.repository.GetByHash(ctx, videoHash)
	if err != nil {
		if !IsNotFound(err) {
			return nil, err
		}
		task := &models.VideoTask{
			VideoHash:        videoHash,
			OwnerID:          ownerID,
			OriginalFilename: filename,
			Status:           models.TaskStatusProcessing,
			Stage:            models.StageUploading,
			Progress:         0,
			Message:          "Upload received",
		}
		if err := s.repository.Create(ctx, task); err != nil {
			return nil, err
		}
		return task, nil
	}

	existing.OwnerID = ownerID
	existing.OriginalFilename = filename
	existing.Status = models.TaskStatusProcessing
	existing.Stage = models.StageUploading
	existing.Progress = 0
	existing.Message = "Upload received"
	existing.DurationSeconds = nil
	existing.FinalVideoPath = ""
	existing.SessionFilePath = ""
	existing.LastError = ""
	existing.CompletedAt = nil
	existing.IsDeleted = false
	existing.DeletedAt = nil

	if err := s.repository.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// RecordProgress persists a pipeline checkpoint. Progress is clamped to
// [0,100] before storage.
func (s *Service) RecordProgress(ctx context.Context, videoHash string, status models.TaskStatus, stage string, progress float64, message string) error {
	task, err := s.repository.GetByHash(ctx, videoHash)
	if err != nil {
		return err
	}

	task.Status = status
	task.Stage = stage
	task.Progress = models.ClampProgress(progress)
	task.Message = message

	return s.repository.Save(ctx, task)
}

// UpdateMetadata records transcription-time facts about the video
func (s *Service) UpdateMetadata(ctx context.Context, videoHash string, durationSeconds *float64, sessionFilePath string) error {
	task, err := s.repository.GetByHash(ctx, videoHash)
	if err != nil {
		return err
	}

	if durationSeconds != nil {
		task.DurationSeconds = durationSeconds
	}
	if sessionFilePath != "" {
		task.SessionFilePath = sessionFilePath
	}

	return s.repository.Save(ctx, task)
}

// MarkCompleted finishes a render pass: the task moves to completed at 100%
// and the final artifact path is recorded
func (s *Service) MarkCompleted(ctx context.Context, videoHash, finalVideoPath string) error {
	task, err := s.repository.GetByHash(ctx, videoHash)
	if err != nil {
		return err
	}

	completedAt := s.now()
	task.Status = models.TaskStatusCompleted
	task.Stage = models.StageCompleted
	task.Progress = 100
	task.Message = "Processing completed"
	task.FinalVideoPath = finalVideoPath
	task.LastError = ""
	task.CompletedAt = &completedAt

	return s.repository.Save(ctx, task)
}

// MarkError moves the task to the error state. The message is truncated for
// storage and the last recorded progress is kept so clients can see where
// the pipeline stopped.
func (s *Service) MarkError(ctx context.Context, videoHash, message string) error {
	task, err := s.repository.GetByHash(ctx, videoHash)
	if err != nil {
		return err
	}

	task.Status = models.TaskStatusError
	task.Stage = models.StageError
	task.LastError = models.TruncateError(message)
	task.Message = "Processing failed"

	return s.repository.Save(ctx, task)
}

// ClearSessionReference drops the session file path once the working data
// has been purged after a successful render
func (s *Service) ClearSessionReference(ctx context.Context, videoHash string) error {
	task, err := s.repository.GetByHash(ctx, videoHash)
	if err != nil {
		return err
	}

	task.SessionFilePath = ""

	return s.repository.Save(ctx, task)
}

// GetForOwner returns one task scoped to its owner
func (s *Service) GetForOwner(ctx context.Context, ownerID, videoHash string, includeDeleted bool) (*models.VideoTask, error) {
	return s.repository.GetByOwnerAndHash(ctx, ownerID, videoHash, includeDeleted)
}

// ListForOwner returns the owner's non-deleted tasks, newest first
func (s *Service) ListForOwner(ctx context.Context, ownerID string) ([]models.VideoTask, error) {
	return s.repository.ListByOwner(ctx, ownerID)
}

// MarkDeleted soft-deletes a task. Repeating the call for an already
// deleted task succeeds without touching the record again.
func (s *Service) MarkDeleted(ctx context.Context, ownerID, videoHash string) error {
	task, err := s.repository.GetByOwnerAndHash(ctx, ownerID, videoHash, true)
	if err != nil {
		return err
	}

	if task.IsDeleted {
		return nil
	}

	deletedAt := s.now()
	task.IsDeleted = true
	task.DeletedAt = &deletedAt

	return s.repository.Save(ctx, task)
}
