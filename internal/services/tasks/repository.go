package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/textwaves/censor-api/internal/models"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

// Ensure Repository implements TaskRepository interface
var _ TaskRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, task *models.VideoTask) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("task for video %s already exists", task.VideoHash)
		}
		return fmt.Errorf("creating task: %w", err)
	}
	return nil
}

func (r *Repository) Save(ctx context.Context, task *models.VideoTask) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return fmt.Errorf("saving task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError(task.VideoHash)
	}
	return nil
}

func (r *Repository) GetByHash(ctx context.Context, videoHash string) (*models.VideoTask, error) {
	var task models.VideoTask
	if err := r.db.WithContext(ctx).
		Where("video_hash = ?", videoHash).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(videoHash)
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return &task, nil
}

func (r *Repository) GetByOwnerAndHash(ctx context.Context, ownerID, videoHash string, includeDeleted bool) (*models.VideoTask, error) {
	var task models.VideoTask
	query := r.db.WithContext(ctx).
		Where("owner_id = ? AND video_hash = ?", ownerID, videoHash)
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	if err := query.First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(videoHash)
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return &task, nil
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]models.VideoTask, error) {
	var list []models.VideoTask
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_deleted = ?", ownerID, false).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return list, nil
}
