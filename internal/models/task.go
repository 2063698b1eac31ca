package models

import (
	"time"
)

// TaskStatus represents the lifecycle status of a video processing task
type TaskStatus string

const (
	TaskStatusProcessing   TaskStatus = "processing"
	TaskStatusPreviewReady TaskStatus = "preview_ready"
	TaskStatusRendering    TaskStatus = "rendering"
	TaskStatusCompleted    TaskStatus = "completed"
	TaskStatusError        TaskStatus = "error"
)

// Pipeline stage names used for progress reporting
const (
	StageUploading       = "uploading"
	StageExtractingAudio = "extracting_audio"
	StageTranscribing    = "transcribing"
	StageCensoring       = "censoring"
	StageLoadingSession  = "loading_session"
	StageProcessingBeeps = "processing_beeps"
	StageRenderingVideo  = "rendering_video"
	StageFinalizing      = "finalizing"
	StageCompleted       = "completed"
	StageError           = "error"
)

// MaxErrorLength bounds the stored last_error message
const MaxErrorLength = 250

// VideoTask is the durable per-owner record of one video's processing
// lifecycle, keyed by the content fingerprint of the uploaded bytes.
// Re-uploading identical bytes resets the existing record in place.
type VideoTask struct {
	ID               uint       `gorm:"primarykey" json:"-"`
	VideoHash        string     `gorm:"size:64;uniqueIndex;not null" json:"video_hash"`
	OwnerID          string     `gorm:"size:64;index;not null" json:"-"`
	OriginalFilename string     `gorm:"size:255;not null" json:"filename"`
	Status           TaskStatus `gorm:"size:32;not null;default:'processing'" json:"status"`
	Stage            string     `gorm:"size:64" json:"stage"`
	Progress         float64    `gorm:"not null;default:0" json:"progress"`
	Message          string     `gorm:"size:255" json:"message"`
	DurationSeconds  *float64   `json:"duration_seconds"`
	FinalVideoPath   string     `gorm:"size:255" json:"-"`
	SessionFilePath  string     `gorm:"size:255" json:"-"`
	LastError        string     `gorm:"size:255" json:"last_error,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	CompletedAt      *time.Time `json:"completed_at"`
	IsDeleted        bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt        *time.Time `json:"deleted_at"`
}

// TableName specifies the table name for GORM
func (VideoTask) TableName() string {
	return "video_tasks"
}

// ClampProgress bounds a progress value to the valid [0,100] range
func ClampProgress(progress float64) float64 {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// TruncateError bounds an error message for storage
func TruncateError(message string) string {
	if len(message) > MaxErrorLength {
		return message[:MaxErrorLength]
	}
	return message
}

// IsTerminal returns true if the task reached a state the pipeline will not
// advance past without a new submission
func (t *VideoTask) IsTerminal() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusError
}

// FinalAvailable reports whether the rendered artifact still exists on disk
func (t *VideoTask) FinalAvailable(exists func(string) bool) bool {
	return t.FinalVideoPath != "" && exists(t.FinalVideoPath)
}

// CanResume reports whether the session working data still exists on disk
func (t *VideoTask) CanResume(exists func(string) bool) bool {
	return t.SessionFilePath != "" && exists(t.SessionFilePath)
}
