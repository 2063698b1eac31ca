package tasks

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError represents an error when a task record is not found
type NotFoundError struct {
	VideoHash string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("task for video %s not found", e.VideoHash)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrTaskNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(videoHash string) error {
	return NotFoundError{VideoHash: videoHash}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var notFoundErr NotFoundError
	return errors.As(err, &notFoundErr) || errors.Is(err, ErrTaskNotFound)
}
