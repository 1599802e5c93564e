package services

import (
	"errors"
	"fmt"

	"github.com/stilessandgravel/backend/internal/models"
)

var (
	// ErrCaptchaRequired is returned when verification is enabled and no token was sent
	ErrCaptchaRequired = errors.New("captcha verification is required")
	// ErrCaptchaFailed is returned when the token was rejected or could not be checked
	ErrCaptchaFailed = errors.New("captcha verification failed")
)

// ValidationError lists every field of a payload that failed validation
type ValidationError struct {
	Issues []models.FieldIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation failed: %s: %s", e.Issues[0].Field, e.Issues[0].Message)
	}
	return fmt.Sprintf("validation failed: %d issues", len(e.Issues))
}
