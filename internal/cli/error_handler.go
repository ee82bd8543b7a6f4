package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/validation"
)

// ErrorHandler turns errors from the business layer into command errors
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes err with the failed operation and replaces internal detail
// with the message a user can act on. Unexpected errors are logged in full.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}

	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}

	if errors.ShouldLogError(err) {
		logging.Errorf("%s: %v\n", operation, err)
	}

	if errors.IsQuotaExceeded(err) {
		return fmt.Errorf("failed to %s: %s%s", operation, errors.QuotaRemediation, quotaDetail(err))
	}

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// quotaDetail names the rejected write size and the quota, or nothing when
// the engine reported the store full without sizes.
func quotaDetail(err error) string {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return ""
	}
	size, _ := appErr.GetContext("size")
	quota, _ := appErr.GetContext("quota")
	sizeBytes, ok1 := size.(int64)
	quotaBytes, ok2 := quota.(int64)
	if !ok1 || !ok2 || quotaBytes <= 0 {
		return ""
	}
	return fmt.Sprintf(" (writing %s would exceed the %s limit; run 'tm storage' for details)",
		humanize.IBytes(uint64(sizeBytes)), humanize.IBytes(uint64(quotaBytes)))
}
