package ninepay

import (
	apperrors "github.com/ninepay-go/ninepay/internal/shared/errors"
)

// Error is the error type returned for configuration, validation, decode,
// transport and duplicate-notification failures.
type Error = apperrors.AppError

var (
	IsConfigurationError = apperrors.IsConfigurationError
	IsValidationError    = apperrors.IsValidationError
	IsDecodeError        = apperrors.IsDecodeError
	IsTransportError     = apperrors.IsTransportError
	IsDuplicateError     = apperrors.IsDuplicateError
)

// ErrDuplicateNotification is returned when a notification was already processed.
var ErrDuplicateNotification = apperrors.NewDuplicateError("notification already processed")
