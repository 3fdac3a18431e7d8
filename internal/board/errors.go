package board

import (
	"github.com/goliatone/go-errors"
)

const (
	textCodeInvalidStatus    = "INVALID_STATUS"
	textCodeSubscriberExists = "SUBSCRIBER_EXISTS"
)

// ErrInvalidStatus is returned when a requested status value is outside the
// entity's closed status set. The entity is left unmodified.
var ErrInvalidStatus = errors.New("status value is not recognized", errors.CategoryValidation).
	WithTextCode(textCodeInvalidStatus).
	WithCode(errors.CodeBadRequest)

// ErrSubscriberExists is returned when subscribing an email that already has
// an active subscription.
var ErrSubscriberExists = errors.New("email is already subscribed", errors.CategoryConflict).
	WithTextCode(textCodeSubscriberExists).
	WithCode(errors.CodeConflict)
