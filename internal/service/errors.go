package service

import (
	"errors"

	"marketplace-api/internal/eligibility"
	"marketplace-api/internal/entity"
)

var (
	ErrBriefNotFound     = errors.New("brief not found")
	ErrFrameworkNotFound = errors.New("framework not found")
	ErrLotNotFound       = errors.New("lot not found")

	ErrUnauthorized  = errors.New("user is not authorised for this brief")
	ErrBriefNotDraft = errors.New("brief is not a draft")

	ErrInvalidClosingDate = errors.New("the closing date is invalid")
	ErrClosingDateTooSoon = errors.New("the closing date must be at least 1 week into the future")
)

// EligibilityError carries a policy denial from the eligibility engine out to
// the controller, which maps the tagged reason onto an HTTP status.
type EligibilityError struct {
	Denial *eligibility.Denial
}

func (e *EligibilityError) Error() string {
	return e.Denial.Message
}

// ResponseValidationError is the batch of payload failures from a response
// submission, with the friendly remapped display message already built.
type ResponseValidationError struct {
	Message string
	Errors  []entity.ValidationError
}

func (e *ResponseValidationError) Error() string {
	return e.Message
}
