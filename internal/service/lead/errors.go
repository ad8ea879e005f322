package lead

import "errors"

var (
	// ErrPersistence is the only error SubmitLead returns. The enquiry was
	// not saved and nothing else was attempted.
	ErrPersistence = errors.New("we could not save your enquiry")

	ErrLeadNotFound  = errors.New("lead not found")
	ErrInvalidStatus = errors.New("invalid lead status")
)
