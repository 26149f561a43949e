package models

import "errors"

// Business errors returned by aggregate methods. Handlers map each one to a
// 4xx status and a stable error code; anything else is a 500.
var (
	// Event registration
	ErrAlreadyRegistered  = errors.New("user is already registered for this event")
	ErrRegistrationClosed = errors.New("registration is closed for this event")
	ErrNotRegistered      = errors.New("user is not registered for this event")
	ErrInvalidLocation    = errors.New("event location is incomplete for its type")
	ErrInvalidFeedback    = errors.New("feedback rating must be between 1 and 5")

	// Job applications
	ErrJobExpired                = errors.New("this job posting has expired")
	ErrApplicationDeadlinePassed = errors.New("application deadline has passed")
	ErrAlreadyApplied            = errors.New("user has already applied for this job")
	ErrCannotApplyOwnJob         = errors.New("cannot apply for your own job posting")
	ErrApplicationNotFound       = errors.New("application not found")
	ErrInvalidApplicationStatus  = errors.New("invalid application status")
	ErrInvalidSalaryRange        = errors.New("minimum salary cannot exceed maximum salary")

	// Community
	ErrCommentNotFound = errors.New("comment not found")
)
