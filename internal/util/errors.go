package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrJobNotFound         = errors.New("job not found")
	ErrJobInactive         = errors.New("job is no longer active")
	ErrAlreadyApplied      = errors.New("you have already applied for this job")
	ErrApplicationNotFound = errors.New("application not found")

	ErrAssessmentNotFound   = errors.New("assessment not found")
	ErrAssessmentInactive   = errors.New("assessment is not active")
	ErrAttemptNotFound      = errors.New("user assessment not found")
	ErrAttemptNotInProgress = errors.New("assessment is not in progress")
	ErrTimeLimitExceeded    = errors.New("time limit exceeded")
	ErrAttemptConflict      = errors.New("attempt was modified concurrently")
)
