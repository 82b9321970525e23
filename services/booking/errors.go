package booking

import "errors"

var (
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrWorkerUnavailable = errors.New("worker is not available for the requested time")
	ErrNoWorkerMatched   = errors.New("no suitable worker could be matched")
)

// MatchError carries the matcher's explanation when no worker fits.
type MatchError struct {
	Code    string
	Message string
}

func (e *MatchError) Error() string {
	return e.Code + ": " + e.Message
}

func (e *MatchError) Is(target error) bool {
	return target == ErrNoWorkerMatched
}

func NewMatchError(msg string) error {
	if msg == "" {
		msg = "No suitable worker could be matched for your request at this time."
	}
	return &MatchError{Code: "NO_WORKER_AVAILABLE", Message: msg}
}
