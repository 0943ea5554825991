package leave

import "errors"

// Leave domain errors
var (
	ErrRequestNotFound  = errors.New("leave request not found")
	ErrOverlap          = errors.New("an overlapping leave request already exists")
	ErrAlreadyProcessed = errors.New("leave request has already been processed")
)
