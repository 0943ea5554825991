package incident

import "errors"

// Incident domain errors
var (
	ErrIncidentNotFound = errors.New("incident not found")
	ErrNoOpenIncident   = errors.New("no open incident found for this date, check in first")
	ErrAlreadyProcessed = errors.New("incident has already been decided")
)
