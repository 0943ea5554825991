package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeInactive = errors.New("employee is not active")
	ErrNoShiftAssigned  = errors.New("employee has no shift assigned")
)
