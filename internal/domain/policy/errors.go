package policy

import "errors"

var ErrPolicyNotFound = errors.New("company attendance policy is not configured")
