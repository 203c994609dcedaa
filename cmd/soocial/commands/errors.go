package commands

import "errors"

// Static errors used throughout the commands package.
var (
	ErrUnreachable     = errors.New("API is not reachable")
	ErrContactNotFound = errors.New("contact not found")
)
