package constants

import "errors"

// Configuration errors.
var (
	ErrNoEmailConfigured    = errors.New("no email configured, pass --email or set SOOCIAL_EMAIL")
	ErrNoPasswordConfigured = errors.New("no password configured and stdin is not a terminal")
	ErrUnknownOutputFormat  = errors.New("unknown output format")
	ErrUnknownCacheType     = errors.New("unknown cache type")
)

// Operation errors.
var (
	ErrFieldSyntax     = errors.New("fields must be given as KEY=VALUE")
	ErrNoFieldsGiven   = errors.New("at least one KEY=VALUE field is required")
	ErrUnexpectedValue = errors.New("unexpected value shape")
)
