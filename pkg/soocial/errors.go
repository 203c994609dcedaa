package soocial

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. ResponseError unwraps to exactly one of the HTTP kinds.
var (
	ErrInvalidContactID   = errors.New("invalid contact ID")
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("resource conflict")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrServerError        = errors.New("server error")
)

// Common static errors that can be wrapped with context.
var (
	ErrDecodeResponse = errors.New("decoding response")
	ErrVCardParse     = errors.New("parsing vCard")
	ErrConfigRequired = errors.New("config is required")
	ErrNoLocation     = errors.New("create response carried no Location header")
)

const maxPayloadInMessage = 200

// ResponseError is returned for every response with a status code of 400 or
// above.
type ResponseError struct {
	StatusCode int
	// Code and Reason are taken from the error and reason fields of a decoded
	// error document. Both are empty when the body was not a record.
	Code   string
	Reason string
	// Payload is the decoded body, or the raw text when it was not XML.
	Payload Value
}

// NewResponseError builds a ResponseError from a status code and decoded body.
func NewResponseError(statusCode int, payload Value) *ResponseError {
	respErr := &ResponseError{
		StatusCode: statusCode,
		Payload:    payload,
	}

	if payload.Kind() == KindRecord {
		respErr.Code = payload.StringOr("error", "")
		respErr.Reason = payload.StringOr("reason", "")
	}

	return respErr
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	if e.Code != "" || e.Reason != "" {
		return fmt.Sprintf("%s (status %d): %s: %s", e.Kind(), e.StatusCode, e.Code, e.Reason)
	}

	text, ok := e.Payload.Text()
	if !ok || text == "" {
		return fmt.Sprintf("%s (status %d)", e.Kind(), e.StatusCode)
	}

	if len(text) > maxPayloadInMessage {
		text = text[:maxPayloadInMessage] + "..."
	}

	return fmt.Sprintf("%s (status %d): %s", e.Kind(), e.StatusCode, text)
}

// Kind maps the status code onto the error taxonomy.
func (e *ResponseError) Kind() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusPreconditionFailed:
		return ErrPreconditionFailed
	default:
		return ErrServerError
	}
}

// Unwrap allows errors.Is(err, ErrNotFound) and friends.
func (e *ResponseError) Unwrap() error {
	return e.Kind()
}

// IsNotFound checks if the error is a 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if the error is a 409.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsPreconditionFailed checks if the error is a 412.
func IsPreconditionFailed(err error) bool {
	return errors.Is(err, ErrPreconditionFailed)
}

// IsServerError checks if the error is any other status of 400 or above.
func IsServerError(err error) bool {
	return errors.Is(err, ErrServerError)
}
