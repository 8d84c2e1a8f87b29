package domain

import (
	"errors"
	"fmt"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidUpload = errors.New("invalid upload")
var ErrReportNotFound = errors.New("report not found")
var ErrUpstream = errors.New("inference backend error")

// UpstreamError carries the status code and raw body returned by the
// inference backend so the request boundary can echo them to the client
// instead of swallowing them.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("inference backend returned %d: %s", e.StatusCode, e.Body)
}

// Is makes errors.Is(err, ErrUpstream) match any UpstreamError.
func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }
