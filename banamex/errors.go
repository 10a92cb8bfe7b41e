// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package banamex

import (
	"errors"
	"fmt"
	"net/http"
)

// FetchErrorKind tells why a request didn't produce a body.
type FetchErrorKind int

const (
	// FetchErrorTransport the request could not be completed (DNS, timeout, reset…).
	FetchErrorTransport FetchErrorKind = iota
	// FetchErrorStatus the server answered something other than 200.
	FetchErrorStatus
	// FetchErrorBody the body could not be read or decoded.
	FetchErrorBody
)

func (k FetchErrorKind) String() string {
	switch k {
	case FetchErrorTransport:
		return "transport"
	case FetchErrorStatus:
		return "status"
	case FetchErrorBody:
		return "body"
	default:
		return fmt.Sprintf("FetchErrorKind(%d)", int(k))
	}
}

// FetchError is returned when a URL could not be fetched. Parse errors are
// never FetchErrors: a FetchError means we don't have a payload at all.
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.Kind == FetchErrorStatus:
		return fmt.Sprintf("fetching %s: %s", e.URL, describeStatus(e.StatusCode))
	case e.Err != nil:
		return fmt.Sprintf("fetching %s: %s: %v", e.URL, e.Kind, e.Err)
	default:
		return fmt.Sprintf("fetching %s: %s", e.URL, e.Kind)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err, or any error it wraps, is a *FetchError.
func IsFetchError(err error) bool {
	var fetchErr *FetchError

	return errors.As(err, &fetchErr)
}

func describeStatus(statusCode int) string {
	switch statusCode {
	case http.StatusTooManyRequests:
		return "rate limit reached (429)"
	case http.StatusForbidden:
		return "access denied (403)"
	case http.StatusNotFound:
		return "not found (404)"
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther, http.StatusTemporaryRedirect:
		return fmt.Sprintf("unexpected redirect (%d)", statusCode)
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return fmt.Sprintf("service unavailable (%d)", statusCode)
	default:
		return fmt.Sprintf("HTTP error %d", statusCode)
	}
}
