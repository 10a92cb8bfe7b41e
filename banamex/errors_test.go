// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package banamex

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFetchError(t *testing.T) {
	tests := []struct {
		name string
		err  *FetchError
		want string
	}{
		{
			name: "Status",
			err:  &FetchError{Kind: FetchErrorStatus, URL: "http://x", StatusCode: 503},
			want: "fetching http://x: service unavailable (503)",
		},
		{
			name: "RateLimit",
			err:  &FetchError{Kind: FetchErrorStatus, URL: "http://x", StatusCode: 429},
			want: "rate limit reached (429)",
		},
		{
			name: "Redirect",
			err:  &FetchError{Kind: FetchErrorStatus, URL: "http://x", StatusCode: 302},
			want: "unexpected redirect (302)",
		},
		{
			name: "Transport",
			err:  &FetchError{Kind: FetchErrorTransport, URL: "http://x", Err: context.DeadlineExceeded},
			want: "fetching http://x: transport: context deadline exceeded",
		},
		{
			name: "Body",
			err:  &FetchError{Kind: FetchErrorBody, URL: "http://x"},
			want: "fetching http://x: body",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); !strings.Contains(got, tc.want) {
				t.Errorf("Error() = %q, want it to contain %q", got, tc.want)
			}
		})
	}
}

func TestIsFetchError(t *testing.T) {
	base := &FetchError{Kind: FetchErrorTransport, URL: "http://x", Err: context.Canceled}
	wrapped := fmt.Errorf("municipality 10: %w", base)

	if !IsFetchError(wrapped) {
		t.Error("expected wrapped FetchError to be detected")
	}

	if !errors.Is(wrapped, context.Canceled) {
		t.Error("expected FetchError to unwrap to its cause")
	}

	if IsFetchError(&RowError{}) {
		t.Error("a RowError is not a FetchError")
	}
}
