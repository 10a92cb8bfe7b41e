// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

// Package textutils provides utility functions for decoding and cleaning up
// the plain text payloads served by the bank portals.
package textutils

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// AsReader converts an HTTP response body to an io.Reader that yields UTF-8.
//
// The portals answer with ISO-8859-1 text, sometimes without announcing it. When
// label is empty the charset is taken from the Content-Type header (falling back
// to content sniffing); otherwise label names the encoding to use, e.g. "latin1".
func AsReader(resp *http.Response, label string) (io.Reader, error) {
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	if label != "" {
		enc, err := htmlindex.Get(label)
		if err != nil {
			return nil, fmt.Errorf("unknown charset %q: %w", label, err)
		}

		return enc.NewDecoder().Reader(resp.Body), nil
	}

	rr, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	return rr, nil
}

// LowerASCIIFolding normalizes a string by removing accents, lowercasing, and trimming spaces.
func LowerASCIIFolding(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.TrimSpace(strings.ToLower(s)),
	)

	return s
}

// TitleCase upper-cases the first letter of every whitespace delimited token and
// lower-cases the rest. Whitespace is preserved as is, and there is no list of
// exceptions: "CALLE DE LA PAZ" becomes "Calle De La Paz".
func TitleCase(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	start := true

	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			start = true
		case start:
			r = unicode.ToUpper(r)
			start = false
		default:
			r = unicode.ToLower(r)
		}

		sb.WriteRune(r)
	}

	return sb.String()
}
