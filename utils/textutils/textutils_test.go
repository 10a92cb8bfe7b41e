// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package textutils

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"BANCO", "Banco"},
		{"sucursal uno", "Sucursal Uno"},
		{"CALLE DE LA PAZ", "Calle De La Paz"},
		{"  dos  espacios ", "  Dos  Espacios "},
		{"SAN JOSÉ ÑUÑOA", "San José Ñuñoa"},
		{"av. 5 de mayo", "Av. 5 De Mayo"},
		{"o'higgins", "O'higgins"},
		{"COL.CENTRO", "Col.centro"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := TitleCase(tc.in); got != tc.want {
				t.Errorf("TitleCase(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestLowerASCIIFolding(t *testing.T) {
	tests := map[string]string{
		"Nuevo León":   "nuevo leon",
		"  MICHOACÁN ": "michoacan",
		"querétaro":    "queretaro",
		"colima":       "colima",
	}

	for in, want := range tests {
		if got := LowerASCIIFolding(in); got != want {
			t.Errorf("LowerASCIIFolding(%q) = %q, want %q", in, got, want)
		}
	}
}

func newResponse(status int, contentType string, body []byte) *http.Response {
	h := make(http.Header)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}

	return &http.Response{
		StatusCode: status,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(string(body))),
	}
}

func TestAsReader(t *testing.T) {
	// "MÉRIDA" encoded as ISO-8859-1
	latin1 := []byte{'M', 0xC9, 'R', 'I', 'D', 'A'}

	tests := []struct {
		name        string
		status      int
		contentType string
		label       string
		body        []byte
		want        string
		wantErr     bool
	}{
		{
			name:        "DeclaredCharset",
			status:      http.StatusOK,
			contentType: "text/plain; charset=ISO-8859-1",
			body:        latin1,
			want:        "MÉRIDA",
		},
		{
			name:        "Override",
			status:      http.StatusOK,
			contentType: "text/plain; charset=utf-8",
			label:       "latin1",
			body:        latin1,
			want:        "MÉRIDA",
		},
		{
			name:        "UTF8",
			status:      http.StatusOK,
			contentType: "text/plain; charset=utf-8",
			body:        []byte("MÉRIDA"),
			want:        "MÉRIDA",
		},
		{
			name:    "BadStatus",
			status:  http.StatusInternalServerError,
			body:    []byte("oops"),
			wantErr: true,
		},
		{
			name:    "UnknownLabel",
			status:  http.StatusOK,
			label:   "klingon",
			body:    []byte("x"),
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := AsReader(newResponse(tc.status, tc.contentType, tc.body), tc.label)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("reading: %v", err)
			}

			if string(got) != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
