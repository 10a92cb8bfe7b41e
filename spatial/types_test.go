// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		lng, lat string
		want     Point
		wantErr  bool
	}{
		{"-103.5", "19.2", Point{Lat: 19.2, Lng: -103.5}, false},
		{" -99.1332 ", "19.4326", Point{Lat: 19.4326, Lng: -99.1332}, false},
		{"", "19.2", Point{}, true},
		{"-103.5", "N/A", Point{}, true},
		{"-190", "19.2", Point{}, true},
		{"-103.5", "91", Point{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.lng+","+tc.lat, func(t *testing.T) {
			got, err := ParsePoint(tc.lng, tc.lat)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %v", got)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParsePoint() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHaversineDistance(t *testing.T) {
	// Zócalo to Ángel de la Independencia, roughly 3.7km
	a := Point{Lat: 19.4326, Lng: -99.1332}
	b := Point{Lat: 19.4270, Lng: -99.1677}

	d := a.HaversineDistance(&b)
	if d < 3500 || d > 3800 {
		t.Errorf("unexpected distance %f", d)
	}

	if d := a.HaversineDistance(&a); d != 0 {
		t.Errorf("distance to itself must be zero, got %f", d)
	}
}

func TestWKT(t *testing.T) {
	p := Point{Lat: 19.25, Lng: -103.5}

	got, err := p.WKT()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := "POINT (-103.5 19.25)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestH3Cells(t *testing.T) {
	p := Point{Lat: 19.2, Lng: -103.5}

	cells, err := p.H3Cells()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cells) != H3Resolutions {
		t.Fatalf("expected %d cells, got %d", H3Resolutions, len(cells))
	}

	seen := map[uint64]bool{}

	for i, c := range cells {
		if c == 0 {
			t.Errorf("resolution %d: zero cell", i+1)
		}

		if seen[c] {
			t.Errorf("resolution %d: repeated cell %x", i+1, c)
		}

		seen[c] = true
	}
}

type testProps struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
}

func TestFeatureCollection_Encode(t *testing.T) {
	fc := NewFeatureCollection[testProps]()
	fc.Features = append(fc.Features,
		NewFeature(Coordinates{"-103.5", "19.2"}, testProps{Name: "Uno & Dos"}),
		NewFeature(Coordinates{"-103.50000", "19.20"}, testProps{Name: "Tres"}),
	)

	var buf bytes.Buffer
	if err := fc.Encode(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"{\n  \"type\": \"FeatureCollection\",\n  \"features\": [\n",
		`"coordinates": [
          "-103.50000",
          "19.20"
        ]`,
		`"name": "Uno & Dos"`,
		`"phone": null`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}

	got, err := DecodeFeatureCollection[testProps](&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff(fc, got); diff != "" {
		t.Errorf("decoded mismatch (-want +got):\n%s", diff)
	}

	p, err := got.Features[1].Geometry.Coordinates.Point()
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(p.Lng+103.5) > 1e-9 || math.Abs(p.Lat-19.2) > 1e-9 {
		t.Errorf("unexpected point %v", p)
	}
}

func TestDecodeFeatureCollection_WrongType(t *testing.T) {
	_, err := DecodeFeatureCollection[testProps](strings.NewReader(`{"type":"Feature"}`))
	if err == nil {
		t.Fatal("expected an error")
	}
}
