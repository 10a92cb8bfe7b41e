// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package banamex

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	want := map[string]int{
		"aguascalientes":      1,
		"baja-california":     2,
		"baja-california-sur": 3,
		"campeche":            4,
		"coahuila":            5,
		"colima":              6,
		"chiapas":             7,
		"chihuahua":           8,
		"distrito-federal":    9,
		"durango":             10,
		"guanajuato":          11,
		"guerrero":            12,
		"hidalgo":             13,
		"jalisco":             14,
		"estado-de-mexico":    15,
		"michoacan":           16,
		"morelos":             17,
		"nayarit":             18,
		"nuevo-leon":          19,
		"oaxaca":              20,
		"puebla":              21,
		"queretaro":           22,
		"quintana-roo":        23,
		"san-luis-potosi":     24,
		"sinaloa":             25,
		"sonora":              26,
		"tabasco":             27,
		"tamaulipas":          28,
		"tlaxcala":            29,
		"veracruz":            30,
		"yucatan":             31,
		"zacatecas":           32,
	}

	n := 0
	if err := Each(func(Region) error { n++; return nil }); err != nil {
		t.Fatal(err)
	}

	if n != len(want) {
		t.Errorf("expected %d regions, got %d", len(want), n)
	}

	for slug, id := range want {
		got, err := Lookup(slug)
		if err != nil {
			t.Errorf("Lookup(%q) unexpected error: %v", slug, err)
		} else if got != id {
			t.Errorf("Lookup(%q) = %d, want %d", slug, got, id)
		}
	}

	if _, err := Lookup("atlantida"); !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("expected ErrUnknownRegion, got %v", err)
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantSlug  string
		expectErr bool
	}{
		{name: "NumericMatch", query: "6", wantSlug: "colima"},
		{name: "SlugMatch", query: "nuevo-leon", wantSlug: "nuevo-leon"},
		{name: "NameWithAccents", query: "Nuevo León", wantSlug: "nuevo-leon"},
		{name: "UpperCase", query: "MICHOACÁN", wantSlug: "michoacan"},
		{name: "ExtraSpaces", query: "  san  luis potosí ", wantSlug: "san-luis-potosi"},
		{name: "NoPrefixMatch", query: "baja", expectErr: true},
		{name: "UnknownID", query: "99", expectErr: true},
		{name: "Empty", query: " ", expectErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Find(tc.query)
			if tc.expectErr {
				if err == nil {
					t.Errorf("Find(%q) expected error, got %+v", tc.query, got)
				}

				return
			}

			if err != nil {
				t.Fatalf("Find(%q) unexpected error: %v", tc.query, err)
			}

			if got.Slug != tc.wantSlug {
				t.Errorf("Find(%q) = %q, want %q", tc.query, got.Slug, tc.wantSlug)
			}
		})
	}
}

func TestFind_ReturnsCopy(t *testing.T) {
	r, err := Find("colima")
	if err != nil {
		t.Fatal(err)
	}

	r.ID = 1000

	if id, _ := Lookup("colima"); id != 6 {
		t.Errorf("registry was mutated through Find: id %d", id)
	}
}

func TestRegion_DisplayName(t *testing.T) {
	tests := map[string]string{
		"colima":           "Colima",
		"estado-de-mexico": "Estado De Mexico",
		"distrito-federal": "Distrito Federal",
	}

	for slug, want := range tests {
		r := Region{Slug: slug, ID: 1}
		if got := r.DisplayName(); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", slug, got, want)
		}
	}
}

func TestEach_Err(t *testing.T) {
	var found []string

	i := 0

	err := Each(func(r Region) (err error) {
		if i >= 2 {
			err = errors.New("fail")
		} else {
			found = append(found, r.Slug)
		}

		i++

		return err
	})
	if err == nil {
		t.Error("expecting an error")
	} else if expected, got := "aguascalientes", found[0]; expected != got {
		t.Errorf("expected %q, got %q", expected, got)
	} else if expected, got := "baja-california", found[len(found)-1]; expected != got {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestRegion_Validate(t *testing.T) {
	for _, r := range []Region{
		{Slug: "", ID: 1},
		{Slug: "Colima", ID: 1},
		{Slug: "colima-", ID: 1},
		{Slug: "colima", ID: 0},
	} {
		if err := r.Validate(); err == nil {
			t.Errorf("expected %+v to be invalid", r)
		}
	}
}

func TestSelect(t *testing.T) {
	all, err := Select("")
	if err != nil || len(all) != 32 {
		t.Fatalf("Select(\"\") = %d regions, %v", len(all), err)
	}

	all[0].Slug = "mutated"
	if _, err := Lookup("aguascalientes"); err != nil {
		t.Error("Select should return a copy of the registry")
	}

	one, err := Select("Nuevo León")
	if err != nil || len(one) != 1 || one[0].Slug != "nuevo-leon" {
		t.Errorf("Select(\"Nuevo León\") = %v, %v", one, err)
	}

	if _, err := Select("atlantida"); !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("expected ErrUnknownRegion, got %v", err)
	}
}
