// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package banamex

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/jcodagnone/cajeros/utils/textutils"
)

var (
	// ErrUnknownRegion is returned when a region is not part of the registry.
	ErrUnknownRegion = errors.New("unknown region")

	slugRegex = regexp.MustCompile(`^[a-z]+(-[a-z]+)*$`)
)

// Region is a Mexican state as known by the Banamex locator. The ID is the
// value of the `id_estado`/`estado` query parameters.
type Region struct {
	Slug string // e.g. "baja-california-sur"
	ID   int
}

// Validate checks that the region is usable.
func (r *Region) Validate() error {
	if !slugRegex.MatchString(r.Slug) {
		return fmt.Errorf("region: invalid slug %q", r.Slug)
	}

	if r.ID <= 0 {
		return fmt.Errorf("region %q: id must be positive", r.Slug)
	}

	return nil
}

// DisplayName is the label used in the output: the slug with hyphens as spaces, title cased.
func (r *Region) DisplayName() string {
	return textutils.TitleCase(strings.ReplaceAll(r.Slug, "-", " "))
}

// All available regions, in the order they are processed.
var regions = func() []Region {
	ret := []Region{
		{Slug: "aguascalientes", ID: 1},
		{Slug: "baja-california", ID: 2},
		{Slug: "baja-california-sur", ID: 3},
		{Slug: "campeche", ID: 4},
		{Slug: "chiapas", ID: 7},
		{Slug: "chihuahua", ID: 8},
		{Slug: "coahuila", ID: 5},
		{Slug: "colima", ID: 6},
		{Slug: "distrito-federal", ID: 9},
		{Slug: "durango", ID: 10},
		{Slug: "estado-de-mexico", ID: 15},
		{Slug: "guanajuato", ID: 11},
		{Slug: "guerrero", ID: 12},
		{Slug: "hidalgo", ID: 13},
		{Slug: "jalisco", ID: 14},
		{Slug: "michoacan", ID: 16},
		{Slug: "morelos", ID: 17},
		{Slug: "nayarit", ID: 18},
		{Slug: "nuevo-leon", ID: 19},
		{Slug: "oaxaca", ID: 20},
		{Slug: "puebla", ID: 21},
		{Slug: "queretaro", ID: 22},
		{Slug: "quintana-roo", ID: 23},
		{Slug: "san-luis-potosi", ID: 24},
		{Slug: "sinaloa", ID: 25},
		{Slug: "sonora", ID: 26},
		{Slug: "tabasco", ID: 27},
		{Slug: "tamaulipas", ID: 28},
		{Slug: "tlaxcala", ID: 29},
		{Slug: "veracruz", ID: 30},
		{Slug: "yucatan", ID: 31},
		{Slug: "zacatecas", ID: 32},
	}

	slugs := make(map[string]bool, len(ret))
	ids := make(map[int]bool, len(ret))

	for i := range ret {
		if err := ret[i].Validate(); err != nil {
			panic(err)
		}

		if slugs[ret[i].Slug] || ids[ret[i].ID] {
			panic(fmt.Sprintf("region %q: duplicated slug or id", ret[i].Slug))
		}

		slugs[ret[i].Slug] = true
		ids[ret[i].ID] = true
	}

	return ret
}()

// Lookup returns the id of the region with the given slug.
func Lookup(slug string) (int, error) {
	for i := range regions {
		if regions[i].Slug == slug {
			return regions[i].ID, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownRegion, slug)
}

// toSlug turns "Nuevo León" into "nuevo-leon".
func toSlug(s string) string {
	return strings.Join(strings.Fields(textutils.LowerASCIIFolding(s)), "-")
}

// Find locates a region by its id, its slug or its name.
// If q represents a number, it searches by ID; otherwise names are compared
// ignoring case, accents and spaces vs hyphens.
func Find(q string) (*Region, error) {
	if strings.TrimSpace(q) == "" {
		return nil, errors.New("empty region query")
	}

	var predicate func(r *Region) bool
	if n, err := strconv.Atoi(q); err == nil {
		predicate = func(r *Region) bool {
			return n == r.ID
		}
	} else {
		slug := toSlug(q)
		predicate = func(r *Region) bool {
			return r.Slug == slug
		}
	}

	for i := range regions {
		if predicate(&regions[i]) {
			found := regions[i]

			return &found, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, q)
}

// Each applies the given callback function to each region.
// It stops iteration and returns the error if the callback returns an error.
func Each(callback func(Region) error) error {
	for i := range regions {
		if err := callback(regions[i]); err != nil {
			return err
		}
	}

	return nil
}

// Select returns every region when q is empty, or the single region q names.
func Select(q string) ([]Region, error) {
	if q == "" {
		return slices.Clone(regions), nil
	}

	region, err := Find(q)
	if err != nil {
		return nil, err
	}

	return []Region{*region}, nil
}
