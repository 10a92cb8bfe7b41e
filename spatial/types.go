// Copyright 2025 The Cajeros Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
	"github.com/uber/h3-go/v4"
)

const earthRadius = 6371e3 // meters

// H3Resolutions is the number of H3 resolutions (1..H3Resolutions) computed by H3Cells.
const H3Resolutions = 8

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ParsePoint reads a point from the longitude and latitude strings found in a
// feature geometry. It fails on non numeric or out of range values.
func ParsePoint(lng, lat string) (Point, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return Point{}, fmt.Errorf("spatial: invalid longitude %q: %w", lng, err)
	}

	y, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return Point{}, fmt.Errorf("spatial: invalid latitude %q: %w", lat, err)
	}

	if x < -180 || x > 180 || y < -90 || y > 90 {
		return Point{}, fmt.Errorf("spatial: point out of range (%s, %s)", lng, lat)
	}

	return Point{Lat: y, Lng: x}, nil
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%f %f)", p.Lng, p.Lat)
}

// WKT renders the point as well-known text, longitude first.
func (p Point) WKT() (string, error) {
	return wkt.Marshal(geom.NewPointFlat(geom.XY, []float64{p.Lng, p.Lat}))
}

// H3Cells returns the H3 cells containing the point, from resolution 1 to H3Resolutions.
func (p Point) H3Cells() ([]uint64, error) {
	latLng := h3.NewLatLng(p.Lat, p.Lng)
	ret := make([]uint64, 0, H3Resolutions)

	for res := 1; res <= H3Resolutions; res++ {
		cell, err := h3.LatLngToCell(latLng, res)
		if err != nil {
			return nil, fmt.Errorf("error converting to h3 cell at res %d: %w", res, err)
		}

		ret = append(ret, uint64(cell))
	}

	return ret, nil
}

// HaversineDistance calculates the distance between two points on Earth in meters.
func (p *Point) HaversineDistance(other *Point) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - p.Lat) * math.Pi / 180
	dLng := (other.Lng - p.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
