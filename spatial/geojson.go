// Copyright 2025 The Cajeros Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"encoding/json"
	"fmt"
	"io"
)

// GeoJSON type names.
const (
	TypeFeatureCollection = "FeatureCollection"
	TypeFeature           = "Feature"
	TypePoint             = "Point"
)

// Coordinates holds a [longitude, latitude] pair exactly as the upstream
// source wrote it. Keeping strings preserves whatever precision and format
// the source used; use Point to get numbers.
type Coordinates [2]string

// Point parses the coordinates.
func (c Coordinates) Point() (Point, error) {
	return ParsePoint(c[0], c[1])
}

// Geometry is a GeoJSON Point geometry.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates Coordinates `json:"coordinates"`
}

// Feature is a GeoJSON feature whose properties are of type P.
type Feature[P any] struct {
	Type       string   `json:"type"`
	Geometry   Geometry `json:"geometry"`
	Properties P        `json:"properties"`
}

// NewFeature creates a point feature.
func NewFeature[P any](coordinates Coordinates, properties P) Feature[P] {
	return Feature[P]{
		Type: TypeFeature,
		Geometry: Geometry{
			Type:        TypePoint,
			Coordinates: coordinates,
		},
		Properties: properties,
	}
}

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection[P any] struct {
	Type     string       `json:"type"`
	Features []Feature[P] `json:"features"`
}

// NewFeatureCollection returns an empty, but non nil, collection.
func NewFeatureCollection[P any]() *FeatureCollection[P] {
	return &FeatureCollection[P]{
		Type:     TypeFeatureCollection,
		Features: []Feature[P]{},
	}
}

// Encode writes the collection as JSON pretty-printed with two spaces.
func (fc *FeatureCollection[P]) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("encoding feature collection: %w", err)
	}

	return nil
}

// DecodeFeatureCollection reads a collection written by Encode.
func DecodeFeatureCollection[P any](r io.Reader) (*FeatureCollection[P], error) {
	var fc FeatureCollection[P]

	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decoding feature collection: %w", err)
	}

	if fc.Type != TypeFeatureCollection {
		return nil, fmt.Errorf("unexpected GeoJSON type %q", fc.Type)
	}

	return &fc, nil
}
