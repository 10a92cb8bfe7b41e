// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package banamex

import (
	"errors"
	"strings"

	"github.com/jcodagnone/cajeros/spatial"
	"github.com/jcodagnone/cajeros/utils/textutils"
)

// BankName is the value of the `bank' property.
const BankName = "Banamex"

// Names of Mexico City facilities carry the old "Distrito Federal"
// abbreviation in different spellings. Removed in this order.
var nameSuffixes = []string{
	", DF",
	",DF",
	" D.F.",
	" D F",
}

// Facility is a normalized ATM or branch.
type Facility struct {
	Bank           string              `json:"bank"`
	ATMID          string              `json:"atmId"`
	Region         string              `json:"state"`
	Municipality   string              `json:"municipality"`
	MunicipalityID string              `json:"municipalityId"`
	Name           string              `json:"name"`
	Address        string              `json:"address"`
	Neighborhood   string              `json:"neighborhood"`
	ZipCode        string              `json:"zipCode"`
	Phone          *string             `json:"phone"`
	OpeningHours   *string             `json:"openingHours"`
	Coordinates    spatial.Coordinates `json:"-"`
}

// Feature returns the facility as a GeoJSON point feature.
func (f *Facility) Feature() spatial.Feature[Facility] {
	return spatial.NewFeature(f.Coordinates, *f)
}

// cleanName strips the Distrito Federal abbreviations from a name.
func cleanName(name string) string {
	for _, suffix := range nameSuffixes {
		name = strings.ReplaceAll(name, suffix, "")
	}

	return strings.TrimSpace(name)
}

// Normalize projects a raw row into a Facility of the given region.
// municipalityID is the id the row was requested with.
func Normalize(raw RawFacility, region *Region, municipalityID string) (*Facility, error) {
	if len(raw) < FacilityFieldCount {
		return nil, &RowError{Fields: len(raw)}
	}

	return &Facility{
		Bank:           BankName,
		ATMID:          strings.TrimSpace(raw.field(fieldATMID)),
		Region:         region.DisplayName(),
		Municipality:   textutils.TitleCase(raw.field(fieldMunicipality)),
		MunicipalityID: municipalityID,
		Name:           textutils.TitleCase(cleanName(raw.field(fieldName))),
		Address: textutils.TitleCase(raw.field(fieldStreet)) + " " +
			textutils.TitleCase(raw.field(fieldNumber)),
		Neighborhood: textutils.TitleCase(raw.field(fieldNeighborhood)),
		ZipCode:      raw.field(fieldZipCode),
		Coordinates: spatial.Coordinates{
			raw.field(fieldLongitude),
			raw.field(fieldLatitude),
		},
	}, nil
}

// Facilities parses a facility list response of a municipality and normalizes
// every row. It either returns every facility of the response or an error.
func Facilities(text string, region *Region, municipalityID string) ([]*Facility, error) {
	rows, err := ParseFacilityList(text)
	if err != nil {
		return nil, err
	}

	ret := make([]*Facility, 0, len(rows))

	for i, row := range rows {
		f, err := Normalize(row, region, municipalityID)
		if err != nil {
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				rowErr.Row = i
			}

			return nil, err
		}

		ret = append(ret, f)
	}

	return ret, nil
}
