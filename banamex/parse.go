// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package banamex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jcodagnone/cajeros/utils/textutils"
)

// Municipality list format
//
// Text response, arbitrary separators. `=' splits the body in sections, only
// the second one has data. `||' terminates records, `|' terminates fields.
// Field 0 is the municipality id, field 1 its name.
//
// Facility list format
//
// Text response. `^' terminates records and `|' terminates fields. The body is
// the literal "No" when the municipality has nothing to show. Known positions:
//
//	 0. atm id
//	 1. name
//	 2. state
//	 4. municipality
//	 6. street
//	 7. street number
//	 8. neighborhood
//	 9. zip code
//	10. reference street (1)
//	11. reference street (2)
//	21. longitude
//	22. latitude
//
// Every other position is undocumented.
const (
	sectionSeparator            = "="
	municipalityRecordSeparator = "||"
	facilityRecordSeparator     = "^"
	fieldSeparator              = "|"

	noFacilities = "No"
)

// Positions within a facility row.
const (
	fieldATMID        = 0
	fieldName         = 1
	fieldMunicipality = 4
	fieldStreet       = 6
	fieldNumber       = 7
	fieldNeighborhood = 8
	fieldZipCode      = 9
	fieldLongitude    = 21
	fieldLatitude     = 22

	// FacilityFieldCount is the minimum number of fields of a facility row.
	FacilityFieldCount = fieldLatitude + 1
)

var (
	// ErrMalformedMunicipalityList is returned when the municipality list lacks its data section.
	ErrMalformedMunicipalityList = errors.New("malformed municipality list")
	// ErrMalformedFacilityRow is returned when a facility row has too few fields.
	ErrMalformedFacilityRow = errors.New("malformed facility row")
)

// RowError reports a malformed facility row.
type RowError struct {
	Row    int // zero based index of the row within the response
	Fields int // number of fields found
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: row %d has %d fields, want at least %d",
		ErrMalformedFacilityRow, e.Row, e.Fields, FacilityFieldCount)
}

func (e *RowError) Unwrap() error {
	return ErrMalformedFacilityRow
}

// Municipality is an entry of the municipality list.
type Municipality struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RawFacility is a facility row: positional, mostly opaque, fields.
type RawFacility []string

// field returns the i-th field, or "" when absent.
func (f RawFacility) field(i int) string {
	if i < len(f) {
		return f[i]
	}

	return ""
}

// splitSections splits the body on the section separator.
func splitSections(text string) []string {
	return strings.Split(text, sectionSeparator)
}

// splitRecords splits s on sep. Only the blank record left by a final
// terminator is dropped; blank records elsewhere are kept for the caller to
// reject.
func splitRecords(s, sep string) []string {
	parts := strings.Split(s, sep)
	if last := len(parts) - 1; strings.TrimSpace(parts[last]) == "" {
		parts = parts[:last]
	}

	return parts
}

// splitFields splits a record in its fields.
func splitFields(record string) []string {
	return strings.Split(record, fieldSeparator)
}

// ParseMunicipalityList parses the municipality list response.
func ParseMunicipalityList(text string) ([]Municipality, error) {
	sections := splitSections(text)
	if len(sections) < 2 {
		return nil, fmt.Errorf("%w: %d sections", ErrMalformedMunicipalityList, len(sections))
	}

	records := splitRecords(sections[1], municipalityRecordSeparator)
	ret := make([]Municipality, 0, len(records))

	for _, record := range records {
		fields := splitFields(record)

		m := Municipality{ID: strings.TrimSpace(fields[0])}
		if m.ID == "" {
			return nil, fmt.Errorf("%w: record %d has no id", ErrMalformedMunicipalityList, len(ret))
		}

		if len(fields) > 1 {
			m.Name = textutils.TitleCase(strings.TrimSpace(fields[1]))
		}

		ret = append(ret, m)
	}

	return ret, nil
}

// ParseSubRegionList returns the municipality ids of the municipality list response.
func ParseSubRegionList(text string) ([]string, error) {
	municipalities, err := ParseMunicipalityList(text)
	if err != nil {
		return nil, err
	}

	ret := make([]string, len(municipalities))
	for i, m := range municipalities {
		ret[i] = m.ID
	}

	return ret, nil
}

// ParseFacilityList parses the facility list response. The "No" answer is an
// empty list. Any row with less than FacilityFieldCount fields, blank rows
// included, fails the whole response with a *RowError. Only the body as a
// whole is trimmed: fields come back verbatim.
func ParseFacilityList(text string) ([]RawFacility, error) {
	text = strings.TrimSpace(text)
	if text == noFacilities {
		return []RawFacility{}, nil
	}

	rows := splitRecords(text, facilityRecordSeparator)
	ret := make([]RawFacility, 0, len(rows))

	for i, row := range rows {
		fields := splitFields(row)
		if len(fields) < FacilityFieldCount {
			return nil, &RowError{Row: i, Fields: len(fields)}
		}

		ret = append(ret, RawFacility(fields))
	}

	return ret, nil
}
