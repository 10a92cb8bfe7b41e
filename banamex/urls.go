// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package banamex

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the endpoint of the Banamex branch/ATM locator.
const DefaultBaseURL = "http://portal.banamex.com.mx/c719_050/mapasAction.do"

// Endpoint builds the locator URLs. The zero value uses DefaultBaseURL.
type Endpoint struct {
	BaseURL string
}

func (e Endpoint) base() string {
	if e.BaseURL == "" {
		return DefaultBaseURL
	}

	return strings.TrimRight(e.BaseURL, "?")
}

// MunicipalityListURL returns the URL listing the municipalities of a region.
func (e Endpoint) MunicipalityListURL(regionID int) string {
	return fmt.Sprintf("%s?opcion=llenaCombos&id_estado=%d", e.base(), regionID)
}

// FacilityListURL returns the URL listing the ATMs and branches of a municipality.
func (e Endpoint) FacilityListURL(regionID int, municipalityID string) string {
	return fmt.Sprintf(
		"%s?opcion=buscar&accion=cajero-&tipoBus=300&idioma=esp&estado=%d&iddel=%s",
		e.base(),
		regionID,
		url.QueryEscape(municipalityID),
	)
}

// BuildSubRegionListURL returns the municipality list URL on the default endpoint.
func BuildSubRegionListURL(regionID int) string {
	return Endpoint{}.MunicipalityListURL(regionID)
}

// BuildFacilityListURL returns the facility list URL on the default endpoint.
func BuildFacilityListURL(regionID int, municipalityID string) string {
	return Endpoint{}.FacilityListURL(regionID, municipalityID)
}
