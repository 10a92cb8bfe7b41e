// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package banamex

import (
	"log"

	"github.com/jcodagnone/cajeros/spatial"
)

// RegionOutput accumulates the facilities of one region, in arrival order.
type RegionOutput struct {
	region     *Region
	facilities []*Facility
	byPoint    map[spatial.Coordinates]*Facility
	duplicates int
}

// NewRegionOutput returns an empty output for region.
func NewRegionOutput(region *Region) *RegionOutput {
	return &RegionOutput{
		region:  region,
		byPoint: make(map[spatial.Coordinates]*Facility),
	}
}

// Append adds facilities to the output. Facilities sharing the coordinates of
// a previous one are kept, but counted and logged as duplicates.
func (o *RegionOutput) Append(facilities ...*Facility) {
	for _, f := range facilities {
		if prev, ok := o.byPoint[f.Coordinates]; ok {
			o.duplicates++
			log.Printf("Duplicated coordinates for ATM: %q (municipality %s) and %q (municipality %s) at %v",
				prev.Name, prev.MunicipalityID, f.Name, f.MunicipalityID, f.Coordinates)
		} else {
			o.byPoint[f.Coordinates] = f
		}

		o.facilities = append(o.facilities, f)
	}
}

// Region returns the region the output belongs to.
func (o *RegionOutput) Region() *Region {
	return o.region
}

// Len returns the number of facilities.
func (o *RegionOutput) Len() int {
	return len(o.facilities)
}

// Duplicates returns how many facilities repeated the coordinates of a previous one.
func (o *RegionOutput) Duplicates() int {
	return o.duplicates
}

// Facilities returns the accumulated facilities.
func (o *RegionOutput) Facilities() []*Facility {
	return o.facilities
}

// FeatureCollection returns the facilities as a GeoJSON feature collection.
func (o *RegionOutput) FeatureCollection() *spatial.FeatureCollection[Facility] {
	fc := spatial.NewFeatureCollection[Facility]()
	fc.Features = make([]spatial.Feature[Facility], 0, len(o.facilities))

	for _, f := range o.facilities {
		fc.Features = append(fc.Features, f.Feature())
	}

	return fc
}
