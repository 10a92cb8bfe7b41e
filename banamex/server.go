// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package banamex

import (
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/cajeros/spatial"
)

const (
	defaultNearestLimit = 5
	maxNearestLimit     = 100
)

// Server exposes the generated feature collections over HTTP.
type Server struct {
	outputDir string
	source    string
}

// RegionSummary describes a region in the region listing.
type RegionSummary struct {
	Slug      string `json:"slug"`
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// NearestFacility is a facility and its distance, in meters, to the query point.
type NearestFacility struct {
	Distance float64                   `json:"distance"`
	Feature  spatial.Feature[Facility] `json:"feature"`
}

// NewServer returns a server reading the artifacts written under outputDir.
func NewServer(outputDir, source string) *Server {
	if source == "" {
		source = DefaultSource
	}

	return &Server{outputDir: outputDir, source: source}
}

// Router returns the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/api/regions", s.listRegions)
	r.GET("/api/regions/:region", s.getRegion)
	r.GET("/api/regions/:region/nearest", s.nearest)

	return r
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	log.Printf("Serving %s on %s", s.outputDir, addr)

	return s.Router().Run(addr)
}

func (s *Server) store(region *Region) *FileStore {
	return NewFileStore(s.outputDir, s.source, region)
}

func (s *Server) listRegions(ctx *gin.Context) {
	var ret []RegionSummary

	err := Each(func(r Region) error {
		_, err := os.Stat(s.store(&r).GeoJSONPath())
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		ret = append(ret, RegionSummary{
			Slug:      r.Slug,
			ID:        r.ID,
			Name:      r.DisplayName(),
			Available: err == nil,
		})

		return nil
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, ret)
}

// region resolves the :region parameter, answering 404 when it doesn't exist.
func (s *Server) region(ctx *gin.Context) (*Region, bool) {
	region, err := Find(ctx.Param("region"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

		return nil, false
	}

	return region, true
}

func (s *Server) getRegion(ctx *gin.Context) {
	region, ok := s.region(ctx)
	if !ok {
		return
	}

	path := s.store(region).GeoJSONPath()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "region " + region.Slug + " was not fetched yet"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}

		return
	}

	ctx.Header("Content-Type", "application/geo+json")
	ctx.File(path)
}

func (s *Server) nearest(ctx *gin.Context) {
	region, ok := s.region(ctx)
	if !ok {
		return
	}

	lat, errLat := strconv.ParseFloat(ctx.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(ctx.Query("lng"), 64)

	if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng must be valid coordinates"})

		return
	}

	limit := defaultNearestLimit

	if v := ctx.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxNearestLimit {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})

			return
		}

		limit = n
	}

	fc, err := s.store(region).LoadFeatureCollection()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "region " + region.Slug + " was not fetched yet"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}

		return
	}

	ctx.JSON(http.StatusOK, nearestFacilities(fc, spatial.Point{Lat: lat, Lng: lng}, limit))
}

// nearestFacilities ranks the features by distance to origin. Features
// without a valid point are left out.
func nearestFacilities(fc *spatial.FeatureCollection[Facility], origin spatial.Point, limit int) []NearestFacility {
	ret := make([]NearestFacility, 0, len(fc.Features))

	for _, f := range fc.Features {
		p, err := f.Geometry.Coordinates.Point()
		if err != nil {
			continue
		}

		ret = append(ret, NearestFacility{
			Distance: origin.HaversineDistance(&p),
			Feature:  f,
		})
	}

	slices.SortStableFunc(ret, func(a, b NearestFacility) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		default:
			return 0
		}
	})

	if len(ret) > limit {
		ret = ret[:limit]
	}

	return ret
}
