// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package banamex

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/jcodagnone/cajeros/spatial"
)

// FacilityRepository defines the interface for the facility catalog.
type FacilityRepository interface {
	// CreateSchema creates the database schema.
	CreateSchema() error
	// SaveRegion replaces the facilities of a region.
	SaveRegion(region *Region, facilities []*Facility) error
}

type sqlFacilityRepository struct {
	db *sql.DB
}

// NewSQLFacilityRepository returns a FacilityRepository backed by db.
func NewSQLFacilityRepository(db *sql.DB) FacilityRepository {
	return &sqlFacilityRepository{db: db}
}

func (r *sqlFacilityRepository) CreateSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS facilities (
			region_id INTEGER NOT NULL,
			region VARCHAR NOT NULL,
			municipality_id VARCHAR NOT NULL,
			municipality VARCHAR,
			record_id INTEGER NOT NULL,
			bank VARCHAR NOT NULL,
			atm_id VARCHAR,
			name VARCHAR,
			address VARCHAR,
			neighborhood VARCHAR,
			zip_code VARCHAR,
			lng DOUBLE,
			lat DOUBLE,
			wkt VARCHAR,
			h3_res1 UBIGINT,
			h3_res2 UBIGINT,
			h3_res3 UBIGINT,
			h3_res4 UBIGINT,
			h3_res5 UBIGINT,
			h3_res6 UBIGINT,
			h3_res7 UBIGINT,
			h3_res8 UBIGINT
		);
	`)

	return err
}

// nve returns nil for empty strings so they are stored as NULL.
func nve(v string) any {
	var ret any
	if v != "" {
		ret = v
	}

	return ret
}

// spatialColumns returns lng, lat, wkt and the h3 cells of a facility, or
// NULLs when its coordinates are not a valid point.
func spatialColumns(f *Facility) []any {
	ret := make([]any, 3+spatial.H3Resolutions)

	p, err := f.Coordinates.Point()
	if err != nil {
		return ret
	}

	wkt, err := p.WKT()
	if err != nil {
		return ret
	}

	cells, err := p.H3Cells()
	if err != nil {
		return ret
	}

	ret[0] = p.Lng
	ret[1] = p.Lat
	ret[2] = wkt

	for i, cell := range cells {
		ret[3+i] = cell
	}

	return ret
}

func (r *sqlFacilityRepository) SaveRegion(region *Region, facilities []*Facility) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction for %s: %w", region.Slug, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("failed to rollback transaction for %s: %v", region.Slug, err)
		}
	}()

	if _, err := tx.Exec("DELETE FROM facilities WHERE region_id = ?", region.ID); err != nil {
		return fmt.Errorf("deleting records for %s: %w", region.Slug, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO facilities (
			region_id, region, municipality_id, municipality, record_id,
			bank, atm_id, name, address, neighborhood, zip_code,
			lng, lat, wkt,
			h3_res1, h3_res2, h3_res3, h3_res4, h3_res5, h3_res6, h3_res7, h3_res8
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, f := range facilities {
		args := []any{
			region.ID,
			region.Slug,
			f.MunicipalityID,
			nve(f.Municipality),
			i + 1,
			f.Bank,
			nve(f.ATMID),
			nve(f.Name),
			nve(f.Address),
			nve(f.Neighborhood),
			nve(f.ZipCode),
		}
		args = append(args, spatialColumns(f)...)

		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("inserting record %d of %s: %w", i+1, region.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", region.Slug, err)
	}

	return nil
}
