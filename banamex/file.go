// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package banamex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jcodagnone/cajeros/spatial"
)

const (
	rawDir       = "raw"
	rawExtension = ".raw"
	geoJSONExt   = ".geojson"
)

// FileStore handles the artifacts of a region:
//
//	<root>/<region>/raw/<source>-<municipality>.raw  raw responses
//	<root>/<region>/<source>.geojson                 feature collection
type FileStore struct {
	root   string
	source string
}

// NewFileStore creates a new file store instance. The provided path is the
// root directory where all region subdirectories will be created.
func NewFileStore(root, source string, region *Region) *FileStore {
	return &FileStore{
		root:   filepath.Join(root, region.Slug),
		source: source,
	}
}

// Root returns the region directory.
func (s *FileStore) Root() string {
	return s.root
}

// EnsureDirs creates the region directories. Existing directories are fine.
func (s *FileStore) EnsureDirs() error {
	if err := os.MkdirAll(filepath.Join(s.root, rawDir), 0o700); err != nil {
		return fmt.Errorf("setting up file store: %w", err)
	}

	return nil
}

// RawPath returns the path of the raw response of a municipality.
func (s *FileStore) RawPath(municipalityID string) string {
	return filepath.Join(s.root, rawDir, s.source+"-"+municipalityID+rawExtension)
}

// GeoJSONPath returns the path of the region feature collection.
func (s *FileStore) GeoJSONPath() string {
	return filepath.Join(s.root, s.source+geoJSONExt)
}

// SaveRaw stores the (already UTF-8) response body of a municipality verbatim.
func (s *FileStore) SaveRaw(municipalityID, body string) error {
	if strings.ContainsAny(municipalityID, `/\`) || municipalityID == "" || municipalityID == ".." {
		return fmt.Errorf("invalid municipality id %q", municipalityID)
	}

	if err := os.WriteFile(s.RawPath(municipalityID), []byte(body), 0o600); err != nil {
		return fmt.Errorf("writing raw file: %w", err)
	}

	return nil
}

// LoadRaw reads the raw response of a municipality.
func (s *FileStore) LoadRaw(municipalityID string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(s.RawPath(municipalityID)))
	if err != nil {
		return "", fmt.Errorf("reading raw file: %w", err)
	}

	return string(data), nil
}

// RawMunicipalities returns the ids of the municipalities with a raw response on disk, sorted.
func (s *FileStore) RawMunicipalities() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, rawDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("listing raw files: %w", err)
	}

	prefix := s.source + "-"

	var ret []string

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, rawExtension) {
			continue
		}

		ret = append(ret, strings.TrimSuffix(strings.TrimPrefix(name, prefix), rawExtension))
	}

	slices.SortFunc(ret, compareIDs)

	return ret, nil
}

// compareIDs sorts numeric ids numerically, "2" before "10".
func compareIDs(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}

	return strings.Compare(a, b)
}

// SaveFeatureCollection writes the region feature collection.
func (s *FileStore) SaveFeatureCollection(fc *spatial.FeatureCollection[Facility]) (err error) {
	f, err := os.Create(filepath.Clean(s.GeoJSONPath()))
	if err != nil {
		return fmt.Errorf("creating geojson file: %w", err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing file: %w", cerr))
		}
	}()

	return fc.Encode(f)
}

// LoadFeatureCollection reads the region feature collection.
func (s *FileStore) LoadFeatureCollection() (*spatial.FeatureCollection[Facility], error) {
	f, err := os.Open(filepath.Clean(s.GeoJSONPath()))
	if err != nil {
		return nil, fmt.Errorf("reading geojson file: %w", err)
	}
	defer f.Close()

	return spatial.DecodeFeatureCollection[Facility](f)
}
