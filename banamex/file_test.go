// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

package banamex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jcodagnone/cajeros/spatial"
)

func TestFileStore_Paths(t *testing.T) {
	fs := NewFileStore("mx", "banamex", &Region{Slug: "nuevo-leon", ID: 19})

	if got, want := fs.Root(), filepath.Join("mx", "nuevo-leon"); got != want {
		t.Errorf("Root() = %q, want %q", got, want)
	}

	if got, want := fs.RawPath("39"), filepath.Join("mx", "nuevo-leon", "raw", "banamex-39.raw"); got != want {
		t.Errorf("RawPath() = %q, want %q", got, want)
	}

	if got, want := fs.GeoJSONPath(), filepath.Join("mx", "nuevo-leon", "banamex.geojson"); got != want {
		t.Errorf("GeoJSONPath() = %q, want %q", got, want)
	}
}

func TestFileStore_Raw(t *testing.T) {
	tmpDir := t.TempDir()
	fs := NewFileStore(tmpDir, "banamex", &Region{Slug: "colima", ID: 6})

	// twice: existing directories are fine
	for range 2 {
		if err := fs.EnsureDirs(); err != nil {
			t.Fatalf("EnsureDirs failed: %v", err)
		}
	}

	for _, id := range []string{"10", "2", "1", "011"} {
		if err := fs.SaveRaw(id, "No"); err != nil {
			t.Fatalf("SaveRaw(%q) failed: %v", id, err)
		}
	}

	// noise that must be ignored
	if err := os.WriteFile(filepath.Join(tmpDir, "colima", "raw", "otro-3.raw"), nil, 0o600); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "colima", "raw", "banamex-4.txt"), nil, 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := fs.RawMunicipalities()
	if err != nil {
		t.Fatalf("RawMunicipalities failed: %v", err)
	}

	if diff := cmp.Diff([]string{"1", "2", "10", "011"}, got); diff != "" {
		t.Errorf("RawMunicipalities() mismatch (-want +got):\n%s", diff)
	}

	body, err := fs.LoadRaw("10")
	if err != nil || body != "No" {
		t.Errorf("LoadRaw() = %q, %v", body, err)
	}

	if _, err := fs.LoadRaw("99"); err == nil {
		t.Error("LoadRaw of a missing municipality should fail")
	}

	for _, id := range []string{"", "..", "a/b", `a\b`} {
		if err := fs.SaveRaw(id, "x"); err == nil {
			t.Errorf("SaveRaw(%q) should fail", id)
		}
	}
}

func TestFileStore_RawMunicipalities_Missing(t *testing.T) {
	fs := NewFileStore(t.TempDir(), "banamex", &Region{Slug: "colima", ID: 6})

	got, err := fs.RawMunicipalities()
	if err != nil || got != nil {
		t.Errorf("RawMunicipalities() = %v, %v; want nil, nil", got, err)
	}
}

func TestFileStore_FeatureCollection(t *testing.T) {
	fs := NewFileStore(t.TempDir(), "banamex", &Region{Slug: "colima", ID: 6})
	if err := fs.EnsureDirs(); err != nil {
		t.Fatal(err)
	}

	fc := spatial.NewFeatureCollection[Facility]()
	fc.Features = append(fc.Features, spatial.NewFeature(
		spatial.Coordinates{"-103.5", "19.2"},
		Facility{Bank: BankName, Name: "Sucursal Uno", Region: "Colima"},
	))

	if err := fs.SaveFeatureCollection(fc); err != nil {
		t.Fatalf("SaveFeatureCollection failed: %v", err)
	}

	got, err := fs.LoadFeatureCollection()
	if err != nil {
		t.Fatalf("LoadFeatureCollection failed: %v", err)
	}

	if diff := cmp.Diff(fc, got); diff != "" {
		t.Errorf("feature collection mismatch (-want +got):\n%s", diff)
	}
}
