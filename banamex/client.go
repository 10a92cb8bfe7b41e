// Copyright 2025 The Cajeros Authors
// SPDX-License-Identifier: Apache-2.0

// Package banamex retrieves the Banamex ATM and branch locations, state by
// state and municipality by municipality, and turns them into GeoJSON.
package banamex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/jcodagnone/cajeros/utils/httputils"
	"github.com/jcodagnone/cajeros/utils/textutils"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// DefaultSource is the prefix of the artifacts written for this bank.
const DefaultSource = "banamex"

// ClientOptions configuration for Client.
type ClientOptions struct {
	// OutputDir is the root of the per region directories
	OutputDir string

	// Source names the artifacts: <source>-<municipality>.raw, <source>.geojson
	Source string

	// BaseURL overrides the locator endpoint
	BaseURL string

	// UserAgent is the User-Agent header to use in HTTP requests
	UserAgent string

	// Charset forces the response encoding instead of trusting the Content-Type header
	Charset string

	// Delay is the pause after each municipality request
	Delay time.Duration

	// Timeout of each HTTP request
	Timeout time.Duration

	// Municipalities restricts the fetch to these municipality ids
	Municipalities []string

	// Enables light tracing of HTTP requests and responses
	EnableHTTPTrace bool

	// Enables full HTTP body tracing
	EnableHTTPBodyTrace bool

	// Dry run, don't write any file nor touch the catalog
	DryRun bool
}

// ClientMetrics tracks what happened during an update.
type ClientMetrics struct {
	Regions              int // regions completed, even partially
	RegionsFailed        int // regions that could not be processed at all
	Municipalities       int // municipalities fetched and parsed
	MunicipalitiesFailed int // municipalities skipped because of an error
	Facilities           int // facilities written
	Duplicates           int // facilities sharing coordinates with a previous one
}

// Merge combines the metrics from another ClientMetrics instance into this one.
func (m *ClientMetrics) Merge(other *ClientMetrics) *ClientMetrics {
	if other == nil {
		return m
	}

	m.Regions += other.Regions
	m.RegionsFailed += other.RegionsFailed
	m.Municipalities += other.Municipalities
	m.MunicipalitiesFailed += other.MunicipalitiesFailed
	m.Facilities += other.Facilities
	m.Duplicates += other.Duplicates

	return m
}

// Fetcher retrieves a URL and returns its body as UTF-8 text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// httpFetcher is the Fetcher used against the real portal.
type httpFetcher struct {
	client  *http.Client
	charset string
}

// Fetch implements Fetcher.
func (f *httpFetcher) Fetch(ctx context.Context, url string) (ret string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{Kind: FetchErrorTransport, URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{Kind: FetchErrorTransport, URL: url, Err: err}
	}

	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = &FetchError{Kind: FetchErrorBody, URL: url, Err: cerr}
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{Kind: FetchErrorStatus, URL: url, StatusCode: resp.StatusCode}
	}

	r, err := textutils.AsReader(resp, f.charset)
	if err != nil {
		return "", &FetchError{Kind: FetchErrorBody, URL: url, Err: err}
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", &FetchError{Kind: FetchErrorBody, URL: url, Err: err}
	}

	return string(body), nil
}

// Client drives the retrieval of one or more regions.
type Client struct {
	endpoint Endpoint
	fetcher  Fetcher
	options  *ClientOptions
	repo     FacilityRepository
	Metrics  ClientMetrics
}

// NewClient creates a new client with the provided options. repo may be nil
// when no catalog is wanted.
func NewClient(options *ClientOptions, repo FacilityRepository) *Client {
	if options == nil {
		options = &ClientOptions{}
	}

	var httpLogWriter io.Writer
	if options.EnableHTTPTrace {
		httpLogWriter = os.Stderr
	}

	fetcher := &httpFetcher{
		client: httputils.NewClient(httputils.ClientOptions{
			UserAgent:   options.UserAgent,
			Timeout:     options.Timeout,
			TraceWriter: httpLogWriter,
			TraceBody:   options.EnableHTTPBodyTrace,
		}),
		charset: options.Charset,
	}

	return NewClientWithFetcher(options, fetcher, repo)
}

// NewClientWithFetcher is like NewClient but uses the given Fetcher.
func NewClientWithFetcher(options *ClientOptions, fetcher Fetcher, repo FacilityRepository) *Client {
	if options == nil {
		options = &ClientOptions{}
	}

	if options.Source == "" {
		options.Source = DefaultSource
	}

	return &Client{
		endpoint: Endpoint{BaseURL: options.BaseURL},
		fetcher:  fetcher,
		options:  options,
		repo:     repo,
	}
}

// Municipalities fetches the municipality list of a region.
func (c *Client) Municipalities(ctx context.Context, region *Region) ([]Municipality, error) {
	body, err := c.fetcher.Fetch(ctx, c.endpoint.MunicipalityListURL(region.ID))
	if err != nil {
		return nil, err
	}

	ret, err := ParseMunicipalityList(body)
	if err != nil {
		return nil, fmt.Errorf("region %s: %w", region.Slug, err)
	}

	return ret, nil
}

// municipalityIDs returns the municipalities to fetch for a region.
func (c *Client) municipalityIDs(ctx context.Context, region *Region) ([]string, error) {
	municipalities, err := c.Municipalities(ctx, region)
	if err != nil {
		return nil, err
	}

	ret := make([]string, 0, len(municipalities))
	for _, m := range municipalities {
		ret = append(ret, m.ID)
	}

	if len(c.options.Municipalities) == 0 {
		return ret, nil
	}

	var filtered []string

	for _, id := range c.options.Municipalities {
		if !slices.Contains(ret, id) {
			return nil, fmt.Errorf("municipality %q is not part of region %s", id, region.Slug)
		}

		filtered = append(filtered, id)
	}

	return filtered, nil
}

// fetchMunicipality retrieves, stores and parses the facilities of a
// municipality. The raw body hits the disk before any parsing.
func (c *Client) fetchMunicipality(
	ctx context.Context,
	store *FileStore,
	region *Region,
	municipalityID string,
) ([]*Facility, error) {
	body, err := c.fetcher.Fetch(ctx, c.endpoint.FacilityListURL(region.ID, municipalityID))
	if err != nil {
		return nil, err
	}

	if !c.options.DryRun {
		if err := store.SaveRaw(municipalityID, body); err != nil {
			return nil, err
		}
	}

	return Facilities(body, region, municipalityID)
}

// pause waits Delay after a municipality request, whatever its outcome
// and however long it took. Only a cancelled ctx cuts it short.
func (c *Client) pause(ctx context.Context) error {
	if c.options.Delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(c.options.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// UpdateRegion retrieves every municipality of a region and writes its
// feature collection. A failing municipality is logged and skipped; the
// collection is still written and the joined errors returned.
func (c *Client) UpdateRegion(ctx context.Context, region *Region) error {
	log.Printf("Retrieving municipalities: %s", region.Slug)

	ids, err := c.municipalityIDs(ctx, region)
	if err != nil {
		c.Metrics.RegionsFailed++

		return fmt.Errorf("retrieving municipalities of %s: %w", region.Slug, err)
	}

	store := NewFileStore(c.options.OutputDir, c.options.Source, region)
	if !c.options.DryRun {
		if err := store.EnsureDirs(); err != nil {
			c.Metrics.RegionsFailed++

			return err
		}
	}

	log.Printf("Extracting ATM info: %s - %d municipalities", region.Slug, len(ids))

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(ids),
			progressbar.OptionSetDescription("Extracting "+region.Slug),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	output := NewRegionOutput(region)

	var errs []error

	for i, id := range ids {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())

			break
		}

		facilities, err := c.fetchMunicipality(ctx, store, region, id)
		if err != nil {
			c.Metrics.MunicipalitiesFailed++

			errs = append(errs, fmt.Errorf("municipality %s: %w", id, err))
			log.Printf("[%d/%d] %s municipality %s failed: %s", i+1, len(ids), region.Slug, id, err)
		} else {
			c.Metrics.Municipalities++

			output.Append(facilities...)
		}

		if bar == nil {
			log.Printf("[%d/%d] %s municipality %s - %d facilities", i+1, len(ids), region.Slug, id, len(facilities))
		} else if err := bar.Add(1); err != nil {
			errs = append(errs, fmt.Errorf("updating progress bar for %s: %w", id, err))
		}

		if err := c.pause(ctx); err != nil {
			errs = append(errs, err)

			break
		}
	}

	if err := c.save(output); err != nil {
		errs = append(errs, err)
	}

	c.Metrics.Regions++
	c.Metrics.Facilities += output.Len()
	c.Metrics.Duplicates += output.Duplicates()

	log.Printf(
		"Region %s completed - %d municipalities, %d facilities, %d duplicated coordinates, %d errors",
		region.Slug,
		len(ids),
		output.Len(),
		output.Duplicates(),
		len(errs),
	)

	return errors.Join(errs...)
}

// save writes the feature collection and updates the catalog, if any.
func (c *Client) save(output *RegionOutput) error {
	if c.options.DryRun {
		return nil
	}

	region := output.Region()
	store := NewFileStore(c.options.OutputDir, c.options.Source, region)

	if err := store.SaveFeatureCollection(output.FeatureCollection()); err != nil {
		return fmt.Errorf("saving %s: %w", region.Slug, err)
	}

	if c.repo != nil {
		if err := c.repo.SaveRegion(region, output.Facilities()); err != nil {
			return fmt.Errorf("saving %s to the catalog: %w", region.Slug, err)
		}
	}

	return nil
}

// Update processes the given regions one after the other. A failing region
// doesn't stop the others.
func (c *Client) Update(ctx context.Context, regions []Region) error {
	var errs []error

	for i := range regions {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)

			break
		}

		if err := c.UpdateRegion(ctx, &regions[i]); err != nil {
			log.Printf("Region %s failed - %s", regions[i].Slug, err)

			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Rebuild regenerates the feature collection of a region from the raw
// responses on disk, without any network access.
func (c *Client) Rebuild(region *Region) error {
	store := NewFileStore(c.options.OutputDir, c.options.Source, region)

	ids, err := store.RawMunicipalities()
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		return fmt.Errorf("no raw files found under %s", store.Root())
	}

	output := NewRegionOutput(region)

	var errs []error

	for _, id := range ids {
		body, err := store.LoadRaw(id)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		facilities, err := Facilities(body, region, id)
		if err != nil {
			c.Metrics.MunicipalitiesFailed++

			errs = append(errs, fmt.Errorf("municipality %s: %w", id, err))

			continue
		}

		c.Metrics.Municipalities++

		output.Append(facilities...)
	}

	if err := c.save(output); err != nil {
		errs = append(errs, err)
	}

	c.Metrics.Regions++
	c.Metrics.Facilities += output.Len()
	c.Metrics.Duplicates += output.Duplicates()

	log.Printf("Region %s rebuilt from %d raw files - %d facilities", region.Slug, len(ids), output.Len())

	return errors.Join(errs...)
}
