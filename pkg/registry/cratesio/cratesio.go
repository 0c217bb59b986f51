// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package cratesio implements the crates.io artifact download contract
// used to retrieve the crate file associated with a suspected
// typosquatting candidate once an alert has been raised.
package cratesio

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/google/squatwatch/internal/httpx"
	"github.com/pkg/errors"
)

var registryURL, _ = url.Parse("https://crates.io")

// crateFileRegex matches the final path component of a crate download
// redirect: <name>-<semver>.crate, where semver allows the standard
// optional prerelease and build metadata suffixes.
var crateFileRegex = regexp.MustCompile(`^([A-Za-z0-9_-]+)-(?:0|[1-9]\d*)\.(?:0|[1-9]\d*)\.(?:0|[1-9]\d*)(?:-(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*)?(?:\+[0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*)?\.crate$`)

// MalformedRedirectError indicates a download redirect that did not point
// at a validly-named crate file; this is never expected from a trusted
// registry and signals upstream corruption rather than a transient fault.
type MalformedRedirectError struct {
	Location string
}

func (e *MalformedRedirectError) Error() string {
	return errors.Errorf("malformed crate download redirect: %q", e.Location).Error()
}

// Registry retrieves crate artifacts from the crates.io download API.
type Registry interface {
	Artifact(ctx context.Context, name, version string) (io.ReadCloser, error)
}

// HTTPRegistry is a Registry implementation that uses the crates.io HTTP
// download endpoint directly, per the contract in spec.md §6: a GET with
// redirects disabled, a required 302 with a Location header whose final
// path segment names a validly-formed crate file, then a follow-up GET to
// that location for the artifact bytes.
type HTTPRegistry struct {
	Client httpx.BasicClient
}

// Artifact fetches the crate archive for the given name and version.
func (r HTTPRegistry) Artifact(ctx context.Context, name, version string) (io.ReadCloser, error) {
	downloadURL := registryURL.ResolveReference(&url.URL{
		Path: path.Join("/api/v1/crates", name, version, "download"),
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "building download request")
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "requesting crate download")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		return nil, errors.Errorf("unexpected status fetching %s: %s", downloadURL, resp.Status)
	}
	loc := resp.Header.Get("Location")
	if loc == "" {
		return nil, errors.Errorf("302 redirect without Location header fetching %s", downloadURL)
	}
	segments := strings.Split(loc, "/")
	crateFile := segments[len(segments)-1]
	if !crateFileRegex.MatchString(crateFile) {
		return nil, &MalformedRedirectError{Location: loc}
	}
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building artifact request")
	}
	resp, err = r.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching crate artifact")
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, errors.Errorf("unexpected status fetching artifact %s: %s", loc, resp.Status)
	}
	return resp.Body, nil
}

var _ Registry = HTTPRegistry{}
