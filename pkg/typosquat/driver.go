// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

package typosquat

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb"
	"github.com/google/squatwatch/internal/semver"
	"github.com/google/squatwatch/pkg/corpus"
	"github.com/google/squatwatch/pkg/registry/cratesio"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Driver orchestrates the per-candidate pipeline (spec.md §4.6): allowlist,
// mutators, deduplication, similarity filter, and alert emission.
type Driver struct {
	Engine        *EngineContext
	Filter        *SimilarityFilter
	Registry      cratesio.Registry
	VersionLister versionLister
	DownloadDir   string
	Parallelism   int
	Out           io.Writer
}

// Run processes every candidate in ascending lexicographic name order and
// returns the number of alerts emitted. Candidates run sequentially unless
// Parallelism > 1, in which case they are sharded across a bounded
// errgroup; emission still proceeds in ascending name order regardless of
// completion order (spec.md §5).
func (d *Driver) Run(ctx context.Context) (int, error) {
	runID := uuid.New()
	log.Printf("run %s: starting", runID)

	names := corpus.CandidateNames(d.Engine.Corpus)
	results := make([]*Alert, len(names))

	bar := pb.New(len(names))
	bar.Output = os.Stderr
	bar.ShowTimeLeft = true
	bar.Start()
	defer bar.Finish()

	process := func(i int) error {
		defer bar.Increment()
		alert, err := d.processCandidate(ctx, names[i])
		if err != nil {
			return err
		}
		results[i] = alert
		return nil
	}

	if d.Parallelism > 1 {
		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(d.Parallelism)
		for i := range names {
			i := i
			g.Go(func() error { return process(i) })
		}
		if err := g.Wait(); err != nil {
			// A partial run still produces a prefix of the alert stream
			// (spec.md §5): flush whatever was already computed before
			// surfacing the error.
			count := d.flush(results, runID)
			log.Printf("run %s: aborted after %d alerts: %v", runID, count, err)
			return count, err
		}
	} else {
		for i := range names {
			if err := process(i); err != nil {
				count := d.flush(results, runID)
				log.Printf("run %s: aborted after %d alerts: %v", runID, count, err)
				return count, err
			}
		}
	}

	count := d.flush(results, runID)
	log.Printf("run %s: complete, %d alerts", runID, count)
	return count, nil
}

// flush writes every computed alert in results, in ascending name order, to
// d.Out, followed by a summary line on the same stream (spec.md's "Output
// stream" paragraph), and returns the number of alerts written. Unprocessed
// slots (nil, because Run aborted early) are skipped, so a partial run still
// emits a valid prefix of the alert stream.
func (d *Driver) flush(results []*Alert, runID uuid.UUID) int {
	highlight := isatty.IsTerminal(os.Stdout.Fd())
	count := 0
	for _, alert := range results {
		if alert == nil {
			continue
		}
		count++
		alert.writeLine(d.Out, highlight)
	}
	fmt.Fprintf(d.Out, "run %s: complete, %d alerts\n", runID, count)
	return count
}

// processCandidate runs the full per-candidate algorithm of spec.md §4.6,
// steps 1-6, returning nil (no alert) when the candidate is popular,
// allowlisted, or its filtered target set ends up empty.
func (d *Driver) processCandidate(ctx context.Context, name string) (*Alert, error) {
	c := d.Engine.Corpus
	if c.IsPopular(name) {
		return nil, nil
	}
	candidate := c.Get(name)
	if candidate == nil {
		return nil, newMalformedInputError("candidate %q missing from corpus", name)
	}
	if d.Engine.Allowlist.Matches(candidate) {
		return nil, nil
	}
	raw := d.Engine.MutationTargets(name)
	if len(raw) == 0 {
		return nil, nil
	}
	targets, err := d.Filter.Filter(ctx, candidate, raw, c)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, nil
	}
	artifactPath := d.downloadLatest(ctx, name)
	return &Alert{
		CandidateName:      name,
		CandidateDownloads: candidate.Downloads,
		ArtifactPath:       artifactPath,
		Targets:            targets,
	}, nil
}

// downloadLatest fetches the candidate's latest non-yanked version and
// writes it under DownloadDir, returning the placeholder reference on any
// failure (spec.md §4.6, §7: artifact download failures never suppress the
// alert).
func (d *Driver) downloadLatest(ctx context.Context, name string) string {
	versions, err := d.latestVersion(ctx, name)
	if err != nil || versions == "" {
		return placeholderArtifact
	}
	body, err := d.Registry.Artifact(ctx, name, versions)
	if err != nil {
		log.Printf("download failed for %s@%s: %v", name, versions, newTransientNetworkError(err))
		return placeholderArtifact
	}
	defer body.Close()
	if err := os.MkdirAll(d.DownloadDir, 0o755); err != nil {
		log.Printf("creating download dir %s: %v", d.DownloadDir, err)
		return placeholderArtifact
	}
	dest := filepath.Join(d.DownloadDir, name+"-"+versions+".crate")
	f, err := os.Create(dest)
	if err != nil {
		log.Printf("creating artifact file %s: %v", dest, err)
		return placeholderArtifact
	}
	defer f.Close()
	if _, err := io.Copy(f, body); err != nil {
		log.Printf("writing artifact file %s: %v", dest, err)
		return placeholderArtifact
	}
	return dest
}

// versionLister is the subset of pkg/corpus.Store the driver needs to
// resolve a candidate's latest non-yanked version at alert time; satisfied
// directly by corpus.Store.
type versionLister interface {
	Versions(ctx context.Context, name string) ([]string, error)
}

func (d *Driver) latestVersion(ctx context.Context, name string) (string, error) {
	if d.VersionLister == nil {
		return "", errors.New("no version lister configured")
	}
	versions, err := d.VersionLister.Versions(ctx, name)
	if err != nil {
		return "", errors.Wrapf(err, "listing versions for %s", name)
	}
	if len(versions) == 0 {
		return "", nil
	}
	latest := versions[0]
	for _, v := range versions[1:] {
		if semver.Cmp(v, latest) > 0 {
			latest = v
		}
	}
	return latest, nil
}
