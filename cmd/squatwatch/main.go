// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

// squatwatch scans a crates.io-shaped registry snapshot for packages whose
// name is a plausible typo, substitution, or single-bit corruption of a
// popular package's name, and whose description is similar enough to be a
// deliberate impersonation rather than a coincidence.
package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/squatwatch/internal/embedding"
	"github.com/google/squatwatch/internal/httpx"
	"github.com/google/squatwatch/pkg/corpus"
	"github.com/google/squatwatch/pkg/registry/cratesio"
	"github.com/google/squatwatch/pkg/typosquat"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	days                 = flag.Int("days", typosquat.DefaultDays, "candidate recency window, in days")
	top                  = flag.Int("top", typosquat.DefaultTop, "size of the popular set N")
	similarityThreshold  = flag.Float64("similarity-threshold", typosquat.DefaultSimilarityThreshold, "semantic-mode retain threshold, in [0,1]")
	levenshteinThreshold = flag.Int("lev-threshold", typosquat.DefaultLevenshteinThreshold, "edit-distance-mode retain threshold")
	downloadDir          = flag.String("download-dir", typosquat.DefaultDownloadDir, "artifact destination directory, created if missing")
	dbConf               = flag.String("dbconf", typosquat.DefaultDBConf, "relational-store connection configuration file")
	allowlistPath        = flag.String("allowlist", typosquat.DefaultAllowlistYAML, "path to a YAML allowlist file; built-in default if unset")
	parallelism          = flag.Int("parallelism", 1, "number of candidates to process concurrently")
	embeddingLocation    = flag.String("embedding-location", "us-central1", "Vertex AI location serving the embedding model")
)

var rootCmd = &cobra.Command{
	Use:   "squatwatch",
	Short: "Detect likely typosquatting packages in a crates.io-shaped registry",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := typosquat.Config{
			Days:                 *days,
			Top:                  *top,
			SimilarityThreshold:  *similarityThreshold,
			LevenshteinThreshold: *levenshteinThreshold,
			DownloadDir:          *downloadDir,
			DBConf:               *dbConf,
			AllowlistPath:        *allowlistPath,
			Parallelism:          *parallelism,
		}
		code, err := run(cmd.Context(), cfg)
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(code)
	},
}

// dbConnection holds the fields a dbconf file supplies: the BigQuery
// project and dataset backing the relational store, per spec.md §6.
type dbConnection struct {
	Project string
	Dataset string
}

// readDBConf parses a simple "key=value" per-line configuration file, the
// Go-native stand-in for the original tool's psycopg2 connection string
// file (spec.md §6, "relational-store connection configuration").
func readDBConf(path string) (*dbConnection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening dbconf %s", path)
	}
	defer f.Close()
	conn := &dbConnection{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "project":
			conn.Project = strings.TrimSpace(value)
		case "dataset":
			conn.Dataset = strings.TrimSpace(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading dbconf %s", path)
	}
	if conn.Project == "" || conn.Dataset == "" {
		return nil, typosquat.ErrIncompleteDBConf
	}
	return conn, nil
}

func run(ctx context.Context, cfg typosquat.Config) (int, error) {
	conn, err := readDBConf(cfg.DBConf)
	if err != nil {
		return 0, errors.Wrap(err, "loading database configuration")
	}

	store, err := corpus.NewBigQueryStore(ctx, conn.Project, conn.Dataset)
	if err != nil {
		return 0, errors.Wrap(err, "connecting to relational store")
	}

	loader := corpus.NewLoader(store)
	log.Printf("loading popular set (top %d) and candidates (last %d days)", cfg.Top, cfg.Days)
	c, err := loader.Load(ctx, cfg.Top, cfg.Days)
	if err != nil {
		return 0, errors.Wrap(err, "loading corpus")
	}
	log.Printf("loaded %d popular packages, %d candidates", len(c.PopularList), len(c.Packages)-len(c.PopularList))

	allowlist, err := typosquat.LoadAllowlist(cfg.AllowlistPath)
	if err != nil {
		return 0, errors.Wrap(err, "loading allowlist")
	}

	embedder, err := embedding.NewGenAIEmbedder(ctx, conn.Project, *embeddingLocation)
	if err != nil {
		return 0, errors.Wrap(err, "creating embedding client")
	}

	client := &httpx.RateLimitedClient{
		BasicClient: &httpx.WithUserAgent{
			BasicClient: httpx.NewNoRedirectClient(http.DefaultClient),
			UserAgent:   "squatwatch/1.0",
		},
		Ticker: time.NewTicker(100 * time.Millisecond),
	}
	registry := cratesio.HTTPRegistry{Client: client}

	driver := &typosquat.Driver{
		Engine:        typosquat.NewEngineContext(c, allowlist),
		Filter:        &typosquat.SimilarityFilter{Embedder: embedder, SimilarityThreshold: cfg.SimilarityThreshold, LevenshteinThreshold: cfg.LevenshteinThreshold},
		Registry:      registry,
		VersionLister: store,
		DownloadDir:   cfg.DownloadDir,
		Parallelism:   cfg.Parallelism,
		Out:           os.Stdout,
	}
	count, err := driver.Run(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "running detector")
	}
	if count > 0 {
		return typosquat.ExitAlertsEmitted, nil
	}
	return typosquat.ExitNoAlerts, nil
}

func init() {
	rootCmd.Flags().AddGoFlag(flag.Lookup("days"))
	rootCmd.Flags().AddGoFlag(flag.Lookup("top"))
	rootCmd.Flags().AddGoFlag(flag.Lookup("similarity-threshold"))
	rootCmd.Flags().AddGoFlag(flag.Lookup("lev-threshold"))
	rootCmd.Flags().AddGoFlag(flag.Lookup("download-dir"))
	rootCmd.Flags().AddGoFlag(flag.Lookup("dbconf"))
	rootCmd.Flags().AddGoFlag(flag.Lookup("allowlist"))
	rootCmd.Flags().AddGoFlag(flag.Lookup("parallelism"))
	rootCmd.Flags().AddGoFlag(flag.Lookup("embedding-location"))
}

func main() {
	flag.Parse()
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
