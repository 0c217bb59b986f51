// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

package typosquat

import "github.com/pkg/errors"

// ErrIncompleteDBConf is returned by a CLI's dbconf parser when the
// configuration file is missing the fields the relational store needs to
// connect.
var ErrIncompleteDBConf = errors.New("dbconf is missing required project/dataset fields")

// Default CLI flag values, per spec.md §6.
const (
	DefaultDays          = 3
	DefaultTop           = 3000
	DefaultDownloadDir   = "/var/tmp/cratefiles"
	DefaultDBConf        = "db.conf"
	DefaultAllowlistYAML = ""
)

// Exit codes, per spec.md §6.
const (
	ExitNoAlerts      = 0
	ExitAlertsEmitted = 42
)

// Config bundles the CLI-facing run parameters, bridging the flags table
// in spec.md §6 to the engine's constructors.
type Config struct {
	Days                 int
	Top                  int
	SimilarityThreshold  float64
	LevenshteinThreshold int
	DownloadDir          string
	DBConf               string
	AllowlistPath        string
	Parallelism          int
}

// DefaultConfig returns a Config populated with every spec.md §6 default.
func DefaultConfig() Config {
	return Config{
		Days:                 DefaultDays,
		Top:                  DefaultTop,
		SimilarityThreshold:  DefaultSimilarityThreshold,
		LevenshteinThreshold: DefaultLevenshteinThreshold,
		DownloadDir:          DefaultDownloadDir,
		DBConf:               DefaultDBConf,
		AllowlistPath:        DefaultAllowlistYAML,
		Parallelism:          1,
	}
}
