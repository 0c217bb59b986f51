// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

package corpus

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// BigQueryStore implements Store against a BigQuery dataset shaped like the
// crates.io database dump: crates, recent_crate_downloads, crate_owners,
// users, teams, and versions tables, joined the same way as the original
// get_top_crates/get_crates_to_check/get_latest_version queries.
type BigQueryStore struct {
	Client  *bigquery.Client
	Dataset string
}

// NewBigQueryStore opens a BigQuery client for project and wraps it to
// query tables in dataset.
func NewBigQueryStore(ctx context.Context, project, dataset string) (*BigQueryStore, error) {
	client, err := bigquery.NewClient(ctx, project, option.WithQuotaProject(project))
	if err != nil {
		return nil, errors.Wrap(err, "creating bigquery client")
	}
	return &BigQueryStore{Client: client, Dataset: dataset}, nil
}

func (s *BigQueryStore) table(name string) string {
	return "`" + s.Dataset + "." + name + "`"
}

type packageRow struct {
	Name          string
	Login         bigquery.NullString
	Homepage      bigquery.NullString
	Repository    bigquery.NullString
	Documentation bigquery.NullString
	Description   bigquery.NullString
	Downloads     int64
}

func (r packageRow) toRow() Row {
	return Row{
		Name:          r.Name,
		Login:         r.Login.StringVal,
		Homepage:      r.Homepage.StringVal,
		Repository:    r.Repository.StringVal,
		Documentation: r.Documentation.StringVal,
		Description:   r.Description.StringVal,
		Downloads:     r.Downloads,
	}
}

// TopPackages mirrors get_top_crates: rank by recent downloads descending,
// take the top n names, then left-join owners through both owner kinds.
func (s *BigQueryStore) TopPackages(ctx context.Context, n int) ([]Row, error) {
	q := s.Client.Query(`
SELECT
  ranked.name AS Name,
  COALESCE(users.gh_login, teams.login) AS Login,
  ranked.homepage AS Homepage,
  ranked.repository AS Repository,
  ranked.documentation AS Documentation,
  ranked.description AS Description,
  ranked.downloads AS Downloads
FROM (
  SELECT crates.*, recent_crate_downloads.downloads AS recent_downloads
  FROM ` + s.table("crates") + ` AS crates
  LEFT JOIN ` + s.table("recent_crate_downloads") + ` AS recent_crate_downloads
    ON crates.id = recent_crate_downloads.crate_id
  ORDER BY recent_crate_downloads.downloads DESC
  LIMIT @limit
) AS ranked
LEFT JOIN ` + s.table("crate_owners") + ` AS crate_owners ON ranked.id = crate_owners.crate_id
LEFT JOIN ` + s.table("users") + ` AS users
  ON crate_owners.owner_id = users.id AND crate_owners.owner_kind = 0 AND NOT crate_owners.deleted
LEFT JOIN ` + s.table("teams") + ` AS teams
  ON crate_owners.owner_id = teams.id AND crate_owners.owner_kind = 1 AND NOT crate_owners.deleted
ORDER BY ranked.recent_downloads DESC`)
	q.Parameters = []bigquery.QueryParameter{{Name: "limit", Value: n}}
	return s.run(ctx, q)
}

// CandidatePackages mirrors get_crates_to_check: packages ranked below n
// with a non-yanked version updated within the last days days.
func (s *BigQueryStore) CandidatePackages(ctx context.Context, n, days int) ([]Row, error) {
	q := s.Client.Query(`
SELECT
  ranked.name AS Name,
  COALESCE(users.gh_login, teams.login) AS Login,
  ranked.homepage AS Homepage,
  ranked.repository AS Repository,
  ranked.documentation AS Documentation,
  ranked.description AS Description,
  ranked.downloads AS Downloads
FROM (
  SELECT crates.*, recent_crate_downloads.downloads AS recent_downloads
  FROM ` + s.table("crates") + ` AS crates
  LEFT JOIN ` + s.table("recent_crate_downloads") + ` AS recent_crate_downloads
    ON crates.id = recent_crate_downloads.crate_id
  ORDER BY recent_crate_downloads.downloads DESC
  OFFSET @offset
) AS ranked
LEFT JOIN ` + s.table("crate_owners") + ` AS crate_owners ON ranked.id = crate_owners.crate_id
LEFT JOIN ` + s.table("users") + ` AS users
  ON crate_owners.owner_id = users.id AND crate_owners.owner_kind = 0 AND NOT crate_owners.deleted
LEFT JOIN ` + s.table("teams") + ` AS teams
  ON crate_owners.owner_id = teams.id AND crate_owners.owner_kind = 1 AND NOT crate_owners.deleted
LEFT JOIN ` + s.table("versions") + ` AS versions ON ranked.id = versions.crate_id
WHERE
  NOT versions.yanked
  AND versions.updated_at > TIMESTAMP_SUB(CURRENT_TIMESTAMP(), INTERVAL @days DAY)
ORDER BY ranked.recent_downloads DESC`)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "offset", Value: n},
		{Name: "days", Value: days},
	}
	return s.run(ctx, q)
}

// Versions mirrors get_latest_version's source query, returning every
// non-yanked version string for name; ordering is the caller's concern
// (internal/semver.Cmp picks the maximum).
func (s *BigQueryStore) Versions(ctx context.Context, name string) ([]string, error) {
	q := s.Client.Query(`
SELECT versions.num AS Num
FROM ` + s.table("crates") + ` AS crates
LEFT JOIN ` + s.table("versions") + ` AS versions
  ON crates.id = versions.crate_id AND NOT versions.yanked
WHERE crates.name = @name`)
	q.Parameters = []bigquery.QueryParameter{{Name: "name", Value: name}}
	it, err := s.iterate(ctx, q)
	if err != nil {
		return nil, err
	}
	var out []string
	for {
		var row struct{ Num bigquery.NullString }
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading version row")
		}
		if row.Num.Valid {
			out = append(out, row.Num.StringVal)
		}
	}
	return out, nil
}

func (s *BigQueryStore) iterate(ctx context.Context, q *bigquery.Query) (*bigquery.RowIterator, error) {
	job, err := q.Run(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "running query")
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "waiting for query")
	}
	if err := status.Err(); err != nil {
		return nil, errors.Wrap(err, "query job failed")
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "reading query results")
	}
	return it, nil
}

func (s *BigQueryStore) run(ctx context.Context, q *bigquery.Query) ([]Row, error) {
	it, err := s.iterate(ctx, q)
	if err != nil {
		return nil, err
	}
	var out []Row
	for {
		var pr packageRow
		err := it.Next(&pr)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading package row")
		}
		out = append(out, pr.toRow())
	}
	return out, nil
}

var _ Store = &BigQueryStore{}
