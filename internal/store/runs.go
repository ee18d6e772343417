package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"postcheck-engine/internal/domain"
	"postcheck-engine/internal/pipeline"
)

var ErrNotFound = errors.New("run not found")

// timestamps are stored as fixed-width UTC text so they sort lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type Run struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Source    string    `json:"source"`
	Variant   string    `json:"variant"`
	Total     int       `json:"total"`
	Fake      int       `json:"fake"`
}

type Posting struct {
	RowIndex int                `json:"row_index"`
	Title    string             `json:"job_title"`
	Fake     bool               `json:"potentially_fake"`
	Raised   []string           `json:"raised_flags"`
	Features map[string]float64 `json:"features"`
}

// SaveRun stores b under a fresh run id in one transaction.
func SaveRun(ctx context.Context, db *sql.DB, b pipeline.Batch) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Source:    b.Table.Source,
		Variant:   string(b.Rules.Variant),
		Total:     len(b.Results),
		Fake:      b.Fake(),
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO runs(id, created_at, source, variant, total, fake)
VALUES(?,?,?,?,?,?);`,
		run.ID, run.CreatedAt.Format(timeLayout), run.Source, run.Variant, run.Total, run.Fake,
	); err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO postings(run_id, row_index, job_title, potentially_fake, flags, features)
VALUES(?,?,?,?,?,?);`)
	if err != nil {
		return Run{}, err
	}
	defer stmt.Close()

	featureCols := b.Rules.FeatureColumns()
	for _, r := range b.Results {
		flagsB, _ := json.Marshal(nonNil(r.Flags.Raised()))
		feats := make(map[string]float64, len(featureCols))
		for _, c := range featureCols {
			feats[c], _ = r.Features.Float(c)
		}
		featsB, _ := json.Marshal(feats)
		if _, err := stmt.ExecContext(ctx,
			run.ID, r.Record.Index, r.Record.Title, int(r.Label), string(flagsB), string(featsB),
		); err != nil {
			return Run{}, fmt.Errorf("insert posting %d: %w", r.Record.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, err
	}
	return run, nil
}

// ListRuns returns the newest runs first.
func ListRuns(ctx context.Context, db *sql.DB, limit int) ([]Run, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, created_at, source, variant, total, fake
FROM runs
ORDER BY created_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &created, &r.Source, &r.Variant, &r.Total, &r.Fake); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(timeLayout, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

func GetRun(ctx context.Context, db *sql.DB, id string) (Run, error) {
	var r Run
	var created string
	err := db.QueryRowContext(ctx, `
SELECT id, created_at, source, variant, total, fake
FROM runs
WHERE id = ?;`, id).Scan(&r.ID, &created, &r.Source, &r.Variant, &r.Total, &r.Fake)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, err
	}
	r.CreatedAt, _ = time.Parse(timeLayout, created)
	return r, nil
}

// RunPostings returns a run's rows in input order, optionally only the
// potentially fake ones.
func RunPostings(ctx context.Context, db *sql.DB, runID string, onlyFake bool) ([]Posting, error) {
	where := "WHERE run_id = ?"
	if onlyFake {
		where += " AND potentially_fake = 1"
	}
	rows, err := db.QueryContext(ctx, `
SELECT row_index, job_title, potentially_fake, flags, features
FROM postings
`+where+`
ORDER BY row_index;`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Posting
	for rows.Next() {
		var p Posting
		var fake int
		var flagsJSON, featsJSON string
		if err := rows.Scan(&p.RowIndex, &p.Title, &fake, &flagsJSON, &featsJSON); err != nil {
			return nil, err
		}
		p.Fake = fake == int(domain.LabelPotentiallyFake)
		_ = json.Unmarshal([]byte(flagsJSON), &p.Raised)
		_ = json.Unmarshal([]byte(featsJSON), &p.Features)
		out = append(out, p)
	}
	return out, rows.Err()
}

// CleanupOldRuns deletes runs (and their postings) created before cutoff.
func CleanupOldRuns(ctx context.Context, db *sql.DB, cutoff time.Time) (deleted int64, err error) {
	if _, err := db.ExecContext(ctx, `
DELETE FROM postings
WHERE run_id IN (SELECT id FROM runs WHERE created_at < ?);`, cutoff.UTC().Format(timeLayout)); err != nil {
		return 0, fmt.Errorf("cleanup postings: %w", err)
	}
	res, err := db.ExecContext(ctx, `
DELETE FROM runs
WHERE created_at < ?;`, cutoff.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("cleanup old runs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
