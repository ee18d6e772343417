package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postcheck-engine/internal/domain"
	"postcheck-engine/internal/pipeline"
	"postcheck-engine/internal/rules"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs", "postcheck.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func labeled(t *testing.T, v rules.Variant) pipeline.Batch {
	t.Helper()
	tbl := domain.Table{Source: "posts.csv", Columns: []string{domain.ColTitle, domain.ColDescription}}
	for i, d := range []string{
		"We are a well-established engineering firm seeking a senior backend developer with five or more years of experience in distributed systems.",
		"Great opportunity!!!! Earn cash now",
	} {
		tbl.Records = append(tbl.Records, domain.Record{Index: i, Title: "Role", Description: d, Values: []string{"Role", d}})
	}
	rs, err := rules.Default(v)
	require.NoError(t, err)
	b, err := pipeline.Label(context.Background(), tbl, rules.NewEngine(rs, false), pipeline.Options{})
	require.NoError(t, err)
	return b
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTemp(t)
	require.NoError(t, Migrate(db.Pool))

	var v int
	require.NoError(t, db.Pool.QueryRow(`PRAGMA user_version;`).Scan(&v))
	assert.Equal(t, 1, v)
}

func TestSaveAndReadRun(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)

	run, err := SaveRun(ctx, db.Pool, labeled(t, rules.Basic))
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 2, run.Total)
	assert.Equal(t, 1, run.Fake)

	got, err := GetRun(ctx, db.Pool, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "basic", got.Variant)
	assert.WithinDuration(t, run.CreatedAt, got.CreatedAt, time.Millisecond)

	all, err := RunPostings(ctx, db.Pool, run.ID, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 0, all[0].RowIndex)
	assert.False(t, all[0].Fake)
	assert.Empty(t, all[0].Raised)
	assert.Equal(t, 139.0, all[0].Features[domain.FeatDescriptionLength])

	fake, err := RunPostings(ctx, db.Pool, run.ID, true)
	require.NoError(t, err)
	require.Len(t, fake, 1)
	assert.Equal(t, 1, fake[0].RowIndex)
	assert.Equal(t, []string{rules.FlagShortDescription, rules.FlagExcessiveExclaims, rules.FlagGenericTerms}, fake[0].Raised)
}

func TestGetRun_NotFound(t *testing.T) {
	_, err := GetRun(context.Background(), openTemp(t).Pool, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)

	first, err := SaveRun(ctx, db.Pool, labeled(t, rules.Basic))
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := SaveRun(ctx, db.Pool, labeled(t, rules.Extended))
	require.NoError(t, err)

	runs, err := ListRuns(ctx, db.Pool, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
}

func TestCleanupOldRuns(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)

	run, err := SaveRun(ctx, db.Pool, labeled(t, rules.Basic))
	require.NoError(t, err)

	n, err := CleanupOldRuns(ctx, db.Pool, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = CleanupOldRuns(ctx, db.Pool, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ps, err := RunPostings(ctx, db.Pool, run.ID, false)
	require.NoError(t, err)
	assert.Empty(t, ps)
}
