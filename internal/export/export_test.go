package export

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postcheck-engine/internal/ingest"
	"postcheck-engine/internal/pipeline"
	"postcheck-engine/internal/rules"
)

const input = "job_title,company,job_description,requirements\n" +
	"Backend Engineer,Acme,We are a well-established engineering firm seeking a senior backend developer with five or more years of experience in distributed systems.,Go\n" +
	"Promoter,QuickCash,Great opportunity!!!! Earn cash now,\n" +
	"Ragged,Row\n"

func batch(t *testing.T, v rules.Variant, in string) pipeline.Batch {
	t.Helper()
	tbl, err := ingest.ReadCSV(strings.NewReader(in), "in.csv")
	require.NoError(t, err)
	rs, err := rules.Default(v)
	require.NoError(t, err)
	b, err := pipeline.Label(context.Background(), tbl, rules.NewEngine(rs, false), pipeline.Options{Workers: 2})
	require.NoError(t, err)
	return b
}

func TestWriteCSV_Basic(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, batch(t, rules.Basic, input)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{
		"job_title", "company", "job_description", "requirements",
		"description_length", "exclamation_count", "question_count", "uppercase_word_count", "contains_generic_terms",
		"is_short_description", "has_excessive_exclamations", "has_unusual_format", "has_generic_terms",
		"potentially_fake",
	}, rows[0])

	assert.Equal(t, []string{"139", "0", "0", "0", "False", "False", "False", "False", "False", "0"}, rows[1][4:])
	assert.Equal(t, []string{"35", "4", "0", "0", "True", "True", "True", "False", "True", "1"}, rows[2][4:])

	// ragged row is padded to the header and labeled from an empty description
	assert.Equal(t, []string{"Ragged", "Row", "", ""}, rows[3][:4])
	assert.Equal(t, "1", rows[3][len(rows[3])-1])
}

func TestWriteCSV_ExtendedColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, batch(t, rules.Extended, input)))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	assert.Len(t, rows[0], 4+12+10+1)
	assert.Contains(t, rows[0], "title_description_similarity")
	assert.Contains(t, rows[0], "is_high_similarity")
	assert.Equal(t, "potentially_fake", rows[0][len(rows[0])-1])

	col := func(name string) int {
		for i, c := range rows[0] {
			if c == name {
				return i
			}
		}
		t.Fatalf("no column %s", name)
		return -1
	}
	// float columns keep a decimal point even when whole
	ragged := rows[3]
	assert.Equal(t, "0", ragged[col("word_count")])
	assert.Equal(t, "0.0", ragged[col("avg_word_length")])
	assert.Equal(t, "0.0", ragged[col("keyword_density")])
	assert.Equal(t, "0.0", ragged[col("title_description_similarity")])
}

func TestWriteCSV_RerunOverwritesDerivedColumns(t *testing.T) {
	var first bytes.Buffer
	require.NoError(t, WriteCSV(&first, batch(t, rules.Basic, input)))

	var second bytes.Buffer
	require.NoError(t, WriteCSV(&second, batch(t, rules.Basic, first.String())))

	assert.Equal(t, first.String(), second.String())
}

func TestWriteNDJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNDJSON(&buf, batch(t, rules.Extended, input)))

	sc := bufio.NewScanner(&buf)
	var objs []map[string]any
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		objs = append(objs, m)
	}
	require.Len(t, objs, 3)

	assert.Equal(t, "Promoter", objs[1]["job_title"])
	assert.Equal(t, 35.0, objs[1]["description_length"])
	assert.Equal(t, true, objs[1]["has_generic_terms"])
	assert.Equal(t, 1.0, objs[1]["potentially_fake"])
	assert.Equal(t, 0.0, objs[0]["potentially_fake"])
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "nested", "out.csv")
	b := batch(t, rules.Basic, input)

	require.NoError(t, WriteFile(out, ingest.FormatCSV, b))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "job_title,company"))
	_, err = os.Stat(out + ".tmp")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWriteFile_Locked(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")
	held := flock.New(out + ".lock")
	ok, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	defer held.Unlock()

	err = WriteFile(out, ingest.FormatCSV, batch(t, rules.Basic, input))
	assert.ErrorIs(t, err, ErrLocked)
	_, statErr := os.Stat(out)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}
