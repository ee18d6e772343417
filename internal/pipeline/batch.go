package pipeline

import (
	"context"
	"fmt"

	"postcheck-engine/internal/domain"
	"postcheck-engine/internal/ingest"
	"postcheck-engine/internal/rules"
)

// Batch is one labeled table together with the rule set that produced it.
type Batch struct {
	Table   domain.Table
	Rules   rules.RuleSet
	Results []domain.Result
}

// Fake returns the number of rows labeled potentially fake.
func (b Batch) Fake() int { return CountFake(b.Results) }

// Label checks the schema for the engine's variant, then labels the table.
// Schema problems surface as *ingest.SchemaError before any row is touched.
func Label(ctx context.Context, t domain.Table, e rules.Engine, opts Options) (Batch, error) {
	if err := ingest.Require(t, rules.RequiredColumns(e.Rules.Variant)...); err != nil {
		return Batch{}, err
	}
	results, err := Run(ctx, t, e, opts)
	if err != nil {
		return Batch{}, fmt.Errorf("label %s: %w", t.Source, err)
	}
	return Batch{Table: t, Rules: e.Rules, Results: results}, nil
}
