package rules

import (
	"postcheck-engine/internal/domain"
	"postcheck-engine/internal/features"
)

// Labeler turns one Record into a labeled Result.
type Labeler interface {
	Label(rec domain.Record) domain.Result
}

// Engine pairs the extractor with the rule set of the same variant.
type Engine struct {
	Rules     RuleSet
	Extractor features.Extractor
}

// NewEngine wires an extractor whose vocabulary and feature scope match rs.
func NewEngine(rs RuleSet, stripHTML bool) Engine {
	return Engine{
		Rules: rs,
		Extractor: features.Extractor{
			Vocab:     rs.Vocabulary,
			Extended:  rs.Variant == Extended,
			StripHTML: stripHTML,
		},
	}
}

func (e Engine) Label(rec domain.Record) domain.Result {
	fs := e.Extractor.Extract(rec)
	flags, label := e.Rules.Evaluate(fs)
	return domain.Result{Record: rec, Features: fs, Flags: flags, Label: label}
}
