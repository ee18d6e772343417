package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"postcheck-engine/internal/ingest"
	"postcheck-engine/internal/rules"
	"postcheck-engine/internal/textutil"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg and every problem
// found in it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.App.Input = strings.TrimSpace(out.App.Input)
	out.App.Output = strings.TrimSpace(out.App.Output)
	out.App.Variant = strings.ToLower(strings.TrimSpace(out.App.Variant))
	out.App.Format = strings.ToLower(strings.TrimSpace(out.App.Format))
	out.App.Summary = strings.ToLower(strings.TrimSpace(out.App.Summary))

	out.Rules.GenericTerms = textutil.NormalizeTerms(out.Rules.GenericTerms)
	out.Rules.ExtraGenericTerms = textutil.NormalizeTerms(out.Rules.ExtraGenericTerms)
	out.Rules.ContactTerms = textutil.NormalizeTerms(out.Rules.ContactTerms)
	out.Rules.URLMarkers = textutil.NormalizeTerms(out.Rules.URLMarkers)

	// ---- app ----

	if out.App.Input == "" {
		res.addErr("app.input is required")
	}
	if out.App.Output == "" {
		res.addErr("app.output is required")
	}
	if out.App.Input != "" && filepath.Clean(out.App.Input) == filepath.Clean(out.App.Output) {
		res.addWarn("app.output equals app.input; the input file will be overwritten.")
	}
	if _, err := rules.ParseVariant(out.App.Variant); err != nil {
		res.addErr("app.variant: %v", err)
	}
	if out.App.Format != "" {
		if _, err := ingest.ParseFormat(out.App.Format); err != nil {
			res.addErr("app.format: %v", err)
		}
	}
	switch out.App.Summary {
	case "", "text", "json", "none":
	default:
		res.addErr("app.summary must be text, json or none (got %q)", out.App.Summary)
	}
	if out.App.Workers < 0 {
		res.addErr("app.workers must be >= 0")
	} else if out.App.Workers > 256 {
		res.addWarn("app.workers is very high (%d); the work is CPU bound.", out.App.Workers)
	}

	// ---- rules ----

	th := out.Rules.Thresholds
	if th.ShortDescriptionLength < 0 {
		res.addErr("rules.thresholds.short_description_length must be >= 0")
	}
	if th.LowWordCount < 0 {
		res.addErr("rules.thresholds.low_word_count must be >= 0")
	}
	if th.MaxExclamations < 0 || th.MaxSpecialChars < 0 || th.MaxUppercaseWords < 0 {
		res.addErr("rules.thresholds count limits must be >= 0")
	}
	if th.MaxKeywordDensity < 0 {
		res.addErr("rules.thresholds.max_keyword_density must be >= 0")
	}
	if th.MaxSimilarity < 0 || th.MaxSimilarity > 1 {
		res.addErr("rules.thresholds.max_similarity must be within 0..1")
	} else if th.MaxSimilarity == 1 {
		res.addWarn("rules.thresholds.max_similarity is 1; is_high_similarity can never fire.")
	}
	if th != rules.DefaultThresholds() {
		res.addWarn("rules.thresholds differ from the reference values; labels are not comparable with default runs.")
	}

	// ---- store / serve ----

	if out.Store.RetainDays < 0 {
		res.addErr("store.retain_days must be >= 0")
	}
	if strings.TrimSpace(out.Serve.Addr) == "" {
		res.addErr("serve.addr is required")
	}
	if out.Serve.MaxBodyMB <= 0 {
		res.addErr("serve.max_body_mb must be > 0")
	}

	return out, res
}
