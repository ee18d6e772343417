// Package rules holds the fixed anomaly rules and combines their flags
// into the potentially_fake label.
//
// A variant selects an ordered subset of one rule table, so adding a rule
// means adding one entry to ruleTable. The label is the logical OR of every
// active flag: any single signal marks a posting for review. That favors
// recall over precision on purpose.
package rules

import (
	"fmt"
	"strings"

	"postcheck-engine/internal/domain"
	"postcheck-engine/internal/features"
)

type Variant string

const (
	Basic    Variant = "basic"
	Extended Variant = "extended"
)

func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case Basic:
		return Basic, nil
	case Extended:
		return Extended, nil
	}
	return "", fmt.Errorf("unknown variant %q (want basic or extended)", s)
}

// Default thresholds.
const (
	ShortDescriptionLength = 50  // description_length < 50
	LowWordCount           = 10  // word_count < 10
	MaxExclamations        = 3   // exclamation_count > 3
	MaxSpecialChars        = 5   // special_char_count > 5
	MaxUppercaseWords      = 5   // uppercase_word_count > 5
	MaxKeywordDensity      = 0.1 // keyword_density > 0.1
	MaxSimilarity          = 0.8 // title_description_similarity > 0.8
)

// Thresholds are injected into a RuleSet so tests and config can move them.
type Thresholds struct {
	ShortDescriptionLength int     `yaml:"short_description_length" json:"short_description_length"`
	LowWordCount           int     `yaml:"low_word_count" json:"low_word_count"`
	MaxExclamations        int     `yaml:"max_exclamations" json:"max_exclamations"`
	MaxSpecialChars        int     `yaml:"max_special_chars" json:"max_special_chars"`
	MaxUppercaseWords      int     `yaml:"max_uppercase_words" json:"max_uppercase_words"`
	MaxKeywordDensity      float64 `yaml:"max_keyword_density" json:"max_keyword_density"`
	MaxSimilarity          float64 `yaml:"max_similarity" json:"max_similarity"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		ShortDescriptionLength: ShortDescriptionLength,
		LowWordCount:           LowWordCount,
		MaxExclamations:        MaxExclamations,
		MaxSpecialChars:        MaxSpecialChars,
		MaxUppercaseWords:      MaxUppercaseWords,
		MaxKeywordDensity:      MaxKeywordDensity,
		MaxSimilarity:          MaxSimilarity,
	}
}

// Term lists. The extended variant matches the basic generic terms plus
// ExtendedGenericTerms.
var (
	BasicGenericTerms    = []string{"work from home", "earn", "immediate start", "no experience required"}
	ExtendedGenericTerms = []string{"urgent", "easy money"}
	ContactTerms         = []string{"email", "phone", "contact"}
	URLMarkers           = []string{"http", "www"}
)

// DefaultVocabulary returns fresh copies of the term lists for v.
func DefaultVocabulary(v Variant) features.Vocabulary {
	generic := append([]string{}, BasicGenericTerms...)
	if v == Extended {
		generic = append(generic, ExtendedGenericTerms...)
	}
	return features.Vocabulary{
		GenericTerms: generic,
		ContactTerms: append([]string{}, ContactTerms...),
		URLMarkers:   append([]string{}, URLMarkers...),
	}
}

// Flag names, in output column order.
const (
	FlagShortDescription   = "is_short_description"
	FlagLowWordCount       = "is_low_word_count"
	FlagExcessiveExclaims  = "has_excessive_exclamations"
	FlagExcessiveSpecial   = "has_excessive_special_chars"
	FlagUnusualFormat      = "has_unusual_format"
	FlagHighKeywordDensity = "has_high_keyword_density"
	FlagContactInfo        = "has_contact_info"
	FlagURL                = "has_url"
	FlagHighSimilarity     = "is_high_similarity"
	FlagGenericTerms       = "has_generic_terms"
)

// Rule thresholds one feature into one flag.
type Rule struct {
	Name    string
	Feature string
	Test    func(domain.FeatureSet) bool
}

type ruleDef struct {
	name     string
	feature  string
	extended bool // only active in the extended variant
	build    func(Thresholds) func(domain.FeatureSet) bool
}

var ruleTable = []ruleDef{
	{FlagShortDescription, domain.FeatDescriptionLength, false, func(t Thresholds) func(domain.FeatureSet) bool {
		return func(f domain.FeatureSet) bool { return f.DescriptionLength < t.ShortDescriptionLength }
	}},
	{FlagLowWordCount, domain.FeatWordCount, true, func(t Thresholds) func(domain.FeatureSet) bool {
		return func(f domain.FeatureSet) bool { return f.WordCount < t.LowWordCount }
	}},
	{FlagExcessiveExclaims, domain.FeatExclamations, false, func(t Thresholds) func(domain.FeatureSet) bool {
		return func(f domain.FeatureSet) bool { return f.ExclamationCount > t.MaxExclamations }
	}},
	{FlagExcessiveSpecial, domain.FeatSpecialChars, true, func(t Thresholds) func(domain.FeatureSet) bool {
		return func(f domain.FeatureSet) bool { return f.SpecialCharCount > t.MaxSpecialChars }
	}},
	{FlagUnusualFormat, domain.FeatUppercaseWords, false, func(t Thresholds) func(domain.FeatureSet) bool {
		return func(f domain.FeatureSet) bool { return f.UppercaseWordCount > t.MaxUppercaseWords }
	}},
	{FlagHighKeywordDensity, domain.FeatKeywordDensity, true, func(t Thresholds) func(domain.FeatureSet) bool {
		return func(f domain.FeatureSet) bool { return f.KeywordDensity > t.MaxKeywordDensity }
	}},
	{FlagContactInfo, domain.FeatContactInfo, true, func(Thresholds) func(domain.FeatureSet) bool {
		return func(f domain.FeatureSet) bool { return f.ContainsContactInfo }
	}},
	{FlagURL, domain.FeatURL, true, func(Thresholds) func(domain.FeatureSet) bool {
		return func(f domain.FeatureSet) bool { return f.ContainsURL }
	}},
	{FlagHighSimilarity, domain.FeatSimilarity, true, func(t Thresholds) func(domain.FeatureSet) bool {
		return func(f domain.FeatureSet) bool { return f.TitleDescriptionSimilarity > t.MaxSimilarity }
	}},
	{FlagGenericTerms, domain.FeatGenericTerms, false, func(Thresholds) func(domain.FeatureSet) bool {
		return func(f domain.FeatureSet) bool { return f.ContainsGenericTerms }
	}},
}

var (
	basicFeatures = []string{
		domain.FeatDescriptionLength,
		domain.FeatExclamations,
		domain.FeatQuestions,
		domain.FeatUppercaseWords,
		domain.FeatGenericTerms,
	}
	extendedFeatures = []string{
		domain.FeatDescriptionLength,
		domain.FeatWordCount,
		domain.FeatAvgWordLength,
		domain.FeatExclamations,
		domain.FeatQuestions,
		domain.FeatUppercaseWords,
		domain.FeatGenericTerms,
		domain.FeatKeywordDensity,
		domain.FeatContactInfo,
		domain.FeatURL,
		domain.FeatSpecialChars,
		domain.FeatSimilarity,
	}
	basicContinuous    = []string{domain.FeatDescriptionLength, domain.FeatExclamations, domain.FeatUppercaseWords}
	extendedContinuous = []string{
		domain.FeatDescriptionLength,
		domain.FeatWordCount,
		domain.FeatAvgWordLength,
		domain.FeatExclamations,
		domain.FeatSpecialChars,
		domain.FeatUppercaseWords,
	}
)

// RuleSet is the active rule configuration for one run.
type RuleSet struct {
	Variant    Variant
	Thresholds Thresholds
	Vocabulary features.Vocabulary
	Rules      []Rule
}

// New builds the rule set for v. Terms in vocab are used as given; callers
// normalize them (see textutil.NormalizeTerms).
func New(v Variant, th Thresholds, vocab features.Vocabulary) (RuleSet, error) {
	if v != Basic && v != Extended {
		return RuleSet{}, fmt.Errorf("unknown variant %q", v)
	}
	rs := RuleSet{Variant: v, Thresholds: th, Vocabulary: vocab}
	for _, d := range ruleTable {
		if d.extended && v != Extended {
			continue
		}
		rs.Rules = append(rs.Rules, Rule{Name: d.name, Feature: d.feature, Test: d.build(th)})
	}
	return rs, nil
}

// Default is the reference configuration for v.
func Default(v Variant) (RuleSet, error) {
	return New(v, DefaultThresholds(), DefaultVocabulary(v))
}

// Evaluate thresholds fs into flags and ORs them into the label.
func (rs RuleSet) Evaluate(fs domain.FeatureSet) (domain.Flags, domain.Label) {
	flags := make(domain.Flags, len(rs.Rules))
	for i, r := range rs.Rules {
		flags[i] = domain.Flag{Name: r.Name, Value: r.Test(fs)}
	}
	if flags.Any() {
		return flags, domain.LabelPotentiallyFake
	}
	return flags, domain.LabelReal
}

// FeatureColumns lists the feature columns written for this variant.
func (rs RuleSet) FeatureColumns() []string {
	if rs.Variant == Extended {
		return append([]string{}, extendedFeatures...)
	}
	return append([]string{}, basicFeatures...)
}

// ContinuousFeatures are the numeric features summarized per label.
func (rs RuleSet) ContinuousFeatures() []string {
	if rs.Variant == Extended {
		return append([]string{}, extendedContinuous...)
	}
	return append([]string{}, basicContinuous...)
}

func (rs RuleSet) FlagColumns() []string {
	out := make([]string, len(rs.Rules))
	for i, r := range rs.Rules {
		out[i] = r.Name
	}
	return out
}

// RequiredColumns are the input columns a table must carry for v.
func RequiredColumns(v Variant) []string {
	if v == Extended {
		return []string{domain.ColDescription, domain.ColTitle}
	}
	return []string{domain.ColDescription}
}
