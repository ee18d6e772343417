package domain

import (
	"strconv"
	"strings"
)

// Feature column names, as written to the output table.
const (
	FeatDescriptionLength = "description_length"
	FeatWordCount         = "word_count"
	FeatAvgWordLength     = "avg_word_length"
	FeatExclamations      = "exclamation_count"
	FeatQuestions         = "question_count"
	FeatUppercaseWords    = "uppercase_word_count"
	FeatGenericTerms      = "contains_generic_terms"
	FeatKeywordDensity    = "keyword_density"
	FeatContactInfo       = "contains_contact_info"
	FeatURL               = "contains_url"
	FeatSpecialChars      = "special_char_count"
	FeatSimilarity        = "title_description_similarity"
)

// FeatureSet holds the signals derived from one Record. Extended-only
// fields stay zero when the basic variant is in use.
type FeatureSet struct {
	DescriptionLength    int
	ExclamationCount     int
	QuestionCount        int
	UppercaseWordCount   int
	ContainsGenericTerms bool

	WordCount                  int
	AvgWordLength              float64
	KeywordDensity             float64
	ContainsContactInfo        bool
	ContainsURL                bool
	SpecialCharCount           int
	TitleDescriptionSimilarity float64
}

// Float returns the numeric value of a feature column. Booleans map to 0/1.
func (f FeatureSet) Float(name string) (float64, bool) {
	switch name {
	case FeatDescriptionLength:
		return float64(f.DescriptionLength), true
	case FeatWordCount:
		return float64(f.WordCount), true
	case FeatAvgWordLength:
		return f.AvgWordLength, true
	case FeatExclamations:
		return float64(f.ExclamationCount), true
	case FeatQuestions:
		return float64(f.QuestionCount), true
	case FeatUppercaseWords:
		return float64(f.UppercaseWordCount), true
	case FeatGenericTerms:
		return b2f(f.ContainsGenericTerms), true
	case FeatKeywordDensity:
		return f.KeywordDensity, true
	case FeatContactInfo:
		return b2f(f.ContainsContactInfo), true
	case FeatURL:
		return b2f(f.ContainsURL), true
	case FeatSpecialChars:
		return float64(f.SpecialCharCount), true
	case FeatSimilarity:
		return f.TitleDescriptionSimilarity, true
	}
	return 0, false
}

// Value returns any feature column as a plain Go value (int, float64 or bool).
func (f FeatureSet) Value(name string) (any, bool) {
	switch name {
	case FeatDescriptionLength:
		return f.DescriptionLength, true
	case FeatWordCount:
		return f.WordCount, true
	case FeatAvgWordLength:
		return f.AvgWordLength, true
	case FeatExclamations:
		return f.ExclamationCount, true
	case FeatQuestions:
		return f.QuestionCount, true
	case FeatUppercaseWords:
		return f.UppercaseWordCount, true
	case FeatGenericTerms:
		return f.ContainsGenericTerms, true
	case FeatKeywordDensity:
		return f.KeywordDensity, true
	case FeatContactInfo:
		return f.ContainsContactInfo, true
	case FeatURL:
		return f.ContainsURL, true
	case FeatSpecialChars:
		return f.SpecialCharCount, true
	case FeatSimilarity:
		return f.TitleDescriptionSimilarity, true
	}
	return nil, false
}

// FormatValue renders a feature value the way the output CSV spells it.
func FormatValue(v any) string {
	switch x := v.(type) {
	case bool:
		return FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case float64:
		return FormatFloat(x)
	case Label:
		return strconv.Itoa(int(x))
	case string:
		return x
	}
	return ""
}

// FormatFloat writes the shortest decimal form of f and keeps a ".0" on
// whole numbers, so float columns never read back as integers.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// FormatBool spells booleans as True/False.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
