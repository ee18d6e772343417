// Package features turns a job-posting Record into its FeatureSet.
//
// Every function here is total: empty or missing text yields zero values,
// never an error, and no state is shared between calls.
package features

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"postcheck-engine/internal/domain"
	"postcheck-engine/internal/textutil"
)

// Vocabulary is the term lists the extractor matches against the
// lower-cased description. Terms must already be lower-case.
type Vocabulary struct {
	GenericTerms []string
	ContactTerms []string
	URLMarkers   []string
}

// Extractor computes FeatureSets. The zero value computes the basic
// features with an empty vocabulary.
type Extractor struct {
	Vocab Vocabulary
	// Extended adds word statistics, keyword density, contact/url/special
	// character signals and the title/description similarity ratio.
	Extended bool
	// StripHTML flattens markup in title and description before counting.
	StripHTML bool
}

func (e Extractor) Extract(rec domain.Record) domain.FeatureSet {
	desc := rec.Description
	title := rec.Title
	if e.StripHTML {
		desc = textutil.HTMLToText(desc)
		title = textutil.HTMLToText(title)
	}

	lower := textutil.Lower(desc)
	tokens := strings.Fields(desc)

	fs := domain.FeatureSet{
		DescriptionLength:    utf8.RuneCountInString(desc),
		ExclamationCount:     strings.Count(desc, "!"),
		QuestionCount:        strings.Count(desc, "?"),
		UppercaseWordCount:   countUppercaseWords(tokens),
		ContainsGenericTerms: textutil.ContainsAny(lower, e.Vocab.GenericTerms),
	}
	if !e.Extended {
		return fs
	}

	fs.WordCount = len(tokens)
	fs.AvgWordLength = avgWordLength(tokens)
	fs.KeywordDensity = float64(textutil.CountContained(lower, e.Vocab.GenericTerms)) / float64(max(len(tokens), 1))
	fs.ContainsContactInfo = textutil.ContainsAny(lower, e.Vocab.ContactTerms)
	fs.ContainsURL = textutil.ContainsAny(lower, e.Vocab.URLMarkers)
	fs.SpecialCharCount = countSpecialChars(desc)
	fs.TitleDescriptionSimilarity = Similarity(title, desc)
	return fs
}

// IsUppercaseWord reports whether every rune of tok is an upper-case letter.
// "ABC" counts; "ABC1", "A-B", "Abc" and "" do not.
func IsUppercaseWord(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsLetter(r) || !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func countUppercaseWords(tokens []string) int {
	n := 0
	for _, t := range tokens {
		if IsUppercaseWord(t) {
			n++
		}
	}
	return n
}

func avgWordLength(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	total := 0
	for _, t := range tokens {
		total += utf8.RuneCountInString(t)
	}
	return float64(total) / float64(len(tokens))
}

// special characters counted by SpecialCharCount
const specialChars = "$%&*"

func countSpecialChars(s string) int {
	n := 0
	for _, r := range s {
		if strings.ContainsRune(specialChars, r) {
			n++
		}
	}
	return n
}
