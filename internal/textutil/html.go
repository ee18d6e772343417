package textutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LooksLikeHTML is a cheap check for markup in a description cell.
func LooksLikeHTML(s string) bool {
	i := strings.IndexByte(s, '<')
	if i < 0 {
		return false
	}
	return strings.IndexByte(s[i:], '>') > 0
}

// HTMLToText flattens an HTML fragment to plain text. Block boundaries and
// <br> become spaces so words on either side stay separate tokens. Input
// that does not look like markup is returned unchanged.
func HTMLToText(s string) string {
	if !LooksLikeHTML(s) {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("script,style").Remove()
	doc.Find("br").ReplaceWithHtml(" ")
	doc.Find("p,div,li,ul,ol,tr,td,th,h1,h2,h3,h4,h5,h6").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})
	return CleanText(doc.Text())
}
