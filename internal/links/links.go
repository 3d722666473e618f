// Package links rewrites relative references in rendered HTML to absolute
// URLs rooted at the site base URL.
package links

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/malkoG/Serum/internal/project"
)

// Attributes holding URLs, per element.
var refAttrs = map[string]string{
	"a":      "href",
	"img":    "src",
	"link":   "href",
	"script": "src",
}

// Rewrite joins every relative reference in htmlText onto baseURL.
// Scheme-qualified targets, protocol-relative targets, bare fragments, and
// targets already rooted at baseURL are left untouched, so the operation is
// idempotent. Non-reference content is never removed or reordered, but the
// result is parser-normalized: it round-trips through an HTML5 DOM, so
// lexical details such as entity escaping may differ from the input.
func Rewrite(htmlText, baseURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return "", fmt.Errorf("links: parse html: %w", err)
	}

	for elem, attr := range refAttrs {
		doc.Find(fmt.Sprintf("%s[%s]", elem, attr)).Each(func(_ int, s *goquery.Selection) {
			target, _ := s.Attr(attr)
			if rewritten, ok := rewriteTarget(target, baseURL); ok {
				s.SetAttr(attr, rewritten)
			}
		})
	}

	// The html parser wraps everything in <html><head><body>; keep that
	// wrapper only when the input carried one itself.
	if strings.Contains(strings.ToLower(htmlText), "<html") {
		out, err := doc.Selection.Html()
		if err != nil {
			return "", fmt.Errorf("links: serialize html: %w", err)
		}
		return out, nil
	}

	// Fragment input. The parser hoists head-eligible elements (link,
	// meta, style) out of a leading run into <head>, so both halves must
	// be serialized or those elements would be dropped.
	head, err := doc.Find("head").Html()
	if err != nil {
		return "", fmt.Errorf("links: serialize html: %w", err)
	}
	body, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("links: serialize html: %w", err)
	}
	return head + body, nil
}

// rewriteTarget reports whether target needs rewriting and, if so, the
// absolute form.
func rewriteTarget(target, baseURL string) (string, bool) {
	if target == "" || strings.HasPrefix(target, "#") || strings.HasPrefix(target, "//") {
		return "", false
	}
	if strings.HasPrefix(target, baseURL) {
		return "", false
	}
	u, err := url.Parse(target)
	if err != nil || u.IsAbs() {
		return "", false
	}
	return project.JoinURL(baseURL, target), true
}
