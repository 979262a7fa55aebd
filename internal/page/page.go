// Package page wraps a fetched HTML document and exposes the structural-region
// queries the extraction heuristics are built on. A region is classified by
// explicit tag and class-attribute inspection rather than by free-form
// selector matching, so every extractor shares one definition of what counts
// as an "about" or "contact" section.
package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// Capability classifies a structural region by the semantics its tag and
// class attributes suggest.
type Capability string

const (
	// CapAbout marks sections likely to describe practitioners or staff.
	CapAbout Capability = "about"
	// CapAddress marks sections likely to carry a street address.
	CapAddress Capability = "address"
	// CapContact marks sections likely to carry phone numbers or emails.
	CapContact Capability = "contact"
)

// regionHint describes which elements carry a capability: the candidate tags
// to scan and the class-attribute substrings that signal the capability.
type regionHint struct {
	selector string
	classes  []string
}

var capabilityHints = map[Capability]regionHint{
	CapAbout: {
		selector: "div,section,article",
		classes:  []string{"doctor", "provider", "team", "about", "staff", "physician"},
	},
	CapAddress: {
		selector: "address,div,p,footer,span",
		classes:  []string{"address", "location", "contact", "footer"},
	},
	CapContact: {
		selector: "div,p,span,a,section",
		classes:  []string{"contact", "phone", "email", "tel"},
	},
}

// Document is a fetched page parsed once and queried many times. It retains
// the raw markup because signature matching scans both representations.
type Document struct {
	URL string

	raw string
	doc *goquery.Document
}

// Parse builds a Document from raw HTML.
func Parse(url, html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, eris.Wrap(err, "page: parse html")
	}
	return &Document{URL: url, raw: html, doc: doc}, nil
}

// Raw returns the unparsed markup.
func (d *Document) Raw() string { return d.raw }

// Text returns the document's visible text.
func (d *Document) Text() string { return d.doc.Text() }

// Title returns the trimmed <title> text, falling back to the first <h1>.
func (d *Document) Title() string {
	if t := strings.TrimSpace(d.doc.Find("title").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(d.doc.Find("h1").First().Text())
}

// FooterText returns the text of the <footer> region, or "" when the page has
// none. Vendor attribution conventionally lives there.
func (d *Document) FooterText() string {
	return d.doc.Find("footer").Text()
}

// Regions returns the text of every element carrying the given capability, in
// document order. An element qualifies when its tag is one of the
// capability's candidate tags and its class attribute contains one of the
// capability's hint substrings.
func (d *Document) Regions(c Capability) []string {
	hint, ok := capabilityHints[c]
	if !ok {
		return nil
	}

	var texts []string
	d.doc.Find(hint.selector).Each(func(_ int, s *goquery.Selection) {
		if !classMatches(s, hint.classes) {
			return
		}
		if t := strings.TrimSpace(s.Text()); t != "" {
			texts = append(texts, t)
		}
	})
	return texts
}

// LinkTargets returns the hrefs of anchors whose target starts with the given
// scheme prefix (e.g. "tel:", "mailto:"), with the prefix stripped.
func (d *Document) LinkTargets(prefix string) []string {
	var targets []string
	d.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !strings.HasPrefix(href, prefix) {
			return
		}
		if t := strings.TrimSpace(strings.TrimPrefix(href, prefix)); t != "" {
			targets = append(targets, t)
		}
	})
	return targets
}

func classMatches(s *goquery.Selection, hints []string) bool {
	attr, ok := s.Attr("class")
	if !ok || attr == "" {
		return false
	}
	attr = strings.ToLower(attr)
	for _, hint := range hints {
		if strings.Contains(attr, hint) {
			return true
		}
	}
	return false
}
