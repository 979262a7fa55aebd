// Package detect locates competitor platform signatures in fetched pages.
package detect

import (
	"strings"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/page"
)

// CompetitorSet is an ordered set of lower-cased vendor names, fixed at
// startup. Order matters: the first vendor found in a document wins.
type CompetitorSet struct {
	vendors []string
}

// NewCompetitorSet lower-cases the given names, preserving order and dropping
// empties and duplicates.
func NewCompetitorSet(names []string) CompetitorSet {
	seen := make(map[string]bool, len(names))
	vendors := make([]string, 0, len(names))
	for _, name := range names {
		v := strings.ToLower(strings.TrimSpace(name))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		vendors = append(vendors, v)
	}
	return CompetitorSet{vendors: vendors}
}

// Vendors returns the vendor names in configured order.
func (c CompetitorSet) Vendors() []string {
	out := make([]string, len(c.vendors))
	copy(out, c.vendors)
	return out
}

// Len returns the number of vendors in the set.
func (c CompetitorSet) Len() int { return len(c.vendors) }

// Match scans the document's visible text and raw markup for each vendor in
// configured order, returning the first hit. When the general scan finds
// nothing it rescans the footer region alone, where attribution text may be
// diluted by navigation noise in the full-page scan. First match wins; this
// is not a best-match search.
func Match(doc *page.Document, set CompetitorSet) model.MatchResult {
	text := strings.ToLower(doc.Text())
	markup := strings.ToLower(doc.Raw())

	for _, vendor := range set.vendors {
		if strings.Contains(text, vendor) || strings.Contains(markup, vendor) {
			return model.MatchResult{Found: true, Vendor: vendor}
		}
	}

	if footer := strings.ToLower(doc.FooterText()); footer != "" {
		for _, vendor := range set.vendors {
			if strings.Contains(footer, vendor) {
				return model.MatchResult{Found: true, Vendor: vendor}
			}
		}
	}

	return model.MatchResult{}
}
