package extract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/prospect-cli/internal/page"
)

// cityStatePatterns are tried in priority order: a trailing 5-digit ZIP
// disambiguates a real address from unrelated comma-separated prose, so the
// ZIP-qualified form wins over the bare "City, ST" form.
// The city group is a run of capitalized words rather than a free [a-zA-Z\s.]
// span; the loose form happily swallows "CA or write to Somewhere" when two
// addresses share a sentence.
var cityStatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`([A-Z][a-zA-Z]+(?:[.\s]+[A-Z][a-zA-Z]+)*),\s*([A-Z]{2})\s*\d{5}`),
	regexp.MustCompile(`([A-Z][a-zA-Z]+(?:[.\s]+[A-Z][a-zA-Z]+)*),\s*([A-Z]{2})\b`),
}

var titleCaser = cases.Title(language.AmericanEnglish)

// ExtractLocation finds a "City, ST" pair, preferring address/location
// regions before the full page text. Returns "" when nothing matches.
func ExtractLocation(doc *page.Document) string {
	for _, text := range doc.Regions(page.CapAddress) {
		if cs := findCityState(text); cs != "" {
			return cs
		}
	}
	return findCityState(doc.Text())
}

func findCityState(text string) string {
	for _, re := range cityStatePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		return formatCityState(m[1], m[2])
	}
	return ""
}

func formatCityState(city, state string) string {
	city = strings.TrimSpace(city)
	// Shouting addresses ("SAN DIEGO, CA") get folded to title case; anything
	// mixed-case is left alone to avoid mangling names like McAllen.
	if isAllUpper(city) {
		city = titleCaser.String(strings.ToLower(city))
	}
	return city + ", " + state
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
