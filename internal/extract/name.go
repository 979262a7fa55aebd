package extract

import (
	"regexp"
	"strings"

	"github.com/sells-group/prospect-cli/internal/page"
)

var homeBoilerplateRe = regexp.MustCompile(`(Home\s*\|\s*)|(\s*\|\s*Home)`)

// ExtractClinicName returns the page title (or first heading) with "Home |"
// boilerplate and trailing vendor names stripped.
func ExtractClinicName(doc *page.Document, vendors []string) string {
	name := doc.Title()
	if name == "" {
		return ""
	}

	name = homeBoilerplateRe.ReplaceAllString(name, "")
	for _, vendor := range vendors {
		re := regexp.MustCompile(`(?i)\s*\|\s*` + regexp.QuoteMeta(vendor))
		name = re.ReplaceAllString(name, "")
	}
	return strings.TrimSpace(name)
}
