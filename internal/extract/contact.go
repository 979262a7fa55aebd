package extract

import (
	"regexp"
	"strings"

	"github.com/sells-group/prospect-cli/internal/page"
)

var (
	// Area code is optional so that local 7-digit listings still surface;
	// those are passed through without reformatting.
	phoneRe  = regexp.MustCompile(`(?:\+?1[-.\s]?)?(?:\(?\d{3}\)?[-.\s]?)?\d{3}[-.\s]?\d{4}`)
	emailRe  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	digitsRe = regexp.MustCompile(`\D`)
)

const contactSeparator = " | "

// ExtractContact resolves at most one phone number and one email address,
// each through its own fallback chain: contact-classified regions first, then
// explicit tel:/mailto: link targets, then the whole document as a last
// resort. A tier is only consulted when the previous one produced nothing for
// that field. Returns "" when neither is found.
func ExtractContact(doc *page.Document) string {
	var phone, email string

	for _, text := range doc.Regions(page.CapContact) {
		if phone == "" {
			phone = phoneRe.FindString(text)
		}
		if email == "" {
			email = emailRe.FindString(text)
		}
		if phone != "" && email != "" {
			break
		}
	}

	if phone == "" {
		for _, target := range doc.LinkTargets("tel:") {
			if phoneRe.MatchString(target) {
				phone = target
				break
			}
		}
	}
	if email == "" {
		for _, target := range doc.LinkTargets("mailto:") {
			if emailRe.MatchString(target) {
				email = target
				break
			}
		}
	}

	if phone == "" {
		phone = phoneRe.FindString(doc.Text())
	}
	if email == "" {
		email = emailRe.FindString(doc.Text())
	}

	var parts []string
	if phone != "" {
		parts = append(parts, formatPhone(phone))
	}
	if email != "" {
		parts = append(parts, email)
	}
	return strings.Join(parts, contactSeparator)
}

// formatPhone reformats numbers with exactly 10 digits as "(AAA) BBB-CCCC".
// Any other digit count is returned as found.
func formatPhone(raw string) string {
	digits := digitsRe.ReplaceAllString(raw, "")
	if len(digits) != 10 {
		return raw
	}
	return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
}
