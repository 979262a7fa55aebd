// Package extract implements the heuristic field extractors that pull
// loosely-structured business metadata out of matched clinic pages. Absence
// of a match is a normal outcome for every extractor here: fields come back
// empty, never as errors.
package extract

import (
	"regexp"

	"github.com/sells-group/prospect-cli/internal/page"
)

// Provider holds a detected practitioner name and credential token.
type Provider struct {
	Name        string
	Credentials string
}

// namePatterns are tried in order; the first structural match wins. The
// capture group is always the bare "First Last" name.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`Dr\.\s+([A-Z][a-z]+\s+[A-Z][a-z]+)`),
	regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z][a-z]+),\s+(?:MD|DO|DDS|DMD|DC|DPM|DVM|VMD|PhD)`),
	regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z][a-z]+)\s+(?:MD|DO|DDS|DMD|DC|DPM|DVM|VMD|PhD)`),
}

var credentialRe = regexp.MustCompile(`\b(?:MD|DO|DDS|DMD|DC|DPM|DVM|VMD|PhD|FACP|FACOG|FACS|FAAP)\b`)

// credentialWindow is how far past the matched name the credential search
// extends. Credentials conventionally trail the name within a few tokens but
// are not part of the name grammar itself.
const credentialWindow = 50

// ExtractProvider looks for a practitioner name and credentials, scanning
// about/team/staff regions first because they have higher precision, then
// retrying once against the whole document. Both fields are empty when no
// pattern matches; many sites simply never name an individual.
func ExtractProvider(doc *page.Document) Provider {
	for _, text := range doc.Regions(page.CapAbout) {
		if p, ok := findProvider(text); ok {
			return p
		}
	}
	if p, ok := findProvider(doc.Text()); ok {
		return p
	}
	return Provider{}
}

func findProvider(text string) (Provider, bool) {
	for _, re := range namePatterns {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}

		p := Provider{Name: text[loc[2]:loc[3]]}

		// Window starts at the end of the name, not the end of the whole
		// match: the comma-credential pattern consumes the credential token
		// and would otherwise hide it from the search.
		end := loc[3]
		stop := end + credentialWindow
		if stop > len(text) {
			stop = len(text)
		}
		p.Credentials = credentialRe.FindString(text[end:stop])

		return p, true
	}
	return Provider{}, false
}
