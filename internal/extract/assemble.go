package extract

import (
	"github.com/sells-group/prospect-cli/internal/detect"
	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/page"
)

// Assemble builds the output record for a matched site from the four field
// extractors. It never fails: an extraction miss leaves its field empty
// rather than aborting record creation.
func Assemble(doc *page.Document, siteURL string, match model.MatchResult, set detect.CompetitorSet) model.ClinicRecord {
	rec := model.ClinicRecord{
		WebsiteURL:      siteURL,
		WebsiteProvider: match.Vendor,
	}

	rec.ClinicName = ExtractClinicName(doc, set.Vendors())

	provider := ExtractProvider(doc)
	rec.ProviderName = provider.Name
	rec.Credentials = provider.Credentials

	rec.CityState = ExtractLocation(doc)
	rec.ContactInfo = ExtractContact(doc)

	return rec
}
