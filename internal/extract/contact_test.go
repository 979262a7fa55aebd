package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractContact_FormatsTenDigitPhone(t *testing.T) {
	doc := parse(t, `<html><body>
		<div class="contact-block">Call 619.555.1234 today</div>
	</body></html>`)

	assert.Equal(t, "(619) 555-1234", ExtractContact(doc))
}

func TestExtractContact_SevenDigitPassthrough(t *testing.T) {
	doc := parse(t, `<html><body>
		<p class="phone">Local callers dial 555-1234</p>
	</body></html>`)

	assert.Equal(t, "555-1234", ExtractContact(doc))
}

func TestExtractContact_JoinsPhoneAndEmail(t *testing.T) {
	doc := parse(t, `<html><body>
		<div class="contact">Reach us at (619) 555-1234 or info@brightsmile.com</div>
	</body></html>`)

	assert.Equal(t, "(619) 555-1234 | info@brightsmile.com", ExtractContact(doc))
}

func TestExtractContact_FallsBackToLinkTargets(t *testing.T) {
	doc := parse(t, `<html><body>
		<p>Our friendly front desk is standing by.</p>
		<a href="tel:619-555-1234">Give us a call</a>
		<a href="mailto:front@brightsmile.com">Email us</a>
	</body></html>`)

	assert.Equal(t, "(619) 555-1234 | front@brightsmile.com", ExtractContact(doc))
}

func TestExtractContact_FallsBackToFullText(t *testing.T) {
	doc := parse(t, `<html><body>
		<p>Appointments: 480-555-9876. Walk-ins welcome.</p>
	</body></html>`)

	assert.Equal(t, "(480) 555-9876", ExtractContact(doc))
}

func TestExtractContact_FieldsFallBackIndependently(t *testing.T) {
	// Phone resolves in a contact region; email only appears in plain
	// body text and must still be picked up by the last tier.
	doc := parse(t, `<html><body>
		<span class="phone">Front desk: 206-555-0000</span>
		<p>Records requests go to records@brightsmile.com.</p>
	</body></html>`)

	assert.Equal(t, "(206) 555-0000 | records@brightsmile.com", ExtractContact(doc))
}

func TestExtractContact_NothingFound(t *testing.T) {
	doc := parse(t, `<html><body><p>We moved. Check back soon.</p></body></html>`)

	assert.Equal(t, "", ExtractContact(doc))
}
