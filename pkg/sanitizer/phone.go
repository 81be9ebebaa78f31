package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Regions tried when a contact number arrives without a country prefix.
// The agency's markets are India and the Gulf.
var phoneRegions = []string{"IN", "AE"}

// NormalizePhone formats a contact number to E.164. Numbers that cannot be
// parsed for any supported region are returned trimmed but otherwise
// untouched; contact numbers are display data, not credentials.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	for _, region := range phoneRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err != nil {
			continue
		}
		if phonenumbers.IsValidNumber(parsed) {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
	}
	return phone
}
