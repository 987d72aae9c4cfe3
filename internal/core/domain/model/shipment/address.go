package shipment

import (
	"regexp"
	"strings"
)

var colombianPostalCode = regexp.MustCompile(`^\d{6}$`)

// Address is the postal destination or origin of a shipment. It is a value
// object embedded in the shipment aggregate and copied at creation, never
// referenced. The struct is serialized as a JSON document at the store
// boundary, hence the exported fields and tags.
type Address struct {
	Street         string `json:"street"`
	City           string `json:"city"`
	State          string `json:"state"`
	PostalCode     string `json:"postalCode"`
	Country        string `json:"country"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
	RecipientName  string `json:"recipientName"`
	RecipientPhone string `json:"recipientPhone"`
}

// IsValid reports whether the address is structurally complete: all seven
// required fields non-empty, and for Colombia (case-insensitive) a postal
// code of exactly six digits. Violations yield false, not an error; callers
// translate this into a user-facing validation failure.
func (a Address) IsValid() bool {
	if a.Street == "" ||
		a.City == "" ||
		a.State == "" ||
		a.PostalCode == "" ||
		a.Country == "" ||
		a.RecipientName == "" ||
		a.RecipientPhone == "" {
		return false
	}

	if strings.EqualFold(a.Country, "colombia") && !colombianPostalCode.MatchString(a.PostalCode) {
		return false
	}

	return true
}
