// Package profile derives a coarse user profile from free-text conversation
// context. Extraction is best-effort keyword matching: it never fails, and
// anything it cannot recognize is left unknown.
package profile

import (
	"strings"

	"github.com/startupgps/server/internal/models"
)

// indianStates is the closed list of state/UT names checked against the
// context, in fixed order. First match wins, so more specific names must
// come before substrings they contain (none do today).
var indianStates = []string{
	"Andhra Pradesh",
	"Arunachal Pradesh",
	"Assam",
	"Bihar",
	"Chhattisgarh",
	"Goa",
	"Gujarat",
	"Haryana",
	"Himachal Pradesh",
	"Jharkhand",
	"Karnataka",
	"Kerala",
	"Madhya Pradesh",
	"Maharashtra",
	"Manipur",
	"Meghalaya",
	"Mizoram",
	"Nagaland",
	"Odisha",
	"Punjab",
	"Rajasthan",
	"Sikkim",
	"Tamil Nadu",
	"Telangana",
	"Tripura",
	"Uttar Pradesh",
	"Uttarakhand",
	"West Bengal",
	"Andaman and Nicobar Islands",
	"Chandigarh",
	"Dadra and Nagar Haveli and Daman and Diu",
	"Delhi",
	"Jammu and Kashmir",
	"Ladakh",
	"Lakshadweep",
	"Puducherry",
}

// Extract builds a UserProfile from the concatenated user turns. Matching is
// case-insensitive substring search with first-match-wins per field; absent
// signals map to unknown/empty.
func Extract(context string) models.UserProfile {
	lower := strings.ToLower(context)

	p := models.UserProfile{
		Education: models.EducationUnknown,
		Capital:   models.CapitalUnknown,
	}

	switch {
	case strings.Contains(lower, "below 10th") || strings.Contains(lower, "10th"):
		p.Education = models.EducationBelow10th
	case strings.Contains(lower, "12th") || strings.Contains(lower, "higher secondary"):
		p.Education = models.Education12thPass
	case strings.Contains(lower, "graduate") || strings.Contains(lower, "degree"):
		p.Education = models.EducationGraduate
	}

	switch {
	case strings.Contains(lower, "no capital") || strings.Contains(lower, "no money"):
		p.Capital = models.CapitalNone
	case strings.Contains(lower, "some capital") || strings.Contains(lower, "savings"):
		p.Capital = models.CapitalSome
	case strings.Contains(lower, "₹") || strings.Contains(lower, "lakhs") || strings.Contains(lower, "thousands"):
		p.Capital = models.CapitalAvailable
	}

	for _, state := range indianStates {
		if strings.Contains(lower, strings.ToLower(state)) {
			p.State = state
			break
		}
	}

	return p
}
