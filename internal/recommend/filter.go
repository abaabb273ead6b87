package recommend

import (
	"fmt"
	"strings"

	"github.com/startupgps/server/internal/models"
)

// stateSchemes is a closed lookup table of state-specific scheme records
// appended when the user's state is known. States without an entry simply
// contribute nothing.
var stateSchemes = map[string][]models.Scheme{
	"Punjab": {
		{
			Name:        "Punjab Small Industries Assistance",
			Description: "Margin money and interest subsidy for micro units registered in Punjab",
			WhyChosen:   "State-level support available because you are based in Punjab",
		},
	},
	"Maharashtra": {
		{
			Name:        "Maharashtra CMEGP",
			Description: "Chief Minister's Employment Generation Programme with subsidy for new units",
			WhyChosen:   "State-level support available because you are based in Maharashtra",
		},
	},
	"Bihar": {
		{
			Name:        "Bihar Mukhyamantri Udyami Yojana",
			Description: "Up to ₹10 lakh with 50% subsidy for new entrepreneurs from Bihar",
			WhyChosen:   "State-level support available because you are based in Bihar",
		},
	},
}

// whyRule attaches a fixed explanation sentence when an entry's name
// contains the keyword. Rules are tested in order and every match
// contributes a sentence.
type whyRule struct {
	keyword  string
	sentence string
}

var schemeWhyRules = []whyRule{
	{"mudra", "Mudra loans need no collateral, which suits small first-time borrowers"},
	{"pmegp", "PMEGP gives a capital subsidy that lowers your upfront cost"},
	{"stand-up", "Stand-Up India is designed for SC/ST and women entrepreneurs"},
	{"kisan", "Kisan-linked support fits an agriculture-based business"},
}

var bankWhyRules = []whyRule{
	{"mudra", "Mudra lending is processed at every branch without collateral"},
	{"state bank", "The widest rural branch network makes follow-up visits easy"},
	{"grameen", "Regional rural banks focus on small village enterprises"},
}

var trainingWhyRules = []whyRule{
	{"rseti", "RSETI courses are free for rural youth and linked to bank credit"},
	{"pmkvy", "PMKVY certification is recognized by lenders and employers"},
}

// ApplyProfile post-processes a structured recommendation using the derived
// profile, in a fixed order: capital-based filtering, education-based
// filtering, state scheme injection, then explanation synthesis. The input
// record is not mutated; a new record is returned. Collections emptied by
// filtering stay empty in this variant.
func ApplyProfile(rec models.Recommendation, prof models.UserProfile, sector string) models.Recommendation {
	out := rec

	schemes := make([]models.Scheme, 0, len(rec.Schemes))
	for _, s := range rec.Schemes {
		name := strings.ToLower(s.Name)
		if prof.Capital == models.CapitalAvailable &&
			(strings.Contains(name, "loan") || strings.Contains(name, "credit")) {
			continue
		}
		if prof.Education == models.EducationBelow10th && strings.Contains(name, "pmegp") {
			continue
		}
		schemes = append(schemes, s)
	}
	if prof.State != "" {
		schemes = append(schemes, stateSchemes[prof.State]...)
	}
	out.Schemes = schemes

	banks := make([]models.Bank, len(rec.Banks))
	copy(banks, rec.Banks)
	out.Banks = banks

	training := make([]models.Training, len(rec.Training))
	copy(training, rec.Training)
	out.Training = training

	licenses := make([]models.License, len(rec.Licenses))
	copy(licenses, rec.Licenses)
	out.Licenses = licenses

	steps := make([]string, len(rec.NextSteps))
	copy(steps, rec.NextSteps)
	out.NextSteps = steps

	for i := range out.Schemes {
		out.Schemes[i].WhyChosen = synthesizeWhy(out.Schemes[i].Name, schemeWhyRules, genericSchemeWhy(sector))
	}
	for i := range out.Banks {
		out.Banks[i].WhyChosen = synthesizeWhy(out.Banks[i].Name, bankWhyRules, genericBankWhy(sector))
	}
	for i := range out.Training {
		out.Training[i].WhyChosen = synthesizeWhy(out.Training[i].Program, trainingWhyRules, genericTrainingWhy(sector))
	}
	for i := range out.Licenses {
		if out.Licenses[i].WhyChosen == "" {
			out.Licenses[i].WhyChosen = genericLicenseWhy(sector)
		}
	}

	return out
}

// EnsureWhyChosen fills any empty WhyChosen with the generic per-category
// sentence. Used on the text-parsed path, where explanations normally come
// from the model but must never end up empty.
func EnsureWhyChosen(rec models.Recommendation, sector string) models.Recommendation {
	for i := range rec.Schemes {
		if rec.Schemes[i].WhyChosen == "" {
			rec.Schemes[i].WhyChosen = genericSchemeWhy(sector)
		}
	}
	for i := range rec.Banks {
		if rec.Banks[i].WhyChosen == "" {
			rec.Banks[i].WhyChosen = genericBankWhy(sector)
		}
	}
	for i := range rec.Licenses {
		if rec.Licenses[i].WhyChosen == "" {
			rec.Licenses[i].WhyChosen = genericLicenseWhy(sector)
		}
	}
	for i := range rec.Training {
		if rec.Training[i].WhyChosen == "" {
			rec.Training[i].WhyChosen = genericTrainingWhy(sector)
		}
	}
	return rec
}

// synthesizeWhy concatenates the sentences of every matched rule with ". ",
// falling back to the generic sentence when nothing matched.
func synthesizeWhy(name string, rules []whyRule, generic string) string {
	lower := strings.ToLower(name)
	var matched []string
	for _, rule := range rules {
		if strings.Contains(lower, rule.keyword) {
			matched = append(matched, rule.sentence)
		}
	}
	if len(matched) == 0 {
		return generic
	}
	return strings.Join(matched, ". ")
}

func genericSchemeWhy(sector string) string {
	return fmt.Sprintf("Matches the support commonly available for a %s business", sector)
}

func genericBankWhy(sector string) string {
	return fmt.Sprintf("Offers loan products suited to a small %s enterprise", sector)
}

func genericTrainingWhy(sector string) string {
	return fmt.Sprintf("Builds the core skills needed to run a %s business", sector)
}

func genericLicenseWhy(sector string) string {
	return fmt.Sprintf("Commonly required to operate a %s business legally", sector)
}
