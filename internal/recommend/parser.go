package recommend

import (
	"regexp"
	"strings"

	"github.com/startupgps/server/internal/models"
)

// Section header literals the model is instructed to emit.
const (
	headerSchemes   = "SCHEMES:"
	headerBanks     = "BANKS:"
	headerLicenses  = "LICENSES:"
	headerTraining  = "TRAINING:"
	headerBudget    = "BUDGET:"
	headerNextSteps = "NEXT STEPS:"
)

// Inline delimiters of the item grammar.
const (
	whyChosenSep     = " - Why chosen: "
	bankWhyChosenSep = ": Why chosen: "
	bankNameSep      = " - "
)

var itemOrdinal = regexp.MustCompile(`^\d+\.\s*`)

// ParseRecommendationText splits the model's free-text reply into the six
// recommendation sections. It never fails: lines that do not follow the
// expected grammar are silently dropped, and unrecognized text yields a
// record with empty sub-collections for the fallback provider to fill.
//
// The parse is a single line-oriented pass with a current-section pointer.
// A repeated section header simply re-enters that section; repeated entries
// are not deduplicated.
func ParseRecommendationText(raw string) models.Recommendation {
	var rec models.Recommendation
	section := ""

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, headerSchemes):
			section = headerSchemes
			continue
		case strings.HasPrefix(line, headerBanks):
			section = headerBanks
			continue
		case strings.HasPrefix(line, headerLicenses):
			section = headerLicenses
			continue
		case strings.HasPrefix(line, headerTraining):
			section = headerTraining
			continue
		case strings.HasPrefix(line, headerBudget):
			section = headerBudget
			continue
		case strings.HasPrefix(line, headerNextSteps):
			section = headerNextSteps
			continue
		}

		if section == headerBudget {
			parseBudgetLine(line, &rec.Budget)
			continue
		}

		ordinal := itemOrdinal.FindString(line)
		if ordinal == "" {
			continue
		}
		content := strings.TrimSpace(line[len(ordinal):])

		switch section {
		case headerSchemes:
			if s, ok := parseSchemeItem(content); ok {
				rec.Schemes = append(rec.Schemes, s)
			}
		case headerBanks:
			if b, ok := parseBankItem(content); ok {
				rec.Banks = append(rec.Banks, b)
			}
		case headerLicenses:
			if l, ok := parseLicenseItem(content); ok {
				rec.Licenses = append(rec.Licenses, l)
			}
		case headerTraining:
			if t, ok := parseTrainingItem(content); ok {
				rec.Training = append(rec.Training, t)
			}
		case headerNextSteps:
			rec.NextSteps = append(rec.NextSteps, content)
		}
	}

	return rec
}

// parseSchemeItem parses "Name: Description - Why chosen: Explanation".
func parseSchemeItem(content string) (models.Scheme, bool) {
	left, why, ok := strings.Cut(content, whyChosenSep)
	if !ok {
		return models.Scheme{}, false
	}
	name, desc, ok := strings.Cut(left, ": ")
	if !ok {
		return models.Scheme{}, false
	}
	return models.Scheme{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(desc),
		WhyChosen:   strings.TrimSpace(why),
	}, true
}

// parseBankItem parses "Name - LoanType: Why chosen: Explanation".
func parseBankItem(content string) (models.Bank, bool) {
	left, why, ok := strings.Cut(content, bankWhyChosenSep)
	if !ok {
		return models.Bank{}, false
	}
	name, loanType, ok := strings.Cut(left, bankNameSep)
	if !ok {
		return models.Bank{}, false
	}
	return models.Bank{
		Name:      strings.TrimSpace(name),
		LoanType:  strings.TrimSpace(loanType),
		WhyChosen: strings.TrimSpace(why),
	}, true
}

// parseLicenseItem parses "Name: Description - Why chosen: Explanation".
func parseLicenseItem(content string) (models.License, bool) {
	left, why, ok := strings.Cut(content, whyChosenSep)
	if !ok {
		return models.License{}, false
	}
	name, desc, ok := strings.Cut(left, ": ")
	if !ok {
		return models.License{}, false
	}
	return models.License{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(desc),
		WhyChosen:   strings.TrimSpace(why),
	}, true
}

// parseTrainingItem parses "Program - Why chosen: Explanation".
func parseTrainingItem(content string) (models.Training, bool) {
	program, why, ok := strings.Cut(content, whyChosenSep)
	if !ok {
		return models.Training{}, false
	}
	return models.Training{
		Program:   strings.TrimSpace(program),
		WhyChosen: strings.TrimSpace(why),
	}, true
}

// parseBudgetLine matches "key: value" lines under BUDGET: by key substring.
// Unrecognized keys are ignored.
func parseBudgetLine(line string, budget *models.Budget) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return
	}
	value = strings.TrimSpace(value)
	switch {
	case strings.Contains(key, "Investment"):
		budget.InitialInvestment = value
	case strings.Contains(key, "ROI"):
		budget.ProjectedROI = value
	}
}
