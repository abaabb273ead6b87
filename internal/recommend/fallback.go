package recommend

import "github.com/startupgps/server/internal/models"

// Fixed default content served when the model's reply could not be parsed.
// Each sub-collection is substituted independently: only the sections the
// parser left empty are defaulted.

func defaultSchemes() []models.Scheme {
	return []models.Scheme{
		{
			Name:        "PMEGP",
			Description: "Credit-linked subsidy for setting up new micro enterprises in rural and urban areas",
			Benefits:    "Subsidy of 15-35% of the project cost",
			WhyChosen:   "Flagship central scheme for first-generation rural entrepreneurs",
		},
		{
			Name:        "Pradhan Mantri Mudra Yojana",
			Description: "Collateral-free loans up to ₹10 lakh for non-farm micro enterprises",
			Benefits:    "Shishu, Kishor and Tarun loan categories as the business grows",
			WhyChosen:   "No collateral needed, suited to small first-time borrowers",
		},
		{
			Name:        "Stand-Up India",
			Description: "Bank loans between ₹10 lakh and ₹1 crore for SC/ST and women entrepreneurs",
			WhyChosen:   "Dedicated support if you belong to an eligible category",
		},
	}
}

func defaultBanks() []models.Bank {
	return []models.Bank{
		{
			Name:         "State Bank of India",
			LoanType:     "Mudra loan",
			InterestRate: "8.5-12% per annum",
			MaxAmount:    "₹10 lakh",
			WhyChosen:    "Widest rural branch network and standard Mudra processing",
		},
		{
			Name:      "Punjab National Bank",
			LoanType:  "MSME business loan",
			MaxAmount: "₹25 lakh",
			WhyChosen: "Dedicated MSME desks in district branches",
		},
	}
}

func defaultLicenses() []models.License {
	return []models.License{
		{
			Name:          "Udyam Registration",
			Description:   "Free online MSME registration on the Udyam portal",
			Authority:     "Ministry of MSME",
			EstimatedTime: "1 day",
			WhyChosen:     "Required to access most government schemes and bank programs",
		},
		{
			Name:          "GST Registration",
			Description:   "Goods and Services Tax registration for businesses above the turnover threshold",
			Authority:     "GST Network",
			EstimatedTime: "3-7 days",
			WhyChosen:     "Needed once turnover crosses the exemption limit or for inter-state sales",
		},
	}
}

func defaultTraining() []models.Training {
	return []models.Training{
		{
			Program:   "RSETI entrepreneurship development programme",
			Provider:  "Rural Self Employment Training Institutes",
			Duration:  "1-6 weeks",
			Cost:      "Free",
			WhyChosen: "Free residential training for rural youth with bank credit linkage",
		},
	}
}

func defaultNextSteps() []string {
	return []string{
		"Register your enterprise on the Udyam portal",
		"Open a current account with a nearby bank branch",
		"Visit the district industries centre to ask about PMEGP",
		"Prepare a simple one-page business plan with costs and expected income",
		"Enroll in the nearest RSETI training programme",
	}
}

func defaultBudget() models.Budget {
	return models.Budget{
		InitialInvestment: "₹50,000",
		ProjectedROI:      "20%",
	}
}

// DefaultRecommendation returns the full fixed default record, used when the
// model's reply contained no usable text at all.
func DefaultRecommendation() models.Recommendation {
	return models.Recommendation{
		Schemes:   defaultSchemes(),
		Banks:     defaultBanks(),
		Licenses:  defaultLicenses(),
		Training:  defaultTraining(),
		Budget:    defaultBudget(),
		NextSteps: defaultNextSteps(),
	}
}

// FillMissing replaces each empty sub-collection of a parsed record with its
// fixed default, leaving parsed sections untouched. The budget fields default
// individually when the parser found neither.
func FillMissing(rec models.Recommendation) models.Recommendation {
	if len(rec.Schemes) == 0 {
		rec.Schemes = defaultSchemes()
	}
	if len(rec.Banks) == 0 {
		rec.Banks = defaultBanks()
	}
	if len(rec.Licenses) == 0 {
		rec.Licenses = defaultLicenses()
	}
	if len(rec.Training) == 0 {
		rec.Training = defaultTraining()
	}
	if len(rec.NextSteps) == 0 {
		rec.NextSteps = defaultNextSteps()
	}
	if rec.Budget.InitialInvestment == "" && rec.Budget.ProjectedROI == "" {
		rec.Budget = defaultBudget()
	} else {
		if rec.Budget.InitialInvestment == "" {
			rec.Budget.InitialInvestment = defaultBudget().InitialInvestment
		}
		if rec.Budget.ProjectedROI == "" {
			rec.Budget.ProjectedROI = defaultBudget().ProjectedROI
		}
	}
	return rec
}
