package models

// Sector identifies one of the fixed business categories a user can pick
// at the start of a session.
type Sector string

const (
	SectorFarming       Sector = "farming"
	SectorDairy         Sector = "dairy"
	SectorRetail        Sector = "retail"
	SectorHandicrafts   Sector = "handicrafts"
	SectorManufacturing Sector = "manufacturing"
	SectorTextiles      Sector = "textiles"
	SectorFood          Sector = "food"
	SectorOther         Sector = "other"
)

// Sectors lists every valid sector in display order.
var Sectors = []Sector{
	SectorFarming,
	SectorDairy,
	SectorRetail,
	SectorHandicrafts,
	SectorManufacturing,
	SectorTextiles,
	SectorFood,
	SectorOther,
}

// Valid reports whether s is one of the known sectors.
func (s Sector) Valid() bool {
	for _, known := range Sectors {
		if s == known {
			return true
		}
	}
	return false
}

// Education is the coarse education level derived from conversation context.
type Education string

const (
	EducationBelow10th Education = "below_10th"
	Education12thPass  Education = "12th_pass"
	EducationGraduate  Education = "graduate"
	EducationUnknown   Education = "unknown"
)

// Capital is the coarse capital availability derived from conversation context.
type Capital string

const (
	CapitalNone      Capital = "none"
	CapitalSome      Capital = "some"
	CapitalAvailable Capital = "available"
	CapitalUnknown   Capital = "unknown"
)

// NormalizeEducation maps an arbitrary string onto a known education level,
// defaulting to EducationUnknown.
func NormalizeEducation(s string) Education {
	switch Education(s) {
	case EducationBelow10th, Education12thPass, EducationGraduate:
		return Education(s)
	}
	return EducationUnknown
}

// NormalizeCapital maps an arbitrary string onto a known capital level,
// defaulting to CapitalUnknown.
func NormalizeCapital(s string) Capital {
	switch Capital(s) {
	case CapitalNone, CapitalSome, CapitalAvailable:
		return Capital(s)
	}
	return CapitalUnknown
}

// UserProfile is a derived, non-authoritative sketch of the user built from
// their free-text answers. Unmatched fields stay unknown/empty.
type UserProfile struct {
	Education Education `json:"education"`
	Capital   Capital   `json:"capital"`
	State     string    `json:"state,omitempty"`
}

// Scheme is a government support program recommendation.
type Scheme struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Eligibility string `json:"eligibility,omitempty"`
	Benefits    string `json:"benefits,omitempty"`
	ApplyURL    string `json:"applyUrl,omitempty"`
	WhyChosen   string `json:"whyChosen"`
}

// Bank is a financing option recommendation.
type Bank struct {
	Name         string `json:"name"`
	LoanType     string `json:"loanType"`
	InterestRate string `json:"interestRate,omitempty"`
	MaxAmount    string `json:"maxAmount,omitempty"`
	Requirements string `json:"requirements,omitempty"`
	WhyChosen    string `json:"whyChosen"`
}

// License is a registration or license the business needs.
type License struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Authority     string `json:"authority,omitempty"`
	EstimatedTime string `json:"estimatedTime,omitempty"`
	WhyChosen     string `json:"whyChosen"`
}

// Training is a skill development program recommendation.
type Training struct {
	Program   string `json:"program"`
	Provider  string `json:"provider,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Cost      string `json:"cost,omitempty"`
	WhyChosen string `json:"whyChosen"`
}

// Budget holds the budget estimate for the business plan.
type Budget struct {
	InitialInvestment string `json:"initialInvestment"`
	MonthlyExpenses   string `json:"monthlyExpenses,omitempty"`
	BreakEvenPeriod   string `json:"breakEvenPeriod,omitempty"`
	ProjectedROI      string `json:"projectedROI"`
}

// Recommendation is the full roadmap delivered to the wizard. It is built
// once per request and never mutated afterwards; NextSteps order is priority
// order and must be preserved.
type Recommendation struct {
	UserProfile *UserProfile `json:"userProfile,omitempty"`
	Schemes     []Scheme     `json:"schemes"`
	Banks       []Bank       `json:"banks"`
	Licenses    []License    `json:"licenses"`
	Training    []Training   `json:"training"`
	Budget      Budget       `json:"budget"`
	NextSteps   []string     `json:"nextSteps"`
}

// ChatMessage is one turn of the qualifying conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	Sector   string        `json:"sector,omitempty"`
}

// RecommendationRequest is the body of POST /recommendations.
type RecommendationRequest struct {
	Sector  string `json:"sector"`
	Context string `json:"context"`
}

// ExportRequest is the body of POST /export.
type ExportRequest struct {
	Sector         string         `json:"sector"`
	Recommendation Recommendation `json:"recommendation"`
}
