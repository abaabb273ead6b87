package recommend

import (
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// buildStructuredPrompt is used with the response schema; the model returns
// a JSON object matching recommendationSchema.
func buildStructuredPrompt(sector, context string) string {
	return fmt.Sprintf(`Based on the following information about a rural entrepreneur in India:

Sector: %s
User Context: %s

Generate personalized recommendations including:
1. 2-3 relevant government schemes (PMEGP, Mudra, Stand-Up India, state schemes, etc.)
2. 2-3 banks/financial institutions with suitable loan products
3. Required licenses and registrations for this business
4. 1-2 training programs or skill development opportunities
5. Realistic budget estimates and ROI projections
6. 5-7 actionable next steps in priority order

Make recommendations specific to rural India, considering accessibility and practical constraints. Use real scheme names and realistic estimates.`, sector, context)
}

// buildTextPrompt instructs the model to emit the section-labelled plain-text
// grammar that ParseRecommendationText understands. Used only when the
// schema-constrained call fails.
func buildTextPrompt(sector, context string) string {
	var sb strings.Builder

	sb.WriteString("You are advising a rural entrepreneur in India.\n\n")
	sb.WriteString(fmt.Sprintf("Sector: %s\n", sector))
	sb.WriteString(fmt.Sprintf("User Context: %s\n\n", context))
	sb.WriteString("Reply in EXACTLY this plain-text format, with these section headers and numbered lines:\n\n")
	sb.WriteString("SCHEMES:\n")
	sb.WriteString("1. Scheme Name: Description - Why chosen: Explanation\n\n")
	sb.WriteString("BANKS:\n")
	sb.WriteString("1. Bank Name - Loan Type: Why chosen: Explanation\n\n")
	sb.WriteString("LICENSES:\n")
	sb.WriteString("1. License Name: Description - Why chosen: Explanation\n\n")
	sb.WriteString("TRAINING:\n")
	sb.WriteString("1. Program Name - Why chosen: Explanation\n\n")
	sb.WriteString("BUDGET:\n")
	sb.WriteString("Initial Investment: amount in rupees\n")
	sb.WriteString("Projected ROI: percentage\n\n")
	sb.WriteString("NEXT STEPS:\n")
	sb.WriteString("1. First action\n")
	sb.WriteString("2. Second action\n\n")
	sb.WriteString("Give 2-3 schemes, 2-3 banks, the required licenses, 1-2 training programs and 5-7 next steps. ")
	sb.WriteString("Use real scheme names and realistic rural India estimates. Do not add any other text.\n")

	return sb.String()
}

// recommendationSchema mirrors the recommendation record for
// schema-constrained generation. WhyChosen is intentionally absent: the
// adaptive filter synthesizes it from the user profile afterwards.
func recommendationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"schemes": {
				Type:        genai.TypeArray,
				Description: "Government schemes the user qualifies for",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":        {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
						"eligibility": {Type: genai.TypeString},
						"benefits":    {Type: genai.TypeString},
						"applyUrl":    {Type: genai.TypeString},
					},
					Required: []string{"name", "description"},
				},
			},
			"banks": {
				Type:        genai.TypeArray,
				Description: "Banks and financial institutions offering relevant loans",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":         {Type: genai.TypeString},
						"loanType":     {Type: genai.TypeString},
						"interestRate": {Type: genai.TypeString},
						"maxAmount":    {Type: genai.TypeString},
						"requirements": {Type: genai.TypeString},
					},
					Required: []string{"name", "loanType"},
				},
			},
			"licenses": {
				Type:        genai.TypeArray,
				Description: "Required licenses and registrations",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":          {Type: genai.TypeString},
						"description":   {Type: genai.TypeString},
						"authority":     {Type: genai.TypeString},
						"estimatedTime": {Type: genai.TypeString},
					},
					Required: []string{"name", "description"},
				},
			},
			"training": {
				Type:        genai.TypeArray,
				Description: "Relevant training programs and skill development",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"program":  {Type: genai.TypeString},
						"provider": {Type: genai.TypeString},
						"duration": {Type: genai.TypeString},
						"cost":     {Type: genai.TypeString},
					},
					Required: []string{"program"},
				},
			},
			"budget": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"initialInvestment": {Type: genai.TypeString},
					"monthlyExpenses":   {Type: genai.TypeString},
					"breakEvenPeriod":   {Type: genai.TypeString},
					"projectedROI":      {Type: genai.TypeString},
				},
				Required: []string{"initialInvestment", "projectedROI"},
			},
			"nextSteps": {
				Type:        genai.TypeArray,
				Description: "Actionable next steps in priority order",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"schemes", "banks", "licenses", "training", "budget", "nextSteps"},
	}
}
