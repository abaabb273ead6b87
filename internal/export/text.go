// Package export renders a recommendation record as a downloadable roadmap,
// either as plain text or as an Excel workbook.
package export

import (
	"fmt"
	"strings"

	"github.com/startupgps/server/internal/models"
)

// Text renders the roadmap in the same section-labelled plain-text grammar
// the recommendation parser reads, so an exported roadmap can be re-imported
// losslessly for the fields the grammar carries.
func Text(sector string, rec models.Recommendation) string {
	var sb strings.Builder

	sb.WriteString("Startup GPS Roadmap\n")
	if sector != "" {
		fmt.Fprintf(&sb, "Sector: %s\n", sector)
	}
	sb.WriteString("\n")

	sb.WriteString("SCHEMES:\n")
	for i, s := range rec.Schemes {
		fmt.Fprintf(&sb, "%d. %s: %s - Why chosen: %s\n", i+1, s.Name, s.Description, s.WhyChosen)
	}
	sb.WriteString("\n")

	sb.WriteString("BANKS:\n")
	for i, b := range rec.Banks {
		fmt.Fprintf(&sb, "%d. %s - %s: Why chosen: %s\n", i+1, b.Name, b.LoanType, b.WhyChosen)
	}
	sb.WriteString("\n")

	sb.WriteString("LICENSES:\n")
	for i, l := range rec.Licenses {
		fmt.Fprintf(&sb, "%d. %s: %s - Why chosen: %s\n", i+1, l.Name, l.Description, l.WhyChosen)
	}
	sb.WriteString("\n")

	sb.WriteString("TRAINING:\n")
	for i, t := range rec.Training {
		fmt.Fprintf(&sb, "%d. %s - Why chosen: %s\n", i+1, t.Program, t.WhyChosen)
	}
	sb.WriteString("\n")

	sb.WriteString("BUDGET:\n")
	if rec.Budget.InitialInvestment != "" {
		fmt.Fprintf(&sb, "Initial Investment: %s\n", rec.Budget.InitialInvestment)
	}
	if rec.Budget.MonthlyExpenses != "" {
		fmt.Fprintf(&sb, "Monthly Expenses: %s\n", rec.Budget.MonthlyExpenses)
	}
	if rec.Budget.BreakEvenPeriod != "" {
		fmt.Fprintf(&sb, "Break-even Period: %s\n", rec.Budget.BreakEvenPeriod)
	}
	if rec.Budget.ProjectedROI != "" {
		fmt.Fprintf(&sb, "Projected ROI: %s\n", rec.Budget.ProjectedROI)
	}
	sb.WriteString("\n")

	sb.WriteString("NEXT STEPS:\n")
	for i, step := range rec.NextSteps {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
	}

	return sb.String()
}
