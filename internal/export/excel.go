package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/startupgps/server/internal/models"
)

// Excel renders the roadmap as an Excel workbook with one sheet per
// recommendation category plus an overview sheet.
func Excel(sector string, rec models.Recommendation) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	overviewSheet := "Overview"
	schemesSheet := "Schemes"
	banksSheet := "Banks"
	licensesSheet := "Licenses"
	trainingSheet := "Training"

	f.SetSheetName("Sheet1", overviewSheet)
	f.NewSheet(schemesSheet)
	f.NewSheet(banksSheet)
	f.NewSheet(licensesSheet)
	f.NewSheet(trainingSheet)

	if err := createOverviewSheet(f, overviewSheet, sector, rec); err != nil {
		return nil, fmt.Errorf("failed to create overview sheet: %w", err)
	}
	if err := createSchemesSheet(f, schemesSheet, rec.Schemes); err != nil {
		return nil, fmt.Errorf("failed to create schemes sheet: %w", err)
	}
	if err := createBanksSheet(f, banksSheet, rec.Banks); err != nil {
		return nil, fmt.Errorf("failed to create banks sheet: %w", err)
	}
	if err := createLicensesSheet(f, licensesSheet, rec.Licenses); err != nil {
		return nil, fmt.Errorf("failed to create licenses sheet: %w", err)
	}
	if err := createTrainingSheet(f, trainingSheet, rec.Training); err != nil {
		return nil, fmt.Errorf("failed to create training sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return &buf, nil
}

func titleStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
}

func columnHeaderStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
}

// createOverviewSheet writes the sector, budget and next steps.
func createOverviewSheet(f *excelize.File, sheetName, sector string, rec models.Recommendation) error {
	f.SetColWidth(sheetName, "A", "A", 25)
	f.SetColWidth(sheetName, "B", "B", 60)

	headerStyle, err := titleStyle(f)
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	row := 1
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Startup GPS Roadmap")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row += 2

	setLabelled := func(label, value string) {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), label)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), value)
		row++
	}

	setLabelled("Sector:", sector)
	setLabelled("Generated:", time.Now().Format("2006-01-02 15:04:05"))
	if rec.UserProfile != nil {
		setLabelled("Education:", string(rec.UserProfile.Education))
		setLabelled("Capital:", string(rec.UserProfile.Capital))
		if rec.UserProfile.State != "" {
			setLabelled("State:", rec.UserProfile.State)
		}
	}
	row++

	setLabelled("Initial Investment:", rec.Budget.InitialInvestment)
	if rec.Budget.MonthlyExpenses != "" {
		setLabelled("Monthly Expenses:", rec.Budget.MonthlyExpenses)
	}
	if rec.Budget.BreakEvenPeriod != "" {
		setLabelled("Break-even Period:", rec.Budget.BreakEvenPeriod)
	}
	setLabelled("Projected ROI:", rec.Budget.ProjectedROI)
	row++

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Next Steps")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
	row++
	for i, step := range rec.NextSteps {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("%d.", i+1))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), step)
		row++
	}

	return nil
}

func createSchemesSheet(f *excelize.File, sheetName string, schemes []models.Scheme) error {
	headerStyle, err := columnHeaderStyle(f)
	if err != nil {
		return err
	}

	headers := []string{"Name", "Description", "Eligibility", "Benefits", "Apply URL", "Why Chosen"}
	widths := []float64{30, 50, 30, 30, 30, 50}
	for i, h := range headers {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, widths[i])
		f.SetCellValue(sheetName, fmt.Sprintf("%s1", col), h)
	}
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%c1", 'A'+len(headers)-1), headerStyle)

	for i, s := range schemes {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), s.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), s.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), s.Eligibility)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), s.Benefits)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), s.ApplyURL)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), s.WhyChosen)
	}
	return nil
}

func createBanksSheet(f *excelize.File, sheetName string, banks []models.Bank) error {
	headerStyle, err := columnHeaderStyle(f)
	if err != nil {
		return err
	}

	headers := []string{"Name", "Loan Type", "Interest Rate", "Max Amount", "Requirements", "Why Chosen"}
	widths := []float64{30, 25, 20, 20, 40, 50}
	for i, h := range headers {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, widths[i])
		f.SetCellValue(sheetName, fmt.Sprintf("%s1", col), h)
	}
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%c1", 'A'+len(headers)-1), headerStyle)

	for i, b := range banks {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), b.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), b.LoanType)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), b.InterestRate)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), b.MaxAmount)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), b.Requirements)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), b.WhyChosen)
	}
	return nil
}

func createLicensesSheet(f *excelize.File, sheetName string, licenses []models.License) error {
	headerStyle, err := columnHeaderStyle(f)
	if err != nil {
		return err
	}

	headers := []string{"Name", "Description", "Authority", "Estimated Time", "Why Chosen"}
	widths := []float64{30, 50, 30, 20, 50}
	for i, h := range headers {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, widths[i])
		f.SetCellValue(sheetName, fmt.Sprintf("%s1", col), h)
	}
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%c1", 'A'+len(headers)-1), headerStyle)

	for i, l := range licenses {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), l.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), l.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), l.Authority)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), l.EstimatedTime)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), l.WhyChosen)
	}
	return nil
}

func createTrainingSheet(f *excelize.File, sheetName string, training []models.Training) error {
	headerStyle, err := columnHeaderStyle(f)
	if err != nil {
		return err
	}

	headers := []string{"Program", "Provider", "Duration", "Cost", "Why Chosen"}
	widths := []float64{40, 30, 20, 15, 50}
	for i, h := range headers {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, widths[i])
		f.SetCellValue(sheetName, fmt.Sprintf("%s1", col), h)
	}
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%c1", 'A'+len(headers)-1), headerStyle)

	for i, t := range training {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), t.Program)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.Provider)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.Duration)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.Cost)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.WhyChosen)
	}
	return nil
}
