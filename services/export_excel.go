package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// excelStyles holds the style ids shared by both export kinds.
type excelStyles struct {
	title        int
	subtitle     int
	header       int
	row          int
	summaryLabel int
	summaryValue int
}

func buildStyles(f *excelize.File) (excelStyles, error) {
	var s excelStyles
	var err error

	s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return s, fmt.Errorf("create title style: %w", err)
	}

	s.subtitle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return s, fmt.Errorf("create subtitle style: %w", err)
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}

	s.row, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create row style: %w", err)
	}

	s.summaryLabel, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return s, fmt.Errorf("create summary label style: %w", err)
	}

	s.summaryValue, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return s, fmt.Errorf("create summary value style: %w", err)
	}

	return s, nil
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#999999", Style: 1},
		{Type: "right", Color: "#999999", Style: 1},
		{Type: "top", Color: "#999999", Style: 1},
		{Type: "bottom", Color: "#999999", Style: 1},
	}
}

// sanitizeExcelCell prefixes values that Excel would otherwise interpret as
// formulas.
func sanitizeExcelCell(s string) string {
	if strings.HasPrefix(s, "=") || strings.HasPrefix(s, "+") ||
		strings.HasPrefix(s, "-") || strings.HasPrefix(s, "@") {
		return "'" + s
	}
	return s
}

// GenerateQuotationExcel creates a spreadsheet for one quotation and
// returns the file contents.
func GenerateQuotationExcel(data QuoteExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Quotation"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]
	widths := []float64{6, 30, 44, 8, 18, 18}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	styles, err := buildStyles(f)
	if err != nil {
		return nil, err
	}

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	title := "Quotation"
	if data.CustomerName != "" {
		title = "Quotation — " + data.CustomerName
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(title))
	f.SetCellStyle(sheet, "A1", lastCol+"1", styles.title)

	f.SetCellValue(sheet, "A2", "Ref: "+data.QuotationID)
	f.SetCellValue(sheet, "A3", "Date: "+data.CreatedDate)
	f.SetCellStyle(sheet, "A2", lastCol+"3", styles.subtitle)

	headerRow := 5
	headers := []string{"#", "Item", "Details", "Qty", "Unit Price", "Line Total"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s%d", columns[i], headerRow)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), styles.header)

	row := headerRow + 1
	for _, r := range data.Rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Index)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), sanitizeExcelCell(r.Name))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), sanitizeExcelCell(r.Description))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Qty)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), FormatCOP(r.UnitPrice))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), FormatCOP(r.LineTotal))
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), styles.row)
		row++
	}

	row++
	summary := []struct {
		label string
		value string
	}{
		{"Subtotal", FormatCOP(data.Subtotal)},
		{fmt.Sprintf("Discount (%.0f%%)", data.DiscountPct), "-" + FormatCOP(data.DiscountAmount)},
		{fmt.Sprintf("VAT (%.0f%%)", data.VATRate), FormatCOP(data.VATAmount)},
		{"Total", FormatCOP(data.Total)},
	}
	for _, s := range summary {
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), s.label)
		f.SetCellStyle(sheet, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), styles.summaryLabel)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), s.value)
		f.SetCellStyle(sheet, fmt.Sprintf("F%d", row), fmt.Sprintf("F%d", row), styles.summaryValue)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateComparisonExcel creates a spreadsheet for a budget-vs-actual
// comparison report and returns the file contents.
func GenerateComparisonExcel(data ReportExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Cost Comparison"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E"}
	lastCol := columns[len(columns)-1]
	widths := []float64{22, 18, 18, 18, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	styles, err := buildStyles(f)
	if err != nil {
		return nil, err
	}

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	title := "Budget vs Actuals"
	if data.CustomerName != "" {
		title += " — " + data.CustomerName
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(title))
	f.SetCellStyle(sheet, "A1", lastCol+"1", styles.title)

	f.SetCellValue(sheet, "A2", "Quotation: "+data.QuotationID)
	f.SetCellValue(sheet, "A3", fmt.Sprintf("Generated: %s  (item quantity: %d)", data.GeneratedOn, data.ItemQuantity))
	f.SetCellStyle(sheet, "A2", lastCol+"3", styles.subtitle)

	headerRow := 5
	headers := []string{"Category", "Budgeted", "Actual", "Variance", "Variance %"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", columns[i], headerRow), h)
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), styles.header)

	row := headerRow + 1
	for _, r := range data.Rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Label)
		if r.InfoOnly {
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "—")
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), FormatCOP(r.Real))
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), "—")
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "—")
		} else {
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), FormatCOP(r.Budgeted))
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), FormatCOP(r.Real))
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), FormatCOP(r.Diff))
			if r.DiffPct != nil {
				f.SetCellValue(sheet, fmt.Sprintf("E%d", row), fmt.Sprintf("%.1f%%", *r.DiffPct))
			} else {
				f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "no budget data")
			}
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), styles.row)
		row++
	}

	row++
	summary := []struct {
		label string
		value string
	}{
		{"VAT (pinned)", FormatCOP(data.RealVAT)},
		{"Total spent", FormatCOP(data.TotalSpent)},
		{"Budgeted profit", FormatCOP(data.BudgetProfit)},
		{"Realized profit", FormatCOP(data.RealProfit)},
	}
	for _, s := range summary {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), s.label)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.summaryLabel)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), s.value)
		f.SetCellStyle(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), styles.summaryValue)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
