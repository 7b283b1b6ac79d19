package services

import "fmt"

// QuoteExportRow is a single line-item row in a quotation export.
type QuoteExportRow struct {
	Index       string
	Kind        string // "catalog" or "manual"
	Name        string
	Description string
	Qty         int
	UnitPrice   Money
	LineTotal   Money
}

// QuoteExportData holds everything needed to export one quotation.
type QuoteExportData struct {
	QuotationID    string
	CustomerName   string
	CreatedDate    string
	Rows           []QuoteExportRow
	Subtotal       Money
	DiscountPct    float64
	DiscountAmount Money
	VATRate        float64
	VATAmount      Money
	Total          Money
}

// QuoteExportFromQuotation flattens a quotation aggregate into export rows.
func QuoteExportFromQuotation(q *Quotation, createdDate string) QuoteExportData {
	data := QuoteExportData{
		QuotationID:    q.ID,
		CustomerName:   q.CustomerName,
		CreatedDate:    createdDate,
		Subtotal:       q.Subtotal(),
		DiscountPct:    q.DiscountPct(),
		DiscountAmount: q.DiscountAmount(),
		VATRate:        q.VATRate(),
		VATAmount:      q.VATAmount(),
		Total:          q.Total(),
	}

	for i, line := range q.Lines() {
		row := QuoteExportRow{
			Index:     fmt.Sprintf("%d", i+1),
			Name:      line.LineName(),
			Qty:       line.Qty(),
			UnitPrice: line.Unit(),
			LineTotal: line.Total(),
		}
		switch l := line.(type) {
		case *CatalogLine:
			row.Kind = "catalog"
			row.Description = describeOptions(l.Options)
		case *ManualLine:
			row.Kind = "manual"
			row.Description = l.Description
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

func describeOptions(opts SelectedOptions) string {
	groups := []string{GroupMaterial, GroupCountertop, GroupColor, GroupEdge, GroupDoorMaterial, GroupCountertopType}
	var desc string
	for _, g := range groups {
		if v, ok := opts[g]; ok && v != "" {
			if desc != "" {
				desc += ", "
			}
			desc += g + ": " + v
		}
	}
	return desc
}

// ReportExportRow is one category row in a comparison-report export.
type ReportExportRow struct {
	Label        string
	Budgeted     Money
	Real         Money
	Diff         Money
	DiffPct      *float64
	NoBudgetData bool
	InfoOnly     bool // totals tracked without a budgeted counterpart
}

// ReportExportData holds everything needed to export a comparison report.
type ReportExportData struct {
	QuotationID  string
	CustomerName string
	GeneratedOn  string
	ItemQuantity int
	Rows         []ReportExportRow
	RealVAT      Money
	TotalSpent   Money
	BudgetProfit Money
	RealProfit   Money
}

// ReportExportFromComparison flattens a comparison report into export rows.
func ReportExportFromComparison(r *ComparisonReport, customerName, generatedOn string) ReportExportData {
	return ReportExportData{
		QuotationID:  r.QuotationID,
		CustomerName: customerName,
		GeneratedOn:  generatedOn,
		ItemQuantity: r.ItemQuantity,
		Rows: []ReportExportRow{
			{Label: "Materials", Budgeted: r.Materials.Budgeted, Real: r.Materials.Real, Diff: r.Materials.Diff, DiffPct: r.Materials.DiffPct, NoBudgetData: r.Materials.NoBudgetData},
			{Label: "Labor", Budgeted: r.Labor.Budgeted, Real: r.Labor.Real, Diff: r.Labor.Diff, DiffPct: r.Labor.DiffPct, NoBudgetData: r.Labor.NoBudgetData},
			{Label: "Cost base", Budgeted: r.CostBase.Budgeted, Real: r.CostBase.Real, Diff: r.CostBase.Diff, DiffPct: r.CostBase.DiffPct, NoBudgetData: r.CostBase.NoBudgetData},
			{Label: "Ant expenses", Real: r.Real.AntExpenses, InfoOnly: true},
			{Label: "Transport", Real: r.Real.Transport, InfoOnly: true},
			{Label: "Grand total", Budgeted: r.Total.Budgeted, Real: r.Total.Real, Diff: r.Total.Diff, DiffPct: r.Total.DiffPct, NoBudgetData: r.Total.NoBudgetData},
		},
		RealVAT:      r.Real.VAT,
		TotalSpent:   r.Real.TotalSpent,
		BudgetProfit: r.Budgeted.Profit,
		RealProfit:   r.Real.Profit,
	}
}
