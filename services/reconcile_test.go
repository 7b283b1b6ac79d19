package services

import (
	"errors"
	"testing"
)

func TestAllocatedTotal(t *testing.T) {
	tests := []struct {
		name    string
		records []RealCostRecord
		itemQty int
		expect  Money
	}{
		{
			"per unit scales by quantity",
			[]RealCostRecord{{ID: "r1", CostPerUnit: 1000, Scope: ScopePerUnit}},
			5,
			5000,
		},
		{
			"partial scales by applied count",
			[]RealCostRecord{{ID: "r1", CostPerUnit: 1000, Scope: ScopePartial, AppliedCount: 2}},
			5,
			2000,
		},
		{
			"partial without applied count covers one unit",
			[]RealCostRecord{{ID: "r1", CostPerUnit: 1000, Scope: ScopePartial}},
			5,
			1000,
		},
		{
			"total ignores quantity",
			[]RealCostRecord{{ID: "r1", CostPerUnit: 1000, Scope: ScopeTotal}},
			5,
			1000,
		},
		{
			"mixed scopes sum",
			[]RealCostRecord{
				{ID: "r1", CostPerUnit: 20000, Scope: ScopePerUnit},
				{ID: "r2", CostPerUnit: 80000, Scope: ScopeTotal},
			},
			4,
			160000,
		},
		{
			"zero quantity treated as one",
			[]RealCostRecord{{ID: "r1", CostPerUnit: 1000, Scope: ScopePerUnit}},
			0,
			1000,
		},
		{
			"no records",
			nil,
			3,
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AllocatedTotal(tt.records, tt.itemQty)
			if err != nil {
				t.Fatalf("AllocatedTotal() error = %v", err)
			}
			if got != tt.expect {
				t.Errorf("AllocatedTotal() = %d, want %d", got, tt.expect)
			}
		})
	}
}

func TestAllocatedTotalInvalidScope(t *testing.T) {
	tests := []struct {
		name  string
		scope AllocationScope
	}{
		{"missing scope", ""},
		{"unknown scope", "half"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []RealCostRecord{{ID: "r9", CostPerUnit: 1000, Scope: tt.scope}}
			_, err := AllocatedTotal(records, 2)
			var scopeErr *InvalidScopeError
			if !errors.As(err, &scopeErr) {
				t.Fatalf("AllocatedTotal() error = %v, want *InvalidScopeError", err)
			}
			if scopeErr.RecordID != "r9" {
				t.Errorf("RecordID = %q, want r9", scopeErr.RecordID)
			}
		})
	}
}

func TestDominantQuantity(t *testing.T) {
	item := testCatalogItem()

	q := NewQuotation("q1")
	if got := DominantQuantity(q); got != 1 {
		t.Errorf("empty quotation: DominantQuantity() = %d, want 1", got)
	}

	q.AddCatalogLine("l1", item, SelectedOptions{}, 1)
	if got := DominantQuantity(q); got != 1 {
		t.Errorf("all-single lines: DominantQuantity() = %d, want 1", got)
	}

	q.AddCatalogLine("l2", item, SelectedOptions{}, 4)
	q.AddCatalogLine("l3", item, SelectedOptions{}, 7)
	if got := DominantQuantity(q); got != 4 {
		t.Errorf("DominantQuantity() = %d, want 4 (first line above 1)", got)
	}
}

func TestBudgetFromQuotation(t *testing.T) {
	item := testCatalogItem()
	item.Materials = []MaterialUsage{{Name: "boards", Quantity: 10, UnitPrice: 10000}}
	item.Labor = []LaborUsage{{Name: "assembly", Hours: 5, HourlyRate: 10000}}

	q := NewQuotation("q1")
	q.AddCatalogLine("l1", item, SelectedOptions{}, 2)
	q.AddManualLine(ManualLineSpec{
		ID:        "m1",
		Name:      "Custom shelf",
		Materials: []MaterialUsage{{Quantity: 1, UnitPrice: 50000}},
		Labor:     []LaborUsage{{Hours: 2, HourlyRate: 15000}},
		Quantity:  1,
	})

	b := BudgetFromQuotation(q)

	// Catalog: (100,000 materials + 50,000 labor) x 2; manual: 50,000 + 30,000.
	if b.Materials != 250000 {
		t.Errorf("Materials = %d, want 250000", b.Materials)
	}
	if b.Labor != 130000 {
		t.Errorf("Labor = %d, want 130000", b.Labor)
	}
	if b.CostBase != 380000 {
		t.Errorf("CostBase = %d, want 380000", b.CostBase)
	}
	if b.VAT != q.VATAmount() {
		t.Errorf("VAT = %d, want quotation VAT %d", b.VAT, q.VATAmount())
	}
	if b.Total != q.Total() {
		t.Errorf("Total = %d, want quotation total %d", b.Total, q.Total())
	}
	if b.Profit != b.Total-b.CostBase-b.VAT {
		t.Errorf("Profit = %d, want total-costbase-vat = %d", b.Profit, b.Total-b.CostBase-b.VAT)
	}
}

func TestCompareVariance(t *testing.T) {
	t.Run("over budget", func(t *testing.T) {
		v := CompareVariance(100000, 125000)
		if v.Diff != 25000 {
			t.Errorf("Diff = %d, want 25000", v.Diff)
		}
		if v.DiffPct == nil || *v.DiffPct != 25 {
			t.Errorf("DiffPct = %v, want 25", v.DiffPct)
		}
		if v.NoBudgetData {
			t.Error("NoBudgetData = true, want false")
		}
	})

	t.Run("under budget", func(t *testing.T) {
		v := CompareVariance(100000, 80000)
		if v.Diff != -20000 {
			t.Errorf("Diff = %d, want -20000", v.Diff)
		}
		if v.DiffPct == nil || *v.DiffPct != -20 {
			t.Errorf("DiffPct = %v, want -20", v.DiffPct)
		}
	})

	t.Run("below materiality threshold", func(t *testing.T) {
		v := CompareVariance(500, 80000)
		if v.DiffPct != nil {
			t.Errorf("DiffPct = %v, want nil", *v.DiffPct)
		}
		if !v.NoBudgetData {
			t.Error("NoBudgetData = false, want true")
		}
		if v.Diff != 79500 {
			t.Errorf("Diff = %d, want 79500 (absolute diff still reported)", v.Diff)
		}
	})

	t.Run("at materiality threshold", func(t *testing.T) {
		v := CompareVariance(MaterialityThreshold, 2000)
		if v.DiffPct == nil || *v.DiffPct != 100 {
			t.Errorf("DiffPct = %v, want 100", v.DiffPct)
		}
	})
}

func TestBuildComparisonReport(t *testing.T) {
	item := testCatalogItem()
	item.Materials = []MaterialUsage{{Name: "boards", Quantity: 10, UnitPrice: 10000}}
	item.Labor = []LaborUsage{{Name: "assembly", Hours: 5, HourlyRate: 10000}}

	q := NewQuotation("q1")
	q.AddCatalogLine("l1", item, SelectedOptions{}, 4)

	costs := RealCosts{
		Materials: []RealCostRecord{
			{ID: "m1", Category: CostMaterials, CostPerUnit: 20000, Scope: ScopePerUnit},
			{ID: "m2", Category: CostMaterials, CostPerUnit: 80000, Scope: ScopeTotal},
		},
		Labor: []RealCostRecord{
			{ID: "lb1", Category: CostLabor, CostPerUnit: 30000, Scope: ScopePartial, AppliedCount: 2},
		},
		AntExpenses: []RealCostRecord{
			{ID: "a1", Category: CostAntExpense, CostPerUnit: 15000, Scope: ScopeTotal},
		},
		Transport: []RealCostRecord{
			{ID: "t1", Category: CostTransport, CostPerUnit: 40000, Scope: ScopeTotal},
		},
	}

	report, err := BuildComparisonReport(q, costs)
	if err != nil {
		t.Fatalf("BuildComparisonReport() error = %v", err)
	}

	if report.ItemQuantity != 4 {
		t.Errorf("ItemQuantity = %d, want 4", report.ItemQuantity)
	}
	// 20,000 x 4 + 80,000 flat.
	if report.Real.Materials != 160000 {
		t.Errorf("Real.Materials = %d, want 160000", report.Real.Materials)
	}
	if report.Real.Labor != 60000 {
		t.Errorf("Real.Labor = %d, want 60000", report.Real.Labor)
	}
	if report.Real.CostBase != 220000 {
		t.Errorf("Real.CostBase = %d, want 220000", report.Real.CostBase)
	}
	if report.Real.AntExpenses != 15000 {
		t.Errorf("Real.AntExpenses = %d, want 15000", report.Real.AntExpenses)
	}
	if report.Real.Transport != 40000 {
		t.Errorf("Real.Transport = %d, want 40000", report.Real.Transport)
	}

	// Real VAT is pinned to the budgeted figure.
	if report.Real.VAT != report.Budgeted.VAT {
		t.Errorf("Real.VAT = %d, want budgeted VAT %d", report.Real.VAT, report.Budgeted.VAT)
	}

	wantSpent := report.Real.CostBase + report.Real.AntExpenses + report.Real.Transport + report.Real.VAT
	if report.Real.TotalSpent != wantSpent {
		t.Errorf("Real.TotalSpent = %d, want %d", report.Real.TotalSpent, wantSpent)
	}
	if report.Real.Profit != report.Budgeted.Total-report.Real.TotalSpent {
		t.Errorf("Real.Profit = %d, want %d", report.Real.Profit, report.Budgeted.Total-report.Real.TotalSpent)
	}

	// Budgeted materials 400,000 vs real 160,000: -60%.
	if report.Materials.DiffPct == nil || *report.Materials.DiffPct != -60 {
		t.Errorf("Materials.DiffPct = %v, want -60", report.Materials.DiffPct)
	}
}

func TestBuildComparisonReportNoBudgetData(t *testing.T) {
	// A quotation with no per-line cost data budgets zero for materials and
	// labor; the report must flag the missing comparison, not divide by zero.
	q := NewQuotation("q1")
	q.AddCatalogLine("l1", testCatalogItem(), SelectedOptions{}, 1)

	costs := RealCosts{
		Materials: []RealCostRecord{{ID: "m1", CostPerUnit: 80000, Scope: ScopeTotal}},
	}

	report, err := BuildComparisonReport(q, costs)
	if err != nil {
		t.Fatalf("BuildComparisonReport() error = %v", err)
	}

	if report.Materials.DiffPct != nil {
		t.Errorf("Materials.DiffPct = %v, want nil", *report.Materials.DiffPct)
	}
	if !report.Materials.NoBudgetData {
		t.Error("Materials.NoBudgetData = false, want true")
	}
	if report.Materials.Diff != 80000 {
		t.Errorf("Materials.Diff = %d, want 80000", report.Materials.Diff)
	}
}

func TestBuildComparisonReportInvalidScope(t *testing.T) {
	q := NewQuotation("q1")
	q.AddCatalogLine("l1", testCatalogItem(), SelectedOptions{}, 2)

	costs := RealCosts{
		Transport: []RealCostRecord{{ID: "t1", CostPerUnit: 40000, Scope: "everything"}},
	}

	_, err := BuildComparisonReport(q, costs)
	var scopeErr *InvalidScopeError
	if !errors.As(err, &scopeErr) {
		t.Fatalf("BuildComparisonReport() error = %v, want *InvalidScopeError", err)
	}
	if scopeErr.RecordID != "t1" {
		t.Errorf("RecordID = %q, want t1", scopeErr.RecordID)
	}
}
