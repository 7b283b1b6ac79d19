package collections_test

import (
	"testing"

	"github.com/idocstoreapp/cotizador-app-sub001/collections"
	"github.com/idocstoreapp/cotizador-app-sub001/testhelpers"
)

func TestMigrateAllocationScopes_Backfill(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quotation := testhelpers.CreateTestQuotation(t, app, "Migration Test")

	// Legacy records: no allocation scope recorded.
	material := testhelpers.CreateTestRealCost(t, app, "material_costs", quotation.Id, 50000, "")
	labor := testhelpers.CreateTestRealCost(t, app, "labor_costs", quotation.Id, 30000, "")
	ant := testhelpers.CreateTestRealCost(t, app, "ant_expenses", quotation.Id, 15000, "")
	transport := testhelpers.CreateTestRealCost(t, app, "transport_costs", quotation.Id, 40000, "")

	if err := collections.MigrateAllocationScopes(app); err != nil {
		t.Fatalf("MigrateAllocationScopes() error = %v", err)
	}

	tests := []struct {
		colName  string
		recordID string
		expect   string
	}{
		{"material_costs", material.Id, "per_unit"},
		{"labor_costs", labor.Id, "per_unit"},
		{"ant_expenses", ant.Id, "total"},
		{"transport_costs", transport.Id, "total"},
	}
	for _, tt := range tests {
		r, err := app.FindRecordById(tt.colName, tt.recordID)
		if err != nil {
			t.Fatalf("failed to reload %s record: %v", tt.colName, err)
		}
		if got := r.GetString("allocation_scope"); got != tt.expect {
			t.Errorf("%s: allocation_scope = %q, want %q", tt.colName, got, tt.expect)
		}
	}
}

func TestMigrateAllocationScopes_LeavesExplicitScopes(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quotation := testhelpers.CreateTestQuotation(t, app, "Migration Test")

	cost := testhelpers.CreateTestRealCost(t, app, "material_costs", quotation.Id, 50000, "partial")

	if err := collections.MigrateAllocationScopes(app); err != nil {
		t.Fatalf("MigrateAllocationScopes() error = %v", err)
	}

	r, err := app.FindRecordById("material_costs", cost.Id)
	if err != nil {
		t.Fatalf("failed to reload record: %v", err)
	}
	if got := r.GetString("allocation_scope"); got != "partial" {
		t.Errorf("allocation_scope = %q, want partial (unchanged)", got)
	}
}

func TestMigrateAllocationScopes_NoRecords(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.MigrateAllocationScopes(app); err != nil {
		t.Errorf("MigrateAllocationScopes() on empty collections error = %v", err)
	}
}
