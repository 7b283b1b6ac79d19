// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/idocstoreapp/cotizador-app-sub001/collections"
	"github.com/idocstoreapp/cotizador-app-sub001/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestCatalogItem creates a catalog item record with the given name
// and a melamine/solid_wood material choice, and returns it.
func CreateTestCatalogItem(t *testing.T, app *pocketbase.PocketBase, name string, basePrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("catalog_items")
	if err != nil {
		t.Fatalf("failed to find catalog_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("category", "closet")
	record.Set("base_price", basePrice)
	record.Set("colors", []string{"white", "wengue"})
	record.Set("materials", []string{"melamine", "solid_wood"})
	record.Set("bom_materials", []services.MaterialUsage{
		{Name: "Boards", Quantity: 10, UnitPrice: 10000},
	})
	record.Set("bom_labor", []services.LaborUsage{
		{Name: "Assembly", Hours: 5, HourlyRate: 10000},
	})
	record.Set("margin_percent", 30)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test catalog item: %v", err)
	}

	return record
}

// CreateTestQuotation creates a quotation record with the default VAT rate
// and zeroed totals, and returns it.
func CreateTestQuotation(t *testing.T, app *pocketbase.PocketBase, customerName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotations")
	if err != nil {
		t.Fatalf("failed to find quotations collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("customer_name", customerName)
	record.Set("discount_percent", 0)
	record.Set("vat_rate", services.DefaultVATRate)
	record.Set("subtotal", 0)
	record.Set("discount_amount", 0)
	record.Set("vat_amount", 0)
	record.Set("total", 0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quotation: %v", err)
	}

	return record
}

// CreateTestQuoteLine creates a manual quote line record under a quotation.
// The line carries a single-entry materials list matching unitPrice so that
// rebuilding the quotation reprices it to the same figure.
func CreateTestQuoteLine(t *testing.T, app *pocketbase.PocketBase, quotationID, name string, qty int, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quote_lines")
	if err != nil {
		t.Fatalf("failed to find quote_lines collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quotation", quotationID)
	record.Set("sort_order", 1)
	record.Set("kind", "manual")
	record.Set("name", name)
	record.Set("materials", []services.MaterialUsage{
		{Name: name, Quantity: 1, UnitPrice: services.Money(unitPrice)},
	})
	record.Set("margin_percent", 0)
	record.Set("qty", qty)
	record.Set("unit_price", unitPrice)
	record.Set("line_total", unitPrice*float64(qty))

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote line: %v", err)
	}

	return record
}

// CreateTestRealCost creates a real-cost record in the given category
// collection (material_costs, labor_costs, ant_expenses or transport_costs).
func CreateTestRealCost(t *testing.T, app *pocketbase.PocketBase, colName, quotationID string, costPerUnit float64, scope string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(colName)
	if err != nil {
		t.Fatalf("failed to find %s collection: %v", colName, err)
	}

	record := core.NewRecord(col)
	record.Set("quotation", quotationID)
	record.Set("cost_per_unit", costPerUnit)
	if scope != "" {
		record.Set("allocation_scope", scope)
	}
	record.Set("incurred_on", "2026-08-15")
	record.Set("document_ref", "FAC-001")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test real cost: %v", err)
	}

	return record
}
