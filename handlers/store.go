package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"golang.org/x/sync/errgroup"

	"github.com/idocstoreapp/cotizador-app-sub001/services"
)

// ErrQuotationNotFound is returned by loadQuotation when the id does not
// resolve to a quotation record.
var ErrQuotationNotFound = errors.New("quotation not found")

// realCostCollections maps the URL category slug to its backing collection
// and engine category.
var realCostCollections = map[string]struct {
	collection string
	category   services.CostCategory
}{
	"materials":    {"material_costs", services.CostMaterials},
	"labor":        {"labor_costs", services.CostLabor},
	"ant-expenses": {"ant_expenses", services.CostAntExpense},
	"transport":    {"transport_costs", services.CostTransport},
}

// unmarshalJSON decodes a JSON field into dst, skipping empty fields. A
// malformed stored value is logged and left as the zero value so a single
// bad record never takes a whole page down.
func unmarshalJSON(r *core.Record, field string, dst any) {
	if r.GetString(field) == "" {
		return
	}
	if err := r.UnmarshalJSONField(field, dst); err != nil {
		log.Printf("store: unmarshalJSON: field %q on record %s: %v", field, r.Id, err)
	}
}

// catalogItemFromRecord rebuilds a services.CatalogItem from its record.
func catalogItemFromRecord(r *core.Record) services.CatalogItem {
	item := services.CatalogItem{
		ID:        r.Id,
		Name:      r.GetString("name"),
		Category:  r.GetString("category"),
		BasePrice: services.Money(r.GetFloat("base_price")),
		MarginPct: r.GetFloat("margin_percent"),
	}
	unmarshalJSON(r, "colors", &item.Options.Colors)
	unmarshalJSON(r, "materials", &item.Options.Materials)
	unmarshalJSON(r, "countertops", &item.Options.Countertops)
	unmarshalJSON(r, "edge_finishes", &item.Options.EdgeFinishes)
	unmarshalJSON(r, "custom_options", &item.CustomOptions)
	unmarshalJSON(r, "bom_materials", &item.Materials)
	unmarshalJSON(r, "bom_labor", &item.Labor)
	return item
}

// loadQuotation rebuilds the quotation aggregate from the quotations record
// and its quote_lines, in sort order. Catalog lines reprice from the item
// snapshot frozen into the line record, so the rebuilt totals always match
// what was stored.
func loadQuotation(app *pocketbase.PocketBase, id string) (*services.Quotation, *core.Record, error) {
	record, err := app.FindRecordById("quotations", id)
	if err != nil {
		return nil, nil, ErrQuotationNotFound
	}

	q := services.NewQuotation(record.Id)
	q.CustomerName = record.GetString("customer_name")
	q.Notes = record.GetString("notes")
	q.SetVATRate(record.GetFloat("vat_rate"))

	lineRecords, err := app.FindRecordsByFilter(
		"quote_lines",
		"quotation = {:quotationId}",
		"sort_order",
		0,
		0,
		map[string]any{"quotationId": record.Id},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("load quote lines for %s: %w", record.Id, err)
	}

	for _, lr := range lineRecords {
		switch lr.GetString("kind") {
		case "catalog":
			item := services.CatalogItem{
				ID:        lr.GetString("catalog_item"),
				Name:      lr.GetString("name"),
				Category:  lr.GetString("category"),
				BasePrice: services.Money(lr.GetFloat("base_price")),
				MarginPct: lr.GetFloat("margin_percent"),
			}
			unmarshalJSON(lr, "custom_options", &item.CustomOptions)
			unmarshalJSON(lr, "materials", &item.Materials)
			unmarshalJSON(lr, "labor", &item.Labor)

			var opts services.SelectedOptions
			unmarshalJSON(lr, "options", &opts)

			q.AddCatalogLine(lr.Id, item, opts, lr.GetInt("qty"))
		case "manual":
			spec := services.ManualLineSpec{
				ID:          lr.Id,
				Name:        lr.GetString("name"),
				Description: lr.GetString("description"),
				Dimensions:  lr.GetString("dimensions"),
				MarginPct:   lr.GetFloat("margin_percent"),
				DiscountPct: lr.GetFloat("discount_percent"),
				Quantity:    lr.GetInt("qty"),
			}
			unmarshalJSON(lr, "materials", &spec.Materials)
			unmarshalJSON(lr, "labor", &spec.Labor)
			unmarshalJSON(lr, "extras", &spec.Extras)

			q.AddManualLine(spec)
		default:
			log.Printf("store: loadQuotation: quote line %s has unknown kind %q, skipping", lr.Id, lr.GetString("kind"))
		}
	}

	q.SetDiscount(record.GetFloat("discount_percent"))
	return q, record, nil
}

// persistQuotationTotals writes the aggregate's derived figures back to the
// quotations record.
func persistQuotationTotals(app *pocketbase.PocketBase, record *core.Record, q *services.Quotation) error {
	record.Set("discount_percent", q.DiscountPct())
	record.Set("vat_rate", q.VATRate())
	record.Set("subtotal", float64(q.Subtotal()))
	record.Set("discount_amount", float64(q.DiscountAmount()))
	record.Set("vat_amount", float64(q.VATAmount()))
	record.Set("total", float64(q.Total()))
	if err := app.Save(record); err != nil {
		return fmt.Errorf("persist quotation totals for %s: %w", record.Id, err)
	}
	return nil
}

// nextSortOrder queries the existing lines for a quotation and returns the
// next sort_order value.
func nextSortOrder(app *pocketbase.PocketBase, quotationID string) int {
	existing, err := app.FindRecordsByFilter(
		"quote_lines",
		"quotation = {:quotationId}",
		"-sort_order",
		1,
		0,
		map[string]any{"quotationId": quotationID},
	)
	if err != nil || len(existing) == 0 {
		return 1
	}
	return existing[0].GetInt("sort_order") + 1
}

// realCostFromRecord rebuilds a services.RealCostRecord from its record.
func realCostFromRecord(r *core.Record, category services.CostCategory) services.RealCostRecord {
	rec := services.RealCostRecord{
		ID:           r.Id,
		Category:     category,
		CostPerUnit:  services.Money(r.GetFloat("cost_per_unit")),
		Scope:        services.AllocationScope(r.GetString("allocation_scope")),
		AppliedCount: r.GetInt("applied_count"),
		DocumentRef:  r.GetString("document_ref"),
		Notes:        r.GetString("notes"),
	}
	if dt := r.GetDateTime("incurred_on"); !dt.IsZero() {
		rec.IncurredOn = dt.Time().Format("2006-01-02")
	}
	return rec
}

// loadRealCosts fetches the four real-cost streams for a quotation. The
// streams are independent so the four queries run concurrently.
func loadRealCosts(ctx context.Context, app *pocketbase.PocketBase, quotationID string) (services.RealCosts, error) {
	var costs services.RealCosts
	targets := []struct {
		collection string
		category   services.CostCategory
		dst        *[]services.RealCostRecord
	}{
		{"material_costs", services.CostMaterials, &costs.Materials},
		{"labor_costs", services.CostLabor, &costs.Labor},
		{"ant_expenses", services.CostAntExpense, &costs.AntExpenses},
		{"transport_costs", services.CostTransport, &costs.Transport},
	}

	g, _ := errgroup.WithContext(ctx)
	for _, target := range targets {
		g.Go(func() error {
			records, err := app.FindRecordsByFilter(
				target.collection,
				"quotation = {:quotationId}",
				"created",
				0,
				0,
				map[string]any{"quotationId": quotationID},
			)
			if err != nil {
				return fmt.Errorf("load %s for %s: %w", target.collection, quotationID, err)
			}
			out := make([]services.RealCostRecord, 0, len(records))
			for _, r := range records {
				out = append(out, realCostFromRecord(r, target.category))
			}
			*target.dst = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return services.RealCosts{}, err
	}
	return costs, nil
}
