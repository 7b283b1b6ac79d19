package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/idocstoreapp/cotizador-app-sub001/services"
)

// HandleRealCostList handles GET /quotations/{id}/costs/{category}
// Returns the recorded real costs for one category of a quotation.
func HandleRealCostList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		slug := e.Request.PathValue("category")

		target, ok := realCostCollections[slug]
		if !ok {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Unknown cost category"})
		}

		if _, err := app.FindRecordById("quotations", quotationID); err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
		}

		records, err := app.FindRecordsByFilter(
			target.collection,
			"quotation = {:quotationId}",
			"created",
			0,
			0,
			map[string]any{"quotationId": quotationID},
		)
		if err != nil {
			log.Printf("real_costs: HandleRealCostList: could not query %s: %v", target.collection, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not load costs"})
		}

		out := make([]services.RealCostRecord, 0, len(records))
		for _, r := range records {
			out = append(out, realCostFromRecord(r, target.category))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleRealCostCreate handles POST /quotations/{id}/costs/{category}
// Records an actually-incurred cost against a quotation. The allocation
// scope is mandatory: the reconciliation engine refuses records without one.
func HandleRealCostCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		slug := e.Request.PathValue("category")

		target, ok := realCostCollections[slug]
		if !ok {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Unknown cost category"})
		}

		var req struct {
			CostPerUnit  services.Money `json:"cost_per_unit"`
			Scope        string         `json:"allocation_scope"`
			AppliedCount int            `json:"applied_count"`
			IncurredOn   string         `json:"incurred_on"`
			DocumentRef  string         `json:"document_ref"`
			Notes        string         `json:"notes"`
		}
		if err := e.BindBody(&req); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		errs := make(map[string]string)
		if req.CostPerUnit <= 0 {
			errs["cost_per_unit"] = "Cost must be greater than zero"
		}
		switch services.AllocationScope(req.Scope) {
		case services.ScopePerUnit, services.ScopePartial, services.ScopeTotal:
		default:
			errs["allocation_scope"] = "Allocation scope must be per_unit, partial or total"
		}
		if services.AllocationScope(req.Scope) == services.ScopePartial && req.AppliedCount < 1 {
			errs["applied_count"] = "Applied count is required for partial allocations"
		}
		if len(errs) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": errs})
		}

		if _, err := app.FindRecordById("quotations", quotationID); err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
		}

		col, err := app.FindCollectionByNameOrId(target.collection)
		if err != nil {
			log.Printf("real_costs: HandleRealCostCreate: could not find %s collection: %v", target.collection, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		record := core.NewRecord(col)
		record.Set("quotation", quotationID)
		record.Set("cost_per_unit", float64(req.CostPerUnit))
		record.Set("allocation_scope", req.Scope)
		if req.AppliedCount > 0 {
			record.Set("applied_count", req.AppliedCount)
		}
		if req.IncurredOn != "" {
			record.Set("incurred_on", req.IncurredOn)
		}
		record.Set("document_ref", req.DocumentRef)
		record.Set("notes", req.Notes)

		if err := app.Save(record); err != nil {
			log.Printf("real_costs: HandleRealCostCreate: could not save %s record: %v", target.collection, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		return e.JSON(http.StatusCreated, realCostFromRecord(record, target.category))
	}
}
