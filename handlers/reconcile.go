package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/idocstoreapp/cotizador-app-sub001/services"
)

// HandleReconcile handles GET /quotations/{id}/reconcile
// Builds the budget-vs-actual comparison report for a quotation. A missing
// quotation is 404; a real-cost record with an invalid allocation scope is
// 422 so the client can surface the offending record.
func HandleReconcile(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		q, _, err := loadQuotation(app, id)
		if err != nil {
			if errors.Is(err, ErrQuotationNotFound) {
				return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
			}
			log.Printf("reconcile: HandleReconcile: could not load quotation %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		costs, err := loadRealCosts(e.Request.Context(), app, id)
		if err != nil {
			log.Printf("reconcile: HandleReconcile: could not load real costs for %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		report, err := services.BuildComparisonReport(q, costs)
		if err != nil {
			var scopeErr *services.InvalidScopeError
			if errors.As(err, &scopeErr) {
				return e.JSON(http.StatusUnprocessableEntity, map[string]string{
					"error":     "A cost record has an invalid allocation scope",
					"record_id": scopeErr.RecordID,
					"scope":     string(scopeErr.Scope),
				})
			}
			log.Printf("reconcile: HandleReconcile: could not build report for %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		return e.JSON(http.StatusOK, report)
	}
}
