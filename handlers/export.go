package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/idocstoreapp/cotizador-app-sub001/services"
)

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleQuotationExportExcel handles GET /quotations/{id}/export/excel
// Generates and downloads the quotation spreadsheet.
func HandleQuotationExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing quotation ID")
		}

		q, record, err := loadQuotation(app, id)
		if err != nil {
			log.Printf("export: HandleQuotationExportExcel: %v", err)
			return e.String(http.StatusNotFound, "Quotation not found")
		}

		createdDate := "—"
		if dt := record.GetDateTime("created"); !dt.IsZero() {
			createdDate = dt.Time().Format("02 Jan 2006")
		}

		data := services.QuoteExportFromQuotation(q, createdDate)
		xlsxBytes, err := services.GenerateQuotationExcel(data)
		if err != nil {
			log.Printf("export: HandleQuotationExportExcel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Quotation_%s_%d.xlsx", sanitizeFilename(q.CustomerName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleComparisonExportExcel handles GET /quotations/{id}/reconcile/export/excel
// Generates and downloads the budget-vs-actual spreadsheet.
func HandleComparisonExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return e.String(http.StatusBadRequest, "Missing quotation ID")
		}

		q, _, err := loadQuotation(app, id)
		if err != nil {
			log.Printf("export: HandleComparisonExportExcel: %v", err)
			return e.String(http.StatusNotFound, "Quotation not found")
		}

		costs, err := loadRealCosts(e.Request.Context(), app, id)
		if err != nil {
			log.Printf("export: HandleComparisonExportExcel: could not load real costs: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to load real costs")
		}

		report, err := services.BuildComparisonReport(q, costs)
		if err != nil {
			var scopeErr *services.InvalidScopeError
			if errors.As(err, &scopeErr) {
				return e.String(http.StatusUnprocessableEntity, "A cost record has an invalid allocation scope")
			}
			log.Printf("export: HandleComparisonExportExcel: could not build report: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to build comparison report")
		}

		data := services.ReportExportFromComparison(report, q.CustomerName, time.Now().Format("02 Jan 2006"))
		xlsxBytes, err := services.GenerateComparisonExcel(data)
		if err != nil {
			log.Printf("export: HandleComparisonExportExcel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("CostComparison_%s_%d.xlsx", sanitizeFilename(q.CustomerName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}
