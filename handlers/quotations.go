package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/idocstoreapp/cotizador-app-sub001/services"
)

type quoteLineView struct {
	ID          string                   `json:"id"`
	Kind        string                   `json:"kind"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Dimensions  string                   `json:"dimensions,omitempty"`
	CatalogItem string                   `json:"catalog_item,omitempty"`
	Options     services.SelectedOptions `json:"options,omitempty"`
	Qty         int                      `json:"qty"`
	UnitPrice   services.Money           `json:"unit_price"`
	LineTotal   services.Money           `json:"line_total"`
}

type quotationView struct {
	ID             string          `json:"id"`
	CustomerName   string          `json:"customer_name"`
	Notes          string          `json:"notes,omitempty"`
	Lines          []quoteLineView `json:"lines"`
	DiscountPct    float64         `json:"discount_percent"`
	VATRate        float64         `json:"vat_rate"`
	Subtotal       services.Money  `json:"subtotal"`
	DiscountAmount services.Money  `json:"discount_amount"`
	VATAmount      services.Money  `json:"vat_amount"`
	Total          services.Money  `json:"total"`
}

func quotationToView(q *services.Quotation) quotationView {
	view := quotationView{
		ID:             q.ID,
		CustomerName:   q.CustomerName,
		Notes:          q.Notes,
		Lines:          []quoteLineView{},
		DiscountPct:    q.DiscountPct(),
		VATRate:        q.VATRate(),
		Subtotal:       q.Subtotal(),
		DiscountAmount: q.DiscountAmount(),
		VATAmount:      q.VATAmount(),
		Total:          q.Total(),
	}
	for _, line := range q.Lines() {
		lv := quoteLineView{
			ID:        line.LineID(),
			Name:      line.LineName(),
			Qty:       line.Qty(),
			UnitPrice: line.Unit(),
			LineTotal: line.Total(),
		}
		switch l := line.(type) {
		case *services.CatalogLine:
			lv.Kind = "catalog"
			lv.CatalogItem = l.Item.ID
			lv.Options = l.Options
		case *services.ManualLine:
			lv.Kind = "manual"
			lv.Description = l.Description
			lv.Dimensions = l.Dimensions
		}
		view.Lines = append(view.Lines, lv)
	}
	return view
}

// HandleQuotationList handles GET /quotations
// Returns all quotations with their stored totals, newest first.
func HandleQuotationList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("quotations", "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("quotations: HandleQuotationList: could not query quotations: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not load quotations"})
		}

		type quotationSummary struct {
			ID           string         `json:"id"`
			CustomerName string         `json:"customer_name"`
			Subtotal     services.Money `json:"subtotal"`
			Total        services.Money `json:"total"`
			Created      string         `json:"created"`
		}

		summaries := make([]quotationSummary, 0, len(records))
		for _, r := range records {
			summaries = append(summaries, quotationSummary{
				ID:           r.Id,
				CustomerName: r.GetString("customer_name"),
				Subtotal:     services.Money(r.GetFloat("subtotal")),
				Total:        services.Money(r.GetFloat("total")),
				Created:      r.GetDateTime("created").Time().Format("2006-01-02"),
			})
		}
		return e.JSON(http.StatusOK, summaries)
	}
}

// HandleQuotationCreate handles POST /quotations
// Creates an empty quotation with the default VAT rate.
func HandleQuotationCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req struct {
			CustomerName string  `json:"customer_name"`
			Notes        string  `json:"notes"`
			VATRate      float64 `json:"vat_rate"`
		}
		if err := e.BindBody(&req); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		req.CustomerName = strings.TrimSpace(req.CustomerName)
		if req.CustomerName == "" {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": map[string]string{"customer_name": "Customer name is required"}})
		}

		vatRate := req.VATRate
		if vatRate == 0 {
			vatRate = services.DefaultVATRate
		}
		if vatRate < 0 {
			vatRate = 0
		}

		col, err := app.FindCollectionByNameOrId("quotations")
		if err != nil {
			log.Printf("quotations: HandleQuotationCreate: could not find quotations collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		record := core.NewRecord(col)
		record.Set("customer_name", req.CustomerName)
		record.Set("notes", req.Notes)
		record.Set("discount_percent", 0)
		record.Set("vat_rate", vatRate)
		record.Set("subtotal", 0)
		record.Set("discount_amount", 0)
		record.Set("vat_amount", 0)
		record.Set("total", 0)

		if err := app.Save(record); err != nil {
			log.Printf("quotations: HandleQuotationCreate: could not save quotation: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		q, _, err := loadQuotation(app, record.Id)
		if err != nil {
			log.Printf("quotations: HandleQuotationCreate: could not reload quotation %s: %v", record.Id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}
		return e.JSON(http.StatusCreated, quotationToView(q))
	}
}

// HandleQuotationView handles GET /quotations/{id}
// Returns the full quotation with its lines and derived totals.
func HandleQuotationView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		q, _, err := loadQuotation(app, id)
		if err != nil {
			if errors.Is(err, ErrQuotationNotFound) {
				return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
			}
			log.Printf("quotations: HandleQuotationView: could not load quotation %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		return e.JSON(http.StatusOK, quotationToView(q))
	}
}

// HandleQuotationDelete handles DELETE /quotations/{id}
// Removes a quotation; lines and real-cost records cascade.
func HandleQuotationDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		record, err := app.FindRecordById("quotations", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
		}

		if err := app.Delete(record); err != nil {
			log.Printf("quotations: HandleQuotationDelete: could not delete quotation %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// HandleQuotationDiscount handles POST /quotations/{id}/discount
// Sets the quotation-level discount percentage and recomputes totals.
func HandleQuotationDiscount(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		var req struct {
			DiscountPct float64 `json:"discount_percent"`
		}
		if err := e.BindBody(&req); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		q, record, err := loadQuotation(app, id)
		if err != nil {
			if errors.Is(err, ErrQuotationNotFound) {
				return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
			}
			log.Printf("quotations: HandleQuotationDiscount: could not load quotation %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		q.SetDiscount(req.DiscountPct)
		if err := persistQuotationTotals(app, record, q); err != nil {
			log.Printf("quotations: HandleQuotationDiscount: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		return e.JSON(http.StatusOK, quotationToView(q))
	}
}
