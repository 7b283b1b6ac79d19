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

// reloadAndPersist rebuilds the quotation aggregate after a line mutation and
// writes the recomputed totals back to the quotations record.
func reloadAndPersist(app *pocketbase.PocketBase, quotationID string) (*services.Quotation, error) {
	q, record, err := loadQuotation(app, quotationID)
	if err != nil {
		return nil, err
	}
	if err := persistQuotationTotals(app, record, q); err != nil {
		return nil, err
	}
	return q, nil
}

// HandleAddCatalogLine handles POST /quotations/{id}/lines/catalog
// Prices a catalog item for the selected options and appends it as a line.
// The item is frozen into the line record: later catalog edits never change
// an existing quotation.
func HandleAddCatalogLine(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")

		var req struct {
			CatalogItem string                   `json:"catalog_item"`
			Options     services.SelectedOptions `json:"options"`
			Qty         int                      `json:"qty"`
		}
		if err := e.BindBody(&req); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		if _, err := app.FindRecordById("quotations", quotationID); err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
		}

		itemRecord, err := app.FindRecordById("catalog_items", req.CatalogItem)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Catalog item not found"})
		}
		item := catalogItemFromRecord(itemRecord)

		qty := req.Qty
		if qty < 1 {
			qty = 1
		}
		unit := services.CalcCatalogUnitPrice(&item, req.Options)

		col, err := app.FindCollectionByNameOrId("quote_lines")
		if err != nil {
			log.Printf("quote_lines: HandleAddCatalogLine: could not find quote_lines collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		record := core.NewRecord(col)
		record.Set("quotation", quotationID)
		record.Set("sort_order", nextSortOrder(app, quotationID))
		record.Set("kind", "catalog")
		record.Set("name", item.Name)
		record.Set("catalog_item", item.ID)
		record.Set("base_price", float64(item.BasePrice))
		record.Set("category", item.Category)
		if req.Options != nil {
			record.Set("options", req.Options)
		}
		if item.CustomOptions != nil {
			record.Set("custom_options", item.CustomOptions)
		}
		if item.Materials != nil {
			record.Set("materials", item.Materials)
		}
		if item.Labor != nil {
			record.Set("labor", item.Labor)
		}
		record.Set("margin_percent", item.MarginPct)
		record.Set("qty", qty)
		record.Set("unit_price", float64(unit))
		record.Set("line_total", float64(unit)*float64(qty))

		if err := app.Save(record); err != nil {
			log.Printf("quote_lines: HandleAddCatalogLine: could not save line: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		q, err := reloadAndPersist(app, quotationID)
		if err != nil {
			log.Printf("quote_lines: HandleAddCatalogLine: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}
		return e.JSON(http.StatusCreated, quotationToView(q))
	}
}

// HandleAddManualLine handles POST /quotations/{id}/lines/manual
// Prices a free-form item from its materials, labor and extras and appends
// it as a line.
func HandleAddManualLine(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")

		var req struct {
			Name        string                   `json:"name"`
			Description string                   `json:"description"`
			Dimensions  string                   `json:"dimensions"`
			Materials   []services.MaterialUsage `json:"materials"`
			Labor       []services.LaborUsage    `json:"labor"`
			Extras      []services.ExtraExpense  `json:"extras"`
			MarginPct   float64                  `json:"margin_percent"`
			DiscountPct float64                  `json:"discount_percent"`
			Qty         int                      `json:"qty"`
		}
		if err := e.BindBody(&req); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": map[string]string{"name": "Name is required"}})
		}

		if _, err := app.FindRecordById("quotations", quotationID); err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
		}

		qty := req.Qty
		if qty < 1 {
			qty = 1
		}
		unit := services.CalcManualUnitPrice(req.Materials, req.Labor, req.MarginPct, req.Extras, req.DiscountPct)

		col, err := app.FindCollectionByNameOrId("quote_lines")
		if err != nil {
			log.Printf("quote_lines: HandleAddManualLine: could not find quote_lines collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		record := core.NewRecord(col)
		record.Set("quotation", quotationID)
		record.Set("sort_order", nextSortOrder(app, quotationID))
		record.Set("kind", "manual")
		record.Set("name", req.Name)
		record.Set("description", req.Description)
		record.Set("dimensions", req.Dimensions)
		if req.Materials != nil {
			record.Set("materials", req.Materials)
		}
		if req.Labor != nil {
			record.Set("labor", req.Labor)
		}
		if req.Extras != nil {
			record.Set("extras", req.Extras)
		}
		record.Set("margin_percent", req.MarginPct)
		record.Set("discount_percent", req.DiscountPct)
		record.Set("qty", qty)
		record.Set("unit_price", float64(unit))
		record.Set("line_total", float64(unit)*float64(qty))

		if err := app.Save(record); err != nil {
			log.Printf("quote_lines: HandleAddManualLine: could not save line: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		q, err := reloadAndPersist(app, quotationID)
		if err != nil {
			log.Printf("quote_lines: HandleAddManualLine: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}
		return e.JSON(http.StatusCreated, quotationToView(q))
	}
}

// findQuoteLine loads a line record and checks it belongs to the quotation.
func findQuoteLine(app *pocketbase.PocketBase, quotationID, lineID string) (*core.Record, error) {
	line, err := app.FindRecordById("quote_lines", lineID)
	if err != nil {
		return nil, err
	}
	if line.GetString("quotation") != quotationID {
		return nil, errors.New("line does not belong to this quotation")
	}
	return line, nil
}

// HandleLineQuantity handles PATCH /quotations/{id}/lines/{lineId}/quantity
// Updates a line's quantity. A quantity of zero or less removes the line.
func HandleLineQuantity(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		lineID := e.Request.PathValue("lineId")

		var req struct {
			Qty int `json:"qty"`
		}
		if err := e.BindBody(&req); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		if _, err := app.FindRecordById("quotations", quotationID); err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
		}

		line, err := findQuoteLine(app, quotationID, lineID)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Line not found"})
		}

		if req.Qty <= 0 {
			if err := app.Delete(line); err != nil {
				log.Printf("quote_lines: HandleLineQuantity: could not delete line %s: %v", lineID, err)
				return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
			}
		} else {
			line.Set("qty", req.Qty)
			line.Set("line_total", line.GetFloat("unit_price")*float64(req.Qty))
			if err := app.Save(line); err != nil {
				log.Printf("quote_lines: HandleLineQuantity: could not save line %s: %v", lineID, err)
				return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
			}
		}

		q, err := reloadAndPersist(app, quotationID)
		if err != nil {
			log.Printf("quote_lines: HandleLineQuantity: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}
		return e.JSON(http.StatusOK, quotationToView(q))
	}
}

// HandleLineOptions handles PATCH /quotations/{id}/lines/{lineId}/options
// Replaces a catalog line's option selection and reprices it from the
// frozen item snapshot. Manual lines have no options.
func HandleLineOptions(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		lineID := e.Request.PathValue("lineId")

		var req struct {
			Options services.SelectedOptions `json:"options"`
		}
		if err := e.BindBody(&req); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		if _, err := app.FindRecordById("quotations", quotationID); err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
		}

		line, err := findQuoteLine(app, quotationID, lineID)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Line not found"})
		}
		if line.GetString("kind") != "catalog" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Only catalog lines have options"})
		}

		// Reprice from the snapshot frozen into the line, not the live catalog.
		item := services.CatalogItem{
			ID:        line.GetString("catalog_item"),
			Name:      line.GetString("name"),
			Category:  line.GetString("category"),
			BasePrice: services.Money(line.GetFloat("base_price")),
		}
		unmarshalJSON(line, "custom_options", &item.CustomOptions)

		unit := services.CalcCatalogUnitPrice(&item, req.Options)

		line.Set("options", req.Options)
		line.Set("unit_price", float64(unit))
		line.Set("line_total", float64(unit)*line.GetFloat("qty"))
		if err := app.Save(line); err != nil {
			log.Printf("quote_lines: HandleLineOptions: could not save line %s: %v", lineID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		q, err := reloadAndPersist(app, quotationID)
		if err != nil {
			log.Printf("quote_lines: HandleLineOptions: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}
		return e.JSON(http.StatusOK, quotationToView(q))
	}
}

// HandleLineDelete handles DELETE /quotations/{id}/lines/{lineId}
// Removes a line and recomputes the quotation totals.
func HandleLineDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		lineID := e.Request.PathValue("lineId")

		if _, err := app.FindRecordById("quotations", quotationID); err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Quotation not found"})
		}

		line, err := findQuoteLine(app, quotationID, lineID)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Line not found"})
		}

		if err := app.Delete(line); err != nil {
			log.Printf("quote_lines: HandleLineDelete: could not delete line %s: %v", lineID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		q, err := reloadAndPersist(app, quotationID)
		if err != nil {
			log.Printf("quote_lines: HandleLineDelete: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}
		return e.JSON(http.StatusOK, quotationToView(q))
	}
}
