package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/idocstoreapp/cotizador-app-sub001/services"
)

type catalogItemView struct {
	ID            string                       `json:"id"`
	Name          string                       `json:"name"`
	Category      string                       `json:"category"`
	BasePrice     services.Money               `json:"base_price"`
	Options       services.OptionCatalog       `json:"options"`
	CustomOptions services.CustomOptionCatalog `json:"custom_options,omitempty"`
	Materials     []services.MaterialUsage     `json:"bom_materials,omitempty"`
	Labor         []services.LaborUsage        `json:"bom_labor,omitempty"`
	MarginPct     float64                      `json:"margin_percent"`
}

func catalogItemToView(item services.CatalogItem) catalogItemView {
	return catalogItemView{
		ID:            item.ID,
		Name:          item.Name,
		Category:      item.Category,
		BasePrice:     item.BasePrice,
		Options:       item.Options,
		CustomOptions: item.CustomOptions,
		Materials:     item.Materials,
		Labor:         item.Labor,
		MarginPct:     item.MarginPct,
	}
}

// HandleCatalogItemList handles GET /catalog-items
// Returns all catalog items, newest first.
func HandleCatalogItemList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("catalog_items", "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("catalog_items: HandleCatalogItemList: could not query catalog_items: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not load catalog"})
		}

		views := make([]catalogItemView, 0, len(records))
		for _, r := range records {
			views = append(views, catalogItemToView(catalogItemFromRecord(r)))
		}
		return e.JSON(http.StatusOK, views)
	}
}

type catalogItemRequest struct {
	Name          string                       `json:"name"`
	Category      string                       `json:"category"`
	BasePrice     services.Money               `json:"base_price"`
	Colors        []string                     `json:"colors"`
	Materials     []string                     `json:"materials"`
	Countertops   []string                     `json:"countertops"`
	EdgeFinishes  []string                     `json:"edge_finishes"`
	CustomOptions services.CustomOptionCatalog `json:"custom_options"`
	BOMMaterials  []services.MaterialUsage     `json:"bom_materials"`
	BOMLabor      []services.LaborUsage        `json:"bom_labor"`
	MarginPct     float64                      `json:"margin_percent"`
}

// HandleCatalogItemCreate handles POST /catalog-items
// Creates a new catalog item.
func HandleCatalogItemCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req catalogItemRequest
		if err := e.BindBody(&req); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		req.Name = strings.TrimSpace(req.Name)

		errs := make(map[string]string)
		if req.Name == "" {
			errs["name"] = "Name is required"
		}
		switch req.Category {
		case services.CategoryKitchen, services.CategoryCloset, services.CategoryBathroom, services.CategoryLiving, services.CategoryOther:
		default:
			errs["category"] = "Unknown category"
		}
		if req.BasePrice <= 0 {
			errs["base_price"] = "Base price must be greater than zero"
		}
		if len(errs) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": errs})
		}

		col, err := app.FindCollectionByNameOrId("catalog_items")
		if err != nil {
			log.Printf("catalog_items: HandleCatalogItemCreate: could not find catalog_items collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		record := core.NewRecord(col)
		record.Set("name", req.Name)
		record.Set("category", req.Category)
		record.Set("base_price", float64(req.BasePrice))
		record.Set("colors", req.Colors)
		record.Set("materials", req.Materials)
		record.Set("countertops", req.Countertops)
		record.Set("edge_finishes", req.EdgeFinishes)
		if req.CustomOptions != nil {
			record.Set("custom_options", req.CustomOptions)
		}
		if req.BOMMaterials != nil {
			record.Set("bom_materials", req.BOMMaterials)
		}
		if req.BOMLabor != nil {
			record.Set("bom_labor", req.BOMLabor)
		}
		record.Set("margin_percent", req.MarginPct)

		if err := app.Save(record); err != nil {
			log.Printf("catalog_items: HandleCatalogItemCreate: could not save catalog item: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		return e.JSON(http.StatusCreated, catalogItemToView(catalogItemFromRecord(record)))
	}
}

// HandleCatalogItemView handles GET /catalog-items/{id}
// Returns a single catalog item with its option catalog.
func HandleCatalogItemView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		record, err := app.FindRecordById("catalog_items", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Catalog item not found"})
		}

		return e.JSON(http.StatusOK, catalogItemToView(catalogItemFromRecord(record)))
	}
}

// HandleCatalogItemDelete handles DELETE /catalog-items/{id}
// Removes a catalog item. Existing quote lines keep their frozen snapshot
// and are unaffected.
func HandleCatalogItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		record, err := app.FindRecordById("catalog_items", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Catalog item not found"})
		}

		if err := app.Delete(record); err != nil {
			log.Printf("catalog_items: HandleCatalogItemDelete: could not delete catalog item %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}
