package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/idocstoreapp/cotizador-app-sub001/services"
	"github.com/idocstoreapp/cotizador-app-sub001/testhelpers"
)

func TestHandleCatalogItemCreate_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleCatalogItemCreate(app)

	req := jsonRequest(t, http.MethodPost, "/catalog-items", map[string]any{
		"name":       "Closet corredizo 2.4m",
		"category":   "closet",
		"base_price": 2800000,
		"colors":     []string{"white", "wengue"},
		"materials":  []string{"melamine", "solid_wood"},
	})
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var view catalogItemView
	decodeJSON(t, rec, &view)
	if view.ID == "" {
		t.Error("expected created item to have an id")
	}
	if view.BasePrice != 2800000 {
		t.Errorf("base_price = %d, want 2800000", view.BasePrice)
	}
	if len(view.Options.Materials) != 2 {
		t.Errorf("materials = %v, want 2 entries", view.Options.Materials)
	}

	// Verify persisted
	if _, err := app.FindRecordById("catalog_items", view.ID); err != nil {
		t.Errorf("created item not found in collection: %v", err)
	}
}

func TestHandleCatalogItemCreate_Validation(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleCatalogItemCreate(app)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"missing name", map[string]any{"category": "closet", "base_price": 100000}},
		{"unknown category", map[string]any{"name": "X", "category": "garage", "base_price": 100000}},
		{"zero base price", map[string]any{"name": "X", "category": "closet", "base_price": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := jsonRequest(t, http.MethodPost, "/catalog-items", tt.payload)
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(app, req, rec)

			if err := handler(e); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleCatalogItemList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestCatalogItem(t, app, "Item A", 1000000)
	testhelpers.CreateTestCatalogItem(t, app, "Item B", 2000000)
	handler := HandleCatalogItemList(app)

	req := httptest.NewRequest(http.MethodGet, "/catalog-items", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var views []catalogItemView
	decodeJSON(t, rec, &views)
	if len(views) != 2 {
		t.Errorf("expected 2 items, got %d", len(views))
	}
}

func TestHandleCatalogItemView(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	item := testhelpers.CreateTestCatalogItem(t, app, "Viewed Item", 1500000)
	handler := HandleCatalogItemView(app)

	req := httptest.NewRequest(http.MethodGet, "/catalog-items/"+item.Id, nil)
	req.SetPathValue("id", item.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var view catalogItemView
	decodeJSON(t, rec, &view)
	if view.Name != "Viewed Item" {
		t.Errorf("name = %q, want Viewed Item", view.Name)
	}
	if len(view.Materials) == 0 {
		t.Error("expected bom_materials in view")
	}
}

func TestHandleCatalogItemView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleCatalogItemView(app)

	req := httptest.NewRequest(http.MethodGet, "/catalog-items/nonexistent", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleCatalogItemDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	item := testhelpers.CreateTestCatalogItem(t, app, "Doomed Item", 1000000)
	handler := HandleCatalogItemDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/catalog-items/"+item.Id, nil)
	req.SetPathValue("id", item.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, err := app.FindRecordById("catalog_items", item.Id); err == nil {
		t.Error("expected catalog item to be deleted")
	}
}

func TestHandleCatalogItemDelete_KeepsExistingLines(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	item := testhelpers.CreateTestCatalogItem(t, app, "Snapshot Item", 1000000)
	quotation := testhelpers.CreateTestQuotation(t, app, "Snapshot Customer")

	// Add a line referencing the item, then delete the item.
	addHandler := HandleAddCatalogLine(app)
	req := jsonRequest(t, http.MethodPost, "/quotations/"+quotation.Id+"/lines/catalog", map[string]any{
		"catalog_item": item.Id,
		"qty":          1,
	})
	req.SetPathValue("id", quotation.Id)
	rec := httptest.NewRecorder()
	if err := addHandler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("add line handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 adding line, got %d: %s", rec.Code, rec.Body.String())
	}

	delReq := httptest.NewRequest(http.MethodDelete, "/catalog-items/"+item.Id, nil)
	delReq.SetPathValue("id", item.Id)
	delRec := httptest.NewRecorder()
	if err := HandleCatalogItemDelete(app)(newTestRequestEvent(app, delReq, delRec)); err != nil {
		t.Fatalf("delete handler error: %v", err)
	}

	// The quotation still loads from the frozen snapshot.
	q, _, err := loadQuotation(app, quotation.Id)
	if err != nil {
		t.Fatalf("loadQuotation after catalog delete: %v", err)
	}
	if len(q.Lines()) != 1 {
		t.Fatalf("expected 1 line after catalog delete, got %d", len(q.Lines()))
	}
	line, ok := q.Lines()[0].(*services.CatalogLine)
	if !ok {
		t.Fatal("expected a catalog line")
	}
	if line.UnitPrice != 1000000 {
		t.Errorf("line unit price = %d, want 1000000 (frozen)", line.UnitPrice)
	}
}
