package main

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/idocstoreapp/cotizador-app-sub001/collections"
	"github.com/idocstoreapp/cotizador-app-sub001/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateAllocationScopes(app); err != nil {
			log.Printf("Warning: allocation scope migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Form choice lists ────────────────────────────────────
		se.Router.GET("/options", handlers.HandleOptionLists(app))

		// ── Catalog CRUD ─────────────────────────────────────────
		se.Router.GET("/catalog-items", handlers.HandleCatalogItemList(app))
		se.Router.POST("/catalog-items", handlers.HandleCatalogItemCreate(app))
		se.Router.GET("/catalog-items/{id}", handlers.HandleCatalogItemView(app))
		se.Router.DELETE("/catalog-items/{id}", handlers.HandleCatalogItemDelete(app))

		// ── Quotation CRUD ───────────────────────────────────────
		se.Router.GET("/quotations", handlers.HandleQuotationList(app))
		se.Router.POST("/quotations", handlers.HandleQuotationCreate(app))
		se.Router.GET("/quotations/{id}", handlers.HandleQuotationView(app))
		se.Router.DELETE("/quotations/{id}", handlers.HandleQuotationDelete(app))
		se.Router.POST("/quotations/{id}/discount", handlers.HandleQuotationDiscount(app))

		// ── Quote lines ──────────────────────────────────────────
		se.Router.POST("/quotations/{id}/lines/catalog", handlers.HandleAddCatalogLine(app))
		se.Router.POST("/quotations/{id}/lines/manual", handlers.HandleAddManualLine(app))
		se.Router.PATCH("/quotations/{id}/lines/{lineId}/quantity", handlers.HandleLineQuantity(app))
		se.Router.PATCH("/quotations/{id}/lines/{lineId}/options", handlers.HandleLineOptions(app))
		se.Router.DELETE("/quotations/{id}/lines/{lineId}", handlers.HandleLineDelete(app))

		// ── Real costs ───────────────────────────────────────────
		se.Router.GET("/quotations/{id}/costs/{category}", handlers.HandleRealCostList(app))
		se.Router.POST("/quotations/{id}/costs/{category}", handlers.HandleRealCostCreate(app))

		// ── Reconciliation ───────────────────────────────────────
		se.Router.GET("/quotations/{id}/reconcile", handlers.HandleReconcile(app))

		// ── Export ───────────────────────────────────────────────
		se.Router.GET("/quotations/{id}/export/excel", handlers.HandleQuotationExportExcel(app))
		se.Router.GET("/quotations/{id}/reconcile/export/excel", handlers.HandleComparisonExportExcel(app))

		// Redirect home to quotations list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/quotations")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
