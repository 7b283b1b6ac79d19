package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/idocstoreapp/cotizador-app-sub001/services"
)

// HandleOptionLists handles GET /options
// Returns the fixed choice lists clients need to build catalog and
// real-cost forms.
func HandleOptionLists(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string][]string{
			"categories":        services.CategoryOptions,
			"colors":            services.ColorOptions,
			"materials":         services.MaterialOptions,
			"countertops":       services.CountertopOptions,
			"allocation_scopes": services.ScopeOptions,
		})
	}
}
