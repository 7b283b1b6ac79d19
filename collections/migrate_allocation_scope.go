package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// MigrateAllocationScopes backfills real-cost records that predate the
// allocation_scope field. Material and labor entries were historically
// recorded per unit; ant expenses and transport were recorded as totals.
// Safe to call on every startup -- returns early if nothing to migrate.
func MigrateAllocationScopes(app *pocketbase.PocketBase) error {
	defaults := map[string]string{
		"material_costs":  "per_unit",
		"labor_costs":     "per_unit",
		"ant_expenses":    "total",
		"transport_costs": "total",
	}

	for colName, scope := range defaults {
		col, err := app.FindCollectionByNameOrId(colName)
		if err != nil {
			return fmt.Errorf("migrate: could not find %s collection: %w", colName, err)
		}

		orphans, err := app.FindRecordsByFilter(
			col,
			"allocation_scope = ''",
			"",
			0,
			0,
			nil,
		)
		if err != nil {
			return fmt.Errorf("migrate: could not query %s without a scope: %w", colName, err)
		}
		if len(orphans) == 0 {
			continue
		}

		log.Printf("migrate: found %d %s record(s) without an allocation scope -- backfilling %q...\n", len(orphans), colName, scope)

		for _, r := range orphans {
			r.Set("allocation_scope", scope)
			if err := app.Save(r); err != nil {
				log.Printf("migrate: failed to backfill %s record %s: %v\n", colName, r.Id, err)
				continue
			}
		}
	}

	return nil
}
