package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the catalog_items, quotations,
// quote_lines and the four real-cost collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "catalog_items", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Required:  true,
			Values:    []string{"kitchen", "closet", "bathroom", "living", "other"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "base_price", Required: true})
		c.Fields.Add(&core.JSONField{Name: "colors"})
		c.Fields.Add(&core.JSONField{Name: "materials"})
		c.Fields.Add(&core.JSONField{Name: "countertops"})
		c.Fields.Add(&core.JSONField{Name: "edge_finishes"})
		c.Fields.Add(&core.JSONField{Name: "custom_options"})
		c.Fields.Add(&core.JSONField{Name: "bom_materials"})
		c.Fields.Add(&core.JSONField{Name: "bom_labor"})
		c.Fields.Add(&core.NumberField{Name: "margin_percent"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	quotations := ensureCollection(app, "quotations", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "customer_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "notes"})
		c.Fields.Add(&core.NumberField{Name: "discount_percent"})
		c.Fields.Add(&core.NumberField{Name: "vat_rate", Required: true})
		c.Fields.Add(&core.NumberField{Name: "subtotal"})
		c.Fields.Add(&core.NumberField{Name: "discount_amount"})
		c.Fields.Add(&core.NumberField{Name: "vat_amount"})
		c.Fields.Add(&core.NumberField{Name: "total"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "quote_lines", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "quotation",
			Required:      true,
			CollectionId:  quotations.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "kind",
			Required:  true,
			Values:    []string{"catalog", "manual"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.TextField{Name: "dimensions"})
		c.Fields.Add(&core.TextField{Name: "catalog_item"})
		c.Fields.Add(&core.NumberField{Name: "base_price"})
		c.Fields.Add(&core.TextField{Name: "category"})
		c.Fields.Add(&core.JSONField{Name: "options"})
		c.Fields.Add(&core.JSONField{Name: "custom_options"})
		c.Fields.Add(&core.JSONField{Name: "materials"})
		c.Fields.Add(&core.JSONField{Name: "labor"})
		c.Fields.Add(&core.JSONField{Name: "extras"})
		c.Fields.Add(&core.NumberField{Name: "margin_percent"})
		c.Fields.Add(&core.NumberField{Name: "discount_percent"})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_price"})
		c.Fields.Add(&core.NumberField{Name: "line_total"})
	})

	for _, name := range []string{"material_costs", "labor_costs", "ant_expenses", "transport_costs"} {
		ensureCollection(app, name, func(c *core.Collection) {
			c.Fields.Add(&core.RelationField{
				Name:          "quotation",
				Required:      true,
				CollectionId:  quotations.Id,
				CascadeDelete: true,
				MaxSelect:     1,
			})
			c.Fields.Add(&core.NumberField{Name: "cost_per_unit", Required: true})
			c.Fields.Add(&core.SelectField{
				Name:      "allocation_scope",
				Values:    []string{"per_unit", "partial", "total"},
				MaxSelect: 1,
			})
			c.Fields.Add(&core.NumberField{Name: "applied_count"})
			c.Fields.Add(&core.DateField{Name: "incurred_on"})
			c.Fields.Add(&core.TextField{Name: "document_ref"})
			c.Fields.Add(&core.TextField{Name: "notes"})
			c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		})
	}
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
