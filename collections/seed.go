package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/idocstoreapp/cotizador-app-sub001/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type catalogDef struct {
	name          string
	category      string
	basePrice     float64
	colors        []string
	materials     []string
	countertops   []string
	edgeFinishes  []string
	customOptions services.CustomOptionCatalog
	bomMaterials  []services.MaterialUsage
	bomLabor      []services.LaborUsage
	marginPercent float64
}

// Seed populates the catalog with a realistic furniture line-up. It is safe
// to call on every startup because it returns early if any catalog records
// already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if catalog already populated ───────────────
	catalogCol, err := app.FindCollectionByNameOrId("catalog_items")
	if err != nil {
		return fmt.Errorf("seed: could not find catalog_items collection: %w", err)
	}
	existing, err := app.FindAllRecords(catalogCol)
	if err != nil {
		return fmt.Errorf("seed: could not query catalog_items: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: catalog_items collection is empty – inserting seed data …")

	createItem := func(d catalogDef) error {
		r := core.NewRecord(catalogCol)
		r.Set("name", d.name)
		r.Set("category", d.category)
		r.Set("base_price", d.basePrice)
		r.Set("colors", d.colors)
		r.Set("materials", d.materials)
		r.Set("countertops", d.countertops)
		r.Set("edge_finishes", d.edgeFinishes)
		if d.customOptions != nil {
			r.Set("custom_options", d.customOptions)
		}
		if d.bomMaterials != nil {
			r.Set("bom_materials", d.bomMaterials)
		}
		if d.bomLabor != nil {
			r.Set("bom_labor", d.bomLabor)
		}
		r.Set("margin_percent", d.marginPercent)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save catalog item %q: %w", d.name, err)
		}
		return nil
	}

	items := []catalogDef{
		{
			name:      "Cocina integral 3.0m lineal",
			category:  "kitchen",
			basePrice: 5200000,
			colors:    []string{"white", "wengue", "walnut", "two_tone", "high_glow"},
			materials: []string{"melamine", "mdf"},
			customOptions: services.CustomOptionCatalog{
				services.GroupDoorMaterial: {
					{Name: "melamine_textured", AdditivePrice: 0},
					{Name: "thermofoil", AdditivePrice: 350000},
					{Name: "lacquered_mdf", Multiplier: 1.2},
				},
				services.GroupCountertopType: {
					{Name: "postformed_laminate", AdditivePrice: 0},
					{Name: "granite_slab", Multiplier: 1.15},
					{Name: "quartz_slab", Multiplier: 1.28},
				},
			},
			bomMaterials: []services.MaterialUsage{
				{Name: "Lámina melamina 18mm", Quantity: 9, UnitPrice: 185000},
				{Name: "Herrajes y correderas", Quantity: 1, UnitPrice: 420000},
				{Name: "Canto rígido 22mm", Quantity: 60, UnitPrice: 2500},
			},
			bomLabor: []services.LaborUsage{
				{Name: "Corte y armado", Hours: 32, HourlyRate: 18000},
				{Name: "Instalación", Hours: 16, HourlyRate: 22000},
			},
			marginPercent: 35,
		},
		{
			name:      "Closet corredizo 2.4m",
			category:  "closet",
			basePrice: 2800000,
			colors:    []string{"white", "wengue", "walnut"},
			materials: []string{"melamine", "mdf", "plywood", "solid_wood"},
			bomMaterials: []services.MaterialUsage{
				{Name: "Lámina melamina 15mm", Quantity: 6, UnitPrice: 165000},
				{Name: "Kit puertas corredizas", Quantity: 1, UnitPrice: 380000},
			},
			bomLabor: []services.LaborUsage{
				{Name: "Corte y armado", Hours: 20, HourlyRate: 18000},
				{Name: "Instalación", Hours: 8, HourlyRate: 22000},
			},
			marginPercent: 30,
		},
		{
			name:         "Mueble de baño flotante 80cm",
			category:     "bathroom",
			basePrice:    1450000,
			colors:       []string{"white", "wengue"},
			materials:    []string{"mdf", "plywood"},
			countertops:  []string{"laminate", "granite", "quartz", "marble"},
			edgeFinishes: []string{"straight", "beveled", "rounded"},
			bomMaterials: []services.MaterialUsage{
				{Name: "Lámina MDF hidrófugo", Quantity: 3, UnitPrice: 210000},
				{Name: "Lavamanos de empotrar", Quantity: 1, UnitPrice: 180000},
			},
			bomLabor: []services.LaborUsage{
				{Name: "Fabricación", Hours: 14, HourlyRate: 18000},
				{Name: "Instalación", Hours: 4, HourlyRate: 22000},
			},
			marginPercent: 32,
		},
		{
			name:      "Centro de entretenimiento 2.0m",
			category:  "living",
			basePrice: 1900000,
			colors:    []string{"white", "walnut", "two_tone"},
			materials: []string{"melamine", "mdf", "solid_wood"},
			bomMaterials: []services.MaterialUsage{
				{Name: "Lámina melamina 18mm", Quantity: 4, UnitPrice: 185000},
				{Name: "Herrajes y tiradores", Quantity: 1, UnitPrice: 150000},
			},
			bomLabor: []services.LaborUsage{
				{Name: "Corte y armado", Hours: 16, HourlyRate: 18000},
				{Name: "Instalación", Hours: 5, HourlyRate: 22000},
			},
			marginPercent: 28,
		},
	}

	for _, d := range items {
		if err := createItem(d); err != nil {
			return err
		}
	}

	log.Printf("seed: inserted %d catalog items\n", len(items))
	return nil
}
