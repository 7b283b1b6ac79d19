package services

// Item categories.
const (
	CategoryKitchen  = "kitchen"
	CategoryCloset   = "closet"
	CategoryBathroom = "bathroom"
	CategoryLiving   = "living"
	CategoryOther    = "other"
)

// CatalogItem is a predefined furniture product. BasePrice is fully loaded:
// it already reflects the item's default configuration, so a selection that
// matches a default (factor 1.0) is a no-op during pricing. Materials, Labor
// and MarginPct describe the item's budgeted cost makeup and are frozen into
// quote lines at add time.
type CatalogItem struct {
	ID            string
	Name          string
	Category      string
	BasePrice     Money
	Options       OptionCatalog
	CustomOptions CustomOptionCatalog
	Materials     []MaterialUsage
	Labor         []LaborUsage
	MarginPct     float64
}

// MaterialUsage is one material input: quantity consumed per single unit of
// the item, at a given unit price.
type MaterialUsage struct {
	Name      string  `json:"name,omitempty"`
	Quantity  float64 `json:"quantity"`
	UnitPrice Money   `json:"unit_price"`
}

// LaborUsage is one labor input per single unit of the item.
type LaborUsage struct {
	Name       string  `json:"name,omitempty"`
	Hours      float64 `json:"hours"`
	HourlyRate Money   `json:"hourly_rate"`
}

// ExtraExpense is a flat extra cost on a manual line.
type ExtraExpense struct {
	Label  string `json:"label,omitempty"`
	Amount Money  `json:"amount"`
}

// CalcCatalogUnitPrice computes the unit price of a catalog item for a given
// option selection. The calculation is total: every lookup miss degrades to
// the identity adjustment, so pricing never fails.
//
// Order is fixed: base price, then the generic multipliers (material,
// countertop, color -- skipped when the factor equals 1.0 to avoid
// re-applying a default already folded into the base price), then, for
// kitchen items only, each custom group's additive amount followed by its
// multiplier. The result is rounded half-up to the nearest 1000.
func CalcCatalogUnitPrice(item *CatalogItem, selected SelectedOptions) Money {
	price := float64(item.BasePrice)

	for _, group := range []string{GroupMaterial, GroupCountertop, GroupColor} {
		value, ok := selected[group]
		if !ok || value == "" {
			continue
		}
		if factor := FactorFor(group, value); factor != 1.0 {
			price *= factor
		}
	}

	if item.Category == CategoryKitchen {
		for _, group := range KitchenCustomGroups {
			value, ok := selected[group]
			if !ok || value == "" {
				continue
			}
			additive, mult := CustomPricingFor(item, group, value)
			price += float64(additive)
			if mult != 1.0 {
				price *= mult
			}
		}
	}

	if price < 0 {
		price = 0
	}
	return RoundToThousand(price)
}

// CalcManualUnitPrice computes the unit price of a free-form manual item:
// summed material, labor and extra costs, marked up by marginPct, optionally
// discounted. Manual items are priced to the unit, not to the nearest 1000.
func CalcManualUnitPrice(materials []MaterialUsage, labor []LaborUsage, marginPct float64, extras []ExtraExpense, discountPct float64) Money {
	var cost float64
	for _, m := range materials {
		cost += m.Quantity * float64(m.UnitPrice)
	}
	for _, l := range labor {
		cost += l.Hours * float64(l.HourlyRate)
	}
	for _, x := range extras {
		cost += float64(x.Amount)
	}

	withMargin := cost * (1 + marginPct/100)
	final := withMargin
	if discountPct > 0 {
		final = withMargin * (1 - discountPct/100)
	}
	if final < 0 {
		final = 0
	}
	return RoundMoney(final)
}

// MaterialCost sums quantity x unit price over a material list.
func MaterialCost(materials []MaterialUsage) Money {
	var cost float64
	for _, m := range materials {
		cost += m.Quantity * float64(m.UnitPrice)
	}
	return RoundMoney(cost)
}

// LaborCost sums hours x hourly rate over a labor list.
func LaborCost(labor []LaborUsage) Money {
	var cost float64
	for _, l := range labor {
		cost += l.Hours * float64(l.HourlyRate)
	}
	return RoundMoney(cost)
}
