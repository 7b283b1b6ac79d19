package services

// Option group names. The four generic groups apply to every catalog item;
// the two custom groups only exist on kitchen items.
const (
	GroupColor      = "color"
	GroupMaterial   = "material"
	GroupCountertop = "countertop"
	GroupEdge       = "edge_finish"

	GroupDoorMaterial   = "door_material"
	GroupCountertopType = "countertop_type"
)

// KitchenCustomGroups lists the custom option groups in application order:
// door material is always priced before countertop type.
var KitchenCustomGroups = []string{GroupDoorMaterial, GroupCountertopType}

// Generic multiplicative factors per option value. A value of 1.0 matches
// the default already folded into the item's base price and is therefore
// never applied. Edge finish is free text and carries no factor.
var materialFactors = map[string]float64{
	"melamine":   1.0,
	"mdf":        1.15,
	"plywood":    1.2,
	"solid_wood": 1.3,
}

var countertopFactors = map[string]float64{
	"laminate": 1.0,
	"granite":  1.25,
	"quartz":   1.4,
	"marble":   1.5,
}

var colorFactors = map[string]float64{
	"white":     1.0,
	"wengue":    1.05,
	"walnut":    1.05,
	"two_tone":  1.1,
	"high_glow": 1.15,
}

// FactorFor returns the multiplicative factor for a generic option value.
// Unknown groups and unknown values return 1.0 -- an unrecognized selection
// must never block pricing.
func FactorFor(group, value string) float64 {
	var table map[string]float64
	switch group {
	case GroupMaterial:
		table = materialFactors
	case GroupCountertop:
		table = countertopFactors
	case GroupColor:
		table = colorFactors
	default:
		return 1.0
	}
	if f, ok := table[value]; ok {
		return f
	}
	return 1.0
}

// CustomOption is one named choice inside a catalog item's custom option
// group. AdditivePrice and Multiplier may both be configured; the additive
// amount is always applied before the multiplier.
type CustomOption struct {
	Name          string  `json:"name"`
	ImageRef      string  `json:"image_ref,omitempty"`
	AdditivePrice Money   `json:"additive_price,omitempty"`
	Multiplier    float64 `json:"multiplier,omitempty"`
}

// OptionCatalog lists the generic option values a catalog item offers.
type OptionCatalog struct {
	Colors       []string `json:"colors,omitempty"`
	Materials    []string `json:"materials,omitempty"`
	Countertops  []string `json:"countertops,omitempty"`
	EdgeFinishes []string `json:"edge_finishes,omitempty"`
}

// CustomOptionCatalog maps a custom option group (e.g. door_material) to its
// available choices.
type CustomOptionCatalog map[string][]CustomOption

// SelectedOptions is the customer's flat option-group -> value selection for
// a single pricing call.
type SelectedOptions map[string]string

// CustomPricingFor looks up the additive price and multiplier for a custom
// option value on the given item. Missing groups and values degrade to the
// identity adjustment {0, 1.0}.
func CustomPricingFor(item *CatalogItem, group, value string) (Money, float64) {
	for _, opt := range item.CustomOptions[group] {
		if opt.Name == value {
			mult := opt.Multiplier
			if mult == 0 {
				mult = 1.0
			}
			return opt.AdditivePrice, mult
		}
	}
	return 0, 1.0
}
