package services

import "fmt"

// AllocationScope states how a recorded real cost relates to the quoted
// quantity.
type AllocationScope string

const (
	// ScopePerUnit: the figure is for one physical unit and is multiplied
	// by the quotation's item quantity.
	ScopePerUnit AllocationScope = "per_unit"
	// ScopePartial: the figure already covers AppliedCount units.
	ScopePartial AllocationScope = "partial"
	// ScopeTotal: the figure already covers the whole quoted quantity.
	ScopeTotal AllocationScope = "total"
)

// CostCategory identifies one of the four independent real-cost streams.
type CostCategory string

const (
	CostMaterials  CostCategory = "materials"
	CostLabor      CostCategory = "labor"
	CostAntExpense CostCategory = "ant_expense"
	CostTransport  CostCategory = "transport"
)

// MaterialityThreshold is the minimum budgeted amount (minor units) below
// which a percentage variance is meaningless and reported as absent.
const MaterialityThreshold Money = 1000

// RealCostRecord is one actually-incurred cost entry, recorded after the
// fact by operational staff. The reconciliation engine only reads these.
type RealCostRecord struct {
	ID           string          `json:"id"`
	Category     CostCategory    `json:"category"`
	CostPerUnit  Money           `json:"cost_per_unit"`
	Scope        AllocationScope `json:"allocation_scope"`
	AppliedCount int             `json:"applied_count,omitempty"`
	IncurredOn   string          `json:"incurred_on,omitempty"`
	DocumentRef  string          `json:"document_ref,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// RealCosts bundles the four per-category record streams for one quotation.
type RealCosts struct {
	Materials   []RealCostRecord
	Labor       []RealCostRecord
	AntExpenses []RealCostRecord
	Transport   []RealCostRecord
}

// InvalidScopeError reports a real-cost record whose allocation scope is
// missing or outside the enum. The engine refuses to guess here: defaulting
// silently would mis-total money. Legacy records are expected to have been
// backfilled by the startup migration.
type InvalidScopeError struct {
	RecordID string
	Scope    AllocationScope
}

func (e *InvalidScopeError) Error() string {
	return fmt.Sprintf("real-cost record %s has invalid allocation scope %q", e.RecordID, e.Scope)
}

// AllocatedTotal sums a category's records after applying each record's
// allocation scope against the quotation's item quantity.
func AllocatedTotal(records []RealCostRecord, itemQty int) (Money, error) {
	if itemQty < 1 {
		itemQty = 1
	}
	var total Money
	for _, r := range records {
		switch r.Scope {
		case ScopePerUnit:
			total += r.CostPerUnit * Money(itemQty)
		case ScopePartial:
			count := r.AppliedCount
			if count < 1 {
				count = 1
			}
			total += r.CostPerUnit * Money(count)
		case ScopeTotal:
			total += r.CostPerUnit
		default:
			return 0, &InvalidScopeError{RecordID: r.ID, Scope: r.Scope}
		}
	}
	return total, nil
}

// DominantQuantity is the item quantity real costs are allocated against:
// the first line with quantity above 1, else 1.
func DominantQuantity(q *Quotation) int {
	for _, l := range q.Lines() {
		if l.Qty() > 1 {
			return l.Qty()
		}
	}
	return 1
}

// BudgetedBreakdown is the cost/price breakdown a quotation promised,
// derived from its frozen line data.
type BudgetedBreakdown struct {
	Materials Money `json:"materials"`
	Labor     Money `json:"labor"`
	CostBase  Money `json:"cost_base"`
	VAT       Money `json:"vat"`
	Total     Money `json:"total"`
	Profit    Money `json:"profit"`
}

// RealBreakdown is what was actually spent.
type RealBreakdown struct {
	Materials   Money `json:"materials"`
	Labor       Money `json:"labor"`
	AntExpenses Money `json:"ant_expenses"`
	Transport   Money `json:"transport"`
	CostBase    Money `json:"cost_base"`
	VAT         Money `json:"vat"`
	TotalSpent  Money `json:"total_spent"`
	Profit      Money `json:"profit"`
}

// Variance is a signed budget-vs-real comparison for one category. DiffPct
// is nil (and NoBudgetData true) when the budgeted figure is below the
// materiality threshold: there is not enough budget data to compare
// against, which is different from a 0% variance.
type Variance struct {
	Budgeted     Money    `json:"budgeted"`
	Real         Money    `json:"real"`
	Diff         Money    `json:"diff"`
	DiffPct      *float64 `json:"diff_pct"`
	NoBudgetData bool     `json:"no_budget_data,omitempty"`
}

// ComparisonReport is the full budget-vs-actual reconciliation for one
// quotation.
type ComparisonReport struct {
	QuotationID  string            `json:"quotation_id"`
	ItemQuantity int               `json:"item_quantity"`
	Budgeted     BudgetedBreakdown `json:"budgeted"`
	Real         RealBreakdown     `json:"real"`
	Materials    Variance          `json:"materials_variance"`
	Labor        Variance          `json:"labor_variance"`
	CostBase     Variance          `json:"cost_base_variance"`
	Total        Variance          `json:"total_variance"`
}

// BudgetFromQuotation derives the budgeted breakdown from the quotation's
// lines. Per-line material and labor figures are stated per single unit of
// that line and are scaled by the line's own quantity; VAT and total come
// from the quotation's stored discount and VAT rate, never from the lines.
func BudgetFromQuotation(q *Quotation) BudgetedBreakdown {
	var materials, labor float64
	for _, line := range q.Lines() {
		switch l := line.(type) {
		case *CatalogLine:
			materials += perUnitMaterialCost(l.Item.Materials) * float64(l.Quantity)
			labor += perUnitLaborCost(l.Item.Labor) * float64(l.Quantity)
		case *ManualLine:
			materials += perUnitMaterialCost(l.Materials) * float64(l.Quantity)
			labor += perUnitLaborCost(l.Labor) * float64(l.Quantity)
		}
	}

	b := BudgetedBreakdown{
		Materials: RoundMoney(materials),
		Labor:     RoundMoney(labor),
		VAT:       q.VATAmount(),
		Total:     q.Total(),
	}
	b.CostBase = b.Materials + b.Labor
	b.Profit = b.Total - b.CostBase - b.VAT
	return b
}

func perUnitMaterialCost(materials []MaterialUsage) float64 {
	var cost float64
	for _, m := range materials {
		cost += m.Quantity * float64(m.UnitPrice)
	}
	return cost
}

func perUnitLaborCost(labor []LaborUsage) float64 {
	var cost float64
	for _, l := range labor {
		cost += l.Hours * float64(l.HourlyRate)
	}
	return cost
}

// CompareVariance builds the signed variance for one category.
func CompareVariance(budgeted, real Money) Variance {
	v := Variance{
		Budgeted: budgeted,
		Real:     real,
		Diff:     real - budgeted,
	}
	if budgeted >= MaterialityThreshold {
		pct := float64(v.Diff) / float64(budgeted) * 100
		v.DiffPct = &pct
	} else {
		v.NoBudgetData = true
	}
	return v
}

// BuildComparisonReport reconciles a quotation's budgeted breakdown against
// the four real-cost streams. Missing categories contribute zero; the only
// failure mode is a record with an invalid allocation scope.
//
// Real VAT is pinned to budgeted VAT: invoices are administrative records
// and VAT is never recomputed from them. Ant expenses and transport are
// totaled but excluded from the cost base -- they have no budgeted
// counterpart to compare against.
func BuildComparisonReport(q *Quotation, costs RealCosts) (*ComparisonReport, error) {
	itemQty := DominantQuantity(q)
	budgeted := BudgetFromQuotation(q)

	materials, err := AllocatedTotal(costs.Materials, itemQty)
	if err != nil {
		return nil, err
	}
	labor, err := AllocatedTotal(costs.Labor, itemQty)
	if err != nil {
		return nil, err
	}
	antExpenses, err := AllocatedTotal(costs.AntExpenses, itemQty)
	if err != nil {
		return nil, err
	}
	transport, err := AllocatedTotal(costs.Transport, itemQty)
	if err != nil {
		return nil, err
	}

	real := RealBreakdown{
		Materials:   materials,
		Labor:       labor,
		AntExpenses: antExpenses,
		Transport:   transport,
		CostBase:    materials + labor,
		VAT:         budgeted.VAT,
	}
	real.TotalSpent = materials + labor + antExpenses + transport + real.VAT
	real.Profit = budgeted.Total - real.TotalSpent

	return &ComparisonReport{
		QuotationID:  q.ID,
		ItemQuantity: itemQty,
		Budgeted:     budgeted,
		Real:         real,
		Materials:    CompareVariance(budgeted.Materials, real.Materials),
		Labor:        CompareVariance(budgeted.Labor, real.Labor),
		CostBase:     CompareVariance(budgeted.CostBase, real.CostBase),
		Total:        CompareVariance(budgeted.Total, real.TotalSpent),
	}, nil
}
