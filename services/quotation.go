package services

import "github.com/google/uuid"

// DefaultVATRate is the VAT percentage applied to new quotations.
const DefaultVATRate = 19.0

// QuoteLine is one line of a quotation. Exactly two implementations exist:
// *CatalogLine and *ManualLine. Consumers dispatch with a type switch over
// both; the unexported marker keeps the set closed.
type QuoteLine interface {
	LineID() string
	LineName() string
	Qty() int
	Unit() Money
	Total() Money

	quoteLine()
}

// CatalogLine is a quotation line backed by a catalog item. Item is a deep
// copy taken at add time: later catalog edits must never retroactively
// change an existing quotation.
type CatalogLine struct {
	ID        string
	Item      CatalogItem
	Options   SelectedOptions
	Quantity  int
	UnitPrice Money
	LineTotal Money
}

func (l *CatalogLine) LineID() string   { return l.ID }
func (l *CatalogLine) LineName() string { return l.Item.Name }
func (l *CatalogLine) Qty() int         { return l.Quantity }
func (l *CatalogLine) Unit() Money      { return l.UnitPrice }
func (l *CatalogLine) Total() Money     { return l.LineTotal }
func (*CatalogLine) quoteLine()         {}

// ManualLine is a free-form quotation line priced from its own materials,
// labor and extras.
type ManualLine struct {
	ID          string
	Name        string
	Description string
	Dimensions  string
	Materials   []MaterialUsage
	Labor       []LaborUsage
	Extras      []ExtraExpense
	MarginPct   float64
	DiscountPct float64
	Quantity    int
	UnitPrice   Money
	LineTotal   Money
}

func (l *ManualLine) LineID() string   { return l.ID }
func (l *ManualLine) LineName() string { return l.Name }
func (l *ManualLine) Qty() int         { return l.Quantity }
func (l *ManualLine) Unit() Money      { return l.UnitPrice }
func (l *ManualLine) Total() Money     { return l.LineTotal }
func (*ManualLine) quoteLine()         {}

// ManualLineSpec is the input for adding a manual line.
type ManualLineSpec struct {
	ID          string
	Name        string
	Description string
	Dimensions  string
	Materials   []MaterialUsage
	Labor       []LaborUsage
	Extras      []ExtraExpense
	MarginPct   float64
	DiscountPct float64
	Quantity    int
}

// Quotation is the ordered collection of quote lines plus the derived
// subtotal/discount/VAT/total figures. It is owned by a single caller;
// every mutating operation synchronously re-establishes the totals, so
// there is never a dirty state observable from outside.
type Quotation struct {
	ID           string
	CustomerName string
	Notes        string

	lines       []QuoteLine
	discountPct float64
	vatRate     float64

	subtotal       Money
	discountAmount Money
	vatAmount      Money
	total          Money
}

// NewQuotation creates an empty quotation with the default VAT rate.
func NewQuotation(id string) *Quotation {
	if id == "" {
		id = uuid.NewString()
	}
	return &Quotation{ID: id, vatRate: DefaultVATRate}
}

func (q *Quotation) Lines() []QuoteLine    { return q.lines }
func (q *Quotation) DiscountPct() float64  { return q.discountPct }
func (q *Quotation) VATRate() float64      { return q.vatRate }
func (q *Quotation) Subtotal() Money       { return q.subtotal }
func (q *Quotation) DiscountAmount() Money { return q.discountAmount }
func (q *Quotation) VATAmount() Money      { return q.vatAmount }
func (q *Quotation) Total() Money          { return q.total }

// SetVATRate overrides the VAT rate (used when rebuilding a persisted
// quotation) and recomputes totals.
func (q *Quotation) SetVATRate(rate float64) {
	if rate < 0 {
		rate = 0
	}
	q.vatRate = rate
	q.recompute()
}

// Line returns the line with the given id, or nil.
func (q *Quotation) Line(id string) QuoteLine {
	for _, l := range q.lines {
		if l.LineID() == id {
			return l
		}
	}
	return nil
}

// AddCatalogLine prices the item for the selected options, freezes an item
// snapshot into a new line and appends it. A quantity below 1 is clamped
// to 1. When id is empty a fresh one is generated.
func (q *Quotation) AddCatalogLine(id string, item CatalogItem, selected SelectedOptions, qty int) *CatalogLine {
	if id == "" {
		id = uuid.NewString()
	}
	if qty < 1 {
		qty = 1
	}

	snapshot := snapshotItem(item)
	unit := CalcCatalogUnitPrice(&snapshot, selected)

	opts := make(SelectedOptions, len(selected))
	for k, v := range selected {
		opts[k] = v
	}

	line := &CatalogLine{
		ID:        id,
		Item:      snapshot,
		Options:   opts,
		Quantity:  qty,
		UnitPrice: unit,
		LineTotal: unit * Money(qty),
	}
	q.lines = append(q.lines, line)
	q.recompute()
	return line
}

// AddManualLine prices a free-form item from its spec and appends it.
func (q *Quotation) AddManualLine(spec ManualLineSpec) *ManualLine {
	id := spec.ID
	if id == "" {
		id = uuid.NewString()
	}
	qty := spec.Quantity
	if qty < 1 {
		qty = 1
	}

	unit := CalcManualUnitPrice(spec.Materials, spec.Labor, spec.MarginPct, spec.Extras, spec.DiscountPct)

	line := &ManualLine{
		ID:          id,
		Name:        spec.Name,
		Description: spec.Description,
		Dimensions:  spec.Dimensions,
		Materials:   append([]MaterialUsage(nil), spec.Materials...),
		Labor:       append([]LaborUsage(nil), spec.Labor...),
		Extras:      append([]ExtraExpense(nil), spec.Extras...),
		MarginPct:   spec.MarginPct,
		DiscountPct: spec.DiscountPct,
		Quantity:    qty,
		UnitPrice:   unit,
		LineTotal:   unit * Money(qty),
	}
	q.lines = append(q.lines, line)
	q.recompute()
	return line
}

// RemoveLine removes the line with the given id and reports whether a line
// was removed.
func (q *Quotation) RemoveLine(id string) bool {
	for i, l := range q.lines {
		if l.LineID() == id {
			q.lines = append(q.lines[:i], q.lines[i+1:]...)
			q.recompute()
			return true
		}
	}
	return false
}

// SetQuantity updates a line's quantity. A quantity of zero or less removes
// the line. Reports whether the quotation changed.
func (q *Quotation) SetQuantity(id string, qty int) bool {
	if qty <= 0 {
		return q.RemoveLine(id)
	}
	line := q.Line(id)
	if line == nil {
		return false
	}
	switch l := line.(type) {
	case *CatalogLine:
		l.Quantity = qty
		l.LineTotal = l.UnitPrice * Money(qty)
	case *ManualLine:
		l.Quantity = qty
		l.LineTotal = l.UnitPrice * Money(qty)
	}
	q.recompute()
	return true
}

// Reoption replaces a catalog line's selected options and reprices it from
// the line's frozen item snapshot. Manual lines and unknown ids are a no-op;
// the return value reports whether a line was repriced.
func (q *Quotation) Reoption(id string, selected SelectedOptions) bool {
	line, ok := q.Line(id).(*CatalogLine)
	if !ok {
		return false
	}

	opts := make(SelectedOptions, len(selected))
	for k, v := range selected {
		opts[k] = v
	}
	line.Options = opts
	line.UnitPrice = CalcCatalogUnitPrice(&line.Item, opts)
	line.LineTotal = line.UnitPrice * Money(line.Quantity)
	q.recompute()
	return true
}

// SetDiscount sets the quotation-level discount percentage, clamped to
// 0-100, and recomputes totals. Line prices are untouched.
func (q *Quotation) SetDiscount(pct float64) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	q.discountPct = pct
	q.recompute()
}

// recompute derives subtotal, discount amount, VAT and total from scratch.
// Always a full pass over the lines: the line count is small and a full
// recompute cannot accumulate incremental-update bugs.
func (q *Quotation) recompute() {
	var subtotal Money
	for _, l := range q.lines {
		subtotal += l.Total()
	}
	q.subtotal = subtotal
	q.discountAmount = RoundMoney(float64(subtotal) * q.discountPct / 100)
	taxable := subtotal - q.discountAmount
	q.vatAmount = RoundMoney(float64(taxable) * q.vatRate / 100)
	q.total = taxable + q.vatAmount
}

// snapshotItem deep-copies a catalog item so the line keeps no reference
// into the live catalog record.
func snapshotItem(item CatalogItem) CatalogItem {
	out := item
	out.Options = OptionCatalog{
		Colors:       append([]string(nil), item.Options.Colors...),
		Materials:    append([]string(nil), item.Options.Materials...),
		Countertops:  append([]string(nil), item.Options.Countertops...),
		EdgeFinishes: append([]string(nil), item.Options.EdgeFinishes...),
	}
	if item.CustomOptions != nil {
		out.CustomOptions = make(CustomOptionCatalog, len(item.CustomOptions))
		for group, opts := range item.CustomOptions {
			out.CustomOptions[group] = append([]CustomOption(nil), opts...)
		}
	}
	out.Materials = append([]MaterialUsage(nil), item.Materials...)
	out.Labor = append([]LaborUsage(nil), item.Labor...)
	return out
}
