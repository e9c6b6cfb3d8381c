// Package cart models a shopping cart as a guarded record: a plain list of
// line items and a computed total that is derived from it on every read.
package cart

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/guards/pkg/record"
)

// Field names on the cart record.
const (
	FieldItems = "items"
	FieldTotal = "total"
)

// LineItem is one entry in a cart.
type LineItem struct {
	ItemID   string `json:"item_id" yaml:"item_id"`
	UnitCost int64  `json:"unit_cost" yaml:"unit_cost"`
	Qty      int64  `json:"qty" yaml:"qty"`
}

// Cost returns UnitCost * Qty.
func (li LineItem) Cost() int64 { return li.UnitCost * li.Qty }

// Cart wraps a record with an items field and a total field.
type Cart struct {
	rec *record.Record
}

// New creates an empty cart. opts are passed to record.New. The total is
// declared before the items, so it serializes first.
func New(opts ...record.Option) (*Cart, error) {
	rec := record.New(nil, opts...)
	if err := rec.AttachComputed(FieldTotal, TotalCost); err != nil {
		return nil, fmt.Errorf("attach %s: %w", FieldTotal, err)
	}
	if err := rec.AttachPlain(FieldItems, []LineItem{}); err != nil {
		return nil, fmt.Errorf("attach %s: %w", FieldItems, err)
	}
	return &Cart{rec: rec}, nil
}

// TotalCost sums the cost of every line item visible through v.
func TotalCost(v record.View) any {
	items, _ := v.Value(FieldItems).([]LineItem)
	var total int64
	for _, it := range items {
		total += it.Cost()
	}
	return total
}

// Add appends a line item and returns it with its ItemID filled in.
func (c *Cart) Add(unitCost, qty int64) (LineItem, error) {
	item := LineItem{ItemID: generateUUID(), UnitCost: unitCost, Qty: qty}
	items, err := c.Items()
	if err != nil {
		return LineItem{}, err
	}
	if err := c.rec.Set(FieldItems, append(items, item)); err != nil {
		return LineItem{}, err
	}
	return item, nil
}

// Items returns a copy of the line items.
func (c *Cart) Items() ([]LineItem, error) {
	v, err := c.rec.Get(FieldItems)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]LineItem)
	if !ok {
		return nil, fmt.Errorf("%s holds %T, want []LineItem", FieldItems, v)
	}
	return append([]LineItem(nil), items...), nil
}

// Total returns the current derived total.
func (c *Cart) Total() (int64, error) {
	v, err := c.rec.Get(FieldTotal)
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// Record exposes the underlying record.
func (c *Cart) Record() *record.Record { return c.rec }

// generateUUID returns a UUID v7, falling back to v4.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
