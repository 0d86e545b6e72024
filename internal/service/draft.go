package service

import (
	"context"
	"errors"

	"github.com/Lixing-Zhang/tableside-pos/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyDraft    = errors.New("draft has no items")
	ErrNoTargetTable = errors.New("no target table chosen")
)

// OrderCreator opens orders on tables. *Store implements it.
type OrderCreator interface {
	CreateOrder(ctx context.Context, tableID int, items []models.OrderItem)
}

// Draft is a working order being composed before it is assigned to a table.
// Lines keep the order in which their menu items were first added.
// A Draft is not safe for concurrent use.
type Draft struct {
	lines []models.OrderItem
}

// NewDraft creates an empty draft
func NewDraft() *Draft {
	return &Draft{lines: []models.OrderItem{}}
}

// AddItem adds one unit of item, merging into an existing line for the same id.
func (d *Draft) AddItem(item models.MenuItem) {
	if i := d.indexOf(item.ID); i >= 0 {
		d.lines[i].Quantity++
		return
	}
	d.lines = append(d.lines, models.OrderItem{MenuItem: item, Quantity: 1})
}

// RemoveItem drops the line for itemID regardless of its quantity.
func (d *Draft) RemoveItem(itemID int) {
	if i := d.indexOf(itemID); i >= 0 {
		d.lines = append(d.lines[:i], d.lines[i+1:]...)
	}
}

// ChangeQuantity adds delta to the line for itemID. The quantity never drops
// below zero and a line reaching zero is removed.
func (d *Draft) ChangeQuantity(itemID, delta int) {
	i := d.indexOf(itemID)
	if i < 0 {
		return
	}

	d.lines[i].Quantity = max(0, d.lines[i].Quantity+delta)
	if d.lines[i].Quantity == 0 {
		d.RemoveItem(itemID)
	}
}

// Lines returns a copy of the draft's lines.
func (d *Draft) Lines() []models.OrderItem {
	lines := make([]models.OrderItem, len(d.lines))
	copy(lines, d.lines)
	return lines
}

// Total returns the sum of price * quantity over all lines.
func (d *Draft) Total() decimal.Decimal {
	return models.SumItems(d.lines)
}

func (d *Draft) IsEmpty() bool {
	return len(d.lines) == 0
}

// Commit opens an order with the draft's lines on tableID. A tableID of zero
// or less means no table was chosen. Nothing happens when the draft is empty
// or no table was chosen.
func (d *Draft) Commit(ctx context.Context, orders OrderCreator, tableID int) error {
	if d.IsEmpty() {
		return ErrEmptyDraft
	}
	if tableID <= 0 {
		return ErrNoTargetTable
	}

	orders.CreateOrder(ctx, tableID, d.Lines())
	return nil
}

func (d *Draft) indexOf(itemID int) int {
	for i, line := range d.lines {
		if line.ID == itemID {
			return i
		}
	}
	return -1
}
