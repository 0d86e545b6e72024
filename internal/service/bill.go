package service

import (
	"time"

	"github.com/Lixing-Zhang/tableside-pos/internal/models"
	"github.com/shopspring/decimal"
)

// Fixed tax split applied to every bill: 2.5% central + 2.5% state GST.
var (
	CGSTRate = decimal.RequireFromString("0.025")
	SGSTRate = decimal.RequireFromString("0.025")
)

// NewBill computes the bill for t. Amounts are exact; rounding to two
// decimals happens only when the bill is displayed.
func NewBill(t models.Table, number string, issuedAt time.Time) models.Bill {
	lines := make([]models.OrderItem, len(t.Order))
	copy(lines, t.Order)

	subtotal := models.SumItems(lines)
	cgst := subtotal.Mul(CGSTRate)
	sgst := subtotal.Mul(SGSTRate)

	return models.Bill{
		Number:   number,
		TableID:  t.ID,
		Lines:    lines,
		Subtotal: subtotal,
		CGST:     cgst,
		SGST:     sgst,
		Total:    subtotal.Add(cgst).Add(sgst),
		IssuedAt: issuedAt,
	}
}
