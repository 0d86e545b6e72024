package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is the printable summary of a table's order with its tax breakdown.
type Bill struct {
	Number   string          `json:"number"`
	TableID  int             `json:"tableId"`
	Lines    []OrderItem     `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	CGST     decimal.Decimal `json:"cgst"`
	SGST     decimal.Decimal `json:"sgst"`
	Total    decimal.Decimal `json:"total"`
	IssuedAt time.Time       `json:"issuedAt"`
}
