package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Lixing-Zhang/tableside-pos/internal/models"
	"github.com/shopspring/decimal"
)

func priced(id int, name, price string, qty int) models.OrderItem {
	return models.OrderItem{
		MenuItem: models.MenuItem{ID: id, Name: name, Price: decimal.RequireFromString(price)},
		Quantity: qty,
	}
}

func TestNewBill(t *testing.T) {
	issued := time.Date(2024, 3, 9, 19, 5, 0, 0, time.UTC)

	tests := []struct {
		name         string
		order        []models.OrderItem
		wantSubtotal string
		wantTax      string
		wantTotal    string
	}{
		{
			name:         "empty order",
			order:        []models.OrderItem{},
			wantSubtotal: "0",
			wantTax:      "0",
			wantTotal:    "0",
		},
		{
			name:         "single line",
			order:        []models.OrderItem{priced(1, "Bruschetta", "8.50", 2)},
			wantSubtotal: "17.00",
			wantTax:      "0.425",
			wantTotal:    "17.85",
		},
		{
			name: "several lines",
			order: []models.OrderItem{
				priced(4, "Spaghetti Carbonara", "16.00", 1),
				priced(13, "Sparkling Water", "3.50", 3),
				priced(9, "Tiramisu", "7.50", 2),
			},
			wantSubtotal: "41.50",
			wantTax:      "1.0375",
			wantTotal:    "43.575",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := models.Table{ID: 3, Status: models.StatusNeedsBill, Order: tt.order}

			bill := NewBill(table, "AB12CD34", issued)

			if bill.Number != "AB12CD34" || bill.TableID != 3 || !bill.IssuedAt.Equal(issued) {
				t.Errorf("bill header = %q/%d/%v", bill.Number, bill.TableID, bill.IssuedAt)
			}
			if len(bill.Lines) != len(tt.order) {
				t.Errorf("lines = %d, want %d", len(bill.Lines), len(tt.order))
			}
			assertAmount(t, "subtotal", bill.Subtotal, tt.wantSubtotal)
			assertAmount(t, "cgst", bill.CGST, tt.wantTax)
			assertAmount(t, "sgst", bill.SGST, tt.wantTax)
			assertAmount(t, "total", bill.Total, tt.wantTotal)
		})
	}
}

func TestNewBill_LinesAreCopied(t *testing.T) {
	order := []models.OrderItem{priced(1, "Bruschetta", "8.50", 1)}
	bill := NewBill(models.Table{ID: 1, Order: order}, "X", time.Now())

	order[0].Quantity = 10

	if bill.Lines[0].Quantity != 1 {
		t.Errorf("bill line changed with the order: quantity = %d", bill.Lines[0].Quantity)
	}
}

func TestWriteReceipt(t *testing.T) {
	table := models.Table{
		ID: 3,
		Order: []models.OrderItem{
			priced(1, "Bruschetta", "8.50", 2),
			priced(8, "Vegetable Lasagna With Extra Cheese", "15.50", 1),
		},
	}
	bill := NewBill(table, "AB12CD34", time.Date(2024, 3, 9, 19, 5, 0, 0, time.UTC))

	var buf bytes.Buffer
	if err := WriteReceipt(&buf, bill); err != nil {
		t.Fatalf("WriteReceipt() unexpected error = %v", err)
	}
	out := buf.String()

	wantFragments := []string{
		"Wix Restaurant",
		"123 Gastronomy Lane, Foodie City",
		"Phone: (123) 456-7890",
		"Bill No: AB12CD34",
		"Table: 3",
		"Date: 09/03/2024",
		"Time: 07:05 PM",
		"Bruschetta",
		"17.00",
		"Vegetable Lasagna …",
		"Subtotal:",
		"32.50",
		"CGST @2.5%:",
		"0.81",
		"TOTAL:",
		"₹34.13",
		"Thank you for your visit!",
	}
	for _, want := range wantFragments {
		if !strings.Contains(out, want) {
			t.Errorf("receipt missing %q\n%s", want, out)
		}
	}

	for i, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if n := len([]rune(line)); n > receiptWidth {
			t.Errorf("line %d is %d runes wide, max %d: %q", i, n, receiptWidth, line)
		}
	}
}

func TestWriteReceipt_LetterheadAndRounding(t *testing.T) {
	table := models.Table{ID: 3, Order: []models.OrderItem{priced(1, "Bruschetta", "8.50", 2)}}
	bill := NewBill(table, "AB12CD34", time.Date(2024, 3, 9, 19, 5, 0, 0, time.UTC))

	var buf bytes.Buffer
	if err := WriteReceipt(&buf, bill); err != nil {
		t.Fatalf("WriteReceipt() unexpected error = %v", err)
	}
	lines := strings.Split(buf.String(), "\n")

	for i, want := range letterhead {
		if strings.TrimSpace(lines[i]) != want {
			t.Errorf("line %d = %q, want centered %q", i, lines[i], want)
		}
		if !strings.HasPrefix(lines[i], " ") {
			t.Errorf("line %d = %q, want leading padding", i, lines[i])
		}
	}

	// Each tax line rounds on its own while the total rounds the exact sum.
	out := buf.String()
	for _, want := range []string{"CGST @2.5%:", "SGST @2.5%:"} {
		idx := strings.Index(out, want)
		if idx < 0 || !strings.Contains(out[idx:idx+receiptWidth+1], "0.43") {
			t.Errorf("receipt missing %q with 0.43\n%s", want, out)
		}
	}
	if !strings.Contains(out, "₹17.85") {
		t.Errorf("receipt total is not ₹17.85\n%s", out)
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "₹0.00"},
		{"17.85", "₹17.85"},
		{"0.425", "₹0.43"},
		{"1234.5", "₹1234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			if got := FormatCurrency(decimal.RequireFromString(tt.amount)); got != tt.want {
				t.Errorf("FormatCurrency(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func assertAmount(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}
