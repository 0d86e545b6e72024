package service

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Lixing-Zhang/tableside-pos/internal/models"
	"github.com/shopspring/decimal"
)

// letterhead is printed centered at the top of every receipt.
var letterhead = []string{
	"Wix Restaurant",
	"123 Gastronomy Lane, Foodie City",
	"Phone: (123) 456-7890",
}

const (
	receiptWidth  = 42
	currencySign  = "₹"
	nameColumn    = 20
	receiptFooter = "Thank you for your visit!"
)

// WriteReceipt renders bill as a fixed-width plain-text receipt for printing.
//
// Every amount is rounded to two decimals on its own, so the printed CGST and
// SGST lines can differ by a cent from TOTAL minus Subtotal (17.00 prints
// 0.43 + 0.43 with a total of 17.85).
func WriteReceipt(w io.Writer, bill models.Bill) error {
	bw := bufio.NewWriter(w)
	rule := strings.Repeat("-", receiptWidth)

	for _, line := range letterhead {
		centered(bw, line)
	}
	fmt.Fprintln(bw, rule)
	twoColumns(bw, "Bill No: "+bill.Number, fmt.Sprintf("Table: %d", bill.TableID))
	twoColumns(bw, "Date: "+bill.IssuedAt.Format("02/01/2006"), "Time: "+bill.IssuedAt.Format("03:04 PM"))
	fmt.Fprintln(bw, rule)
	fmt.Fprintf(bw, "%-*s %4s %8s %8s\n", nameColumn-1, "Item", "Qty", "Price", "Amount")
	for _, line := range bill.Lines {
		fmt.Fprintf(bw, "%-*s %4d %8s %8s\n",
			nameColumn-1, truncate(line.Name, nameColumn-1),
			line.Quantity, money(line.Price), money(line.Subtotal()))
	}
	fmt.Fprintln(bw, rule)
	twoColumns(bw, "Subtotal:", money(bill.Subtotal))
	twoColumns(bw, "CGST @2.5%:", money(bill.CGST))
	twoColumns(bw, "SGST @2.5%:", money(bill.SGST))
	fmt.Fprintln(bw, rule)
	twoColumns(bw, "TOTAL:", FormatCurrency(bill.Total))
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, receiptFooter)

	return bw.Flush()
}

// FormatCurrency renders amount with the currency sign and two decimals.
func FormatCurrency(amount decimal.Decimal) string {
	return currencySign + money(amount)
}

func money(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func twoColumns(w io.Writer, left, right string) {
	pad := receiptWidth - len([]rune(left))
	if pad < 1 {
		pad = 1
	}
	fmt.Fprintf(w, "%s%*s\n", left, pad, right)
}

func centered(w io.Writer, text string) {
	text = truncate(text, receiptWidth)
	pad := (receiptWidth - len([]rune(text))) / 2
	fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", pad), text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
