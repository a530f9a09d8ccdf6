// Package money formats shilling amounts for user-facing messages.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format renders an amount as "KES 1,234.50".
func Format(amount decimal.Decimal) string {
	return printer.Sprintf("KES %.2f", amount.Round(2).InexactFloat64())
}

// Whole truncates an amount to whole shillings, the unit the gateway accepts.
func Whole(amount decimal.Decimal) int64 {
	return amount.Truncate(0).IntPart()
}
