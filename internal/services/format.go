package services

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var yenPrinter = message.NewPrinter(language.Japanese)

// formatYen renders an amount with grouping separators, e.g. ¥12,500.
func formatYen(amount int) string {
	return yenPrinter.Sprintf("¥%d", amount)
}
