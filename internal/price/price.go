package price

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol префикс всех цен на витрине
const CurrencySymbol = "₹"

// Format форматирует сумму по правилам en-IN: ₹12,34,567.50
// Всегда ровно два знака после точки.
func Format(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	return sign + CurrencySymbol + groupIndian(intPart) + "." + fracPart
}

// groupIndian: последние три цифры отдельно, дальше группы по две
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(groups, ",") + "," + tail
}
