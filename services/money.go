package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders v the Polish way: "1 234,56".
func FormatAmount(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "," + frac
}

// FormatPLN is FormatAmount with the currency: "1 234,56 zł".
func FormatPLN(v float64) string {
	return FormatAmount(v) + " zł"
}
