package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatCurrency 印尼盾格式：千位用点分隔，不带小数，如 Rp15.000
func FormatCurrency(amount float64) string {
	n := int64(math.Round(amount))
	neg := n < 0
	if neg {
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}

	out := "Rp" + b.String()
	if neg {
		out = "-" + out
	}
	return out
}

// FormatWhatsAppNumber 把纯数字号码排成 +62 838-9005-5830 的展示格式
func FormatWhatsAppNumber(raw string) string {
	var cleaned strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			cleaned.WriteRune(r)
		}
	}
	num := cleaned.String()
	if strings.HasPrefix(num, "62") {
		num = "+" + num
	}
	if len(num) < 10 {
		return num
	}

	country := num[:3]
	part1 := num[3:6]
	part2 := num[6:10]
	part3 := num[10:]
	return country + " " + part1 + "-" + part2 + "-" + part3
}
