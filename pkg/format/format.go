package format

import (
	"fmt"
	"math"
	"strings"
)

// Percent returns a signed percentage string (e.g., "+15.0%", "-5.0%").
func Percent(value float64) string {
	if value >= 0 {
		return fmt.Sprintf("+%.1f%%", value)
	}
	return fmt.Sprintf("-%.1f%%", math.Abs(value))
}

// Number returns a numeric string with thousands separators (e.g., "1,234.56").
func Number(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
	}
	return sign + formatPositiveNumber(math.Abs(value))
}

func formatPositiveNumber(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
