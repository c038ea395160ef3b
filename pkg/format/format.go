package format

import (
	"fmt"
	"math"
	"strings"
)

// Minutes renders a duration in minutes as e.g. "2 days 3 hr 25 min".
func Minutes(totalMinutes int) string {
	remaining := totalMinutes
	days := remaining / (60 * 24)
	remaining -= days * 60 * 24
	hours := remaining / 60
	remaining -= hours * 60

	var b strings.Builder
	if days == 1 {
		b.WriteString("1 day ")
	} else if days > 1 {
		fmt.Fprintf(&b, "%d days ", days)
	}
	if hours > 0 {
		fmt.Fprintf(&b, "%d hr ", hours)
	}
	if remaining > 0 {
		fmt.Fprintf(&b, "%d min", remaining)
	}
	return strings.TrimSpace(b.String())
}

// Price renders a dollar amount with thousands separators, e.g.
// "$1,250".
func Price(amount float64) string {
	rounded := math.Round(amount)

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	intStr := fmt.Sprintf("%.0f", rounded)
	formatted := addThousandsSeparator(intStr, ",")

	result := "$" + formatted
	if negative {
		result = "-" + result
	}

	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
