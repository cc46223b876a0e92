package utils

import "fmt"

// FormatLargeNumber renders dashboard totals: 999 -> "999",
// 1500 -> "1,500k", 2300000 -> "2,300m". Remainders are not zero padded.
func FormatLargeNumber(n int64) string {
	switch {
	case n < 1000:
		return fmt.Sprintf("%d", n)
	case n < 1_000_000:
		return fmt.Sprintf("%d,%dk", n/1000, n%1000)
	default:
		return fmt.Sprintf("%d,%dm", n/1_000_000, (n/1000)%1000)
	}
}
