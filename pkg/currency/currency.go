// Package currency formats whole-rupee amounts for display.
package currency

import "fmt"

// FormatRupees renders a whole-rupee amount as "Rs <n>". Prices carry no
// minor units, so no rounding is involved.
func FormatRupees(amount int64) string {
	return fmt.Sprintf("Rs %d", amount)
}
