package timebank

import "fmt"

// FormatWorked renders minutes as "8h00min". Negative totals get a leading minus.
func FormatWorked(minutes int) string {
	if minutes < 0 {
		return "-" + hoursMinutes(-minutes)
	}
	return hoursMinutes(minutes)
}

// FormatBalance renders a signed balance such as "+0h00min" or "-1h30min".
func FormatBalance(minutes int) string {
	if minutes < 0 {
		return "-" + hoursMinutes(-minutes)
	}
	return "+" + hoursMinutes(minutes)
}

func hoursMinutes(minutes int) string {
	return fmt.Sprintf("%dh%02dmin", minutes/60, minutes%60)
}
