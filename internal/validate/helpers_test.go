package validate

import "fmt"

func formatHMS(h, m, s int) string {
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

func formatMS(m, s int) string {
	return fmt.Sprintf("%02d:%02d", m, s)
}
