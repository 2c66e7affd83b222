package utils

import "time"

// FormatDate formata uma data no padrão ISO aceito pelos backends
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
