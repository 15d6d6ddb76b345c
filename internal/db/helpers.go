package db

import "strings"

// NullIfEmpty helps store optional strings without writing empty values.
func NullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
