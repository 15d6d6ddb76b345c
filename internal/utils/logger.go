package utils

import (
	"log"
	"strings"
)

// LogEvent prints one standardized line per business action. Modules in
// this codebase: auth, product, order, receipt, dashboard. Keep message
// a short summary; never log credentials or tokens.
func LogEvent(requestID, module, action, message string) {
	rid := strings.TrimSpace(requestID)
	if rid == "" {
		rid = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, rid, message)
}
