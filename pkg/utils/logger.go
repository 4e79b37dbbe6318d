package utils

import (
	"log"
	"strings"
)

// LogEvent prints a standardized line with module, action and request id.
// Never pass confirmation codes or message bodies here.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
