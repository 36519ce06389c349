package domain

import "strings"

// Target describes the single calendar date and page a run monitors.
type Target struct {
	// DateID is the class token carried by the date's paragraph, e.g. "2026-02-28".
	DateID string
	// DateLabel is the human-readable date used in messages and reservation links, e.g. "2026/02/28".
	DateLabel string
	URL       string
}

// ParseRecipients splits a comma separated phone number list, trimming whitespace and dropping empty
// entries. Order is preserved.
func ParseRecipients(raw string) []string {
	parts := strings.Split(raw, ",")
	recipients := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	return recipients
}
