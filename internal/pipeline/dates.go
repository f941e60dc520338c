package pipeline

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// parseDate accepts calendar dates and full timestamps; export files from
// other tools are inconsistent about which they emit. Empty string means
// not provided.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{dateLayout, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
