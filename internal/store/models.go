package store

import "strings"

// Link is a single saved-link record. Records are immutable after creation:
// the id and timestamp are assigned by the store and never change.
type Link struct {
	ID        int64    `json:"id"`
	URL       string   `json:"url"`
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Timestamp string   `json:"timestamp"` // RFC3339, set at insertion
	Tags      []string `json:"tags"`
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
