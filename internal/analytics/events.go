package analytics

import "time"

type EventType string

const (
	EventSearch     EventType = "search"
	EventNoMatch    EventType = "no_match"
	EventIndexBuilt EventType = "index_built"
)

type SearchEvent struct {
	Type      EventType `json:"type"`
	First     string    `json:"first"`
	Second    string    `json:"second"`
	Matched   bool      `json:"matched"`
	Returned  int       `json:"returned"`
	CacheHit  bool      `json:"cache_hit"`
	LatencyUs int64     `json:"latency_us"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

type IndexEvent struct {
	Type        EventType `json:"type"`
	Documents   int       `json:"documents"`
	Keywords    int       `json:"keywords"`
	Occurrences int       `json:"occurrences"`
	LatencyMs   int64     `json:"latency_ms"`
	Timestamp   time.Time `json:"timestamp"`
}
