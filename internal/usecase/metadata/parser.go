// Package metadata extracts structured provider metadata from the opaque
// serialized blob that aggregator-sourced entries carry.
package metadata

import (
	"encoding/json"
	"strings"
)

// Metadata is the subset of provider fields the normalization engine reads.
// The provider blob carries many more fields; everything else is ignored.
type Metadata struct {
	Date     string   `json:"date"`
	DateTime string   `json:"datetime"`
	Category []string `json:"category"`
}

// Parse deserializes an entry's provider metadata blob.
// Absent, blank, or malformed input yields nil. Parse never returns an
// error: callers must treat nil as "no information available" and fall
// through to the next rule in their own priority order.
func Parse(raw string) *Metadata {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil
	}

	var m Metadata
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil
	}

	return &m
}
