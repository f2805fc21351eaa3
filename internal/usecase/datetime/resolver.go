// Package datetime derives the canonical calendar date and, when one was
// genuinely recorded, the canonical time-of-day for a single entry.
package datetime

import (
	"time"

	"github.com/younes-makhtoum/flash-track-money-sub000/internal/domain"
	"github.com/younes-makhtoum/flash-track-money-sub000/internal/usecase/metadata"
)

const (
	// DateLayout is the canonical calendar date format of resolved dates
	DateLayout = "2006-01-02"

	// TimeLayout is the canonical wall-time format of resolved times
	TimeLayout = "15:04:05"
)

// sentinelTimes are provider/client placeholder defaults, not real event
// times. The list is a fixed upstream policy; widening it is a policy
// change, not an engine change.
var sentinelTimes = map[string]struct{}{
	"00:00:00": {},
	"01:00:00": {},
}

// timestampLayouts are the wire formats the two upstream sources emit,
// most specific first.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// Meaningful reports whether an HH:MM:SS value is a real recorded time
// rather than a placeholder default
func Meaningful(hms string) bool {
	if hms == "" {
		return false
	}
	_, sentinel := sentinelTimes[hms]
	return !sentinel
}

// ResolveDate derives the canonical calendar date for an entry.
// Aggregator-sourced entries frequently post a settlement date in the entry's
// own date field that differs from the true transaction date, so the provider
// metadata date, when present, is authoritative:
//  1. Metadata date field.
//  2. Calendar component of a parseable metadata datetime.
//  3. The entry's own date field.
//
// Unparseable values pass through verbatim rather than aborting the entry.
func ResolveDate(entry domain.RawEntry, meta *metadata.Metadata) string {
	if meta != nil && meta.Date != "" {
		if ts, ok := parseTimestamp(meta.Date); ok {
			return ts.Format(DateLayout)
		}
		return meta.Date
	}

	if meta != nil && meta.DateTime != "" {
		if ts, ok := parseTimestamp(meta.DateTime); ok {
			return ts.Format(DateLayout)
		}
	}

	if ts, ok := parseTimestamp(entry.Date); ok {
		return ts.Format(DateLayout)
	}
	return entry.Date
}

// ResolveTime derives the canonical time-of-day for an entry, if one was
// genuinely recorded. The boolean result is false when no meaningful time
// exists.
//
// Bank-linked entries only ever get a time from the provider metadata
// datetime; their own date field's time component is documented as unreliable
// and is never consulted. Manual entries fall back from their date field's
// time component to the locally recorded override timestamp.
func ResolveTime(entry domain.RawEntry, meta *metadata.Metadata, overrides domain.TimeOverrides, bankLinked bool) (string, bool) {
	if bankLinked {
		if meta != nil && meta.DateTime != "" {
			if ts, ok := parseTimestamp(meta.DateTime); ok {
				if hms := ts.Format(TimeLayout); Meaningful(hms) {
					return hms, true
				}
			}
		}
		return "", false
	}

	if ts, ok := parseTimestamp(entry.Date); ok {
		if hms := ts.Format(TimeLayout); Meaningful(hms) {
			return hms, true
		}
	}

	if ts, ok := overrides[entry.ID]; ok {
		if hms := ts.Format(TimeLayout); Meaningful(hms) {
			return hms, true
		}
	}

	return "", false
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
