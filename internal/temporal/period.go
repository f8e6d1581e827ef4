package temporal

import (
	"fmt"
	"strings"
	"time"
)

// Granularity selects the calendar period messages bucket into.
type Granularity string

const (
	Monthly   Granularity = "month"
	Quarterly Granularity = "quarter"
)

// ParseGranularity maps a config string onto a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "month", "monthly":
		return Monthly, nil
	case "quarter", "quarterly":
		return Quarterly, nil
	}
	return "", fmt.Errorf("unknown granularity %q", s)
}

// PeriodKey derives the bucket key for one timestamp: "2024-03" for months,
// "2024-Q1" for quarters. Both forms sort chronologically as plain strings.
func PeriodKey(t time.Time, g Granularity) string {
	if g == Quarterly {
		return fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
	}
	return t.Format("2006-01")
}
