package utils

import (
	"fmt"
	"regexp"
)

var (
	isoHoursRe   = regexp.MustCompile(`(\d+)H`)
	isoMinutesRe = regexp.MustCompile(`(\d+)M`)
)

// ParseISODuration parses an ISO-8601 duration of the form used by the
// distribution API (e.g. "PT2H45M", "PT55M") into total minutes.
// Returns 0 for anything that does not start with "PT".
func ParseISODuration(duration string) int {
	if len(duration) < 2 || duration[:2] != "PT" {
		return 0
	}

	rest := duration[2:]

	hours := 0
	if m := isoHoursRe.FindStringSubmatch(rest); m != nil {
		fmt.Sscanf(m[1], "%d", &hours)
	}

	minutes := 0
	if m := isoMinutesRe.FindStringSubmatch(rest); m != nil {
		fmt.Sscanf(m[1], "%d", &minutes)
	}

	return hours*60 + minutes
}

// ConvertMinutesToDuration convert minutes to duration format string
// Example: 125 -> "2h 5m"
func ConvertMinutesToDuration(durationInMinutes int64) string {

	h := durationInMinutes / 60
	m := durationInMinutes % 60

	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}

	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}

	return fmt.Sprintf("%dh %dm", h, m)
}

// ConvertDurationToMinutes convert duration format string to minutes
// Example: "2h 30m" -> 150
func ConvertDurationToMinutes(duration string) int64 {
	var h, m int64
	fmt.Sscanf(duration, "%dh %dm", &h, &m)

	return h*60 + m
}
