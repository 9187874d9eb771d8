package textparse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	isoDurationRe = regexp.MustCompile(`(?i)PT(\d+)([HM])`)
	naturalTimeRe = regexp.MustCompile(`(?i)(\d+)\s*(hour|hr|minute|min)`)
)

// ParseDuration converts an ISO-8601 duration or a natural-language time
// string into minutes. Only the first unit group is matched, so combined
// forms like "1 hour 30 minutes" or "PT1H30M" truncate to 60. Unparseable
// input returns 0.
func ParseDuration(s string) int {
	if s == "" {
		return 0
	}

	if m := isoDurationRe.FindStringSubmatch(s); m != nil {
		value, _ := strconv.Atoi(m[1])
		if strings.EqualFold(m[2], "H") {
			return value * 60
		}
		return value
	}

	if m := naturalTimeRe.FindStringSubmatch(s); m != nil {
		value, _ := strconv.Atoi(m[1])
		if strings.HasPrefix(strings.ToLower(m[2]), "h") {
			return value * 60
		}
		return value
	}

	return 0
}
