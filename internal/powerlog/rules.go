// Package powerlog reconstructs screen-on, sleep and charge activity
// from the raw text of the macOS power-management event log
// (`pmset -g log`) and aggregates it into drain statistics.
package powerlog

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timeLayout matches pmset's fixed-width timestamp with UTC offset,
// e.g. "2024-01-15 10:00:00 +0000".
const timeLayout = "2006-01-02 15:04:05 -0700"

var timestampRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} [+-]\d{4}`)

// parseTimestamp extracts the embedded timestamp from a log line.
// Lines without one contribute nothing to the scan.
func parseTimestamp(line string) (time.Time, bool) {
	match := timestampRe.FindString(line)
	if match == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(timeLayout, match)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// batteryRule extracts a battery percentage from a line.
type batteryRule struct {
	name string
	re   *regexp.Regexp
}

// batteryRules are tried in order, first match wins: the explicit
// "Charge: N" annotation outranks a bare "N%".
var batteryRules = []batteryRule{
	{name: "charge", re: regexp.MustCompile(`Charge:\s*(\d+)`)},
	{name: "percent", re: regexp.MustCompile(`(\d+)%`)},
}

// parseBatteryLevel extracts a battery percentage from a log line.
// Lines matching no rule report false and the caller carries the
// previously known level forward.
func parseBatteryLevel(line string) (int, bool) {
	for _, rule := range batteryRules {
		match := rule.re.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		level, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		return level, true
	}
	return 0, false
}

// Event markers as they appear in pmset log lines. Note that
// "DarkWake from ..." lines also contain the wake marker as a
// substring, so dark-wake must be checked first.
const (
	markerDisplayOn  = "Display is turned on"
	markerDisplayOff = "Display is turned off"
	markerSleepEntry = "Entering Sleep"
	markerWake       = "Wake from"
	markerDarkWake   = "DarkWake"
)

// acMarkers indicate the machine was connected to AC power.
var acMarkers = []string{"Using AC", "AC Power"}

// hasACMarker reports whether the line carries an AC-power marker.
func hasACMarker(line string) bool {
	for _, marker := range acMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
