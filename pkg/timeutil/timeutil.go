// Package timeutil converts between user-entered time text and seconds.
package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ParseTime parses H:MM:SS, MM:SS, or a bare number of seconds.
// Parsing is lenient: an unparseable or negative component counts as 0 and
// empty input yields 0, so text that is still being typed never errors.
// Any other text is read up to the end of its leading number, so "12abc" is
// 12 and "1:2:3:4" is 1.
func ParseTime(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	if strings.Contains(text, ":") {
		parts := strings.Split(text, ":")
		switch len(parts) {
		case 3:
			return component(parts[0])*3600 + component(parts[1])*60 + component(parts[2])
		case 2:
			return component(parts[0])*60 + component(parts[1])
		}
	}

	return component(leadingNumber.FindString(text))
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseStrict parses the same formats as ParseTime but reports malformed input
// instead of treating it as 0.
func ParseStrict(text string) (float64, error) {
	text = strings.TrimSpace(text)
	parts := strings.Split(text, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("expected H:MM:SS, MM:SS, or seconds, got '%s'", text)
	}

	total := 0.0
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("expected H:MM:SS, MM:SS, or seconds, got '%s'", text)
		}
		total = total*60 + v
	}
	return total, nil
}

// component parses one numeric field, clamping garbage and negatives to 0.
func component(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// split breaks whole seconds (floored) into hours, minutes and seconds.
func split(seconds float64) (hours, mins, secs int) {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	return total / 3600, (total % 3600) / 60, total % 60
}

// FormatTimeInput formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
// Hours are always present; this is the canonical stored form of a segment bound.
func FormatTimeInput(seconds float64) string {
	h, m, s := split(seconds)
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// FormatTimeDisplay formats seconds as H:MM:SS when an hour or more, else M:SS.
func FormatTimeDisplay(seconds float64) string {
	h, m, s := split(seconds)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatFFmpeg renders seconds with millisecond precision for -ss and -t.
func FormatFFmpeg(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
