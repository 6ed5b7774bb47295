package param

import (
	"fmt"
	"strconv"
	"strings"
)

// Common parameter formatters and parsers. All of them work on plain values.

// SecondsFormatter formats a duration given in seconds, switching to ms below one second
func SecondsFormatter(seconds float64) string {
	if seconds < 1 {
		return fmt.Sprintf("%.1f ms", seconds*1000)
	}
	return fmt.Sprintf("%.2f s", seconds)
}

// SecondsParser parses "120 ms", "0.12 s" or a bare number of seconds
func SecondsParser(str string) (float64, error) {
	str = strings.TrimSpace(str)
	if strings.HasSuffix(str, "ms") {
		val, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(str, "ms")), 64)
		if err != nil {
			return 0, err
		}
		return val / 1000, nil
	}
	str = strings.TrimSpace(strings.TrimSuffix(str, "s"))
	return strconv.ParseFloat(str, 64)
}

// PercentFormatter formats a 0-1 level as a percentage
func PercentFormatter(value float64) string {
	return fmt.Sprintf("%.0f%%", value*100)
}

// PercentParser parses "70%" (or a bare percentage) into a 0-1 level
func PercentParser(str string) (float64, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "%")
	val, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, err
	}
	return val / 100, nil
}

// SemitoneFormatter formats a signed pitch offset in semitones
func SemitoneFormatter(semitones float64) string {
	return fmt.Sprintf("%+.2f st", semitones)
}

// SemitoneParser parses "+0.25 st" or a bare number of semitones
func SemitoneParser(str string) (float64, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "st")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}
