package param

import (
	"fmt"
	"strconv"
	"strings"
)

// DecibelFormatter formats dB values
func DecibelFormatter(db float64) string {
	if db <= -60 {
		return "-∞ dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}

// DecibelParser parses dB strings
func DecibelParser(str string) (float64, error) {
	if strings.Contains(str, "∞") || strings.Contains(str, "inf") {
		return -96.0, nil // Practical minimum
	}
	str = strings.TrimSuffix(strings.TrimSpace(str), "dB")
	str = strings.TrimSuffix(strings.TrimSpace(str), "db")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// PercentFormatter formats percentage values
func PercentFormatter(value float64) string {
	return fmt.Sprintf("%.0f%%", value)
}

// PercentParser parses percentage strings
func PercentParser(str string) (float64, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "%")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// SemitoneFormatter formats a signed semitone offset
func SemitoneFormatter(st float64) string {
	if st > 0 {
		return fmt.Sprintf("+%.0f st", st)
	}
	return fmt.Sprintf("%.0f st", st)
}

// SemitoneParser parses semitone strings such as "+7 st" or "-12"
func SemitoneParser(str string) (float64, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "st")
	str = strings.TrimPrefix(strings.TrimSpace(str), "+")
	return strconv.ParseFloat(str, 64)
}
