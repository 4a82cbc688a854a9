package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Errors maps a field name to the reason its value was rejected. An empty
// map means the candidate passed every check.
type Errors map[string]string

func (e Errors) Add(field, message string) {
	if _, taken := e[field]; !taken {
		e[field] = message
	}
}

func (e Errors) Merge(other Errors) {
	for field, message := range other {
		e.Add(field, message)
	}
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return strings.Join(parts, "; ")
}

var (
	normalizedStringPattern = regexp.MustCompile(`^[\p{L} '-]+$`)
	iataCodePattern        = regexp.MustCompile(`^[A-Z]{3}$`)
)

// IsNormalizedString reports whether s contains only letters, spaces,
// hyphens and apostrophes, with none of the special characters at either end.
func IsNormalizedString(s string) bool {
	if !normalizedStringPattern.MatchString(s) {
		return false
	}
	for _, edge := range []string{" ", "-", "'"} {
		if strings.HasPrefix(s, edge) || strings.HasSuffix(s, edge) {
			return false
		}
	}
	return true
}

func IsIATACode(s string) bool {
	return iataCodePattern.MatchString(s)
}

// AgeInYears computes full years between birthDate and today at day
// granularity.
func AgeInYears(birthDate time.Time) int {
	days := int(time.Since(birthDate).Hours() / 24)
	return days / 365
}

// IsFutureDate compares d against the current date at day granularity.
func IsFutureDate(d time.Time) bool {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, d.Location())
	return d.After(today)
}

const (
	MsgNormalizedString = "must contain only letters, spaces, hyphens and apostrophes, with no special character at either end"
	MsgIATACode         = "IATA code should be 3 uppercase letters"
	MsgNotNegative      = "value cannot be negative"
	MsgNotInFuture      = "date cannot be in the future"
)
