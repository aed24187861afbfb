package query

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnknownOrdinal is returned when a value is outside an ordinal table.
var ErrUnknownOrdinal = errors.New("unknown ordinal value")

var (
	firstIntRE = regexp.MustCompile(`\d+`)
	durationRE = regexp.MustCompile(`^\s*(\d+)\s*([\p{L}]*)`)
)

// LeadingInt returns the first integer found in s, or 0 when there is none.
// "32-45%" yields 32.
func LeadingInt(s string) int {
	m := firstIntRE.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// DurationDays normalizes a display duration to days. "2 weeks" yields 14,
// "10 days" yields 10. Strings without a leading integer yield 0.
func DurationDays(s string) int {
	m := durationRE.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	if strings.Contains(strings.ToLower(m[2]), "week") {
		return n * 7
	}
	return n
}

// Ordinal maps a closed set of labels to ranks 1..n in declaration order.
type Ordinal struct {
	name  string
	ranks map[string]int
}

// NewOrdinal builds an ordinal table. Labels are matched case-insensitively.
func NewOrdinal(name string, labels ...string) Ordinal {
	ranks := make(map[string]int, len(labels))
	for i, l := range labels {
		ranks[strings.ToLower(l)] = i + 1
	}
	return Ordinal{name: name, ranks: ranks}
}

// Rank returns the rank of v, or ErrUnknownOrdinal.
func (o Ordinal) Rank(v string) (int, error) {
	if r, ok := o.ranks[strings.ToLower(strings.TrimSpace(v))]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnknownOrdinal, o.name, v)
}

// Competition ranks market saturation: Low < Medium < High.
var Competition = NewOrdinal("competition", "Low", "Medium", "High")
