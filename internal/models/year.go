package models

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Belphemur/filmed/internal/apperrors"
)

// Year is a release year, either a single year (Start == End) or an inclusive range
// as used by shows ("2015-2016").
type Year struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// SingleYear returns a Year covering exactly one year.
func SingleYear(y int) Year {
	return Year{Start: y, End: y}
}

// IsRange reports whether the year spans more than one calendar year.
func (y Year) IsRange() bool {
	return y.End != y.Start
}

// String formats the year the way the search catalog's free-text search expects it.
func (y Year) String() string {
	if y.IsRange() {
		return strconv.Itoa(y.Start) + "-" + strconv.Itoa(y.End)
	}
	return strconv.Itoa(y.Start)
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// ParseYear extracts a Year from catalog text such as "2005", "(2015-2016)",
// "(I) (2019)" or an open range "2015–" (end defaults to start).
func ParseYear(s string) (Year, error) {
	found := yearPattern.FindAllString(s, 2)
	if len(found) == 0 {
		return Year{}, &apperrors.InvalidYearError{Value: strings.TrimSpace(s)}
	}

	start, _ := strconv.Atoi(found[0])
	if start <= 0 {
		return Year{}, &apperrors.InvalidYearError{Value: strings.TrimSpace(s)}
	}
	if len(found) == 1 {
		return SingleYear(start), nil
	}
	end, _ := strconv.Atoi(found[1])
	if end < start {
		return SingleYear(start), nil
	}
	return Year{Start: start, End: end}, nil
}
