// Tests for year.go: ParseYear(), Year.String() and IsRange().
package models

import (
	"errors"
	"testing"

	"github.com/Belphemur/filmed/internal/apperrors"
)

func TestParseYear(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  Year
	}{
		{"single year", "2005", Year{2005, 2005}},
		{"padded single year", "  1999 ", Year{1999, 1999}},
		{"range", "2015-2016", Year{2015, 2016}},
		{"range with spaces", "2015 - 2019", Year{2015, 2019}},
		{"open range", "2021-", Year{2021, 2021}},
		{"reversed range keeps start", "2020-2010", Year{2020, 2020}},
		{"parenthesised", "(2005)", Year{2005, 2005}},
		{"parenthesised range with en dash", "(2015–2016)", Year{2015, 2016}},
		{"roman numeral disambiguation", "(I) (2019)", Year{2019, 2019}},
		{"open range with en dash", "2011– ", Year{2011, 2011}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseYear(tt.input)
			if err != nil {
				t.Fatalf("ParseYear(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseYear(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseYear_Invalid(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"", "abc", "0", "(TV Series)", "0000"} {
		_, err := ParseYear(input)
		if !errors.Is(err, &apperrors.InvalidYearError{}) {
			t.Errorf("ParseYear(%q) error = %v, want InvalidYearError", input, err)
		}
	}
}

func TestYear_String(t *testing.T) {
	t.Parallel()
	if got := SingleYear(2005).String(); got != "2005" {
		t.Errorf("String() = %q, want %q", got, "2005")
	}
	r := Year{Start: 2015, End: 2016}
	if got := r.String(); got != "2015-2016" {
		t.Errorf("String() = %q, want %q", got, "2015-2016")
	}
	if !r.IsRange() || SingleYear(1).IsRange() {
		t.Error("IsRange() mismatch")
	}
}
