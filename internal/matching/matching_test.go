package matching

import (
	"testing"

	"github.com/Belphemur/filmed/internal/models"
)

func minutes(m int) *int { return &m }

func TestYearMatches(t *testing.T) {
	tests := []struct {
		name      string
		record    models.Year
		candidate models.Year
		want      bool
	}{
		{"same year", models.SingleYear(2005), models.SingleYear(2005), true},
		{"one later", models.SingleYear(2005), models.SingleYear(2006), true},
		{"one earlier", models.SingleYear(2005), models.SingleYear(2004), true},
		{"two apart", models.SingleYear(2005), models.SingleYear(2007), false},
		{"ranges compare start only", models.Year{Start: 2015, End: 2020}, models.Year{Start: 2016, End: 2016}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YearMatches(tt.record, tt.candidate); got != tt.want {
				t.Errorf("YearMatches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDurationMatches(t *testing.T) {
	tests := []struct {
		name      string
		record    *int
		candidate int
		want      bool
	}{
		{"unknown record runtime", nil, 100, true},
		{"inside long band", minutes(90), 100, true},
		{"below long band", minutes(80), 100, false},
		{"on lower bound rejected", minutes(85), 100, false},
		{"far above band accepted", minutes(200), 100, true},
		{"short band lower", minutes(30), 40, false},
		{"short band inside", minutes(31), 40, true},
		{"short candidate long record uses long band", minutes(61), 60, true},
		{"short record long candidate uses long band", minutes(50), 61, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationMatches(tt.record, tt.candidate); got != tt.want {
				t.Errorf("DurationMatches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	y := models.SingleYear(2005)
	if !Validate(y, minutes(90), models.SingleYear(2006), 100) {
		t.Error("year diff 1 with satisfied duration should be accepted")
	}
	if Validate(y, minutes(90), models.SingleYear(2007), 100) {
		t.Error("year diff 2 should be rejected")
	}
	if !Validate(y, nil, models.SingleYear(2005), 1) {
		t.Error("absent record runtime should be accepted")
	}
	if Validate(y, minutes(80), y, 100) {
		t.Error("record runtime 80 against 100 should be rejected")
	}
}

func TestValidate_Pure(t *testing.T) {
	r := minutes(90)
	first := Validate(models.SingleYear(2000), r, models.SingleYear(2001), 100)
	for range 10 {
		if Validate(models.SingleYear(2000), r, models.SingleYear(2001), 100) != first {
			t.Fatal("Validate is not deterministic")
		}
	}
	if *r != 90 {
		t.Error("Validate mutated its input")
	}
}

func TestAccepts(t *testing.T) {
	rec := &models.TitleRecord{Year: models.SingleYear(2005), Runtime: minutes(99)}
	if !Accepts(rec, &models.MatchCandidate{Year: models.SingleYear(2005), Runtime: 99}) {
		t.Error("exact match rejected")
	}
	if Accepts(rec, nil) || Accepts(nil, &models.MatchCandidate{}) {
		t.Error("nil inputs accepted")
	}
}

func TestBand(t *testing.T) {
	lower, upper := Band(90, 100)
	if lower != 85 || upper != 115 {
		t.Errorf("Band(90, 100) = %v, %v; want 85, 115", lower, upper)
	}
	lower, upper = Band(30, 40)
	if lower != 30 || upper != 60 {
		t.Errorf("Band(30, 40) = %v, %v; want 30, 60", lower, upper)
	}
}
