// Package matching decides whether a search result is the same title as a record.
package matching

import "github.com/Belphemur/filmed/internal/models"

const (
	// ShortRuntime is the cutoff, in minutes, under which the wider band applies.
	ShortRuntime = 60

	// Band bounds in percent of the candidate runtime.
	shortLower = 75
	shortUpper = 150
	longLower  = 85
	longUpper  = 115

	// MaxYearDelta is the largest start-year difference still accepted.
	MaxYearDelta = 1
)

func bandPercent(recordRuntime, candidateRuntime int) (lower, upper int) {
	if candidateRuntime <= ShortRuntime && recordRuntime <= ShortRuntime {
		return shortLower, shortUpper
	}
	return longLower, longUpper
}

// Band returns the duration band, in minutes, around a candidate runtime for a record runtime.
func Band(recordRuntime, candidateRuntime int) (lower, upper float64) {
	lo, hi := bandPercent(recordRuntime, candidateRuntime)
	c := float64(candidateRuntime)
	return c * float64(lo) / 100, c * float64(hi) / 100
}

// YearMatches accepts start years at most MaxYearDelta apart.
func YearMatches(record, candidate models.Year) bool {
	d := record.Start - candidate.Start
	if d < 0 {
		d = -d
	}
	return d <= MaxYearDelta
}

// DurationMatches rejects only records noticeably shorter than the candidate.
// A record runtime above the band's upper bound is still accepted, and an
// unknown record runtime always is.
func DurationMatches(recordRuntime *int, candidateRuntime int) bool {
	if recordRuntime == nil {
		return true
	}
	r := *recordRuntime
	lo, _ := bandPercent(r, candidateRuntime)
	return r*100 > lo*candidateRuntime
}

// Validate combines the year and duration predicates.
func Validate(recordYear models.Year, recordRuntime *int, candidateYear models.Year, candidateRuntime int) bool {
	return YearMatches(recordYear, candidateYear) && DurationMatches(recordRuntime, candidateRuntime)
}

// Accepts validates a search result against a record.
func Accepts(rec *models.TitleRecord, cand *models.MatchCandidate) bool {
	if rec == nil || cand == nil {
		return false
	}
	return Validate(rec.Year, rec.Runtime, cand.Year, cand.Runtime)
}
