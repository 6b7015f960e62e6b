// Package ranking orders a record's alternate names by how likely each one is to
// find the title in the search catalog.
package ranking

import (
	"strings"

	"github.com/Belphemur/filmed/internal/models"
)

type rule struct {
	markers []string
	rank    int
}

// rules are tested in order; the first label containing one of the markers wins.
var rules = []rule{
	{markers: []string{"USA", "angielski"}, rank: 10},
	{markers: []string{"oryginalny"}, rank: 9},
	{markers: []string{"główny"}, rank: 8},
	{markers: []string{"alternatywna pisownia"}, rank: 7},
	{markers: []string{"inny tytuł"}, rank: 6},
	{markers: []string{"Polska"}, rank: 5},
}

// MaxRank is the highest rank Score can return.
const MaxRank = 10

// Score ranks a label in [0, MaxRank]. Matching is case-sensitive.
func Score(label string) int {
	label = strings.TrimSpace(label)
	for _, r := range rules {
		for _, m := range r.markers {
			if strings.Contains(label, m) {
				return r.rank
			}
		}
	}
	return 0
}

// Rank scores every pair and returns them as a candidate queue.
func Rank(pairs []models.NamePair) *models.CandidateQueue {
	q := models.NewCandidateQueue()
	for _, p := range pairs {
		q.Push(models.AlternateName{
			Name:  strings.TrimSpace(p.Name),
			Label: strings.TrimSpace(p.Label),
			Rank:  Score(p.Label),
		})
	}
	return q
}
