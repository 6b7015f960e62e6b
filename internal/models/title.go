package models

import (
	"github.com/Belphemur/filmed/internal/apperrors"
	"github.com/Belphemur/filmed/internal/taxonomy"
)

// TitleRecord is a title scraped from the source catalog, waiting to be cross-referenced.
type TitleRecord struct {
	ID             int64            `json:"id"`
	URL            string           `json:"url"`
	Name           string           `json:"name"`
	Year           Year             `json:"year"`
	Runtime        *int             `json:"runtime,omitempty"` // Minutes, nil when the catalog has none
	Genres         []taxonomy.Genre `json:"genres"`
	Kind           MediaKind        `json:"kind"`
	AlternateNames *CandidateQueue  `json:"-"` // Consumed during resolution

	// User data, only present for records read from a user's vote pages
	Rating      *int `json:"rating,omitempty"` // 1-10
	Favorited   bool `json:"favorited"`
	Watchlisted bool `json:"watchlisted"`

	Link *ResolvedLink `json:"link,omitempty"`
}

// YearStart returns the first year of the record's release year.
func (r *TitleRecord) YearStart() int {
	return r.Year.Start
}

// SharedCategories projects the record's genres onto the shared taxonomy.
func (r *TitleRecord) SharedCategories() []taxonomy.Category {
	return taxonomy.ProjectAll(r.Genres)
}

// SetLink attaches the accepted match. A record is linked at most once.
func (r *TitleRecord) SetLink(c MatchCandidate) error {
	if r.Link != nil {
		return apperrors.ErrLinkAlreadySet
	}
	r.Link = &ResolvedLink{RecordID: r.ID, Candidate: c}
	return nil
}

// MatchCandidate is the single result of one search against the search catalog.
type MatchCandidate struct {
	ExternalID string              `json:"externalId"` // e.g. tt0371257
	Name       string              `json:"name"`
	Year       Year                `json:"year"`
	Runtime    int                 `json:"runtime"` // Minutes
	Categories []taxonomy.Category `json:"categories"`
	Kind       MediaKind           `json:"kind"`
	URL        string              `json:"url"`
}

// ResolvedLink pairs a record with its accepted match.
type ResolvedLink struct {
	RecordID  int64          `json:"recordId"`
	Candidate MatchCandidate `json:"candidate"`
}

// ListKind is one of the user's source catalog lists.
type ListKind int

const (
	ListFilms ListKind = iota
	ListShows
	ListWatchlist
)

// String returns the path segment of the list on the user's profile
func (l ListKind) String() string {
	switch l {
	case ListShows:
		return "serials"
	case ListWatchlist:
		return "wantToSee"
	default:
		return "films"
	}
}

// UserCounts holds the number of rated films, rated shows and watch-list entries.
type UserCounts struct {
	Movies    int `json:"movies"`
	Shows     int `json:"shows"`
	Watchlist int `json:"watchlist"`
}

// VotesPerPage is the number of entries the source catalog renders per user page.
const VotesPerPage = 25

// Pages returns the number of pages needed to list count entries.
func Pages(count int) int {
	return count/VotesPerPage + 1
}

// UserPage identifies one page of one of a user's lists.
type UserPage struct {
	Username string   `json:"username"`
	List     ListKind `json:"list"`
	Number   int      `json:"number"`
}

// PagesFor expands the counts into every page to scrape, films first.
func (c UserCounts) PagesFor(username string) []UserPage {
	var pages []UserPage
	add := func(list ListKind, count int) {
		for n := 1; n <= Pages(count); n++ {
			pages = append(pages, UserPage{Username: username, List: list, Number: n})
		}
	}
	add(ListFilms, c.Movies)
	add(ListShows, c.Shows)
	add(ListWatchlist, c.Watchlist)
	return pages
}
