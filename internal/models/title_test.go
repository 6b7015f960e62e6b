// Tests for title.go: link assignment, computed categories and page expansion.
package models

import (
	"errors"
	"testing"

	"github.com/Belphemur/filmed/internal/apperrors"
	"github.com/Belphemur/filmed/internal/taxonomy"
)

func TestTitleRecord_SetLinkOnce(t *testing.T) {
	t.Parallel()
	rec := &TitleRecord{ID: 11}

	if err := rec.SetLink(MatchCandidate{ExternalID: "tt0371257"}); err != nil {
		t.Fatalf("first SetLink unexpected error: %v", err)
	}
	if rec.Link == nil || rec.Link.RecordID != 11 || rec.Link.Candidate.ExternalID != "tt0371257" {
		t.Fatalf("Link = %+v", rec.Link)
	}

	err := rec.SetLink(MatchCandidate{ExternalID: "tt9999999"})
	if !errors.Is(err, apperrors.ErrLinkAlreadySet) {
		t.Errorf("second SetLink error = %v, want ErrLinkAlreadySet", err)
	}
	if rec.Link.Candidate.ExternalID != "tt0371257" {
		t.Error("second SetLink replaced the link")
	}
}

func TestTitleRecord_SharedCategories(t *testing.T) {
	t.Parallel()
	rec := &TitleRecord{
		Year:   Year{Start: 2015, End: 2016},
		Genres: []taxonomy.Genre{taxonomy.Documented, taxonomy.Nature, taxonomy.Satire},
	}
	got := rec.SharedCategories()
	if len(got) != 1 || got[0] != taxonomy.DocumentaryCategory {
		t.Errorf("SharedCategories() = %v, want [Documentary]", got)
	}
	if rec.YearStart() != 2015 {
		t.Errorf("YearStart() = %d, want 2015", rec.YearStart())
	}
}

func TestUserCounts_PagesFor(t *testing.T) {
	t.Parallel()
	counts := UserCounts{Movies: 30, Shows: 0, Watchlist: 25}
	pages := counts.PagesFor("jan")

	// 30 films -> 2 pages, 0 shows -> 1 page, 25 watch-list -> 2 pages
	if len(pages) != 5 {
		t.Fatalf("PagesFor returned %d pages, want 5", len(pages))
	}
	if pages[0].List != ListFilms || pages[1].Number != 2 {
		t.Errorf("unexpected film pages: %+v", pages[:2])
	}
	if pages[2].List != ListShows {
		t.Errorf("pages[2] = %+v, want shows page", pages[2])
	}
	if pages[4].List != ListWatchlist || pages[4].Username != "jan" {
		t.Errorf("pages[4] = %+v, want watch-list page", pages[4])
	}
}

func TestMediaKind_ParseAndString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want MediaKind
	}{
		{"show", KindShow},
		{"Serial", KindShow},
		{"movie", KindMovie},
		{"", KindMovie},
	}
	for _, tt := range tests {
		if got := ParseMediaKind(tt.in); got != tt.want {
			t.Errorf("ParseMediaKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if KindShow.String() != "show" || KindMovie.String() != "movie" {
		t.Error("String() mismatch")
	}
}
