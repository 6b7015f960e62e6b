package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Belphemur/filmed/internal/apperrors"
	"github.com/Belphemur/filmed/internal/client"
	"github.com/Belphemur/filmed/internal/export"
	"github.com/Belphemur/filmed/internal/models"
	"github.com/Belphemur/filmed/internal/resolver"
	"github.com/Belphemur/filmed/internal/taxonomy"
)

// fakeCatalog serves pages[i] as result page i+1 and nothing afterwards.
type fakeCatalog struct {
	pages [][]*models.TitleRecord
	err   error
	asked []int
}

func (f *fakeCatalog) Query(_ context.Context, _ client.CatalogQuery, page int) ([]*models.TitleRecord, error) {
	f.asked = append(f.asked, page)
	if f.err != nil {
		return nil, f.err
	}
	if page > len(f.pages) {
		return nil, nil
	}
	return f.pages[page-1], nil
}

func TestPipeline_RunQuery(t *testing.T) {
	catalog := &fakeCatalog{pages: [][]*models.TitleRecord{
		{record(1, "Stay", nil, false)},
		{record(2, "Nieznany", nil, false)},
	}}
	writer := &memoryWriter{}
	p := pipeline{
		resolver:    resolver.New(fakeSearcher{}),
		writer:      writer,
		concurrency: 2,
		logger:      zerolog.Nop(),
	}

	year := models.SingleYear(2005)
	summary, err := p.runQuery(context.Background(), catalog, client.CatalogQuery{Year: &year}, 5)
	if err != nil {
		t.Fatalf("runQuery failed: %v", err)
	}

	if got := catalog.asked; len(got) != 3 || got[2] != 3 {
		t.Errorf("pages asked = %v, want 1..3", got)
	}
	if summary.Query != "2005" || summary.Records != 2 || summary.Resolved != 1 || summary.Unresolved != 1 || summary.Skipped != 0 {
		t.Errorf("summary = %+v", summary)
	}
	watch := writer.rows[export.WatchlistFile]
	if len(watch) != 2 {
		t.Fatalf("watch-list rows = %d, want 2", len(watch))
	}
	if watch[0].Link == nil || watch[0].Link.Candidate.ExternalID != "tt0371257" {
		t.Errorf("first row link = %+v", watch[0].Link)
	}
	if len(writer.rows[export.GenericFile]) != 0 {
		t.Error("query hits were written to the generic file")
	}
}

func TestPipeline_RunQuery_StopsAtPageLimit(t *testing.T) {
	catalog := &fakeCatalog{pages: [][]*models.TitleRecord{
		{record(1, "Stay", nil, false)},
		{record(2, "Nieznany", nil, false)},
	}}
	p := pipeline{resolver: resolver.New(fakeSearcher{}), writer: &memoryWriter{}, concurrency: 1, logger: zerolog.Nop()}

	summary, err := p.runQuery(context.Background(), catalog, client.CatalogQuery{}, 1)
	if err != nil {
		t.Fatalf("runQuery failed: %v", err)
	}
	if len(catalog.asked) != 1 || summary.Records != 1 {
		t.Errorf("asked %v, records %d; want one page", catalog.asked, summary.Records)
	}
}

func TestPipeline_RunQuery_Error(t *testing.T) {
	boom := errors.New("boom")
	p := pipeline{resolver: resolver.New(fakeSearcher{}), writer: &memoryWriter{}, concurrency: 1, logger: zerolog.Nop()}
	if _, err := p.runQuery(context.Background(), &fakeCatalog{err: boom}, client.CatalogQuery{}, 1); !errors.Is(err, boom) {
		t.Errorf("runQuery error = %v, want boom", err)
	}
}

func TestQueryOptions_CatalogQuery(t *testing.T) {
	q, err := queryOptions{year: "2015-2019", genres: []string{"Dramat", "8"}, pages: 2}.catalogQuery()
	if err != nil {
		t.Fatalf("catalogQuery failed: %v", err)
	}
	if q.Year == nil || *q.Year != (models.Year{Start: 2015, End: 2019}) {
		t.Errorf("Year = %v", q.Year)
	}
	if len(q.Genres) != 2 || q.Genres[0] != taxonomy.Drama || q.Genres[1] != taxonomy.FamilyGenre {
		t.Errorf("Genres = %v", q.Genres)
	}
	if got := describeQuery(q); !strings.HasPrefix(got, "2015-2019, ") || !strings.Contains(got, " or ") {
		t.Errorf("describeQuery = %q", got)
	}
}

func TestQueryOptions_CatalogQuery_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts queryOptions
		is   error
	}{
		{"bad year", queryOptions{year: "soon", pages: 1}, &apperrors.InvalidYearError{}},
		{"unknown label", queryOptions{genres: []string{"kosmiczny western"}, pages: 1}, &apperrors.UnmappedCategoryLabelError{}},
		{"unknown id", queryOptions{genres: []string{"9999"}, pages: 1}, nil},
		{"no pages", queryOptions{pages: 0}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.catalogQuery()
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error = %v, want %T", err, tt.is)
			}
		})
	}
}

func TestSummary_Render_Query(t *testing.T) {
	s := &Summary{RunID: "q1", Query: "2005, Dramat", Records: 3, Resolved: 2, Unresolved: 1,
		Files: map[string]int{export.WatchlistFile: 3}}
	out := s.Render()
	for _, want := range []string{"Query", "2005, Dramat", "Hits read", "want2see.csv"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered summary misses %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Rated films") {
		t.Errorf("query summary lists user counts:\n%s", out)
	}
}
