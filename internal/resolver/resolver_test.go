package resolver

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Belphemur/filmed/internal/apperrors"
	"github.com/Belphemur/filmed/internal/models"
	"github.com/Belphemur/filmed/internal/ranking"
)

type call struct {
	strategy Strategy
	query    string
}

// fakeSearcher answers searches from fixed maps and records every call.
type fakeSearcher struct {
	mu         sync.Mutex
	calls      []call
	structured map[string]*models.MatchCandidate
	freeText   map[string]*models.MatchCandidate
	failWith   error
	onCall     func()
}

func (f *fakeSearcher) record(s Strategy, q string) {
	f.mu.Lock()
	f.calls = append(f.calls, call{s, q})
	f.mu.Unlock()
	if f.onCall != nil {
		f.onCall()
	}
}

func (f *fakeSearcher) StructuredSearch(_ context.Context, name string, _, _ int) (*models.MatchCandidate, error) {
	f.record(StrategyStructured, name)
	if f.failWith != nil {
		return nil, f.failWith
	}
	if c, ok := f.structured[name]; ok {
		return c, nil
	}
	return nil, apperrors.NewSearchNotFoundError(name)
}

func (f *fakeSearcher) FreeTextSearch(_ context.Context, query string) (*models.MatchCandidate, error) {
	f.record(StrategyFreeText, query)
	if f.failWith != nil {
		return nil, f.failWith
	}
	if c, ok := f.freeText[query]; ok {
		return c, nil
	}
	return nil, apperrors.NewSearchNotFoundError(query)
}

func stayRecord() *models.TitleRecord {
	return &models.TitleRecord{
		ID:   1,
		Name: "Zostań",
		Year: models.SingleYear(2005),
		AlternateNames: ranking.Rank([]models.NamePair{
			{Name: "Zostań", Label: "tytuł główny"},
			{Name: "Stay", Label: "angielski"},
		}),
	}
}

func TestResolve_FirstStructuredSearchWins(t *testing.T) {
	s := &fakeSearcher{structured: map[string]*models.MatchCandidate{
		"Stay": {ExternalID: "tt0371257", Name: "Stay", Year: models.SingleYear(2005), Runtime: 99},
	}}
	rec := stayRecord()

	res := New(s).Resolve(context.Background(), rec)

	if !res.Resolved() || res.Err() != nil {
		t.Fatalf("expected resolved, got err %v", res.Err())
	}
	if res.Link.Candidate.ExternalID != "tt0371257" || rec.Link != res.Link {
		t.Errorf("link = %+v, record link = %+v", res.Link, rec.Link)
	}
	if len(s.calls) != 1 || s.calls[0] != (call{StrategyStructured, "Stay"}) {
		t.Errorf("calls = %+v, want exactly one structured search for Stay", s.calls)
	}
	if rec.AlternateNames.Len() != 1 {
		t.Errorf("remaining names = %d, want 1 (Zostań never queried)", rec.AlternateNames.Len())
	}
	if len(res.Attempts) != 1 || res.Attempts[0].Outcome != OutcomeFound {
		t.Errorf("attempts = %+v", res.Attempts)
	}
}

func TestResolve_EmptyQueueMakesNoCalls(t *testing.T) {
	s := &fakeSearcher{}
	rec := &models.TitleRecord{ID: 2, Year: models.SingleYear(2000), AlternateNames: models.NewCandidateQueue()}

	res := New(s).Resolve(context.Background(), rec)

	if res.Resolved() {
		t.Fatal("expected unresolved")
	}
	if !errors.Is(res.Err(), &apperrors.NoMatchFoundError{}) {
		t.Errorf("Err() = %v, want NoMatchFoundError", res.Err())
	}
	if len(s.calls) != 0 {
		t.Errorf("searcher called %d times, want 0", len(s.calls))
	}

	// nil queue behaves the same
	res = New(s).Resolve(context.Background(), &models.TitleRecord{ID: 3})
	if res.Resolved() || len(s.calls) != 0 {
		t.Error("nil queue should resolve to unresolved without calls")
	}
}

func TestResolve_RankZeroCandidateExhausted(t *testing.T) {
	s := &fakeSearcher{}
	rec := &models.TitleRecord{
		ID:             4,
		Year:           models.SingleYear(1999),
		AlternateNames: ranking.Rank([]models.NamePair{{Name: "Obscure", Label: "Węgry"}}),
	}

	res := New(s).Resolve(context.Background(), rec)

	if res.Resolved() {
		t.Fatal("expected unresolved")
	}
	want := []call{{StrategyStructured, "Obscure"}, {StrategyFreeText, "Obscure 1999"}}
	if len(s.calls) != len(want) {
		t.Fatalf("calls = %+v, want %+v", s.calls, want)
	}
	for i := range want {
		if s.calls[i] != want[i] {
			t.Errorf("call %d = %+v, want %+v", i, s.calls[i], want[i])
		}
	}
	var nm *apperrors.NoMatchFoundError
	if !errors.As(res.Err(), &nm) || nm.Attempts != 2 || nm.RecordID != 4 {
		t.Errorf("Err() = %v", res.Err())
	}
}

func TestResolve_FallsBackToFreeTextWithRange(t *testing.T) {
	s := &fakeSearcher{freeText: map[string]*models.MatchCandidate{
		"Fargo 2014-2024": {ExternalID: "tt2802850", Year: models.Year{Start: 2014, End: 2024}, Runtime: 53},
	}}
	rec := &models.TitleRecord{
		ID:             5,
		Year:           models.Year{Start: 2014, End: 2024},
		Kind:           models.KindShow,
		AlternateNames: ranking.Rank([]models.NamePair{{Name: "Fargo", Label: "USA"}}),
	}

	res := New(s).Resolve(context.Background(), rec)

	if !res.Resolved() || res.Link.Candidate.ExternalID != "tt2802850" {
		t.Fatalf("expected resolved via free-text, got %+v / %v", res.Link, res.Err())
	}
	if len(res.Attempts) != 2 || res.Attempts[0].Outcome != OutcomeNotFound || res.Attempts[1].Strategy != StrategyFreeText {
		t.Errorf("attempts = %+v", res.Attempts)
	}
}

func TestResolve_RejectedCandidateMovesOn(t *testing.T) {
	runtime := 120
	s := &fakeSearcher{structured: map[string]*models.MatchCandidate{
		"Wrong": {ExternalID: "tt1", Year: models.SingleYear(1990), Runtime: 120},
		"Right": {ExternalID: "tt2", Year: models.SingleYear(2010), Runtime: 118},
	}}
	rec := &models.TitleRecord{
		ID:      6,
		Year:    models.SingleYear(2010),
		Runtime: &runtime,
		AlternateNames: ranking.Rank([]models.NamePair{
			{Name: "Wrong", Label: "USA"},
			{Name: "Right", Label: "tytuł oryginalny"},
		}),
	}

	res := New(s).Resolve(context.Background(), rec)

	if !res.Resolved() || res.Link.Candidate.ExternalID != "tt2" {
		t.Fatalf("expected tt2, got %+v / %v", res.Link, res.Err())
	}
	if res.Attempts[0].Outcome != OutcomeRejected || res.Attempts[0].Candidate == nil {
		t.Errorf("first attempt = %+v, want rejected with candidate", res.Attempts[0])
	}
}

func TestResolve_TransientErrorsTreatedAsNotFound(t *testing.T) {
	s := &fakeSearcher{failWith: errors.New("connection reset")}
	rec := stayRecord()

	res := New(s).Resolve(context.Background(), rec)

	if res.Resolved() {
		t.Fatal("expected unresolved")
	}
	if len(s.calls) != 4 {
		t.Errorf("calls = %d, want 4 (two strategies for two names)", len(s.calls))
	}
	for _, a := range res.Attempts {
		if a.Outcome != OutcomeError || a.Err == nil {
			t.Errorf("attempt = %+v, want error outcome", a)
		}
	}
	if !errors.Is(res.Err(), &apperrors.NoMatchFoundError{}) {
		t.Errorf("Err() = %v, want NoMatchFoundError", res.Err())
	}
}

func TestResolve_CancelledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &fakeSearcher{}
	s.onCall = cancel
	rec := stayRecord()

	res := New(s).Resolve(ctx, rec)

	if res.Resolved() {
		t.Fatal("expected unresolved")
	}
	if !errors.Is(res.Err(), context.Canceled) {
		t.Errorf("Err() = %v, want context.Canceled", res.Err())
	}
	if len(s.calls) != 1 {
		t.Errorf("calls = %d, want 1", len(s.calls))
	}
}

func TestResolve_AlreadyLinked(t *testing.T) {
	s := &fakeSearcher{}
	rec := stayRecord()
	_ = rec.SetLink(models.MatchCandidate{ExternalID: "tt0371257"})

	res := New(s).Resolve(context.Background(), rec)
	if !res.Resolved() || len(s.calls) != 0 {
		t.Errorf("already linked record should resolve without searching: %+v", res)
	}
}

func TestOutcome_String(t *testing.T) {
	tests := map[Outcome]string{
		OutcomeFound:    "found",
		OutcomeNotFound: "not_found",
		OutcomeError:    "error",
		OutcomeRejected: "rejected",
		Outcome(42):     "unknown",
	}
	for o, want := range tests {
		if o.String() != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", o, o.String(), want)
		}
	}
}
