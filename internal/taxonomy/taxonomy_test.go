package taxonomy

import (
	"errors"
	"testing"

	"github.com/Belphemur/filmed/internal/apperrors"
)

func TestLookupLabel(t *testing.T) {
	tests := []struct {
		label string
		want  Genre
	}{
		{"akcja", ActionGenre},
		{"  Dramat  ", Drama},
		{"KOMEDIA OBYCZ.", MoralComedy},
		{"komedia obyczajowa", MoralComedy},
		{"komedia rom.", RomanticComedy},
		{"Świąteczny", Christmas},
		{"Dramat obyczajowy", Moral},
		{"fabularyzowany dok.", FictionalizedDocumentary},
		{"Sci-Fi", SciFiGenre},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := LookupLabel(tt.label)
			if err != nil {
				t.Fatalf("LookupLabel(%q) returned error: %v", tt.label, err)
			}
			if got != tt.want {
				t.Errorf("LookupLabel(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestLookupLabel_Unmapped(t *testing.T) {
	_, err := LookupLabel("kosmiczny western")
	if err == nil {
		t.Fatal("expected error for unmapped label")
	}
	if !errors.Is(err, &apperrors.UnmappedCategoryLabelError{}) {
		t.Errorf("expected UnmappedCategoryLabelError, got %T", err)
	}
}

func TestLookupLabels_FailsOnFirstUnmapped(t *testing.T) {
	_, err := LookupLabels([]string{"dramat", "nieznany", "horror"})
	var target *apperrors.UnmappedCategoryLabelError
	if !errors.As(err, &target) {
		t.Fatalf("expected UnmappedCategoryLabelError, got %v", err)
	}
	if target.Label != "nieznany" {
		t.Errorf("Label = %q, want %q", target.Label, "nieznany")
	}
}

func TestEveryLabelMapsToKnownGenre(t *testing.T) {
	for label, g := range labels {
		if _, ok := genreNames[g]; !ok {
			t.Errorf("label %q maps to unknown genre %d", label, g)
		}
		if NormalizeLabel(label) != label {
			t.Errorf("label %q is not stored normalized", label)
		}
	}
}

func TestProject_DocumentarySubtypes(t *testing.T) {
	for _, g := range []Genre{Documented, FictionalizedDocumentary, Nature, Biography} {
		c, ok := Project(g)
		if !ok || c != DocumentaryCategory {
			t.Errorf("Project(%v) = %v, %v; want Documentary, true", g, c, ok)
		}
	}
}

func TestProject_Dropped(t *testing.T) {
	dropped := []Genre{
		Costume, Adult, Short, Erotic, MartialArts, Poetic, Political,
		Propaganda, Moral, Psychological, Satire, Silent, Sports,
	}
	for _, g := range dropped {
		if c, ok := Project(g); ok {
			t.Errorf("Project(%v) = %v, want dropped", g, c)
		}
	}

	mapped := 0
	for g := range genreNames {
		if _, ok := Project(g); ok {
			mapped++
		}
	}
	if mapped+len(dropped) != len(genreNames) {
		t.Errorf("mapped %d + dropped %d != %d genres", mapped, len(dropped), len(genreNames))
	}
}

func TestProjectAll(t *testing.T) {
	got := ProjectAll([]Genre{Drama, Satire, Melodrama, ComedyGenre, DarkComedy, Costume})
	want := []Category{DramaCategory, Comedy}

	if len(got) != len(want) {
		t.Fatalf("ProjectAll returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ProjectAll[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if got := ProjectAll(nil); len(got) != 0 {
		t.Errorf("ProjectAll(nil) = %v, want empty", got)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		text   string
		want   Category
		wantOK bool
	}{
		{"Sci-Fi", SciFi, true},
		{"Musical", Music, true},
		{" Drama ", DramaCategory, true},
		{"Mystery", Mystery, true},
		{"Sport", 0, false},
		{"Biography", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseCategory(tt.text)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseCategory(%q) = %v, %v; want %v, %v", tt.text, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCategoryString(t *testing.T) {
	if got := len(Categories()); got != 18 {
		t.Fatalf("Categories() returned %d members, want 18", got)
	}
	for _, c := range Categories() {
		parsed, ok := ParseCategory(c.String())
		if !ok || parsed != c {
			t.Errorf("ParseCategory(%q) did not round-trip to %v", c.String(), c)
		}
	}
}

func TestGenreByID(t *testing.T) {
	if g, ok := GenreByID(33); !ok || g != SciFiGenre {
		t.Errorf("GenreByID(33) = %v, %v; want Sci-Fi, true", g, ok)
	}
	if _, ok := GenreByID(1); ok {
		t.Error("GenreByID(1) should not resolve")
	}
	if got := len(genreNames); got != 59 {
		t.Errorf("genre count = %d, want 59", got)
	}
}
