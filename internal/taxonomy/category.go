package taxonomy

import "strings"

// Category is the catalog-agnostic genre both catalogs project onto.
type Category int

const (
	Action Category = iota + 1
	Adventure
	AnimationCategory
	Comedy
	Crime
	DocumentaryCategory
	DramaCategory
	Family
	Fantasy
	History
	Horror
	Music
	Mystery
	Romance
	SciFi
	Thriller
	War
	Western
)

var categoryNames = map[Category]string{
	Action:              "Action",
	Adventure:           "Adventure",
	AnimationCategory:   "Animation",
	Comedy:              "Comedy",
	Crime:               "Crime",
	DocumentaryCategory: "Documentary",
	DramaCategory:       "Drama",
	Family:              "Family",
	Fantasy:             "Fantasy",
	History:             "History",
	Horror:              "Horror",
	Music:               "Music",
	Mystery:             "Mystery",
	Romance:             "Romance",
	SciFi:               "Sci-Fi",
	Thriller:            "Thriller",
	War:                 "War",
	Western:             "Western",
}

// String returns the display name, which is also the search catalog's chip text.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Categories returns every shared category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryNames))
	for c := Action; c <= Western; c++ {
		out = append(out, c)
	}
	return out
}

// projection maps source genres onto shared categories. Genres absent from
// the map (Costume, Short, Satire, ...) have no counterpart.
var projection = map[Genre]Category{
	ActionGenre:    Action,
	AdventureGenre: Adventure,

	AdultAnimation: AnimationCategory,
	Animation:      AnimationCategory,
	Anime:          AnimationCategory,

	Biblical:        History,
	Historical:      History,
	Religious:       History,
	HistoricalDrama: History,

	Children:    Family,
	Youth:       Family,
	FamilyGenre: Family,
	Christmas:   Family,
	FairyTale:   Family,

	Drama:          DramaCategory,
	CourtroomDrama: DramaCategory,
	Melodrama:      DramaCategory,
	Catastrophe:    DramaCategory,
	Grotesque:      DramaCategory,

	CrimeGenre:     Crime,
	TrueCrime:      Crime,
	FilmNoir:       Crime,
	Gangster:       Crime,
	CriminalComedy: Crime,

	ComedyGenre:    Comedy,
	DarkComedy:     Comedy,
	MoralComedy:    Comedy,
	RomanticComedy: Comedy,

	Documentary:              DocumentaryCategory,
	Documented:               DocumentaryCategory,
	Biography:                DocumentaryCategory,
	Nature:                   DocumentaryCategory,
	FictionalizedDocumentary: DocumentaryCategory,

	FantasyGenre: Fantasy,
	HorrorGenre:  Horror,

	Musical:   Music,
	Musically: Music,

	Spy:          Mystery,
	Surrealistic: Mystery,

	RomanceGenre: Romance,
	SciFiGenre:   SciFi,

	ThrillerGenre: Thriller,
	Shiver:        Thriller,
	Sensational:   Thriller,

	WarGenre:     War,
	WesternGenre: Western,
}

// Project maps a source genre to its shared category.
// ok is false for genres that are dropped.
func Project(g Genre) (Category, bool) {
	c, ok := projection[g]
	return c, ok
}

// ProjectAll projects a genre list, silently skipping dropped genres.
// The result keeps first-seen order and holds no duplicates.
func ProjectAll(genres []Genre) []Category {
	out := make([]Category, 0, len(genres))
	seen := make(map[Category]struct{}, len(genres))
	for _, g := range genres {
		c, ok := projection[g]
		if !ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// chips maps the search catalog's genre chip text, lower-cased, onto shared
// categories: every display name plus a few aliases.
var chips = chipTable()

func chipTable() map[string]Category {
	m := map[string]Category{"musical": Music}
	for _, c := range Categories() {
		m[strings.ToLower(c.String())] = c
	}
	return m
}

// ParseCategory maps a search catalog genre chip ("Sci-Fi", "Musical") onto a Category.
// Chips without a counterpart (Sport, News, Biography, ...) report ok=false.
func ParseCategory(text string) (Category, bool) {
	c, ok := chips[strings.ToLower(strings.TrimSpace(text))]
	return c, ok
}
