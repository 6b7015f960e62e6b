// Package taxonomy maps category labels from both catalogs onto a small shared set.
//
// Source-catalog category text is first looked up in a free-text label table that
// yields a Genre (the source catalog's enumerated genre). Genres are then projected
// onto a Category; roughly a fifth of the genres have no counterpart and are dropped.
package taxonomy

import (
	"strings"

	"github.com/Belphemur/filmed/internal/apperrors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Genre is a genre as enumerated by the source catalog. The numeric values are the
// catalog's own genre identifiers, as used by its JSON search API.
type Genre int

const (
	Animation                Genre = 2
	Biography                Genre = 3
	Children                 Genre = 4
	Documentary              Genre = 5
	Drama                    Genre = 6
	Erotic                   Genre = 7
	FamilyGenre              Genre = 8
	FantasyGenre             Genre = 9
	Surrealistic             Genre = 10
	Historical               Genre = 11
	HorrorGenre              Genre = 12
	ComedyGenre              Genre = 13
	Costume                  Genre = 14
	CrimeGenre               Genre = 15
	Melodrama                Genre = 16
	Musical                  Genre = 17
	Moral                    Genre = 19
	AdventureGenre           Genre = 20
	Sensational              Genre = 22
	ThrillerGenre            Genre = 24
	WesternGenre             Genre = 25
	WarGenre                 Genre = 26
	FilmNoir                 Genre = 27
	ActionGenre              Genre = 28
	RomanticComedy           Genre = 30
	RomanceGenre             Genre = 32
	SciFiGenre               Genre = 33
	MoralComedy              Genre = 37
	Psychological            Genre = 38
	Satire                   Genre = 39
	Catastrophe              Genre = 40
	Youth                    Genre = 41
	FairyTale                Genre = 42
	Political                Genre = 43
	Musically                Genre = 44
	Shiver                   Genre = 46
	DarkComedy               Genre = 47
	Short                    Genre = 50
	Religious                Genre = 51
	Gangster                 Genre = 53
	Biblical                 Genre = 55
	Documented               Genre = 57
	CriminalComedy           Genre = 58
	HistoricalDrama          Genre = 59
	Grotesque                Genre = 60
	Sports                   Genre = 61
	Poetic                   Genre = 62
	Spy                      Genre = 63
	CourtroomDrama           Genre = 65
	Anime                    Genre = 66
	Silent                   Genre = 67
	FictionalizedDocumentary Genre = 70
	Adult                    Genre = 71
	MartialArts              Genre = 72
	Nature                   Genre = 73
	Propaganda               Genre = 76
	AdultAnimation           Genre = 77
	Christmas                Genre = 78
	TrueCrime                Genre = 80
)

var genreNames = map[Genre]string{
	Animation:                "Animation",
	Biography:                "Biography",
	Children:                 "Children",
	Documentary:              "Documentary",
	Drama:                    "Drama",
	Erotic:                   "Erotic",
	FamilyGenre:              "Family",
	FantasyGenre:             "Fantasy",
	Surrealistic:             "Surrealistic",
	Historical:               "Historical",
	HorrorGenre:              "Horror",
	ComedyGenre:              "Comedy",
	Costume:                  "Costume",
	CrimeGenre:               "Crime",
	Melodrama:                "Melodrama",
	Musical:                  "Musical",
	Moral:                    "Moral",
	AdventureGenre:           "Adventure",
	Sensational:              "Sensational",
	ThrillerGenre:            "Thriller",
	WesternGenre:             "Western",
	WarGenre:                 "War",
	FilmNoir:                 "Film-Noir",
	ActionGenre:              "Action",
	RomanticComedy:           "Romantic Comedy",
	RomanceGenre:             "Romance",
	SciFiGenre:               "Sci-Fi",
	MoralComedy:              "Moral Comedy",
	Psychological:            "Psychological",
	Satire:                   "Satire",
	Catastrophe:              "Catastrophe",
	Youth:                    "Youth",
	FairyTale:                "Fairy Tale",
	Political:                "Political",
	Musically:                "Music",
	Shiver:                   "Shiver",
	DarkComedy:               "Dark Comedy",
	Short:                    "Short",
	Religious:                "Religious",
	Gangster:                 "Gangster",
	Biblical:                 "Biblical",
	Documented:               "Documented",
	CriminalComedy:           "Criminal Comedy",
	HistoricalDrama:          "Historical Drama",
	Grotesque:                "Grotesque",
	Sports:                   "Sports",
	Poetic:                   "Poetic",
	Spy:                      "Spy",
	CourtroomDrama:           "Courtroom Drama",
	Anime:                    "Anime",
	Silent:                   "Silent",
	FictionalizedDocumentary: "Fictionalized Documentary",
	Adult:                    "Adult",
	MartialArts:              "Martial Arts",
	Nature:                   "Nature",
	Propaganda:               "Propaganda",
	AdultAnimation:           "Adult Animation",
	Christmas:                "Christmas",
	TrueCrime:                "True Crime",
}

// String returns the English name of the genre.
func (g Genre) String() string {
	if name, ok := genreNames[g]; ok {
		return name
	}
	return "Unknown"
}

// GenreByID returns the genre for a numeric identifier from the catalog's JSON API.
func GenreByID(id int) (Genre, bool) {
	g := Genre(id)
	_, ok := genreNames[g]
	return g, ok
}

// labels is the free-text table: lower-cased catalog labels, spelling variants included.
var labels = map[string]Genre{
	"akcja":                  ActionGenre,
	"animacja dla dorosłych": AdultAnimation,
	"animacja":               Animation,
	"anime":                  Anime,
	"baśń":                   FairyTale,
	"biblijny":               Biblical,
	"biograficzny":           Biography,
	"czarna komedia":         DarkComedy,
	"dla dzieci":             Children,
	"dla młodzieży":          Youth,
	"dokumentalizowany":      Documented,
	"dokumentalny":           Documentary,
	"dramat historyczny":     HistoricalDrama,
	"dramat obyczajowy":      Moral,
	"dramat sądowy":          CourtroomDrama,
	"dramat":                 Drama,
	"dreszczowiec":           Shiver,
	"erotyczny":              Erotic,
	"fabularyzowany dok.":    FictionalizedDocumentary,
	"familijny":              FamilyGenre,
	"fantasy":                FantasyGenre,
	"film-noir":              FilmNoir,
	"gangsterski":            Gangster,
	"groteska filmowa":       Grotesque,
	"historyczny":            Historical,
	"horror":                 HorrorGenre,
	"katastroficzny":         Catastrophe,
	"komedia kryminalna":     CriminalComedy,
	"komedia obyczajowa":     MoralComedy,
	"komedia obycz.":         MoralComedy,
	"komedia romantyczna":    RomanticComedy,
	"komedia rom.":           RomanticComedy,
	"komedia":                ComedyGenre,
	"kostiumowy":             Costume,
	"kryminał":               CrimeGenre,
	"krótkometrażowy":        Short,
	"melodramat":             Melodrama,
	"musical":                Musical,
	"muzyczny":               Musically,
	"niemy":                  Silent,
	"obyczajowy":             Moral,
	"poetycki":               Poetic,
	"polityczny":             Political,
	"politiczny":             Political,
	"propagandowy":           Propaganda,
	"przygodowy":             AdventureGenre,
	"przyrodniczy":           Nature,
	"psychologiczny":         Psychological,
	"religijny":              Religious,
	"romans":                 RomanceGenre,
	"satyra":                 Satire,
	"sci-fi":                 SciFiGenre,
	"sensacyjny":             Sensational,
	"sportowy":               Sports,
	"surrealistyczny":        Surrealistic,
	"szpiegowski":            Spy,
	"sztuki walki":           MartialArts,
	"thriller":               ThrillerGenre,
	"true crime":             TrueCrime,
	"western":                WesternGenre,
	"wojenny":                WarGenre,
	"xxx":                    Adult,
	"świąteczny":             Christmas,
}

var lower = cases.Lower(language.Polish)

// NormalizeLabel trims and lower-cases a raw category label the way the label table is keyed.
func NormalizeLabel(label string) string {
	return lower.String(strings.TrimSpace(label))
}

// LookupLabel resolves one raw category label to a Genre.
// An absent label is an error: it means the catalog format changed.
func LookupLabel(label string) (Genre, error) {
	g, ok := labels[NormalizeLabel(label)]
	if !ok {
		return 0, &apperrors.UnmappedCategoryLabelError{Label: label}
	}
	return g, nil
}

// LookupLabels resolves every label, failing on the first unmapped one.
func LookupLabels(raw []string) ([]Genre, error) {
	genres := make([]Genre, 0, len(raw))
	for _, label := range raw {
		g, err := LookupLabel(label)
		if err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, nil
}
