package models

// SearchHit is the first row of a search catalog result list, before its
// details page has been fetched.
type SearchHit struct {
	ExternalID string `json:"externalId"`
	Name       string `json:"name"`
	Year       Year   `json:"year"`
	Path       string `json:"path,omitempty"` // Relative link to the title page, when the list provides one
}

// VoteBox is one entry of a user list page of the source catalog, with its
// category labels still in catalog text.
type VoteBox struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	YearText    string   `json:"yearText"`
	GenreLabels []string `json:"genreLabels"`
}

// VoteDetails is the user's vote on a title as returned by the source catalog API.
type VoteDetails struct {
	Rate      int   `json:"rate"`
	Favorite  bool  `json:"favorite"`
	ViewDate  int   `json:"viewDate"`
	Timestamp int64 `json:"timestamp"`
}

// CatalogSearchResults is the source catalog's JSON search API payload.
type CatalogSearchResults struct {
	Total      int          `json:"total"`
	SearchHits []CatalogHit `json:"searchHits"`
}

// CatalogHit is one hit of the JSON search API. Type is "film", "serial",
// "person" and so on; only films and serials are titles.
type CatalogHit struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// CatalogPreview is the JSON preview of a title.
type CatalogPreview struct {
	Year          int                  `json:"year"`
	Title         *CatalogPreviewTitle `json:"title"`
	OriginalTitle *CatalogPreviewTitle `json:"originalTitle"`
	Genres        []struct {
		ID int `json:"id"`
	} `json:"genres"`
	Duration int `json:"duration"` // Minutes, 0 when unknown
}

// CatalogPreviewTitle is a localized title inside a preview.
type CatalogPreviewTitle struct {
	Title   string `json:"title"`
	Country string `json:"country"`
	Lang    string `json:"lang"`
}

// DisplayName returns the localized title, falling back to the original one.
func (p CatalogPreview) DisplayName() string {
	if p.Title != nil && p.Title.Title != "" {
		return p.Title.Title
	}
	if p.OriginalTitle != nil {
		return p.OriginalTitle.Title
	}
	return ""
}
