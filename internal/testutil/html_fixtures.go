package testutil

import (
	"fmt"
	"strings"
)

// IntPtr is a helper for creating *int values in tests
func IntPtr(v int) *int {
	return &v
}

// VoteBoxOptions contains options for generating one entry of a user list page
type VoteBoxOptions struct {
	ID     int64
	Name   string
	Path   string // Defaults to /film/{Name}-{Year}-{ID}
	Year   string // Raw year text, "2005" or "2015-2016"
	Genres []string
	OmitID bool // Drop the data-film-id attribute
}

// SearchResultOptions contains options for generating a search catalog result
type SearchResultOptions struct {
	ID   string // "tt0371257"
	Name string
	Year string // Raw year text, "(2005)" or "(2015–2016)"
}

// TitlePageOptions contains options for generating a search catalog title page
type TitlePageOptions struct {
	Title       string
	Series      bool
	Chips       []string
	InlineItems []string // Defaults to "Original title", year, certificate, runtime
}

// GenerateVotePageHTML generates a user films/serials/want-to-see page
// based on the real source catalog list structure
func GenerateVotePageHTML(boxes []VoteBoxOptions) string {
	var sb strings.Builder

	sb.WriteString(`<html>
<head><meta charset="utf-8"><title>Oceny użytkownika</title></head>
<body>
<section class="userVotesPage">
	<div class="userVotesPage__results">
`)

	for _, box := range boxes {
		path := box.Path
		if path == "" {
			path = fmt.Sprintf("/film/%s-%s-%d", strings.ReplaceAll(box.Name, " ", "+"), box.Year, box.ID)
		}

		idAttr := fmt.Sprintf(` data-film-id="%d"`, box.ID)
		if box.OmitID {
			idAttr = ""
		}

		var genres strings.Builder
		for _, g := range box.Genres {
			fmt.Fprintf(&genres, `<a href="/ranking/film/genre">%s</a> `, g)
		}

		fmt.Fprintf(&sb, `
		<div class="myVoteBox">
			<div class="previewFilm preview"%s>
				<div class="preview__header">
					<h2 class="preview__title"><a class="preview__link" href="%s">%s</a></h2>
					<div class="preview__year">%s</div>
				</div>
				<div class="preview__detail preview__detail--genres">
					<h3>%s</h3>
				</div>
			</div>
		</div>`, idAttr, path, box.Name, box.Year, genres.String())
	}

	sb.WriteString(`
	</div>
</section>
</body>
</html>`)

	return sb.String()
}

// GenerateAlternateTitlesHTML generates a title's "titles" page. names and
// labels are zipped by position; lengths may differ.
func GenerateAlternateTitlesHTML(names, labels []string) string {
	var sb strings.Builder

	sb.WriteString(`<html>
<head><meta charset="utf-8"></head>
<body>
<section class="filmTitlesSection">
	<ul class="filmTitlesSection__list">
`)
	for _, n := range names {
		fmt.Fprintf(&sb, "\t\t<li><h3 class=\"filmTitlesSection__title\">%s</h3></li>\n", n)
	}
	for _, l := range labels {
		fmt.Fprintf(&sb, "\t\t<li><span class=\"filmTitlesSection__desc\">%s</span></li>\n", l)
	}
	sb.WriteString(`	</ul>
</section>
</body>
</html>`)

	return sb.String()
}

// GenerateFilmPageHTML generates a source catalog title page. An empty
// duration omits the data-duration attribute.
func GenerateFilmPageHTML(duration string) string {
	attr := ""
	if duration != "" {
		attr = fmt.Sprintf(` data-duration="%s"`, duration)
	}
	return fmt.Sprintf(`<html>
<head><meta charset="utf-8"></head>
<body>
<div class="filmCoverSection">
	<div class="filmCoverSection__info">
		<div class="filmCoverSection__duration"%s>1 godz. 39 min.</div>
	</div>
</div>
</body>
</html>`, attr)
}

// GenerateSettingsHTML generates the account settings page. An empty username
// renders the anonymous variant.
func GenerateSettingsHTML(username string) string {
	return fmt.Sprintf(`<html>
<head><meta charset="utf-8"></head>
<body>
<div class="mainSettings">
	<div class="mainSettings__group">
		<div class="mainSettings__groupItem"><span class="mainSettings__groupItemStateContent">Polski</span></div>
		<div class="mainSettings__groupItem"><span class="mainSettings__groupItemStateContent">user@example.com</span></div>
		<div class="mainSettings__groupItem"><span class="mainSettings__groupItemStateContent">%s</span></div>
	</div>
</div>
</body>
</html>`, username)
}

// GenerateAdvancedSearchHTML generates an advanced title search result list
func GenerateAdvancedSearchHTML(results []SearchResultOptions) string {
	var sb strings.Builder

	sb.WriteString(`<html>
<head><meta charset="utf-8"><title>Advanced search</title></head>
<body>
<div class="lister-list">
`)
	for i, r := range results {
		fmt.Fprintf(&sb, `
	<div class="lister-item mode-advanced">
		<div class="lister-top-right"></div>
		<div class="lister-item-image float-left">
			<a href="/title/%s/"><img alt="%s" class="loadlate" loadlate="https://example.com/%s.jpg" src="data:,"></a>
		</div>
		<div class="lister-item-content">
			<h3 class="lister-item-header">
				<span class="lister-item-index unbold text-primary">%d.</span>
				<a href="/title/%s/">%s</a>
				<span class="lister-item-year text-muted unbold">%s</span>
			</h3>
		</div>
	</div>`, r.ID, r.Name, r.ID, i+1, r.ID, r.Name, r.Year)
	}
	sb.WriteString(`
</div>
</body>
</html>`)

	return sb.String()
}

// GenerateFindHTML generates a free-text search result list
func GenerateFindHTML(results []SearchResultOptions) string {
	var sb strings.Builder

	sb.WriteString(`<html>
<head><meta charset="utf-8"><title>Find</title></head>
<body>
<section data-testid="find-results-section-title">
	<ul class="ipc-metadata-list">
`)
	for _, r := range results {
		fmt.Fprintf(&sb, `
		<li class="ipc-metadata-list-summary-item">
			<div class="ipc-metadata-list-summary-item__c">
				<a class="ipc-metadata-list-summary-item__t" href="/title/%s/?ref_=fn_al_tt_1">%s</a>
				<ul class="ipc-inline-list">
					<li class="ipc-inline-list__item"><span class="ipc-metadata-list-summary-item__li">%s</span></li>
				</ul>
			</div>
		</li>`, r.ID, r.Name, r.Year)
	}
	sb.WriteString(`
	</ul>
</section>
</body>
</html>`)

	return sb.String()
}

// GenerateTitlePageHTML generates a search catalog title page
func GenerateTitlePageHTML(opts TitlePageOptions) string {
	var sb strings.Builder

	suffix := ""
	if opts.Series {
		suffix = " (TV Series 2015–2016)"
	}
	items := opts.InlineItems
	if items == nil {
		items = []string{"Original title", "Release info", "Top cast", "2005", "R", "1h 39m"}
	}

	fmt.Fprintf(&sb, `<html>
<head><meta charset="utf-8"><title>%s%s - IMDb</title></head>
<body>
<section class="ipc-page-section">
	<ul class="ipc-inline-list">
`, opts.Title, suffix)
	for _, item := range items {
		fmt.Fprintf(&sb, "\t\t<li class=\"ipc-inline-list__item\">%s</li>\n", item)
	}
	sb.WriteString(`	</ul>
	<div class="ipc-chip-list" data-testid="genres">
`)
	for _, chip := range opts.Chips {
		fmt.Fprintf(&sb, "\t\t<a class=\"ipc-chip ipc-chip--on-baseAlt\"><span class=\"ipc-chip__text\">%s</span></a>\n", chip)
	}
	sb.WriteString(`	</div>
</section>
</body>
</html>`)

	return sb.String()
}

// GenerateEmptyHTML generates an empty HTML document
func GenerateEmptyHTML() string {
	return `<html><body></body></html>`
}

// GenerateHTMLWithBody wraps custom body HTML in a basic HTML structure
func GenerateHTMLWithBody(bodyHTML string) string {
	return fmt.Sprintf(`<html><body>%s</body></html>`, bodyHTML)
}
