package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Belphemur/filmed/internal/config"
	"github.com/Belphemur/filmed/internal/models"
	"github.com/PuerkitoBio/goquery"
)

// VoteBoxParser reads the entries of a user's films, serials or want-to-see page.
type VoteBoxParser struct{}

// NewVoteBoxParser creates a parser for source catalog user list pages
func NewVoteBoxParser() Parser[models.VoteBox] {
	return &VoteBoxParser{}
}

// ParseHtml returns one VoteBox per div.myVoteBox. Entries without a numeric
// id or a title link are skipped and logged.
func (p *VoteBoxParser) ParseHtml(body io.Reader) ([]models.VoteBox, error) {
	logger := config.GetLogger()

	doc, err := newDocument(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var boxes []models.VoteBox
	doc.Find("div.myVoteBox").Each(func(i int, s *goquery.Selection) {
		box, err := parseVoteBox(s)
		if err != nil {
			logger.Warn().Err(err).Int("index", i).Msg("Skipping unreadable vote box")
			return
		}
		boxes = append(boxes, box)
	})

	logger.Debug().Int("count", len(boxes)).Msg("Parsed vote boxes")
	return boxes, nil
}

func parseVoteBox(s *goquery.Selection) (models.VoteBox, error) {
	rawID, ok := s.Find(".previewFilm").First().Attr("data-film-id")
	if !ok {
		return models.VoteBox{}, fmt.Errorf("vote box has no data-film-id")
	}
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		return models.VoteBox{}, fmt.Errorf("invalid film id %q: %w", rawID, err)
	}

	link := s.Find(".preview__link").First()
	href, ok := link.Attr("href")
	if !ok {
		return models.VoteBox{}, fmt.Errorf("vote box %d has no title link", id)
	}

	var labels []string
	s.Find(".preview__detail--genres h3 a").Each(func(_ int, a *goquery.Selection) {
		if label := strings.TrimSpace(a.Text()); label != "" {
			labels = append(labels, label)
		}
	})

	return models.VoteBox{
		ID:          id,
		Name:        strings.TrimSpace(link.Text()),
		Path:        href,
		YearText:    strings.TrimSpace(s.Find(".preview__year").First().Text()),
		GenreLabels: labels,
	}, nil
}
