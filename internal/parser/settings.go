package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/Belphemur/filmed/internal/apperrors"
)

// usernameItem is the position of the username among the account settings values.
const usernameItem = 2

// UsernameParser reads the logged-in username from the account settings page.
type UsernameParser struct{}

// NewUsernameParser creates a parser for the source catalog settings page
func NewUsernameParser() SingleResultParser[string] {
	return &UsernameParser{}
}

// ParseHtml returns ErrInvalidCredentials when the page does not show a
// username, which is what an anonymous session gets.
func (p *UsernameParser) ParseHtml(body io.Reader) (string, error) {
	doc, err := newDocument(body)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	name := strings.TrimSpace(doc.Find(".mainSettings__groupItemStateContent").Eq(usernameItem).Text())
	if name == "" {
		return "", apperrors.ErrInvalidCredentials
	}
	return name, nil
}
