package models

import "strings"

// MediaKind distinguishes films from series
type MediaKind int

const (
	KindMovie MediaKind = iota
	KindShow
)

// String returns the string representation of the kind
func (k MediaKind) String() string {
	if k == KindShow {
		return "show"
	}
	return "movie"
}

// ParseMediaKind converts a kind string to MediaKind, defaulting to KindMovie
func ParseMediaKind(s string) MediaKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "show", "serial", "series", "tvseries":
		return KindShow
	default:
		return KindMovie
	}
}

// MarshalJSON implements json.Marshaler interface
func (k MediaKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler interface
func (k *MediaKind) UnmarshalJSON(data []byte) error {
	*k = ParseMediaKind(strings.Trim(string(data), `"`))
	return nil
}
