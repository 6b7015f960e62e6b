package parser

import "io"

// Parser defines a generic interface for parsing list pages
type Parser[T any] interface {
	ParseHtml(body io.Reader) ([]T, error)
}

// SingleResultParser defines a generic interface for parsing pages that yield one value
type SingleResultParser[T any] interface {
	ParseHtml(body io.Reader) (T, error)
}
