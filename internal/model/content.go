package model

import "fmt"

// ContentType names the collection a question or attempt belongs to.
type ContentType string

const (
	ContentArticle   ContentType = "article"
	ContentEditorial ContentType = "editorial"
)

func (t ContentType) Valid() bool {
	return t == ContentArticle || t == ContentEditorial
}

func (t ContentType) Label() string {
	switch t {
	case ContentArticle:
		return "Article"
	case ContentEditorial:
		return "Editorial"
	default:
		return fmt.Sprintf("Content(%s)", string(t))
	}
}
