package dto

import (
	"time"

	"github.com/google/uuid"
)

type ArticleDTO struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Source       string     `json:"source"`
	Link         *string    `json:"link,omitempty"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Image        *string    `json:"image"`
	PubDate      *time.Time `json:"pubDate,omitempty"`
	BulletPoints []string   `json:"bulletPoints"`
	AIAnswer     string     `json:"aiAnswer"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type ArticleListResponse struct {
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	Pages    int          `json:"pages"`
	Articles []ArticleDTO `json:"articles"`
}

type ArticleSearchResponse struct {
	Total    int          `json:"total"`
	Articles []ArticleDTO `json:"articles"`
}

type ArticleMutationResponse struct {
	Message string     `json:"message"`
	Article ArticleDTO `json:"article"`
}

type EditorialDTO struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Image            string    `json:"image"`
	ShortDescription string    `json:"shortDescription"`
	FullContent      string    `json:"fullContent"`
	Author           string    `json:"author"`
	PaperName        string    `json:"paperName"`
	Tag              string    `json:"tag"`
	EditorialDate    time.Time `json:"editorialDate"`
	InsertedAt       time.Time `json:"insertedAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type EditorialListResponse struct {
	Success      bool           `json:"success"`
	CurrentPage  int            `json:"currentPage"`
	TotalPages   int            `json:"totalPages"`
	TotalItems   int64          `json:"totalItems"`
	ItemsPerPage int            `json:"itemsPerPage"`
	Editorials   []EditorialDTO `json:"editorials"`
}

type EditorialResponse struct {
	Success bool         `json:"success"`
	Data    EditorialDTO `json:"data"`
}

type EditorialMutationResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    EditorialDTO `json:"data"`
}

type BookmarkIDsResponse struct {
	Message   string      `json:"message"`
	Bookmarks []uuid.UUID `json:"bookmarks"`
}

type BookmarkListResponse struct {
	Bookmarks []ArticleDTO `json:"bookmarks"`
}

type RSSFetchResponse struct {
	Message string `json:"message"`
	Added   int    `json:"added"`
	Total   int    `json:"total"`
}
