package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/lshigami/Editorly/internal/repository"
	"github.com/rs/zerolog/log"
)

const previewLength = 200

// ContentItem is the common view of an article or editorial that quizzes
// and analytics work with.
type ContentItem struct {
	Type     model.ContentType
	ID       uuid.UUID
	Title    string
	Body     string
	Category string
	Preview  string
}

type ContentRef struct {
	Type model.ContentType
	ID   uuid.UUID
}

type ContentResolver interface {
	Resolve(ctx context.Context, contentType model.ContentType, id uuid.UUID) (*ContentItem, error)
	// ResolveMany skips refs whose content no longer exists.
	ResolveMany(ctx context.Context, refs []ContentRef) (map[ContentRef]ContentItem, error)
}

type contentResolver struct {
	articleRepo   repository.ArticleRepository
	editorialRepo repository.EditorialRepository
}

func NewContentResolver(articleRepo repository.ArticleRepository, editorialRepo repository.EditorialRepository) ContentResolver {
	return &contentResolver{articleRepo: articleRepo, editorialRepo: editorialRepo}
}

func articleItem(a *model.Article) ContentItem {
	return ContentItem{
		Type:     model.ContentArticle,
		ID:       a.ID,
		Title:    a.Title,
		Body:     a.Body(),
		Category: a.Category,
		Preview:  truncateRunes(a.Description, previewLength),
	}
}

func editorialItem(e *model.Editorial) ContentItem {
	preview := e.ShortDescription
	if preview == "" {
		preview = e.FullContent
	}
	return ContentItem{
		Type:     model.ContentEditorial,
		ID:       e.ID,
		Title:    e.Title,
		Body:     e.FullContent,
		Category: e.Tag,
		Preview:  truncateRunes(preview, previewLength),
	}
}

func (r *contentResolver) Resolve(ctx context.Context, contentType model.ContentType, id uuid.UUID) (*ContentItem, error) {
	var (
		item ContentItem
		err  error
	)
	switch contentType {
	case model.ContentArticle:
		var a *model.Article
		if a, err = r.articleRepo.FindByID(ctx, id); err == nil {
			item = articleItem(a)
		}
	case model.ContentEditorial:
		var e *model.Editorial
		if e, err = r.editorialRepo.FindByID(ctx, id); err == nil {
			item = editorialItem(e)
		}
	default:
		return nil, apperr.Validation("Unknown content type")
	}
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound(contentType.Label() + " not found")
		}
		log.Error().Err(err).Str("contentType", string(contentType)).Str("contentID", id.String()).Msg("Failed to load content item")
		return nil, apperr.Internal("Failed to load content", err)
	}
	return &item, nil
}

func (r *contentResolver) ResolveMany(ctx context.Context, refs []ContentRef) (map[ContentRef]ContentItem, error) {
	var articleIDs, editorialIDs []uuid.UUID
	for _, ref := range refs {
		switch ref.Type {
		case model.ContentArticle:
			articleIDs = append(articleIDs, ref.ID)
		case model.ContentEditorial:
			editorialIDs = append(editorialIDs, ref.ID)
		}
	}

	out := make(map[ContentRef]ContentItem, len(refs))
	articles, err := r.articleRepo.FindByIDs(ctx, articleIDs)
	if err != nil {
		return nil, apperr.Internal("Failed to load articles", err)
	}
	for i := range articles {
		item := articleItem(&articles[i])
		out[ContentRef{Type: item.Type, ID: item.ID}] = item
	}
	editorials, err := r.editorialRepo.FindByIDs(ctx, editorialIDs)
	if err != nil {
		return nil, apperr.Internal("Failed to load editorials", err)
	}
	for i := range editorials {
		item := editorialItem(&editorials[i])
		out[ContentRef{Type: item.Type, ID: item.ID}] = item
	}
	return out, nil
}
