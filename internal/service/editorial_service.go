package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/lshigami/Editorly/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// EditorialsPerPage is fixed; the list endpoint takes no limit.
const EditorialsPerPage = 10

type EditorialService interface {
	Create(ctx context.Context, authorID *uuid.UUID, req dto.CreateEditorialRequest) (*dto.EditorialMutationResponse, error)
	Get(ctx context.Context, rawID string) (*dto.EditorialResponse, error)
	List(ctx context.Context, page int) (*dto.EditorialListResponse, error)
	Update(ctx context.Context, rawID string, req dto.UpdateEditorialRequest) (*dto.EditorialMutationResponse, error)
	Delete(ctx context.Context, rawID string) (*dto.MessageResponse, error)
}

type editorialService struct {
	db            *gorm.DB
	editorialRepo repository.EditorialRepository
}

func NewEditorialService(db *gorm.DB, editorialRepo repository.EditorialRepository) EditorialService {
	return &editorialService{db: db, editorialRepo: editorialRepo}
}

func toEditorialDTO(e *model.Editorial) (dto.EditorialDTO, error) {
	var out dto.EditorialDTO
	if err := copier.Copy(&out, e); err != nil {
		return out, apperr.Internal("Error preparing editorial response", err)
	}
	return out, nil
}

func (s *editorialService) load(ctx context.Context, rawID string) (*model.Editorial, error) {
	id, err := ParseID(rawID, "editorial")
	if err != nil {
		return nil, err
	}
	editorial, err := s.editorialRepo.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Editorial not found")
		}
		return nil, apperr.Internal("Failed to load editorial", err)
	}
	return editorial, nil
}

func (s *editorialService) Create(ctx context.Context, authorID *uuid.UUID, req dto.CreateEditorialRequest) (*dto.EditorialMutationResponse, error) {
	editorial := &model.Editorial{
		Title:            strings.TrimSpace(req.Title),
		Image:            strings.TrimSpace(req.Image),
		ShortDescription: req.ShortDescription,
		FullContent:      req.FullContent,
		Author:           req.Author,
		PaperName:        req.PaperName,
		Tag:              req.Tag,
		EditorialDate:    req.EditorialDate.UTC(),
		CreatedBy:        authorID,
	}
	if err := s.editorialRepo.Create(ctx, editorial); err != nil {
		log.Error().Err(err).Str("title", editorial.Title).Msg("Failed to create editorial")
		return nil, apperr.Internal("Failed to create editorial", err)
	}
	out, err := toEditorialDTO(editorial)
	if err != nil {
		return nil, err
	}
	return &dto.EditorialMutationResponse{Success: true, Message: "Editorial created successfully", Data: out}, nil
}

func (s *editorialService) Get(ctx context.Context, rawID string) (*dto.EditorialResponse, error) {
	editorial, err := s.load(ctx, rawID)
	if err != nil {
		return nil, err
	}
	out, err := toEditorialDTO(editorial)
	if err != nil {
		return nil, err
	}
	return &dto.EditorialResponse{Success: true, Data: out}, nil
}

func (s *editorialService) List(ctx context.Context, page int) (*dto.EditorialListResponse, error) {
	page, _ = normalizePage(page, EditorialsPerPage, EditorialsPerPage, EditorialsPerPage)
	editorials, total, err := s.editorialRepo.List(ctx, offsetFor(page, EditorialsPerPage), EditorialsPerPage)
	if err != nil {
		log.Error().Err(err).Int("page", page).Msg("Failed to list editorials")
		return nil, apperr.Internal("Failed to list editorials", err)
	}
	dtos := make([]dto.EditorialDTO, 0, len(editorials))
	for i := range editorials {
		d, err := toEditorialDTO(&editorials[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, d)
	}
	return &dto.EditorialListResponse{
		Success:      true,
		CurrentPage:  page,
		TotalPages:   totalPages(total, EditorialsPerPage),
		TotalItems:   total,
		ItemsPerPage: EditorialsPerPage,
		Editorials:   dtos,
	}, nil
}

func (s *editorialService) Update(ctx context.Context, rawID string, req dto.UpdateEditorialRequest) (*dto.EditorialMutationResponse, error) {
	editorial, err := s.load(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		editorial.Title = strings.TrimSpace(*req.Title)
	}
	if req.Image != nil {
		editorial.Image = strings.TrimSpace(*req.Image)
		if editorial.Image == "" {
			editorial.Image = model.DefaultEditorialImage
		}
	}
	if req.ShortDescription != nil {
		editorial.ShortDescription = *req.ShortDescription
	}
	if req.FullContent != nil {
		editorial.FullContent = *req.FullContent
	}
	if req.Author != nil {
		editorial.Author = *req.Author
	}
	if req.PaperName != nil {
		editorial.PaperName = *req.PaperName
	}
	if req.Tag != nil {
		editorial.Tag = *req.Tag
	}
	if req.EditorialDate != nil {
		editorial.EditorialDate = req.EditorialDate.UTC()
	}
	if editorial.Title == "" {
		return nil, apperr.Validation("Title cannot be empty")
	}
	if err := s.editorialRepo.Update(ctx, editorial); err != nil {
		log.Error().Err(err).Str("editorialID", editorial.ID.String()).Msg("Failed to update editorial")
		return nil, apperr.Internal("Failed to update editorial", err)
	}
	out, err := toEditorialDTO(editorial)
	if err != nil {
		return nil, err
	}
	return &dto.EditorialMutationResponse{Success: true, Message: "Editorial updated successfully", Data: out}, nil
}

func (s *editorialService) Delete(ctx context.Context, rawID string) (*dto.MessageResponse, error) {
	id, err := ParseID(rawID, "editorial")
	if err != nil {
		return nil, err
	}
	var deleted int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repository.NewQuestionRepository(tx).DeleteByContent(ctx, model.ContentEditorial, []uuid.UUID{id}); err != nil {
			return err
		}
		deleted, err = repository.NewEditorialRepository(tx).Delete(ctx, id)
		return err
	})
	if err != nil {
		log.Error().Err(err).Str("editorialID", id.String()).Msg("Failed to delete editorial")
		return nil, apperr.Internal("Failed to delete editorial", err)
	}
	if deleted == 0 {
		return nil, apperr.NotFound("Editorial not found")
	}
	return &dto.MessageResponse{Message: "Editorial deleted successfully"}, nil
}
