package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/Editorly/config"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/lshigami/Editorly/internal/repository"
	"github.com/rs/zerolog/log"
)

const randomQuestionLimit = 5

type MCQService interface {
	// ListRandom returns up to five stored questions in random order.
	ListRandom(ctx context.Context, contentType model.ContentType, contentID uuid.UUID) (*dto.QuestionListResponse, error)
	// GetOrGenerate returns the stored set, generating and storing it on
	// first request.
	GetOrGenerate(ctx context.Context, contentType model.ContentType, contentID uuid.UUID) (*dto.GenerateQuestionsResponse, error)
	CreateQuestions(ctx context.Context, contentType model.ContentType, contentID uuid.UUID, req dto.CreateQuestionsRequest) (*dto.QuestionListResponse, error)
	// Preview generates questions for ad-hoc text without storing them.
	Preview(ctx context.Context, req dto.GenerateQuestionsRequest) (*dto.PreviewQuestionsResponse, error)
}

type mcqService struct {
	questionRepo repository.QuestionRepository
	contents     ContentResolver
	generator    QuestionGenerator
	locker       GenerationLocker
	timeout      time.Duration
}

func NewMCQService(
	questionRepo repository.QuestionRepository,
	contents ContentResolver,
	generator QuestionGenerator,
	locker GenerationLocker,
	cfg *config.Config,
) MCQService {
	return &mcqService{
		questionRepo: questionRepo,
		contents:     contents,
		generator:    generator,
		locker:       locker,
		timeout:      cfg.Gemini.Timeout,
	}
}

func toQuestionDTOs(questions []model.Question) ([]dto.QuestionDTO, error) {
	out := make([]dto.QuestionDTO, 0, len(questions))
	if err := copier.Copy(&out, &questions); err != nil {
		return nil, apperr.Internal("Error preparing questions response", err)
	}
	return out, nil
}

func (s *mcqService) ListRandom(ctx context.Context, contentType model.ContentType, contentID uuid.UUID) (*dto.QuestionListResponse, error) {
	questions, err := s.questionRepo.FindByContent(ctx, contentType, contentID)
	if err != nil {
		log.Error().Err(err).Str("contentID", contentID.String()).Msg("Failed to load questions")
		return nil, apperr.Internal("Failed to load questions", err)
	}
	rand.Shuffle(len(questions), func(i, j int) { questions[i], questions[j] = questions[j], questions[i] })
	if len(questions) > randomQuestionLimit {
		questions = questions[:randomQuestionLimit]
	}
	dtos, err := toQuestionDTOs(questions)
	if err != nil {
		return nil, err
	}
	return &dto.QuestionListResponse{Total: len(dtos), MCQs: dtos}, nil
}

func (s *mcqService) GetOrGenerate(ctx context.Context, contentType model.ContentType, contentID uuid.UUID) (*dto.GenerateQuestionsResponse, error) {
	item, err := s.contents.Resolve(ctx, contentType, contentID)
	if err != nil {
		return nil, err
	}

	if cached, err := s.cached(ctx, item); err != nil || cached != nil {
		return cached, err
	}

	release, err := s.locker.Acquire(ctx, string(contentType)+":"+contentID.String())
	if err != nil {
		log.Error().Err(err).Str("contentID", contentID.String()).Msg("Failed to acquire generation lock")
		return nil, apperr.Internal("Failed to generate MCQs", err)
	}
	defer release()

	// Another request may have stored the set while we waited.
	if cached, err := s.cached(ctx, item); err != nil || cached != nil {
		return cached, err
	}

	generated, err := s.generate(ctx, item.Title, item.Body)
	if err != nil {
		log.Error().Err(err).Str("contentType", string(contentType)).Str("contentID", contentID.String()).Msg("MCQ generation failed")
		return nil, err
	}

	questions := make([]model.Question, 0, len(generated))
	for i, g := range generated {
		questions = append(questions, model.Question{
			ContentType:   contentType,
			ContentID:     contentID,
			Question:      g.Question,
			Options:       g.Options,
			CorrectAnswer: g.CorrectAnswer,
			Position:      i,
		})
	}
	if err := s.questionRepo.CreateBatch(ctx, questions); err != nil {
		log.Error().Err(err).Str("contentID", contentID.String()).Msg("Failed to store generated questions")
		return nil, apperr.Internal("Failed to store generated MCQs", err)
	}
	log.Info().Str("contentType", string(contentType)).Str("contentID", contentID.String()).Int("count", len(questions)).Msg("Generated and stored MCQs")

	dtos, err := toQuestionDTOs(questions)
	if err != nil {
		return nil, err
	}
	return &dto.GenerateQuestionsResponse{FromCache: false, MCQs: dtos}, nil
}

func (s *mcqService) cached(ctx context.Context, item *ContentItem) (*dto.GenerateQuestionsResponse, error) {
	existing, err := s.questionRepo.FindByContent(ctx, item.Type, item.ID)
	if err != nil {
		log.Error().Err(err).Str("contentID", item.ID.String()).Msg("Failed to read question bank")
		return nil, apperr.Internal("Failed to load questions", err)
	}
	if len(existing) == 0 {
		return nil, nil
	}
	dtos, err := toQuestionDTOs(existing)
	if err != nil {
		return nil, err
	}
	return &dto.GenerateQuestionsResponse{FromCache: true, MCQs: dtos}, nil
}

// generate bounds the upstream call and classifies every failure as Upstream.
func (s *mcqService) generate(ctx context.Context, title, body string) ([]GeneratedQuestion, error) {
	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	generated, err := s.generator.GenerateQuestions(genCtx, title, body)
	if err != nil {
		if errors.Is(genCtx.Err(), context.DeadlineExceeded) {
			return nil, apperr.Upstream("Gemini timed out generating MCQs", err)
		}
		return nil, apperr.Upstream("Gemini failed to generate MCQs", err)
	}
	if err := validateGenerated(generated); err != nil {
		return nil, apperr.Upstream("Gemini failed to generate MCQs", err)
	}
	return generated, nil
}

func validateGenerated(questions []GeneratedQuestion) error {
	if len(questions) != QuestionsPerSet {
		return ErrMalformedGeneration
	}
	for _, g := range questions {
		q := model.Question{Question: g.Question, Options: g.Options, CorrectAnswer: g.CorrectAnswer}
		if err := q.Validate(); err != nil {
			return errors.Join(ErrMalformedGeneration, err)
		}
	}
	return nil
}

func (s *mcqService) CreateQuestions(ctx context.Context, contentType model.ContentType, contentID uuid.UUID, req dto.CreateQuestionsRequest) (*dto.QuestionListResponse, error) {
	if _, err := s.contents.Resolve(ctx, contentType, contentID); err != nil {
		return nil, err
	}
	existing, err := s.questionRepo.CountByContent(ctx, contentType, contentID)
	if err != nil {
		return nil, apperr.Internal("Failed to load questions", err)
	}

	questions := make([]model.Question, 0, len(req.Questions))
	for i, in := range req.Questions {
		q := model.Question{
			ContentType:   contentType,
			ContentID:     contentID,
			Question:      in.Question,
			Options:       in.Options,
			CorrectAnswer: in.CorrectAnswer,
			Position:      int(existing) + i,
		}
		if err := q.Validate(); err != nil {
			return nil, apperr.Validation("Invalid question").WithDetails(map[string]any{"index": i, "reason": err.Error()})
		}
		questions = append(questions, q)
	}
	if err := s.questionRepo.CreateBatch(ctx, questions); err != nil {
		log.Error().Err(err).Str("contentID", contentID.String()).Msg("Failed to store authored questions")
		return nil, apperr.Internal("Failed to store MCQs", err)
	}
	dtos, err := toQuestionDTOs(questions)
	if err != nil {
		return nil, err
	}
	return &dto.QuestionListResponse{Total: len(dtos), MCQs: dtos}, nil
}

func (s *mcqService) Preview(ctx context.Context, req dto.GenerateQuestionsRequest) (*dto.PreviewQuestionsResponse, error) {
	generated, err := s.generate(ctx, req.Title, req.Content)
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("MCQ preview generation failed")
		return nil, err
	}
	out := make([]dto.GeneratedQuestionDTO, 0, len(generated))
	for _, g := range generated {
		out = append(out, dto.GeneratedQuestionDTO{Question: g.Question, Options: g.Options, CorrectAnswer: g.CorrectAnswer})
	}
	return &dto.PreviewQuestionsResponse{Title: req.Title, MCQs: out}, nil
}
