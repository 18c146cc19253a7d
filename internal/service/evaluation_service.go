package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/Editorly/config"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/lshigami/Editorly/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type EvaluationService interface {
	Evaluate(ctx context.Context, userID uuid.UUID, req dto.EvaluateAnswerRequest) (*dto.EvaluationCreatedResponse, error)
	ListMine(ctx context.Context, userID uuid.UUID) (*dto.EvaluationListResponse, error)
}

type evaluationService struct {
	evaluationRepo repository.EvaluationRepository
	evaluator      AnswerEvaluator
	timeout        time.Duration
}

func NewEvaluationService(evaluationRepo repository.EvaluationRepository, evaluator AnswerEvaluator, cfg *config.Config) EvaluationService {
	return &evaluationService{evaluationRepo: evaluationRepo, evaluator: evaluator, timeout: cfg.Gemini.Timeout}
}

func toEvaluationDTO(e *model.Evaluation) (dto.EvaluationDTO, error) {
	var out dto.EvaluationDTO
	if err := copier.Copy(&out, e); err != nil {
		return out, apperr.Internal("Error preparing evaluation response", err)
	}
	if out.Suggestions == nil {
		out.Suggestions = []string{}
	}
	return out, nil
}

func (s *evaluationService) Evaluate(ctx context.Context, userID uuid.UUID, req dto.EvaluateAnswerRequest) (*dto.EvaluationCreatedResponse, error) {
	question := strings.TrimSpace(req.Question)
	answer := strings.TrimSpace(req.AnswerText)
	if question == "" || answer == "" {
		return nil, apperr.Validation("question and answerText are required")
	}

	evalCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	result, err := s.evaluator.EvaluateAnswer(evalCtx, question, answer)
	if err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("Answer evaluation failed")
		if errors.Is(evalCtx.Err(), context.DeadlineExceeded) {
			return nil, apperr.Upstream("Evaluation timed out", err)
		}
		return nil, apperr.Upstream("Failed to evaluate answer", err)
	}

	evaluation := &model.Evaluation{
		UserID:      userID,
		Question:    question,
		AnswerText:  answer,
		Marks:       result.Marks,
		Feedback:    result.Feedback,
		Suggestions: datatypes.JSONSlice[string](result.Suggestions),
	}
	if err := s.evaluationRepo.Create(ctx, evaluation); err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("Failed to store evaluation")
		return nil, apperr.Internal("Failed to store evaluation", err)
	}
	out, err := toEvaluationDTO(evaluation)
	if err != nil {
		return nil, err
	}
	return &dto.EvaluationCreatedResponse{Message: "Evaluation completed successfully", Data: out}, nil
}

func (s *evaluationService) ListMine(ctx context.Context, userID uuid.UUID) (*dto.EvaluationListResponse, error) {
	evaluations, err := s.evaluationRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("Failed to list evaluations")
		return nil, apperr.Internal("Failed to fetch evaluations", err)
	}
	out := make([]dto.EvaluationDTO, 0, len(evaluations))
	for i := range evaluations {
		d, err := toEvaluationDTO(&evaluations[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return &dto.EvaluationListResponse{Evaluations: out}, nil
}
