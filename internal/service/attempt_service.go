package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/lshigami/Editorly/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

const alreadyAttemptedMessage = "You have already attempted this quiz"

// errAlreadyAttempted is the Conflict returned for a repeat submission. It
// keeps the 400 status existing clients check for.
func errAlreadyAttempted() *apperr.Error {
	return apperr.Conflict(alreadyAttemptedMessage).WithStatus(http.StatusBadRequest)
}

type AttemptService interface {
	Submit(ctx context.Context, userID uuid.UUID, contentType model.ContentType, contentID uuid.UUID, answers []dto.AnswerSubmission) (*dto.SubmitAttemptResponse, error)
	Check(ctx context.Context, userID uuid.UUID, contentType model.ContentType, contentID uuid.UUID) (*dto.AttemptCheckResponse, error)
	Reset(ctx context.Context, userID uuid.UUID, contentType model.ContentType, contentID uuid.UUID) (*dto.ResetAttemptResponse, error)
}

type attemptService struct {
	attemptRepo  repository.AttemptRepository
	questionRepo repository.QuestionRepository
	userRepo     repository.UserRepository
	contents     ContentResolver
	now          func() time.Time
}

func NewAttemptService(
	attemptRepo repository.AttemptRepository,
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
	contents ContentResolver,
) AttemptService {
	return &attemptService{
		attemptRepo:  attemptRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		contents:     contents,
		now:          time.Now,
	}
}

// scoreAnswers compares each submitted answer with the stored correct option.
// Unknown question ids are skipped and a question counts at most once.
func scoreAnswers(questions []model.Question, answers []dto.AnswerSubmission) (int, []model.AttemptAnswer) {
	byID := make(map[string]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID.String()] = &questions[i]
	}

	score := 0
	seen := make(map[uuid.UUID]struct{}, len(answers))
	result := make([]model.AttemptAnswer, 0, len(answers))
	for _, ans := range answers {
		q, ok := byID[ans.MCQID]
		if !ok {
			if id, err := uuid.Parse(ans.MCQID); err == nil {
				q, ok = byID[id.String()]
			}
		}
		if !ok {
			continue
		}
		if _, dup := seen[q.ID]; dup {
			continue
		}
		seen[q.ID] = struct{}{}

		correct := q.CorrectAnswer == ans.Selected
		if correct {
			score++
		}
		result = append(result, model.AttemptAnswer{QuestionID: q.ID, Selected: ans.Selected, Correct: correct})
	}
	return score, result
}

func toAnswerDTOs(answers []model.AttemptAnswer, questions map[uuid.UUID]dto.QuestionDTO) []dto.AttemptAnswerDTO {
	out := make([]dto.AttemptAnswerDTO, 0, len(answers))
	for _, a := range answers {
		item := dto.AttemptAnswerDTO{MCQID: a.QuestionID, Selected: a.Selected, Correct: a.Correct}
		if q, ok := questions[a.QuestionID]; ok {
			item.MCQ = &q
		}
		out = append(out, item)
	}
	return out
}

func (s *attemptService) Submit(ctx context.Context, userID uuid.UUID, contentType model.ContentType, contentID uuid.UUID, answers []dto.AnswerSubmission) (*dto.SubmitAttemptResponse, error) {
	if _, err := s.contents.Resolve(ctx, contentType, contentID); err != nil {
		return nil, err
	}

	exists, err := s.attemptRepo.ExistsByUserAndContent(ctx, userID, contentType, contentID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Str("contentID", contentID.String()).Msg("Failed to check existing attempt")
		return nil, apperr.Internal("Failed to submit quiz", err)
	}
	if exists {
		return nil, errAlreadyAttempted()
	}

	questions, err := s.questionRepo.FindByContent(ctx, contentType, contentID)
	if err != nil {
		log.Error().Err(err).Str("contentID", contentID.String()).Msg("Failed to load questions for scoring")
		return nil, apperr.Internal("Failed to submit quiz", err)
	}

	score, result := scoreAnswers(questions, answers)
	attempt := &model.QuizAttempt{
		UserID:      userID,
		ContentType: contentType,
		ContentID:   contentID,
		Score:       score,
		Total:       len(questions),
		Answers:     datatypes.JSONSlice[model.AttemptAnswer](result),
	}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			log.Info().Str("userID", userID.String()).Str("contentID", contentID.String()).Msg("Concurrent duplicate attempt rejected by unique index")
			return nil, errAlreadyAttempted()
		}
		log.Error().Err(err).Str("userID", userID.String()).Str("contentID", contentID.String()).Msg("Failed to store attempt")
		return nil, apperr.Internal("Failed to submit quiz", err)
	}

	s.creditUser(ctx, userID, score)

	return &dto.SubmitAttemptResponse{
		Message: "Quiz submitted",
		Score:   attempt.Score,
		Total:   attempt.Total,
		Result:  toAnswerDTOs(result, nil),
	}, nil
}

// creditUser is best effort; a failed counter update never fails a stored attempt.
func (s *attemptService) creditUser(ctx context.Context, userID uuid.UUID, score int) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID.String()).Msg("Could not load user for activity update")
		return
	}
	recordActivity(user, score, s.now())
	if err := s.userRepo.UpdateActivity(ctx, user); err != nil {
		log.Warn().Err(err).Str("userID", userID.String()).Msg("Could not update user activity")
	}
}

func (s *attemptService) Check(ctx context.Context, userID uuid.UUID, contentType model.ContentType, contentID uuid.UUID) (*dto.AttemptCheckResponse, error) {
	attempt, err := s.attemptRepo.FindByUserAndContent(ctx, userID, contentType, contentID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return &dto.AttemptCheckResponse{Attempted: false}, nil
		}
		log.Error().Err(err).Str("userID", userID.String()).Str("contentID", contentID.String()).Msg("Failed to check attempt")
		return nil, apperr.Internal("Failed to check attempt", err)
	}

	ids := make([]uuid.UUID, 0, len(attempt.Answers))
	for _, a := range attempt.Answers {
		ids = append(ids, a.QuestionID)
	}
	questions, err := s.questionRepo.FindByIDs(ctx, ids)
	if err != nil {
		log.Error().Err(err).Str("attemptID", attempt.ID.String()).Msg("Failed to expand attempt questions")
		return nil, apperr.Internal("Failed to check attempt", err)
	}
	dtos, err := toQuestionDTOs(questions)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]dto.QuestionDTO, len(dtos))
	for _, q := range dtos {
		byID[q.ID] = q
	}

	score, total := attempt.Score, attempt.Total
	return &dto.AttemptCheckResponse{
		Attempted: true,
		Score:     &score,
		Total:     &total,
		Result:    toAnswerDTOs(attempt.Answers, byID),
	}, nil
}

func (s *attemptService) Reset(ctx context.Context, userID uuid.UUID, contentType model.ContentType, contentID uuid.UUID) (*dto.ResetAttemptResponse, error) {
	attempt, err := s.attemptRepo.FindByUserAndContent(ctx, userID, contentType, contentID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("No attempt found to reset")
		}
		return nil, apperr.Internal("Failed to reset attempt", err)
	}
	deleted, err := s.attemptRepo.DeleteByID(ctx, attempt.ID)
	if err != nil {
		log.Error().Err(err).Str("attemptID", attempt.ID.String()).Msg("Failed to delete attempt")
		return nil, apperr.Internal("Failed to reset attempt", err)
	}
	if deleted == 0 {
		return nil, apperr.NotFound("No attempt found to reset")
	}
	log.Info().Str("userID", userID.String()).Str("contentID", contentID.String()).Msg("Quiz attempt reset")
	return &dto.ResetAttemptResponse{Message: "Quiz attempt reset successfully", DeletedAttemptID: attempt.ID}, nil
}
