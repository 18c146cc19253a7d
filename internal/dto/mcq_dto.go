package dto

import (
	"time"

	"github.com/google/uuid"
)

type QuestionDTO struct {
	ID            uuid.UUID `json:"id"`
	ContentType   string    `json:"contentType"`
	ContentID     uuid.UUID `json:"contentId"`
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correctAnswer"`
	CreatedAt     time.Time `json:"createdAt"`
}

// GeneratedQuestionDTO is a question returned by the generator before it is stored.
type GeneratedQuestionDTO struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

type QuestionListResponse struct {
	Total int           `json:"total"`
	MCQs  []QuestionDTO `json:"mcqs"`
}

type GenerateQuestionsResponse struct {
	FromCache bool          `json:"fromCache"`
	MCQs      []QuestionDTO `json:"mcqs"`
}

type PreviewQuestionsResponse struct {
	Title string                 `json:"title"`
	MCQs  []GeneratedQuestionDTO `json:"mcqs"`
}

type AttemptAnswerDTO struct {
	MCQID    uuid.UUID    `json:"mcqId"`
	Selected string       `json:"selected"`
	Correct  bool         `json:"correct"`
	MCQ      *QuestionDTO `json:"mcq,omitempty"`
}

type SubmitAttemptResponse struct {
	Message string             `json:"message"`
	Score   int                `json:"score"`
	Total   int                `json:"total"`
	Result  []AttemptAnswerDTO `json:"result"`
}

type AttemptCheckResponse struct {
	Attempted bool               `json:"attempted"`
	Score     *int               `json:"score,omitempty"`
	Total     *int               `json:"total,omitempty"`
	Result    []AttemptAnswerDTO `json:"result,omitempty"`
}

type ResetAttemptResponse struct {
	Message          string    `json:"message"`
	DeletedAttemptID uuid.UUID `json:"deletedAttemptId"`
}
