package dto

import (
	"time"

	"github.com/google/uuid"
)

type EvaluationDTO struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Question    string    `json:"question"`
	AnswerText  string    `json:"answerText"`
	Marks       float64   `json:"marks"`
	Feedback    string    `json:"feedback"`
	Suggestions []string  `json:"suggestions"`
	CreatedAt   time.Time `json:"createdAt"`
}

type EvaluationCreatedResponse struct {
	Message string        `json:"message"`
	Data    EvaluationDTO `json:"data"`
}

type EvaluationListResponse struct {
	Evaluations []EvaluationDTO `json:"evaluations"`
}
