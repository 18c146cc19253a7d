package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/Editorly/internal/model"
)

const QuestionsPerSet = 5

var ErrMalformedGeneration = errors.New("generated content does not match the expected schema")

type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// QuestionGenerator produces a question set for a piece of content.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, title, content string) ([]GeneratedQuestion, error)
}

type AnswerEvaluation struct {
	Marks       float64  `json:"marks"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}

// AnswerEvaluator grades a free-text answer on a 0-10 scale.
type AnswerEvaluator interface {
	EvaluateAnswer(ctx context.Context, question, answer string) (*AnswerEvaluation, error)
}

// stripCodeFences removes markdown fences models like to wrap JSON in.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```JSON", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// parseGeneratedQuestions accepts exactly QuestionsPerSet well-formed
// questions and nothing else.
func parseGeneratedQuestions(raw string) ([]GeneratedQuestion, error) {
	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGeneration, err)
	}
	if len(questions) != QuestionsPerSet {
		return nil, fmt.Errorf("%w: expected %d questions, got %d", ErrMalformedGeneration, QuestionsPerSet, len(questions))
	}
	for i := range questions {
		q := &questions[i]
		q.Question = strings.TrimSpace(q.Question)
		q.CorrectAnswer = strings.TrimSpace(q.CorrectAnswer)
		for j := range q.Options {
			q.Options[j] = strings.TrimSpace(q.Options[j])
		}
		candidate := model.Question{Question: q.Question, Options: q.Options, CorrectAnswer: q.CorrectAnswer}
		if err := candidate.Validate(); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrMalformedGeneration, i+1, err)
		}
	}
	return questions, nil
}

func parseAnswerEvaluation(raw string) (*AnswerEvaluation, error) {
	var eval AnswerEvaluation
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &eval); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGeneration, err)
	}
	eval.Feedback = strings.TrimSpace(eval.Feedback)
	if eval.Marks < 0 || eval.Marks > 10 {
		return nil, fmt.Errorf("%w: marks %.2f outside 0-10", ErrMalformedGeneration, eval.Marks)
	}
	if eval.Feedback == "" {
		return nil, fmt.Errorf("%w: empty feedback", ErrMalformedGeneration)
	}
	suggestions := make([]string, 0, len(eval.Suggestions))
	for _, s := range eval.Suggestions {
		if s = strings.TrimSpace(s); s != "" {
			suggestions = append(suggestions, s)
		}
	}
	eval.Suggestions = suggestions
	return &eval, nil
}
