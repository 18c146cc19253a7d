package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/Editorly/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

var ErrGeminiUnavailable = errors.New("gemini client not initialized")

// GeminiLLMService backs both the question generator and the answer evaluator.
type GeminiLLMService interface {
	QuestionGenerator
	AnswerEvaluator
	Close() error
}

type geminiLLMService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiLLMService will be non-functional.")
		return &geminiLLMService{}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Gemini.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel(cfg.Gemini.Model)
	model.ResponseMIMEType = "application/json"
	log.Info().Str("model", cfg.Gemini.Model).Msg("Gemini client initialized")
	return &geminiLLMService{client: client, model: model}, nil
}

func (s *geminiLLMService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *geminiLLMService) generateText(ctx context.Context, prompt string) (string, error) {
	if s.model == nil {
		return "", ErrGeminiUnavailable
	}
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("gemini returned an empty response")
	}
	return sb.String(), nil
}

func questionPrompt(title, content string) string {
	return fmt.Sprintf(`Generate %d UPSC-style MCQs or previous year questions based on the article below.
Each question must have exactly 4 options and ONE correct answer.
The correctAnswer must be copied exactly from one of the options.
Return only valid JSON in this format:
[
  {
    "question": "string",
    "options": ["option1", "option2", "option3", "option4"],
    "correctAnswer": "option2"
  }
]

Title: %s
Content: %s
`, QuestionsPerSet, title, content)
}

func evaluationPrompt(question, answer string) string {
	return fmt.Sprintf(`You are an experienced UPSC mains examiner.
Evaluate the candidate's answer to the question below on a scale of 0 to 10.
Judge relevance, structure, depth of content and use of examples.
Return only valid JSON in this format:
{
  "marks": 6.5,
  "feedback": "string",
  "suggestions": ["string", "string"]
}

Question: %s
Answer: %s
`, question, answer)
}

func (s *geminiLLMService) GenerateQuestions(ctx context.Context, title, content string) ([]GeneratedQuestion, error) {
	text, err := s.generateText(ctx, questionPrompt(title, content))
	if err != nil {
		return nil, err
	}
	questions, err := parseGeneratedQuestions(text)
	if err != nil {
		log.Warn().Err(err).Str("title", title).Msg("Gemini returned malformed questions")
		return nil, err
	}
	return questions, nil
}

func (s *geminiLLMService) EvaluateAnswer(ctx context.Context, question, answer string) (*AnswerEvaluation, error) {
	text, err := s.generateText(ctx, evaluationPrompt(question, answer))
	if err != nil {
		return nil, err
	}
	eval, err := parseAnswerEvaluation(text)
	if err != nil {
		log.Warn().Err(err).Msg("Gemini returned a malformed evaluation")
		return nil, err
	}
	return eval, nil
}
