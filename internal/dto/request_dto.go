package dto

import "time"

type RegisterRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=50"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	ReferralCode string `json:"referralCode"`
}

type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

type CreateArticleRequest struct {
	Title        string     `json:"title" binding:"required"`
	Source       string     `json:"source"`
	Link         string     `json:"link"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Image        string     `json:"image"`
	PubDate      *time.Time `json:"pubDate"`
	BulletPoints []string   `json:"bulletPoints"`
	AIAnswer     string     `json:"aiAnswer"`
}

// UpdateArticleRequest replaces only the fields that are present.
type UpdateArticleRequest struct {
	Title        *string    `json:"title"`
	Source       *string    `json:"source"`
	Link         *string    `json:"link"`
	Description  *string    `json:"description"`
	Category     *string    `json:"category"`
	Image        *string    `json:"image"`
	PubDate      *time.Time `json:"pubDate"`
	BulletPoints []string   `json:"bulletPoints"`
	AIAnswer     *string    `json:"aiAnswer"`
}

type CreateEditorialRequest struct {
	Title            string    `json:"title" binding:"required"`
	Image            string    `json:"image"`
	ShortDescription string    `json:"shortDescription" binding:"required"`
	FullContent      string    `json:"fullContent" binding:"required"`
	Author           string    `json:"author" binding:"required"`
	PaperName        string    `json:"paperName" binding:"required"`
	Tag              string    `json:"tag"`
	EditorialDate    time.Time `json:"editorialDate" binding:"required"`
}

type UpdateEditorialRequest struct {
	Title            *string    `json:"title"`
	Image            *string    `json:"image"`
	ShortDescription *string    `json:"shortDescription"`
	FullContent      *string    `json:"fullContent"`
	Author           *string    `json:"author"`
	PaperName        *string    `json:"paperName"`
	Tag              *string    `json:"tag"`
	EditorialDate    *time.Time `json:"editorialDate"`
}

type AnswerSubmission struct {
	MCQID    string `json:"mcqId" binding:"required"`
	Selected string `json:"selected"`
}

// SubmitAttemptRequest carries editorialId on /editorial-mcqs and articleId on /mcqs.
type SubmitAttemptRequest struct {
	EditorialID string             `json:"editorialId"`
	ArticleID   string             `json:"articleId"`
	Answers     []AnswerSubmission `json:"answers" binding:"required,dive"`
}

type QuestionInput struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,len=4,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
}

type CreateQuestionsRequest struct {
	Questions []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

type GenerateQuestionsRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type EvaluateAnswerRequest struct {
	Question   string `json:"question" binding:"required"`
	AnswerText string `json:"answerText" binding:"required"`
}
