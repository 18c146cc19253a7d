package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Editorly/internal/controller"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/middleware"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/lshigami/Editorly/internal/service"
)

// QuizController serves question banks and attempts for both articles and
// editorials. The two route groups differ only in the content type.
type QuizController struct {
	mcqService     service.MCQService
	attemptService service.AttemptService
}

func NewQuizController(mcqService service.MCQService, attemptService service.AttemptService) *QuizController {
	return &QuizController{mcqService: mcqService, attemptService: attemptService}
}

func (c *QuizController) listRandom(ctx *gin.Context, contentType model.ContentType, param string) {
	contentID, err := service.ParseID(ctx.Param(param), string(contentType))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	resp, err := c.mcqService.ListRandom(ctx.Request.Context(), contentType, contentID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *QuizController) generate(ctx *gin.Context, contentType model.ContentType, param string) {
	contentID, err := service.ParseID(ctx.Param(param), string(contentType))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	resp, err := c.mcqService.GetOrGenerate(ctx.Request.Context(), contentType, contentID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *QuizController) submit(ctx *gin.Context, contentType model.ContentType) {
	var req dto.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	rawID := req.ArticleID
	if contentType == model.ContentEditorial {
		rawID = req.EditorialID
	}
	contentID, err := service.ParseID(rawID, string(contentType))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	user := middleware.CurrentUser(ctx)
	resp, err := c.attemptService.Submit(ctx.Request.Context(), user.ID, contentType, contentID, req.Answers)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *QuizController) check(ctx *gin.Context, contentType model.ContentType, param string) {
	contentID, err := service.ParseID(ctx.Param(param), string(contentType))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	user := middleware.CurrentUser(ctx)
	resp, err := c.attemptService.Check(ctx.Request.Context(), user.ID, contentType, contentID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListEditorialQuestions godoc
// @Summary Up to five random questions for an editorial
// @Tags Editorial MCQs
// @Produce json
// @Param editorialId path string true "Editorial ID"
// @Success 200 {object} dto.QuestionListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /editorial-mcqs/{editorialId} [get]
func (c *QuizController) ListEditorialQuestions(ctx *gin.Context) {
	c.listRandom(ctx, model.ContentEditorial, "editorialId")
}

// GenerateEditorialQuestions godoc
// @Summary Get or generate the question set for an editorial
// @Description Returns the cached set when one exists, otherwise asks Gemini for five questions and stores them.
// @Tags Editorial MCQs
// @Produce json
// @Param editorialId path string true "Editorial ID"
// @Success 200 {object} dto.GenerateQuestionsResponse
// @Failure 404 {object} dto.ErrorResponse "Editorial not found"
// @Failure 500 {object} dto.ErrorResponse "Generation failed"
// @Router /editorial-mcqs/generate/{editorialId} [get]
func (c *QuizController) GenerateEditorialQuestions(ctx *gin.Context) {
	c.generate(ctx, model.ContentEditorial, "editorialId")
}

// SubmitEditorialAttempt godoc
// @Summary Submit answers for an editorial quiz
// @Description Each user may attempt an editorial once.
// @Tags Editorial MCQs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SubmitAttemptRequest true "editorialId and answers"
// @Success 200 {object} dto.SubmitAttemptResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or already attempted"
// @Failure 404 {object} dto.ErrorResponse
// @Router /editorial-mcqs/submit [post]
func (c *QuizController) SubmitEditorialAttempt(ctx *gin.Context) {
	c.submit(ctx, model.ContentEditorial)
}

// CheckEditorialAttempt godoc
// @Summary Whether I attempted an editorial quiz, with the graded answers
// @Tags Editorial MCQs
// @Produce json
// @Security BearerAuth
// @Param editorialId path string true "Editorial ID"
// @Success 200 {object} dto.AttemptCheckResponse
// @Router /editorial-mcqs/check/{editorialId} [get]
func (c *QuizController) CheckEditorialAttempt(ctx *gin.Context) {
	c.check(ctx, model.ContentEditorial, "editorialId")
}

// ListArticleQuestions godoc
// @Summary Up to five random questions for an article
// @Tags Article MCQs
// @Produce json
// @Param articleId path string true "Article ID"
// @Success 200 {object} dto.QuestionListResponse
// @Router /mcqs/{articleId} [get]
func (c *QuizController) ListArticleQuestions(ctx *gin.Context) {
	c.listRandom(ctx, model.ContentArticle, "articleId")
}

// GenerateArticleQuestions godoc
// @Summary Get or generate the question set for an article
// @Tags Article MCQs
// @Produce json
// @Param articleId path string true "Article ID"
// @Success 200 {object} dto.GenerateQuestionsResponse
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Failure 500 {object} dto.ErrorResponse "Generation failed"
// @Router /mcqs/generate/{articleId} [get]
func (c *QuizController) GenerateArticleQuestions(ctx *gin.Context) {
	c.generate(ctx, model.ContentArticle, "articleId")
}

// SubmitArticleAttempt godoc
// @Summary Submit answers for an article quiz
// @Tags Article MCQs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SubmitAttemptRequest true "articleId and answers"
// @Success 200 {object} dto.SubmitAttemptResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or already attempted"
// @Router /mcqs/submit [post]
func (c *QuizController) SubmitArticleAttempt(ctx *gin.Context) {
	c.submit(ctx, model.ContentArticle)
}

// CheckArticleAttempt godoc
// @Summary Whether I attempted an article quiz
// @Tags Article MCQs
// @Produce json
// @Security BearerAuth
// @Param articleId path string true "Article ID"
// @Success 200 {object} dto.AttemptCheckResponse
// @Router /mcqs/attempt/{articleId} [get]
func (c *QuizController) CheckArticleAttempt(ctx *gin.Context) {
	c.check(ctx, model.ContentArticle, "articleId")
}

// PreviewQuestions godoc
// @Summary Generate questions for arbitrary text without storing them
// @Tags Gemini
// @Accept json
// @Produce json
// @Param body body dto.GenerateQuestionsRequest true "Title and content"
// @Success 200 {object} dto.PreviewQuestionsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /gemini/generate [post]
func (c *QuizController) PreviewQuestions(ctx *gin.Context) {
	var req dto.GenerateQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.mcqService.Preview(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
