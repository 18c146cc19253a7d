package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Editorly/internal/controller"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/lshigami/Editorly/internal/service"
)

type AdminController struct {
	userService    service.UserService
	attemptService service.AttemptService
	mcqService     service.MCQService
	ingestion      service.FeedIngestionService
}

func NewAdminController(
	userService service.UserService,
	attemptService service.AttemptService,
	mcqService service.MCQService,
	ingestion service.FeedIngestionService,
) *AdminController {
	return &AdminController{
		userService:    userService,
		attemptService: attemptService,
		mcqService:     mcqService,
		ingestion:      ingestion,
	}
}

// ResetUser godoc
// @Summary Delete a user and everything they own
// @Description Removes attempts, authored content with its questions, evaluations and bookmarks, then the user.
// @Tags Admin
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} dto.ResetUserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/reset/{userId} [delete]
func (c *AdminController) ResetUser(ctx *gin.Context) {
	resp, err := c.userService.ResetAccount(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ResetEditorialAttempt godoc
// @Summary Remove one user's attempt on an editorial so they can retake it
// @Tags Admin
// @Produce json
// @Param userId path string true "User ID"
// @Param editorialId path string true "Editorial ID"
// @Success 200 {object} dto.ResetAttemptResponse
// @Failure 404 {object} dto.ErrorResponse "No attempt found to reset"
// @Router /editorial-mcqs/reset/{userId}/{editorialId} [delete]
func (c *AdminController) ResetEditorialAttempt(ctx *gin.Context) {
	userID, err := service.ParseID(ctx.Param("userId"), "user")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	editorialID, err := service.ParseID(ctx.Param("editorialId"), "editorial")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	resp, err := c.attemptService.Reset(ctx.Request.Context(), userID, model.ContentEditorial, editorialID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateEditorialQuestions godoc
// @Summary Add hand-written questions to an editorial's bank
// @Tags Admin
// @Accept json
// @Produce json
// @Param editorialId path string true "Editorial ID"
// @Param body body dto.CreateQuestionsRequest true "Questions"
// @Success 201 {object} dto.QuestionListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /editorial-mcqs/{editorialId} [post]
func (c *AdminController) CreateEditorialQuestions(ctx *gin.Context) {
	editorialID, err := service.ParseID(ctx.Param("editorialId"), "editorial")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	var req dto.CreateQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.mcqService.CreateQuestions(ctx.Request.Context(), model.ContentEditorial, editorialID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// FetchFeed godoc
// @Summary Run the RSS ingestion now
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.RSSFetchResponse
// @Failure 409 {object} dto.ErrorResponse "A fetch is already running"
// @Failure 500 {object} dto.ErrorResponse
// @Router /rss/fetch-hindu [get]
func (c *AdminController) FetchFeed(ctx *gin.Context) {
	resp, err := c.ingestion.Ingest(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
