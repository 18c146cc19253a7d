package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Editorly/internal/controller"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/middleware"
	"github.com/lshigami/Editorly/internal/service"
)

type AnalyticsController struct {
	analyticsService  service.AnalyticsService
	evaluationService service.EvaluationService
}

func NewAnalyticsController(analyticsService service.AnalyticsService, evaluationService service.EvaluationService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService, evaluationService: evaluationService}
}

func dateRange(ctx *gin.Context) service.DateRangeQuery {
	return service.DateRangeQuery{StartDate: ctx.Query("startDate"), EndDate: ctx.Query("endDate")}
}

// QuizAttempts godoc
// @Summary Quiz attempts with per-user and per-day summaries
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Inclusive lower bound (YYYY-MM-DD or RFC3339)"
// @Param endDate query string false "Inclusive upper bound (YYYY-MM-DD or RFC3339)"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 50)"
// @Success 200 {object} dto.QuizAnalyticsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /analytics/quiz-attempts [get]
func (c *AnalyticsController) QuizAttempts(ctx *gin.Context) {
	resp, err := c.analyticsService.QuizAttempts(ctx.Request.Context(), dateRange(ctx),
		controller.QueryInt(ctx, "page", 1), controller.QueryInt(ctx, "limit", 50))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// TopPerformers godoc
// @Summary Leaderboard by accuracy, then attempt count
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Inclusive lower bound"
// @Param endDate query string false "Inclusive upper bound"
// @Param limit query int false "Rows (default 10)"
// @Success 200 {object} dto.TopPerformersResponse
// @Router /analytics/top-performers [get]
func (c *AnalyticsController) TopPerformers(ctx *gin.Context) {
	resp, err := c.analyticsService.TopPerformers(ctx.Request.Context(), dateRange(ctx), controller.QueryInt(ctx, "limit", 10))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UserQuizDetail godoc
// @Summary One user's quiz statistics and attempt history
// @Tags Analytics
// @Produce json
// @Param userId path string true "User ID"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} dto.UserQuizDetailResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID format"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /analytics/user/{userId}/quiz-attempts [get]
func (c *AnalyticsController) UserQuizDetail(ctx *gin.Context) {
	resp, err := c.analyticsService.UserQuizDetail(ctx.Request.Context(), ctx.Param("userId"),
		controller.QueryInt(ctx, "page", 1), controller.QueryInt(ctx, "limit", 10))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// EvaluateAnswer godoc
// @Summary Grade a free-text answer out of 10
// @Tags Evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EvaluateAnswerRequest true "Question and answer"
// @Success 201 {object} dto.EvaluationCreatedResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse "Evaluation failed"
// @Router /evaluations [post]
func (c *AnalyticsController) EvaluateAnswer(ctx *gin.Context) {
	var req dto.EvaluateAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.evaluationService.Evaluate(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListEvaluations godoc
// @Summary My evaluations, newest first
// @Tags Evaluations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.EvaluationListResponse
// @Router /evaluations [get]
func (c *AnalyticsController) ListEvaluations(ctx *gin.Context) {
	resp, err := c.evaluationService.ListMine(ctx.Request.Context(), middleware.CurrentUser(ctx).ID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
