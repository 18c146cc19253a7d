package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Editorly/internal/controller"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/middleware"
	"github.com/lshigami/Editorly/internal/service"
)

type ArticleController struct {
	articleService  service.ArticleService
	bookmarkService service.BookmarkService
}

func NewArticleController(articleService service.ArticleService, bookmarkService service.BookmarkService) *ArticleController {
	return &ArticleController{articleService: articleService, bookmarkService: bookmarkService}
}

// ListArticles godoc
// @Summary List articles
// @Description Articles with an image first, then newest.
// @Tags Articles
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} dto.ArticleListResponse
// @Router /articles [get]
func (c *ArticleController) ListArticles(ctx *gin.Context) {
	resp, err := c.articleService.List(ctx.Request.Context(), controller.QueryInt(ctx, "page", 1), controller.QueryInt(ctx, "limit", 10))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SearchArticles godoc
// @Summary Search articles by title
// @Tags Articles
// @Produce json
// @Param q query string false "Case-insensitive title substring"
// @Success 200 {object} dto.ArticleSearchResponse
// @Router /articles/search [get]
func (c *ArticleController) SearchArticles(ctx *gin.Context) {
	resp, err := c.articleService.Search(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetArticle godoc
// @Summary Get an article
// @Tags Articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} dto.ArticleDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /articles/{id} [get]
func (c *ArticleController) GetArticle(ctx *gin.Context) {
	resp, err := c.articleService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateArticle godoc
// @Summary Create an article
// @Tags Articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateArticleRequest true "Article"
// @Success 201 {object} dto.ArticleMutationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /articles [post]
func (c *ArticleController) CreateArticle(ctx *gin.Context) {
	var req dto.CreateArticleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.articleService.Create(ctx.Request.Context(), middleware.CurrentUserID(ctx), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateArticle godoc
// @Summary Update an article
// @Description Only fields present in the body are replaced.
// @Tags Articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param body body dto.UpdateArticleRequest true "Fields to change"
// @Success 200 {object} dto.ArticleMutationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /articles/{id} [put]
func (c *ArticleController) UpdateArticle(ctx *gin.Context) {
	var req dto.UpdateArticleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.articleService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteArticle godoc
// @Summary Delete an article
// @Tags Articles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /articles/{id} [delete]
func (c *ArticleController) DeleteArticle(ctx *gin.Context) {
	resp, err := c.articleService.Delete(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListBookmarks godoc
// @Summary List my bookmarked articles
// @Tags Bookmarks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BookmarkListResponse
// @Router /bookmarks [get]
func (c *ArticleController) ListBookmarks(ctx *gin.Context) {
	resp, err := c.bookmarkService.List(ctx.Request.Context(), middleware.CurrentUser(ctx).ID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AddBookmark godoc
// @Summary Bookmark an article
// @Tags Bookmarks
// @Produce json
// @Security BearerAuth
// @Param articleId path string true "Article ID"
// @Success 200 {object} dto.BookmarkIDsResponse
// @Failure 400 {object} dto.ErrorResponse "Already bookmarked"
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Router /bookmarks/{articleId} [post]
func (c *ArticleController) AddBookmark(ctx *gin.Context) {
	resp, err := c.bookmarkService.Add(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, ctx.Param("articleId"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RemoveBookmark godoc
// @Summary Remove a bookmark
// @Tags Bookmarks
// @Produce json
// @Security BearerAuth
// @Param articleId path string true "Article ID"
// @Success 200 {object} dto.BookmarkIDsResponse
// @Router /bookmarks/{articleId} [delete]
func (c *ArticleController) RemoveBookmark(ctx *gin.Context) {
	resp, err := c.bookmarkService.Remove(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, ctx.Param("articleId"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
