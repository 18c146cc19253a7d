package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Editorly/internal/controller"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/middleware"
	"github.com/lshigami/Editorly/internal/service"
)

type EditorialController struct {
	editorialService service.EditorialService
}

func NewEditorialController(editorialService service.EditorialService) *EditorialController {
	return &EditorialController{editorialService: editorialService}
}

// ListEditorials godoc
// @Summary List editorials, ten per page, newest first
// @Tags Editorials
// @Produce json
// @Param page query int false "Page (default 1)"
// @Success 200 {object} dto.EditorialListResponse
// @Router /editorials [get]
func (c *EditorialController) ListEditorials(ctx *gin.Context) {
	resp, err := c.editorialService.List(ctx.Request.Context(), controller.QueryInt(ctx, "page", 1))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetEditorial godoc
// @Summary Get an editorial
// @Tags Editorials
// @Produce json
// @Param id path string true "Editorial ID"
// @Success 200 {object} dto.EditorialResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /editorials/{id} [get]
func (c *EditorialController) GetEditorial(ctx *gin.Context) {
	resp, err := c.editorialService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateEditorial godoc
// @Summary Create an editorial
// @Tags Editorials
// @Accept json
// @Produce json
// @Param body body dto.CreateEditorialRequest true "Editorial"
// @Success 201 {object} dto.EditorialMutationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /editorials [post]
func (c *EditorialController) CreateEditorial(ctx *gin.Context) {
	var req dto.CreateEditorialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.editorialService.Create(ctx.Request.Context(), middleware.CurrentUserID(ctx), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateEditorial godoc
// @Summary Update an editorial
// @Tags Editorials
// @Accept json
// @Produce json
// @Param id path string true "Editorial ID"
// @Param body body dto.UpdateEditorialRequest true "Fields to change"
// @Success 200 {object} dto.EditorialMutationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /editorials/{id} [put]
func (c *EditorialController) UpdateEditorial(ctx *gin.Context) {
	var req dto.UpdateEditorialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.editorialService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteEditorial godoc
// @Summary Delete an editorial and its questions
// @Tags Editorials
// @Produce json
// @Param id path string true "Editorial ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /editorials/{id} [delete]
func (c *EditorialController) DeleteEditorial(ctx *gin.Context) {
	resp, err := c.editorialService.Delete(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
