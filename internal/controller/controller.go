// Package controller holds the pieces every HTTP controller shares: the error
// responder and small request helpers.
package controller

import (
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/rs/zerolog/log"
)

var production atomic.Bool

// SetProduction hides internal error causes from responses.
func SetProduction(on bool) {
	production.Store(on)
}

// RespondError maps err onto its status code and the standard error envelope.
func RespondError(ctx *gin.Context, err error) {
	appErr := apperr.From(err)
	status := appErr.StatusCode()

	body := dto.ErrorBody{Message: appErr.Message, Details: appErr.Details}
	internal := appErr.Kind == apperr.KindInternal || appErr.Kind == apperr.KindUpstream
	if internal {
		log.Error().Err(appErr.Err).Str("path", ctx.FullPath()).Int("status", status).Msg(appErr.Message)
		if production.Load() {
			body.Details = nil
		} else if body.Details == nil && appErr.Err != nil {
			body.Details = appErr.Err.Error()
		}
	}
	ctx.AbortWithStatusJSON(status, dto.ErrorResponse{Error: body})
}

func RespondBindError(ctx *gin.Context, err error) {
	log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Failed to bind request")
	RespondError(ctx, apperr.Validation("Invalid request body").WithDetails(err.Error()))
}

func NoRoute(ctx *gin.Context) {
	RespondError(ctx, apperr.NotFound("Route not found"))
}

// QueryInt reads a positive integer query parameter, falling back to def.
func QueryInt(ctx *gin.Context, key string, def int) int {
	raw := ctx.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return def
	}
	return v
}

func Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{OK: true})
}
