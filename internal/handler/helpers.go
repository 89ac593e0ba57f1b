package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/personapath/personapath/internal/middleware"
	"github.com/personapath/personapath/internal/pkg/errcode"
	appErr "github.com/personapath/personapath/internal/pkg/errors"
	"github.com/personapath/personapath/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(string)
	return userID
}

// handleError maps engine errors onto HTTP responses. Transient
// provider outages become a 503 with a plain "try again" message; the
// engine never papers over them with a made-up answer.
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("user_id", getUserID(c)),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, errcode.ErrUnauthorized, "unauthorized")
	case errors.Is(err, appErr.ErrForbidden):
		response.Error(c, http.StatusForbidden, errcode.ErrForbidden, "forbidden")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, http.StatusNotFound, errcode.ErrNotFound, "not found")
	case errors.Is(err, appErr.ErrUnknownRole):
		response.Error(c, http.StatusNotFound, errcode.ErrUnknownRole, "unknown role")
	case errors.Is(err, appErr.ErrUnknownMentor):
		response.Error(c, http.StatusNotFound, errcode.ErrUnknownMentor, "unknown mentor")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
	case errors.Is(err, appErr.ErrConflict):
		response.Error(c, http.StatusConflict, errcode.ErrConflict, "conflict")
	case errors.Is(err, appErr.ErrDimensionMismatch):
		response.Error(c, http.StatusInternalServerError, errcode.ErrDimensionMismatch, "embedding dimension mismatch")
	case appErr.IsUnavailable(err), errors.Is(err, context.DeadlineExceeded):
		response.Error(c, http.StatusServiceUnavailable, errcode.ErrAIUnavailable, "service temporarily unavailable, please try again")
	default:
		response.Error(c, http.StatusInternalServerError, errcode.ErrInternal, "internal error")
	}
}
