package http_auth_middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/watchnext/internal/delivery/http/common"
)

type TokenValidator interface {
	IsValid(token string) (bool, error)
}

type Middleware struct {
	validator TokenValidator
	logger    *slog.Logger
}

func New(
	validator TokenValidator,
) *Middleware {
	return &Middleware{
		validator: validator,
		logger:    slog.Default(),
	}
}

func (m *Middleware) AuthRequired() gin.HandlerFunc {
	const header = http_common.UserTokenHeader
	return func(ctx *gin.Context) {
		t := ctx.GetHeader(header)
		if t == "" {
			m.logger.Warn(fmt.Sprintf("no %s header", header), slog.String("path", ctx.FullPath()))
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: fmt.Sprintf("no %s header", header),
			})
			return
		}

		valid, err := m.validator.IsValid(t)
		if err != nil {
			m.logger.Error("internal error", slog.String("error", err.Error()))
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
			return
		}
		if !valid {
			m.logger.Warn("invalid token", slog.String("path", ctx.FullPath()))
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "invalid token",
			})
			return
		}
		ctx.Next()
	}
}
