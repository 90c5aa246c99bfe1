package http_auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/watchnext/internal/delivery/http/common"
	service_local_auth "github.com/humanbelnik/watchnext/internal/service/auth/local"
)

type Controller struct {
	service *service_local_auth.Service
	logger  *slog.Logger
}

func New(
	service *service_local_auth.Service,
) *Controller {
	return &Controller{
		service: service,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.POST("/signup", c.signUp)
	auth.POST("/login", c.login)
	auth.POST("/logout", c.logout)
	auth.GET("/me", c.me)
}

// CredentialsDTO
type CredentialsDTO struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"hunter2"`
}

// AccountDTO
type AccountDTO struct {
	Email string `json:"email" example:"alice@example.com"`
}

// @Summary Sign up
// @Description Creates a local account
// @Tags Auth operations
// @Accept json
// @Param request body CredentialsDTO true "Email and password"
// @Success 201
// @Failure 400 {object} http_common.ErrorResponse "Empty email or password"
// @Failure 409 {object} http_common.ErrorResponse "Account already exists"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /auth/signup [post]
func (c *Controller) signUp(ctx *gin.Context) {
	var req CredentialsDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request format", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	err := c.service.SignUp(req.Email, req.Password)
	switch {
	case err == nil:
		ctx.Status(http.StatusCreated)
	case errors.Is(err, service_local_auth.ErrEmptyCredentials):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: err.Error(),
		})
	case errors.Is(err, service_local_auth.ErrAccountExists):
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
			Message: err.Error(),
		})
	default:
		c.logger.Error("failed to sign up", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
	}
}

// @Summary Log in
// @Description Checks credentials and returns a session token in X-user-token
// @Tags Auth operations
// @Accept json
// @Param request body CredentialsDTO true "Email and password"
// @Success 202
// @Header 202 {string} X-user-token "Session token"
// @Failure 400 {object} http_common.ErrorResponse "Empty email or password"
// @Failure 401 {object} http_common.ErrorResponse "Invalid email or password"
// @Failure 404 {object} http_common.ErrorResponse "No account found"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /auth/login [post]
func (c *Controller) login(ctx *gin.Context) {
	var req CredentialsDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request format", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	token, err := c.service.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service_local_auth.ErrEmptyCredentials):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: err.Error()})
		case errors.Is(err, service_local_auth.ErrNoAccount):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: err.Error()})
		case errors.Is(err, service_local_auth.ErrInvalidCredentials):
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Message: err.Error()})
		default:
			c.logger.Error("internal auth error", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Header(http_common.UserTokenHeader, token)
	ctx.Status(http.StatusAccepted)
}

// @Summary Log out
// @Tags Auth operations
// @Success 204
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Security UserToken
// @Router /auth/logout [post]
func (c *Controller) logout(ctx *gin.Context) {
	if err := c.service.Logout(ctx.GetHeader(http_common.UserTokenHeader)); err != nil {
		c.logger.Error("failed to log out", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// @Summary Current account
// @Description Reports who the session token belongs to
// @Tags Auth operations
// @Produce json
// @Success 200 {object} AccountDTO
// @Failure 401 {object} http_common.ErrorResponse "No active session"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Security UserToken
// @Router /auth/me [get]
func (c *Controller) me(ctx *gin.Context) {
	email, err := c.service.Account(ctx.GetHeader(http_common.UserTokenHeader))
	if err != nil {
		if errors.Is(err, service_local_auth.ErrNoSession) {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Message: err.Error()})
			return
		}
		c.logger.Error("failed to resolve account", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, AccountDTO{Email: email})
}
