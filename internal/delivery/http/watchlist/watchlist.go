package http_watchlist

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/watchnext/internal/delivery/http/common"
	usecase_watchlist "github.com/humanbelnik/watchnext/internal/usecase/watchlist"
)

type Controller struct {
	uc     *usecase_watchlist.Usecase
	guards []gin.HandlerFunc

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithGuards installs middleware in front of every watchlist route.
func WithGuards(guards ...gin.HandlerFunc) ControllerOption {
	return func(c *Controller) {
		c.guards = append(c.guards, guards...)
	}
}

func New(uc *usecase_watchlist.Usecase,
	opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	watchlist := router.Group("/watchlist", c.guards...)
	{
		watchlist.GET("", c.list)
		watchlist.POST("", c.addManual)
		watchlist.POST("/titles", c.addTitle)
		watchlist.GET("/:title_id", c.get)
		watchlist.DELETE("/:title_id", c.remove)
	}
}

// ManualTitleRequestDTO
type ManualTitleRequestDTO struct {
	Title string `json:"title" example:"Arrival"`
	Kind  string `json:"kind" example:"movie" enums:"movie,tv_show"`
}

// AddResponseDTO
type AddResponseDTO struct {
	Added bool                 `json:"added"`
	Title http_common.TitleDTO `json:"title"`
}

// @Summary Watchlist
// @Description Most recently added first
// @Tags Watchlist
// @Produce json
// @Success 200 {array} http_common.TitleDTO
// @Security UserToken
// @Router /watchlist [get]
func (c *Controller) list(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, http_common.FromTitles(c.uc.List(ctx)))
}

// @Summary Add title by name
// @Description Adds a minimal entry whose id is the title text. Adding an existing id changes nothing.
// @Tags Watchlist
// @Accept json
// @Produce json
// @Param request body ManualTitleRequestDTO true "Title text and kind"
// @Success 201 {object} AddResponseDTO "Added"
// @Success 200 {object} AddResponseDTO "Already listed"
// @Failure 400 {object} http_common.ErrorResponse "Blank title or unknown kind"
// @Security UserToken
// @Router /watchlist [post]
func (c *Controller) addManual(ctx *gin.Context) {
	var req ManualTitleRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	title, added, err := c.uc.AddManual(ctx, req.Title, req.Kind)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(addStatus(added), AddResponseDTO{
		Added: added,
		Title: http_common.FromTitle(title),
	})
}

// @Summary Add catalog title
// @Tags Watchlist
// @Accept json
// @Produce json
// @Param request body http_common.TitleDTO true "Catalog entry"
// @Success 201 {object} AddResponseDTO "Added"
// @Success 200 {object} AddResponseDTO "Already listed"
// @Failure 400 {object} http_common.ErrorResponse "Missing id"
// @Security UserToken
// @Router /watchlist/titles [post]
func (c *Controller) addTitle(ctx *gin.Context) {
	var req http_common.TitleDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	title := req.ToTitle()
	added, err := c.uc.Add(ctx, title)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	if !added {
		if existing, err := c.uc.Get(ctx, title.ID); err == nil {
			title = existing
		}
	}

	ctx.JSON(addStatus(added), AddResponseDTO{
		Added: added,
		Title: http_common.FromTitle(title),
	})
}

// @Summary Watchlist entry
// @Tags Watchlist
// @Produce json
// @Param title_id path string true "Title id"
// @Success 200 {object} http_common.TitleDTO
// @Failure 404 {object} http_common.ErrorResponse "Not listed"
// @Security UserToken
// @Router /watchlist/{title_id} [get]
func (c *Controller) get(ctx *gin.Context) {
	title, err := c.uc.Get(ctx, ctx.Param("title_id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, http_common.FromTitle(title))
}

// @Summary Remove from watchlist
// @Description Removing an id that is not listed is not an error
// @Tags Watchlist
// @Param title_id path string true "Title id"
// @Success 204
// @Security UserToken
// @Router /watchlist/{title_id} [delete]
func (c *Controller) remove(ctx *gin.Context) {
	if _, err := c.uc.Remove(ctx, ctx.Param("title_id")); err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase_watchlist.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: err.Error()})
	case errors.Is(err, usecase_watchlist.ErrResourceNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
	default:
		c.logger.Error("watchlist request failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
	}
}

func addStatus(added bool) int {
	if added {
		return http.StatusCreated
	}
	return http.StatusOK
}
