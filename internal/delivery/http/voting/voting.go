package http_voting

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/watchnext/internal/delivery/http/common"
	"github.com/humanbelnik/watchnext/internal/model"
	usecase_vote "github.com/humanbelnik/watchnext/internal/usecase/vote"
	usecase_watchlist "github.com/humanbelnik/watchnext/internal/usecase/watchlist"
)

type Controller struct {
	uc        *usecase_vote.Usecase
	watchlist *usecase_watchlist.Usecase
	guards    []gin.HandlerFunc

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithGuards(guards ...gin.HandlerFunc) ControllerOption {
	return func(c *Controller) {
		c.guards = append(c.guards, guards...)
	}
}

func New(uc *usecase_vote.Usecase,
	watchlist *usecase_watchlist.Usecase,
	opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:        uc,
		watchlist: watchlist,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	boards := router.Group("/boards/:board_id", c.guards...)
	{
		boards.POST("/load", c.load)
		boards.GET("", c.ranking)
		boards.POST("/titles/:title_id/upvote", c.upvote)
		boards.DELETE("", c.close)
	}
}

// LoadRequestDTO
type LoadRequestDTO struct {
	PersonID      string `json:"person_id" example:"nm0000190"`
	FromWatchlist bool   `json:"from_watchlist" example:"false"`
}

// TallyDTO
type TallyDTO struct {
	Title http_common.TitleDTO `json:"title"`
	Votes int                  `json:"votes" example:"2"`
	IsTop bool                 `json:"is_top" example:"true"`
}

// BoardResponseDTO
type BoardResponseDTO struct {
	BoardID string     `json:"board_id" example:"friday-night"`
	Tallies []TallyDTO `json:"tallies"`
	Leader  *string    `json:"leader,omitempty" example:"tt0092099"`
}

func toBoardResponse(boardID model.BoardID, ranking model.Ranking) BoardResponseDTO {
	resp := BoardResponseDTO{
		BoardID: string(boardID),
		Tallies: make([]TallyDTO, len(ranking)),
	}
	leader, hasLeader := ranking.Leader()
	if hasLeader {
		id := leader.Title.ID
		resp.Leader = &id
	}
	for i, t := range ranking {
		resp.Tallies[i] = TallyDTO{
			Title: http_common.FromTitle(t.Title),
			Votes: t.Votes,
			IsTop: hasLeader && i == 0,
		}
	}
	return resp
}

// @Summary Load voting candidates
// @Description Replaces candidates with the person's titles (or the watchlist) and resets every count
// @Tags Voting operations
// @Accept json
// @Produce json
// @Param board_id path string true "Board id" example("friday-night")
// @Param request body LoadRequestDTO false "Candidate source"
// @Success 200 {object} BoardResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Invalid request"
// @Failure 404 {object} http_common.ErrorResponse "Board closed while loading"
// @Failure 502 {object} BoardResponseDTO "Catalog unavailable, board left empty"
// @Security UserToken
// @Router /boards/{board_id}/load [post]
func (c *Controller) load(ctx *gin.Context) {
	boardID := model.BoardID(ctx.Param("board_id"))

	var req LoadRequestDTO
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "invalid request format",
			})
			return
		}
	}

	var (
		ranking model.Ranking
		err     error
	)
	if req.FromWatchlist {
		ranking, err = c.uc.Seed(ctx, boardID, c.watchlist.List(ctx))
	} else {
		ranking, err = c.uc.Refresh(ctx, boardID, req.PersonID)
	}
	if err != nil {
		switch {
		case errors.Is(err, usecase_vote.ErrInvalidInput):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: err.Error()})
		case errors.Is(err, usecase_vote.ErrResourceNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
		case errors.Is(err, usecase_vote.ErrCatalogUnavailable):
			ctx.JSON(http.StatusBadGateway, toBoardResponse(boardID, ranking))
		default:
			c.logger.Error("failed to load board", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, toBoardResponse(boardID, ranking))
}

// @Summary Board tallies
// @Description Candidates ordered by votes, ties in load order
// @Tags Voting operations
// @Produce json
// @Param board_id path string true "Board id"
// @Success 200 {object} BoardResponseDTO
// @Failure 404 {object} http_common.ErrorResponse "Unknown board"
// @Security UserToken
// @Router /boards/{board_id} [get]
func (c *Controller) ranking(ctx *gin.Context) {
	boardID := model.BoardID(ctx.Param("board_id"))

	ranking, err := c.uc.Ranking(ctx, boardID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toBoardResponse(boardID, ranking))
}

// @Summary Upvote
// @Description Adds one vote. Unknown title ids are ignored.
// @Tags Voting operations
// @Produce json
// @Param board_id path string true "Board id"
// @Param title_id path string true "Title id"
// @Success 200 {object} BoardResponseDTO
// @Failure 404 {object} http_common.ErrorResponse "Unknown board"
// @Security UserToken
// @Router /boards/{board_id}/titles/{title_id}/upvote [post]
func (c *Controller) upvote(ctx *gin.Context) {
	boardID := model.BoardID(ctx.Param("board_id"))

	ranking, err := c.uc.Upvote(ctx, boardID, ctx.Param("title_id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toBoardResponse(boardID, ranking))
}

// @Summary Close board
// @Tags Voting operations
// @Param board_id path string true "Board id"
// @Success 204
// @Failure 404 {object} http_common.ErrorResponse "Unknown board"
// @Security UserToken
// @Router /boards/{board_id} [delete]
func (c *Controller) close(ctx *gin.Context) {
	if err := c.uc.Close(ctx, model.BoardID(ctx.Param("board_id"))); err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	if errors.Is(err, usecase_vote.ErrResourceNotFound) {
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
		return
	}
	c.logger.Error("voting request failed", slog.String("error", err.Error()))
	ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
}
