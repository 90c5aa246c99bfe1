package http_catalog

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/watchnext/internal/delivery/http/common"
	usecase_catalog "github.com/humanbelnik/watchnext/internal/usecase/catalog"
)

type Controller struct {
	uc     *usecase_catalog.Usecase
	logger *slog.Logger
}

func New(uc *usecase_catalog.Usecase) *Controller {
	return &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	catalog := router.Group("/catalog")
	catalog.GET("/titles", c.titles)
	catalog.GET("/people/:person_id/titles", c.titles)
}

// @Summary Person filmography
// @Description Lists titles the person is credited in. Without person_id the configured default is used.
// @Tags Catalog
// @Produce json
// @Param person_id path string false "IMDb person id" example("nm0000190")
// @Success 200 {array} http_common.TitleDTO
// @Failure 400 {object} http_common.ErrorResponse "No person id"
// @Failure 502 {object} http_common.ErrorResponse "Catalog unavailable"
// @Router /catalog/people/{person_id}/titles [get]
func (c *Controller) titles(ctx *gin.Context) {
	titles, err := c.uc.Browse(ctx, ctx.Param("person_id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase_catalog.ErrInvalidInput):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "person id required"})
		default:
			c.logger.Error("failed to list titles", slog.String("error", err.Error()))
			ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{Message: "catalog unavailable"})
		}
		return
	}

	ctx.JSON(http.StatusOK, http_common.FromTitles(titles))
}
