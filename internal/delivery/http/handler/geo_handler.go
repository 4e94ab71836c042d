package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/pkg/utils"
	"github.com/doleances-service/internal/usecase"
)

// GeoHandler - справочники административного деления
type GeoHandler struct {
	geoUC  *usecase.GeoUseCase
	maxAge time.Duration
	logger *zap.Logger
}

// NewGeoHandler - создание нового GeoHandler. maxAge - Cache-Control для справочников.
func NewGeoHandler(geoUC *usecase.GeoUseCase, maxAge time.Duration, logger *zap.Logger) *GeoHandler {
	return &GeoHandler{
		geoUC:  geoUC,
		maxAge: maxAge,
		logger: logger,
	}
}

// Regions godoc
// @Summary Список регионов
// @Tags Geo
// @Produce json
// @Success 200 {array} domain.AdminArea
// @Failure 500 {object} map[string]interface{}
// @Router /api/geo/regions [get]
func (h *GeoHandler) Regions(c *fiber.Ctx) error {
	return h.list(c, domain.LevelRegion, "")
}

// Districts godoc
// @Summary Список районов
// @Tags Geo
// @Produce json
// @Param region query string false "Код региона"
// @Success 200 {array} domain.AdminArea
// @Failure 500 {object} map[string]interface{}
// @Router /api/geo/districts [get]
func (h *GeoHandler) Districts(c *fiber.Ctx) error {
	return h.list(c, domain.LevelDistrict, c.Query("region"))
}

// Communes godoc
// @Summary Список коммун
// @Tags Geo
// @Produce json
// @Param district query string false "Код района"
// @Success 200 {array} domain.AdminArea
// @Failure 500 {object} map[string]interface{}
// @Router /api/geo/communes [get]
func (h *GeoHandler) Communes(c *fiber.Ctx) error {
	return h.list(c, domain.LevelCommune, c.Query("district"))
}

func (h *GeoHandler) list(c *fiber.Ctx, level domain.AdminLevel, parentCode string) error {
	areas, err := h.geoUC.Areas(c.UserContext(), level, parentCode)
	if err != nil {
		return utils.SendPlainError(c, err, nil)
	}

	c.Set(fiber.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", int(h.maxAge.Seconds())))
	return c.JSON(areas)
}

// Filters godoc
// @Summary Варианты фильтра формы
// @Description commune, region, district - из справочника; zone - статический список
// @Tags Geo
// @Produce json
// @Param type path string true "commune | region | district | zone"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.FilterOption}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/filters/{type} [get]
func (h *GeoHandler) Filters(c *fiber.Ctx) error {
	options, err := h.geoUC.FilterOptions(c.UserContext(), c.Params("type"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, options, &utils.Meta{Total: len(options)})
}
