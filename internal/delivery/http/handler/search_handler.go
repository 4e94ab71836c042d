package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/pkg/errors"
	"github.com/doleances-service/internal/pkg/utils"
	"github.com/doleances-service/internal/pkg/validator"
	"github.com/doleances-service/internal/usecase"
	"github.com/doleances-service/internal/usecase/dto"
)

// SearchHandler - прокси геокодера и серверный поиск места
type SearchHandler struct {
	geocodeUC  *usecase.GeocodeUseCase
	locationUC *usecase.LocationSearchUseCase
	logger     *zap.Logger
}

// NewSearchHandler - создание нового SearchHandler
func NewSearchHandler(geocodeUC *usecase.GeocodeUseCase, locationUC *usecase.LocationSearchUseCase, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		geocodeUC:  geocodeUC,
		locationUC: locationUC,
		logger:     logger,
	}
}

// NominatimSearch godoc
// @Summary Поиск места через Nominatim
// @Description Прокси к Nominatim с кешем. Запрос короче 2 символов и любая ошибка геокодера дают пустой массив.
// @Tags Geocode
// @Produce json
// @Param q query string true "Поисковый запрос"
// @Param countryCodes query string false "Коды стран через запятую" default(mg)
// @Param limit query int false "Максимум результатов (1..50)" default(10)
// @Success 200 {array} domain.GeocodeResult
// @Router /api/nominatim/search [get]
func (h *SearchHandler) NominatimSearch(c *fiber.Ctx) error {
	var req dto.GeocodeRequest
	req.Query = c.Query("q")
	req.CountryCodes = c.Query("countryCodes")
	req.Limit = c.QueryInt("limit", usecase.DefaultGeocodeLimit)

	results := h.geocodeUC.Proxy(c.UserContext(), req.Query, req.CountryCodes, req.Limit)
	return c.JSON(results)
}

// LocationSearch godoc
// @Summary Поиск места: справочник и геокодер
// @Description Регионы, районы и коммуны из справочника, затем места из геокодера. Не более 15 результатов.
// @Tags Search
// @Produce json
// @Param q query string true "Поисковый запрос (минимум 2 символа)"
// @Param limit query int false "Дополнительное ограничение выдачи"
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationSearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/locations/search [get]
func (h *SearchHandler) LocationSearch(c *fiber.Ctx) error {
	var req dto.LocationSearchRequest
	req.Query = c.Query("q")
	req.Limit = c.QueryInt("limit", 0)

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.FromValidation(err))
	}

	result := h.locationUC.Search(c.UserContext(), req)
	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}
