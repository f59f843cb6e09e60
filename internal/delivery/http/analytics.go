package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tradeJournal/internal/dto"
)

func (h *HttpAPIHandler) SetupAnalytics(base *echo.Group) {
	base.GET("/stats", h.stats)
	base.GET("/equity", h.equity)
	base.GET("/performance", h.performance)
}

func (h *HttpAPIHandler) stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("stats", stats))
}

func (h *HttpAPIHandler) equity(c echo.Context) error {
	curve, err := h.service.EquityCurve(c.Request().Context())
	if err != nil {
		return h.errorResponse(c, err)
	}
	message := "equity curve"
	if len(curve) == 0 {
		message = "no trades yet"
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse(message, curve))
}

func (h *HttpAPIHandler) performance(c echo.Context) error {
	metrics, err := h.service.Performance(c.Request().Context())
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("performance", metrics))
}
