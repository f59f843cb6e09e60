package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tradeJournal/internal/dto"
)

func (h *HttpAPIHandler) SetupAnalysis(base *echo.Group) {
	base.POST("/analysis", h.analyze)
}

// analyze always answers 200; failures are reported through the analysis text.
func (h *HttpAPIHandler) analyze(c echo.Context) error {
	analysis := h.service.Analyze(c.Request().Context())
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("analysis", analysis))
}
