package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tradeJournal/internal/dto"
)

func (h *HttpAPIHandler) SetupSizer(base *echo.Group) {
	base.GET("/sizer", h.sizerDefaults)
	base.POST("/sizer", h.sizePosition)
}

func (h *HttpAPIHandler) sizerDefaults(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("sizer defaults", h.service.SizingDefaults()))
}

// sizePosition fills omitted fields from the configured defaults.
func (h *HttpAPIHandler) sizePosition(c echo.Context) error {
	req := h.service.SizingDefaults()
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}

	plan, err := h.service.SizePosition(c.Request().Context(), req)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("position plan", plan))
}
