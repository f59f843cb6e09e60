package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tradeJournal/internal/domain"
	"tradeJournal/internal/dto"
)

func (h *HttpAPIHandler) SetupTrades(base *echo.Group) {
	trades := base.Group("/trades")
	trades.GET("", h.listTrades)
	trades.POST("", h.addTrade)
	trades.DELETE("/:id", h.deleteTrade)
}

func (h *HttpAPIHandler) listTrades(c echo.Context) error {
	ctx := c.Request().Context()

	query := new(dto.TradeListQuery)
	if err := c.Bind(query); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid query"))
	}
	if err := h.validator.Struct(query); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	var (
		trades []*domain.Trade
		err    error
	)
	if query.Limit > 0 {
		trades, err = h.service.RecentTrades(ctx, query.Limit)
	} else {
		trades, err = h.service.ListTrades(ctx)
	}
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("trades", trades))
}

func (h *HttpAPIHandler) addTrade(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(domain.TradeInput)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}

	trade, err := h.service.AddTrade(ctx, *req)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "trade added", trade))
}

func (h *HttpAPIHandler) deleteTrade(c echo.Context) error {
	if err := h.service.DeleteTrade(c.Request().Context(), c.Param("id")); err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("trade deleted", nil))
}
