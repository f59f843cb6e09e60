package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tradeJournal/internal/app"
	"tradeJournal/internal/dto"
	"tradeJournal/internal/ports"
)

type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *app.JournalService
	logger    ports.Logger
}

func NewHttpAPIHandler(ctx context.Context, echo *echo.Echo, validator *goValidator.Validate, service *app.JournalService, logger ports.Logger) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		validator: validator,
		service:   service,
		logger:    logger,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.echo.HideBanner = true
	h.echo.Use(middleware.Recover())
	h.echo.Use(h.requestLogger)

	base := h.echo.Group("/api")
	base.GET("/health", h.health)
	h.SetupTrades(base)
	h.SetupAnalytics(base)
	h.SetupTransfer(base)
	h.SetupSizer(base)
	h.SetupAnalysis(base)
}

func (h *HttpAPIHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", nil))
}

func (h *HttpAPIHandler) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		h.logger.Debug(c.Request().Context(), "HTTP request", map[string]interface{}{
			"method":   c.Request().Method,
			"path":     c.Path(),
			"status":   c.Response().Status,
			"duration": time.Since(start).String(),
		})
		return nil
	}
}

// errorStatus maps service errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, ports.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ports.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrEmptyCSV),
		errors.Is(err, ports.ErrNoValidTrades),
		errors.Is(err, ports.ErrNothingToExport):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *HttpAPIHandler) errorResponse(c echo.Context, err error) error {
	code := errorStatus(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		h.logger.Error(c.Request().Context(), err, "Request failed", map[string]interface{}{"path": c.Path()})
		message = "internal server error"
	}
	return c.JSON(code, dto.NewBaseResponse(code, message, nil))
}
