package http

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"tradeJournal/internal/dto"
)

func (h *HttpAPIHandler) SetupTransfer(base *echo.Group) {
	base.POST("/import", h.importCSV)
	base.GET("/export", h.exportCSV)
}

// importCSV accepts either a multipart form with a "file" field or the raw CSV as the body.
func (h *HttpAPIHandler) importCSV(c echo.Context) error {
	ctx := c.Request().Context()

	var body io.Reader = c.Request().Body
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("missing form file 'file'"))
		}
		file, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("unreadable form file"))
		}
		defer file.Close()
		body = file
	}

	result, err := h.service.ImportReader(ctx, body)
	if err != nil {
		return h.errorResponse(c, err)
	}

	message := fmt.Sprintf("Successfully imported %d trades", result.Accepted())
	return c.JSON(http.StatusOK, dto.NewSuccessResponse(message, dto.ImportResponse{
		Imported: result.Accepted(),
		Skipped:  result.Skipped,
	}))
}

func (h *HttpAPIHandler) exportCSV(c echo.Context) error {
	file, err := h.service.ExportCSV(c.Request().Context())
	if err != nil {
		return h.errorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(file.Content))
}
