package dto

import "net/http"

type BaseResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func NewBaseResponse(code int, message string, data interface{}) *BaseResponse {
	return &BaseResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func NewBadRequestResponse(message string) *BaseResponse {
	return NewBaseResponse(http.StatusBadRequest, message, nil)
}

func NewSuccessResponse(message string, data interface{}) *BaseResponse {
	return NewBaseResponse(http.StatusOK, message, data)
}

// ImportResponse summarises a CSV import.
type ImportResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// TradeListQuery holds the optional list limit.
type TradeListQuery struct {
	Limit int `query:"limit" validate:"gte=0"`
}
