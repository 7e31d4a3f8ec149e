package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExposeErrorsKey is set on the gin context when internal error details may be returned.
const ExposeErrorsKey = "expose_errors"

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ListResponse struct {
	Status       string      `json:"status"`
	Code         int         `json:"code"`
	Message      string      `json:"message"`
	Page         int         `json:"page"`
	TotalPages   int         `json:"totalPages"`
	TotalRecords int64       `json:"totalRecords"`
	TraceID      string      `json:"trace_id,omitempty"`
	Data         interface{} `json:"data"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondList(c *gin.Context, data interface{}, message string, page, totalPages int, totalRecords int64) {
	c.JSON(http.StatusOK, ListResponse{
		Status:       "success",
		Code:         http.StatusOK,
		Message:      message,
		Page:         page,
		TotalPages:   totalPages,
		TotalRecords: totalRecords,
		TraceID:      c.GetString("trace_id"),
		Data:         data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	traceID := c.GetString("trace_id")

	var (
		verr *ValidationError
		nerr *NotFoundError
	)

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: verr.Error(),
			TraceID: traceID,
			Data:    gin.H{"errors": verr.Problems},
		})
	case errors.Is(err, ErrValidation):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &nerr):
		RespondError(c, http.StatusNotFound, nerr.Message)
	case errors.Is(err, ErrNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	default:
		zap.L().Error("request failed",
			zap.String("trace_id", traceID),
			zap.String("path", c.FullPath()),
			zap.Bool("store", errors.Is(err, ErrStore)),
			zap.Error(err))

		resp := APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Internal server error. Please try again later.",
			TraceID: traceID,
		}
		if c.GetBool(ExposeErrorsKey) {
			resp.Data = gin.H{"error": err.Error()}
		}
		c.JSON(http.StatusInternalServerError, resp)
	}
}
