package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/domain"
)

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *errBody    `json:"error,omitempty"`
}

type errBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OK writes a 200 response with the given payload.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

// BadRequest writes a 400 response with a validation error body.
func BadRequest(c *gin.Context, message string) {
	writeError(c, http.StatusBadRequest, domain.CodeValidation, message)
}

// NotFound writes a 404 response.
func NotFound(c *gin.Context, message string) {
	writeError(c, http.StatusNotFound, domain.CodeNotFound, message)
}

// Error maps an application error to the appropriate HTTP status.
func Error(c *gin.Context, err error) {
	switch domain.CodeOf(err) {
	case domain.CodeValidation:
		writeError(c, http.StatusBadRequest, domain.CodeValidation, err.Error())
	case domain.CodeNotFound:
		writeError(c, http.StatusNotFound, domain.CodeNotFound, err.Error())
	case domain.CodeConflict:
		writeError(c, http.StatusConflict, domain.CodeConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, domain.CodeInternal, "internal server error")
	}
}

func writeError(c *gin.Context, status int, code domain.ErrorCode, message string) {
	c.JSON(status, envelope{Success: false, Error: &errBody{Code: string(code), Message: message}})
}
