package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/LoadCalc/internal/model"
)

// Error codes returned in the "code" field of an error response.
const (
	CodeInvalidDimension = "invalid_dimension"
	CodeUnknownPattern   = "unknown_pattern"
	CodeTooManyBoxes     = "too_many_boxes"
	CodeBadRequest       = "bad_request"
	CodeInternal         = "internal"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// classify maps an error to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrInvalidDimension):
		return http.StatusBadRequest, CodeInvalidDimension
	case errors.Is(err, model.ErrUnknownPattern):
		return http.StatusBadRequest, CodeUnknownPattern
	case errors.Is(err, model.ErrTooManyBoxes):
		return http.StatusBadRequest, CodeTooManyBoxes
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func abortWithError(c *gin.Context, err error) {
	status, code := classify(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

func abortBadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: "invalid request body: " + err.Error(),
		Code:  CodeBadRequest,
	})
}
