package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/booking-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError maps the application error taxonomy onto HTTP statuses.
func RespondError(c *gin.Context, err error) {
	var status int
	switch errors.CodeOf(err) {
	case errors.ErrNotFound:
		status = http.StatusNotFound
	case errors.ErrConflict:
		status = http.StatusConflict
	case errors.ErrBadRequest, errors.ErrIDMismatch,
		errors.ErrInvalidReference, errors.ErrDoctorClinicMismatch, errors.ErrInvalidDuration:
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		message = "internal server error"
	}

	c.JSON(status, NewErrorResponse(message))
}

// ParseID extracts the int64 :id route parameter, writing a 400 on failure.
func ParseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid id"))
		return 0, false
	}
	return id, true
}
