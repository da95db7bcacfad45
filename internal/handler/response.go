package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jwalitptl/frontdesk-api/pkg/errors"
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

// RespondError writes err as a JSON error. Application errors keep their
// status and message; anything else is logged and answered with a generic
// 500 so store details never reach the client.
func RespondError(c *gin.Context, err error) {
	RespondErrorWithData(c, err, nil)
}

func RespondErrorWithData(c *gin.Context, err error, data interface{}) {
	if appErr, ok := apperrors.As(err); ok && appErr.Code != apperrors.ErrInternal {
		resp := NewErrorResponse(appErr.Message)
		resp.Data = data
		c.JSON(appErr.StatusCode(), resp)
		return
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("Request failed")
	c.JSON(http.StatusInternalServerError, NewErrorResponse("internal server error"))
}

// BindJSON decodes the body into obj, writing a 400 when it is malformed.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid request body"))
		return false
	}
	return true
}
