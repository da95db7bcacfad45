package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/frontdesk-api/internal/session"
)

// Registrar is implemented by every resource handler.
type Registrar interface {
	RegisterRoutes(r *gin.RouterGroup)
}

// Session returns the operator session the session middleware attached to
// the request. It panics when that middleware is missing from the chain.
func Session(c *gin.Context) *session.Session {
	return session.MustFromContext(c.Request.Context())
}

// ParseID reads a positive integer path parameter. On failure it writes a
// 400 and returns false.
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid "+name))
		return 0, false
	}
	return id, true
}
