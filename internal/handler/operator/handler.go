package operator

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/frontdesk-api/internal/handler"
	"github.com/jwalitptl/frontdesk-api/internal/service/operator"
)

type Handler struct {
	service *operator.Service
}

func NewHandler(service *operator.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	operators := r.Group("/operators")
	{
		operators.GET("", h.ListOperators)
		operators.GET("/me", h.GetCurrentOperator)
	}
}

func (h *Handler) ListOperators(c *gin.Context) {
	ops, err := h.service.Roster(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(ops))
}

func (h *Handler) GetCurrentOperator(c *gin.Context) {
	op, err := h.service.Current(c.Request.Context(), handler.Session(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(op))
}
