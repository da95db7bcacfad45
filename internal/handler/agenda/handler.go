package agenda

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/frontdesk-api/internal/handler"
	"github.com/jwalitptl/frontdesk-api/internal/service/agenda"
)

type Handler struct {
	service *agenda.Service
}

func NewHandler(service *agenda.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/agenda", h.GetAgenda)
}

// GetAgenda loads the caller's agenda. upcoming=true drops past rows and q
// filters by patient, CI or subject.
func (h *Handler) GetAgenda(c *gin.Context) {
	upcoming := false
	if v := c.Query("upcoming"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("upcoming must be a boolean"))
			return
		}
		upcoming = b
	}

	a, err := h.service.Load(c.Request.Context(), handler.Session(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	if upcoming {
		a.Refresh(h.service.Now())
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(a.Search(c.Query("q"))))
}
