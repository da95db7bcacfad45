package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/frontdesk-api/internal/handler"
	"github.com/jwalitptl/frontdesk-api/internal/middleware"
	"github.com/jwalitptl/frontdesk-api/internal/service/catalog"
)

type Handler struct {
	service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	catalogs := r.Group("/catalog", middleware.CacheControl(middleware.CacheConfig{
		MaxAge:  h.service.TTL(),
		Private: true,
		Vary:    []string{"Authorization"},
	}))
	{
		catalogs.GET("/genders", h.ListGenders)
		catalogs.GET("/cie10", h.SearchCie10)
	}
}

func (h *Handler) ListGenders(c *gin.Context) {
	genders, err := h.service.Genders(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(genders))
}

func (h *Handler) SearchCie10(c *gin.Context) {
	limit := catalog.DefaultSearchLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("limit must be a positive integer"))
			return
		}
		limit = n
	}

	codes, err := h.service.SearchCie10(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(codes))
}
