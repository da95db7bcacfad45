package consultation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/frontdesk-api/internal/handler"
	"github.com/jwalitptl/frontdesk-api/internal/model"
	"github.com/jwalitptl/frontdesk-api/internal/service/consultation"
	"github.com/jwalitptl/frontdesk-api/internal/service/referral"
	apperrors "github.com/jwalitptl/frontdesk-api/pkg/errors"
)

type Handler struct {
	service   *consultation.Service
	drafts    *consultation.DraftStore
	referrals *referral.Service
}

func NewHandler(service *consultation.Service, drafts *consultation.DraftStore, referrals *referral.Service) *Handler {
	return &Handler{service: service, drafts: drafts, referrals: referrals}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	consultations := r.Group("/consultations")
	{
		consultations.POST("", h.CreateConsultation)
		consultations.POST("/quick", h.CreateQuickConsultation)
		consultations.GET("/bmi", h.BodyMassIndex)
		consultations.POST("/referrals", h.Refer)

		drafts := consultations.Group("/drafts")
		drafts.POST("", h.NewDraft)
		drafts.GET("/:id", h.GetDraft)
		drafts.DELETE("/:id", h.DiscardDraft)
		drafts.POST("/:id/codes", h.AddCode)
		drafts.DELETE("/:id/codes/:code", h.RemoveCode)
	}

	r.GET("/patients/:id/consultations", h.History)
}

func (h *Handler) CreateConsultation(c *gin.Context) {
	var req model.ConsultationRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), handler.Session(c), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) CreateQuickConsultation(c *gin.Context) {
	var req model.QuickConsultationRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	created, err := h.service.CreateQuick(c.Request.Context(), handler.Session(c), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) History(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	history, err := h.service.History(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(history))
}

// BodyMassIndex derives imc for the form while it is being filled in.
func (h *Handler) BodyMassIndex(c *gin.Context) {
	height, herr := strconv.ParseFloat(c.Query("height_cm"), 64)
	weight, werr := strconv.ParseFloat(c.Query("weight_kg"), 64)
	if herr != nil || werr != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("height_cm and weight_kg must be numbers"))
		return
	}

	bmi, ok := consultation.BodyMassIndex(height, weight)
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("height_cm and weight_kg must be positive"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"imc": bmi}))
}

func (h *Handler) Refer(c *gin.Context) {
	var req model.ReferralRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	if err := h.referrals.Send(c.Request.Context(), handler.Session(c), &req); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, handler.NewSuccessResponse(gin.H{"sent": true}))
}

func (h *Handler) NewDraft(c *gin.Context) {
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(h.drafts.New()))
}

func (h *Handler) GetDraft(c *gin.Context) {
	d, err := h.drafts.Get(c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(d))
}

func (h *Handler) DiscardDraft(c *gin.Context) {
	h.drafts.Discard(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// AddCode answers a duplicate with 409 and the unchanged selection.
func (h *Handler) AddCode(c *gin.Context) {
	var req struct {
		Code string `json:"codigo" binding:"required"`
	}
	if !handler.BindJSON(c, &req) {
		return
	}

	d, err := h.drafts.AddCode(c.Request.Context(), c.Param("id"), req.Code)
	if apperrors.IsCode(err, apperrors.ErrConflict) {
		handler.RespondErrorWithData(c, err, d)
		return
	}
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(d))
}

func (h *Handler) RemoveCode(c *gin.Context) {
	d, err := h.drafts.RemoveCode(c.Param("id"), c.Param("code"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(d))
}
