package speciality

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicdesk/booking-api/internal/handler"
	"github.com/clinicdesk/booking-api/internal/model"
	specialityService "github.com/clinicdesk/booking-api/internal/service/speciality"
)

type Handler struct {
	service *specialityService.Service
}

func NewHandler(service *specialityService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	specialities := r.Group("/specialities")
	{
		specialities.POST("", h.CreateSpeciality)
		specialities.GET("", h.ListSpecialities)
		specialities.GET("/:id", h.GetSpeciality)
		specialities.PUT("/:id", h.UpdateSpeciality)
		specialities.DELETE("/:id", h.DeleteSpeciality)
	}
}

func (h *Handler) CreateSpeciality(c *gin.Context) {
	var req model.CreateSpecialityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	speciality, err := h.service.CreateSpeciality(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(speciality))
}

func (h *Handler) GetSpeciality(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	speciality, err := h.service.GetSpeciality(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(speciality))
}

func (h *Handler) ListSpecialities(c *gin.Context) {
	specialities, err := h.service.ListSpecialities(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(specialities))
}

func (h *Handler) UpdateSpeciality(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	var req model.UpdateSpecialityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.UpdateSpeciality(c.Request.Context(), id, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteSpeciality(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSpeciality(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
