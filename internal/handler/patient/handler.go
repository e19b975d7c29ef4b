package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BangJepp56/ini-dashboard-admin/internal/handler"
	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/export"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/followup"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/patient"
)

type Handler struct {
	service   *patient.Service
	followUps *followup.Service
	exporter  *export.Service
}

func NewHandler(service *patient.Service, followUps *followup.Service, exporter *export.Service) *Handler {
	return &Handler{
		service:   service,
		followUps: followUps,
		exporter:  exporter,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.GET("/services", h.ListServices)
		patients.GET("/by-date", h.ListByDate)
		patients.GET("/export", h.ExportPatients)
		patients.GET("/:id", h.GetPatient)
		patients.PATCH("/:id/status", h.UpdateStatus)
		patients.POST("/:id/follow-ups", h.CreateFollowUp)
	}
}

func (h *Handler) ListPatients(c *gin.Context) {
	var filter model.PatientFilter
	if !handler.BindQuery(c, &filter) {
		return
	}
	patients, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.Services(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(services))
}

func (h *Handler) ListByDate(c *gin.Context) {
	var filter model.PatientFilter
	if !handler.BindQuery(c, &filter) {
		return
	}
	groups, err := h.service.ByDate(c.Request.Context(), filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(groups))
}

func (h *Handler) ExportPatients(c *gin.Context) {
	var filter model.PatientFilter
	if !handler.BindQuery(c, &filter) {
		return
	}
	patients, err := h.service.Patients(c.Request.Context(), filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	file, err := h.exporter.Patients(c.Request.Context(), patients, filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.Attachment(c, file.Name, file.ContentType, file.Data)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdatePatientStatusRequest
	if !handler.BindJSON(c, &req) {
		return
	}
	p, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("Status pasien berhasil diperbarui", p))
}

func (h *Handler) CreateFollowUp(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.CreateFollowUpRequest
	if !handler.BindJSON(c, &req) {
		return
	}
	f, err := h.followUps.CreateFromPatient(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewMessageResponse("Jadwal kontrol berhasil disimpan", f))
}
