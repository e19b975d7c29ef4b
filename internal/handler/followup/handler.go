package followup

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BangJepp56/ini-dashboard-admin/internal/handler"
	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/export"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/followup"
)

type Handler struct {
	service  *followup.Service
	exporter *export.Service
}

func NewHandler(service *followup.Service, exporter *export.Service) *Handler {
	return &Handler{service: service, exporter: exporter}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	followUps := r.Group("/follow-ups")
	{
		followUps.GET("", h.ListFollowUps)
		followUps.GET("/summary", h.Summary)
		followUps.GET("/export", h.ExportFollowUps)
		followUps.GET("/:id", h.GetFollowUp)
		followUps.PUT("/:id", h.UpdateFollowUp)
		followUps.PATCH("/:id/status", h.UpdateStatus)
		followUps.DELETE("/:id", h.DeleteFollowUp)
	}
}

func (h *Handler) ListFollowUps(c *gin.Context) {
	var filter model.FollowUpFilter
	if !handler.BindQuery(c, &filter) {
		return
	}
	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(list))
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(summary))
}

func (h *Handler) ExportFollowUps(c *gin.Context) {
	var filter model.FollowUpFilter
	if !handler.BindQuery(c, &filter) {
		return
	}
	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	file, err := h.exporter.FollowUps(c.Request.Context(), list)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.Attachment(c, file.Name, file.ContentType, file.Data)
}

func (h *Handler) GetFollowUp(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	f, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(f))
}

func (h *Handler) UpdateFollowUp(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateFollowUpRequest
	if !handler.BindJSON(c, &req) {
		return
	}
	f, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("Jadwal kontrol berhasil diperbarui", f))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateFollowUpStatusRequest
	if !handler.BindJSON(c, &req) {
		return
	}
	f, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(f))
}

func (h *Handler) DeleteFollowUp(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("Jadwal kontrol berhasil dihapus", nil))
}
