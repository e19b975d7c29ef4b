package schedule

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BangJepp56/ini-dashboard-admin/internal/handler"
	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/schedule"
)

type Handler struct {
	service *schedule.Service
}

func NewHandler(service *schedule.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	schedules := r.Group("/schedules")
	{
		schedules.GET("", h.ListSchedules)
		schedules.POST("", h.CreateSchedule)
		schedules.GET("/shift-templates", h.ShiftTemplates)
		schedules.GET("/poly-options", h.PolyOptions)
		schedules.GET("/:id", h.GetSchedule)
		schedules.PUT("/:id", h.UpdateSchedule)
		schedules.DELETE("/:id", h.DeleteSchedule)

		schedules.POST("/:id/holiday", h.SetHoliday)
		schedules.DELETE("/:id/holiday", h.CancelHoliday)
		schedules.POST("/:id/holiday/end", h.EndHoliday)
	}
}

// ListSchedules runs any due holiday transitions before answering.
func (h *Handler) ListSchedules(c *gin.Context) {
	var filter model.ScheduleFilter
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

func (h *Handler) ShiftTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(model.ShiftTemplates))
}

func (h *Handler) PolyOptions(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(model.PolyOptions))
}

func (h *Handler) GetSchedule(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	sch, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(sch))
}

func (h *Handler) CreateSchedule(c *gin.Context) {
	var req model.ScheduleRequest
	if !handler.BindJSON(c, &req) {
		return
	}
	sch, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewMessageResponse("Jadwal berhasil ditambahkan", sch))
}

func (h *Handler) UpdateSchedule(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.ScheduleRequest
	if !handler.BindJSON(c, &req) {
		return
	}
	sch, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("Jadwal berhasil diperbarui", sch))
}

func (h *Handler) DeleteSchedule(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("Jadwal berhasil dihapus", nil))
}

func (h *Handler) SetHoliday(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.HolidayRequest
	if !handler.BindJSON(c, &req) {
		return
	}
	sch, err := h.service.SetHoliday(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("Libur berhasil diatur", sch))
}

func (h *Handler) CancelHoliday(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	sch, err := h.service.CancelHoliday(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("Libur dibatalkan", sch))
}

func (h *Handler) EndHoliday(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	sch, err := h.service.EndHoliday(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("Libur diakhiri", sch))
}
