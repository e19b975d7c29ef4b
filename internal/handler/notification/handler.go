package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BangJepp56/ini-dashboard-admin/internal/handler"
	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/notification"
)

// Streamer upgrades a request into a live notification connection.
type Streamer interface {
	ServeWS(w http.ResponseWriter, r *http.Request) error
}

type Handler struct {
	service  *notification.Service
	streamer Streamer
}

func NewHandler(service *notification.Service, streamer Streamer) *Handler {
	return &Handler{service: service, streamer: streamer}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", h.ListNotifications)
		notifications.PATCH("/:id/read", h.MarkRead)
		notifications.POST("/read-all", h.MarkAllRead)
		if h.streamer != nil {
			notifications.GET("/stream", h.Stream)
		}
	}
}

func (h *Handler) ListNotifications(c *gin.Context) {
	var filter model.NotificationFilter
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

func (h *Handler) MarkRead(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.MarkRead(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("Notifikasi ditandai sudah dibaca", nil))
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	n, err := h.service.MarkAllRead(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("Semua notifikasi ditandai sudah dibaca", gin.H{"updated": n}))
}

// Stream hands the connection to the websocket hub. The upgrader writes its
// own error response on a failed handshake.
func (h *Handler) Stream(c *gin.Context) {
	if err := h.streamer.ServeWS(c.Writer, c.Request); err != nil {
		log.Debug().Err(err).Msg("notification stream closed before registration")
	}
}
