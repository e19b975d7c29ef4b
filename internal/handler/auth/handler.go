package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BangJepp56/ini-dashboard-admin/internal/handler"
	"github.com/BangJepp56/ini-dashboard-admin/internal/middleware"
	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/auth"
	apperrors "github.com/BangJepp56/ini-dashboard-admin/pkg/errors"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterPublicRoutes mounts the endpoints reachable without a token.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/auth/me", h.Me)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("Login berhasil", tokens))
}

func (h *Handler) Me(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		handler.RespondError(c, apperrors.Unauthorized("Sesi tidak valid atau sudah berakhir", nil))
		return
	}
	admin, err := h.svc.Me(c.Request.Context(), claims)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(admin))
}
