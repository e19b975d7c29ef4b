package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BangJepp56/ini-dashboard-admin/internal/handler"
	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/auth"
)

const (
	ContextClaims  = "claims"
	ContextAdminID = "adminID"

	// QueryAccessToken carries the token for websocket upgrades, which
	// browsers cannot send headers with. It is read only on routes passed to
	// AllowQueryToken.
	QueryAccessToken = "access_token"

	msgMissingToken = "Token tidak ditemukan"
	msgInvalidToken = "Sesi tidak valid atau sudah berakhir"
)

type AuthMiddleware struct {
	jwt        auth.JWTService
	queryPaths map[string]struct{}
}

func NewAuthMiddleware(jwtSvc auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, queryPaths: map[string]struct{}{}}
}

// AllowQueryToken lets the given route patterns authenticate with the
// access_token query parameter. Call before serving.
func (m *AuthMiddleware) AllowQueryToken(paths ...string) *AuthMiddleware {
	for _, p := range paths {
		m.queryPaths[p] = struct{}{}
	}
	return m
}

// Authenticate verifies the session token and sets the admin claims in context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := m.token(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse(msgMissingToken))
			return
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse(msgInvalidToken))
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextAdminID, claims.Subject)
		c.Next()
	}
}

func (m *AuthMiddleware) token(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", false
		}
		return strings.TrimSpace(parts[1]), true
	}
	if _, ok := m.queryPaths[c.FullPath()]; !ok {
		return "", false
	}
	if token := c.Query(QueryAccessToken); token != "" {
		return token, true
	}
	return "", false
}

// Claims returns the claims Authenticate stored, if any.
func Claims(c *gin.Context) (*model.TokenClaims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*model.TokenClaims)
	return claims, ok
}
