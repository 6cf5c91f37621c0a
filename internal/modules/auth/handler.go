package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cabinrental/internal/domain"
	"cabinrental/internal/middleware"
	"cabinrental/internal/pkg/response"
)

// CookieConfig describes the admin session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type Handler struct {
	service *Service
	cookie  CookieConfig
}

func NewHandler(service *Service, cookie CookieConfig) *Handler {
	return &Handler{service: service, cookie: cookie}
}

// RegisterPublicRoutes mounts login and logout, which need no session.
func (h *Handler) RegisterPublicRoutes(admin *gin.RouterGroup) {
	admin.POST("/login", h.Login)
	admin.POST("/logout", h.Logout)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/me", h.Me)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "username and password are required")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "AUTH_FAILED", "Invalid username or password")
			return
		}
		response.Internal(c, err)
		return
	}

	h.setCookie(c, result.Token, int(h.cookie.TTL/time.Second))
	response.Success(c, http.StatusOK, gin.H{
		"admin": AdminPublic{ID: result.Admin.ID, Username: result.Admin.Username},
	})
}

func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) Me(c *gin.Context) {
	identity, _ := middleware.AdminFromContext(c)

	admin, err := h.service.Me(c.Request.Context(), identity)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) || errors.Is(err, domain.ErrUnauthenticated) {
			response.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Admin session required")
			return
		}
		response.Internal(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"admin": AdminPublic{ID: admin.ID, Username: admin.Username},
	})
}

func (h *Handler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
