package blocks

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cabinrental/internal/domain"
	"cabinrental/internal/middleware"
	"cabinrental/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes expects rg to sit behind the admin session middleware.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/cabins/:id/blocks", h.List)
	rg.POST("/cabins/:id/blocks", h.Create)
	rg.DELETE("/blocks/:blockId", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	cabinID, ok := response.ParamID(c, "id")
	if !ok {
		return
	}

	list, err := h.service.ListForCabin(c.Request.Context(), cabinID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Create(c *gin.Context) {
	cabinID, ok := response.ParamID(c, "id")
	if !ok {
		return
	}

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	admin, _ := middleware.AdminFromContext(c)
	block, err := h.service.Create(c.Request.Context(), admin, cabinID, req.FromDate, req.ToDate, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, CreateBlockResponse{ID: block.ID})
}

func (h *Handler) Delete(c *gin.Context) {
	blockID, ok := response.ParamID(c, "blockId")
	if !ok {
		return
	}

	admin, _ := middleware.AdminFromContext(c)
	if err := h.service.Delete(c.Request.Context(), admin, blockID); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if response.InvalidDateRange(c, err) {
		return
	}

	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		response.ErrorWithDetails(c, http.StatusConflict, "CONFLICTING_BLOCK",
			"The block overlaps an existing block", ConflictDetails{
				ID:       conflict.Block.ID,
				FromDate: conflict.Block.FromDate,
				ToDate:   conflict.Block.ToDate,
			})
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case errors.Is(err, domain.ErrUnauthenticated):
		response.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Admin session required")
	default:
		response.Internal(c, err)
	}
}
