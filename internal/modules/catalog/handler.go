package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cabinrental/internal/domain"
	"cabinrental/internal/middleware"
	"cabinrental/internal/pkg/pagination"
	"cabinrental/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cabins", h.Search)
	rg.GET("/cabins/:id", h.GetCabin)
	rg.GET("/cabins/:id/quote", h.Quote)
}

// RegisterAdminRoutes expects rg to sit behind the admin session middleware.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/cabins", h.AdminList)
	rg.POST("/cabins", h.Create)
	rg.GET("/cabins/:id", h.AdminGet)
	rg.PUT("/cabins/:id", h.Update)
	rg.PATCH("/cabins/:id/active", h.SetActive)
}

// Search handles GET /cabins?from&to&guests&minPrice&maxPrice&sort&page&limit
func (h *Handler) Search(c *gin.Context) {
	_, hasFrom := c.GetQuery("from")
	_, hasTo := c.GetQuery("to")

	page := pagination.Parse(c.Query("page"), c.Query("limit"), PublicDefaultLimit, PublicMaxLimit)
	q := SearchQuery{
		DatesRequested: hasFrom || hasTo,
		From:           c.Query("from"),
		To:             c.Query("to"),
		Guests:         pagination.ClampInt(c.Query("guests"), 0, 0, MaxGuestsFilter),
		MinPrice:       pagination.OptionalFloat(c.Query("minPrice")),
		MaxPrice:       pagination.OptionalFloat(c.Query("maxPrice")),
		Sort:           c.Query("sort"),
		Page:           page.Page,
		Limit:          page.Limit,
	}

	result, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) GetCabin(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}

	cabin, err := h.service.GetPublic(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, cabin)
}

func (h *Handler) Quote(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), id, c.Query("from"), c.Query("to"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, quote)
}

func (h *Handler) AdminList(c *gin.Context) {
	page := pagination.Parse(c.Query("page"), c.Query("limit"), AdminDefaultLimit, AdminMaxLimit)

	result, err := h.service.AdminList(c.Request.Context(), page)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) AdminGet(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}

	cabin, err := h.service.GetAdmin(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, cabin)
}

func (h *Handler) Create(c *gin.Context) {
	var in CabinInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	admin, _ := middleware.AdminFromContext(c)
	cabin, err := h.service.Create(c.Request.Context(), admin, in)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toDetail(cabin))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}

	var in CabinInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	admin, _ := middleware.AdminFromContext(c)
	cabin, err := h.service.Update(c.Request.Context(), admin, id, in)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toDetail(cabin))
}

// SetActive handles PATCH /admin/cabins/:id/active. An empty body toggles.
func (h *Handler) SetActive(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}

	var req SetActiveRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
	}

	admin, _ := middleware.AdminFromContext(c)
	cabin, err := h.service.SetActive(c.Request.Context(), admin, id, req.Active)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ActiveResponse{ID: cabin.ID, IsActive: cabin.IsActive})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if response.InvalidDateRange(c, err) {
		return
	}

	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid cabin data", verr.Fields)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Cabin not found")
	case errors.Is(err, ErrDuplicateSlug):
		response.Error(c, http.StatusConflict, "DUPLICATE_SLUG", "Another cabin already uses this slug")
	case errors.Is(err, domain.ErrUnauthenticated):
		response.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Admin session required")
	default:
		response.Internal(c, err)
	}
}
