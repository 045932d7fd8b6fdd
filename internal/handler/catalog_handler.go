package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/funntour/service-rental/internal/application"
	"github.com/funntour/service-rental/internal/auth"
	"github.com/funntour/service-rental/internal/middleware"
	"github.com/funntour/service-rental/internal/response"
)

// CatalogHandler handles HTTP requests for marinas and routes.
type CatalogHandler struct {
	service *application.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *application.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers catalog routes. Reads are public; writes are
// admin-only.
func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminMW := middleware.RequireRole(auth.RoleAdmin)

	marinas := r.Group("/api/v1/marinas")
	{
		marinas.GET("", h.ListMarinas)
		marinas.GET("/:id", h.GetMarina)
		marinas.POST("", authMW, adminMW, h.CreateMarina)
		marinas.PUT("/:id", authMW, adminMW, h.UpdateMarina)
		marinas.DELETE("/:id", authMW, adminMW, h.DeleteMarina)
	}

	routes := r.Group("/api/v1/routes")
	{
		routes.GET("", h.ListRoutes)
		routes.GET("/:id", h.GetRoute)
		routes.POST("", authMW, adminMW, h.CreateRoute)
		routes.PUT("/:id", authMW, adminMW, h.UpdateRoute)
		routes.DELETE("/:id", authMW, adminMW, h.DeleteRoute)
	}
}

// ListMarinas handles GET /api/v1/marinas.
func (h *CatalogHandler) ListMarinas(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.service.ListMarinas(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetMarina handles GET /api/v1/marinas/:id.
func (h *CatalogHandler) GetMarina(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid marina ID")
		return
	}

	result, err := h.service.GetMarina(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateMarina handles POST /api/v1/marinas.
func (h *CatalogHandler) CreateMarina(c *gin.Context) {
	var req application.CreateMarinaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateMarina(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateMarina handles PUT /api/v1/marinas/:id.
func (h *CatalogHandler) UpdateMarina(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid marina ID")
		return
	}

	var req application.CreateMarinaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateMarina(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteMarina handles DELETE /api/v1/marinas/:id.
func (h *CatalogHandler) DeleteMarina(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid marina ID")
		return
	}

	if err := h.service.DeleteMarina(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListRoutes handles GET /api/v1/routes.
func (h *CatalogHandler) ListRoutes(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.service.ListRoutes(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetRoute handles GET /api/v1/routes/:id.
func (h *CatalogHandler) GetRoute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid route ID")
		return
	}

	result, err := h.service.GetRoute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateRoute handles POST /api/v1/routes.
func (h *CatalogHandler) CreateRoute(c *gin.Context) {
	var req application.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateRoute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateRoute handles PUT /api/v1/routes/:id.
func (h *CatalogHandler) UpdateRoute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid route ID")
		return
	}

	var req application.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateRoute(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteRoute handles DELETE /api/v1/routes/:id.
func (h *CatalogHandler) DeleteRoute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid route ID")
		return
	}

	if err := h.service.DeleteRoute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
