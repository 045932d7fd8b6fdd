package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/funntour/service-rental/internal/application"
	"github.com/funntour/service-rental/internal/auth"
	"github.com/funntour/service-rental/internal/middleware"
	"github.com/funntour/service-rental/internal/response"
)

// BoatHandler handles HTTP requests for the boat catalog.
type BoatHandler struct {
	service *application.BoatService
}

// NewBoatHandler creates a new BoatHandler.
func NewBoatHandler(service *application.BoatService) *BoatHandler {
	return &BoatHandler{service: service}
}

// RegisterRoutes registers all boat routes on the given router group. Reads
// are public; writes require the partner or admin role.
func (h *BoatHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	partnerMW := middleware.RequireRole(auth.RolePartner, auth.RoleAdmin)

	boats := r.Group("/api/v1/boats")
	{
		boats.GET("", h.ListBoats)
		boats.GET("/mine", authMW, partnerMW, h.ListOwnBoats)
		boats.GET("/:id", h.GetBoat)
		boats.POST("", authMW, partnerMW, h.CreateBoat)
		boats.PATCH("/:id", authMW, partnerMW, h.UpdateBoat)
		boats.DELETE("/:id", authMW, partnerMW, h.DeleteBoat)
	}
}

// ListBoats handles GET /api/v1/boats.
func (h *BoatHandler) ListBoats(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.service.ListBoats(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// ListOwnBoats handles GET /api/v1/boats/mine.
func (h *BoatHandler) ListOwnBoats(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, limit := parsePagination(c)

	result, err := h.service.ListOwnBoats(c.Request.Context(), actor.ID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetBoat handles GET /api/v1/boats/:id.
func (h *BoatHandler) GetBoat(c *gin.Context) {
	boatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid boat ID")
		return
	}

	result, err := h.service.GetBoat(c.Request.Context(), boatID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateBoat handles POST /api/v1/boats.
func (h *BoatHandler) CreateBoat(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateBoatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBoat(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateBoat handles PATCH /api/v1/boats/:id.
func (h *BoatHandler) UpdateBoat(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	boatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid boat ID")
		return
	}

	var req application.UpdateBoatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateBoat(c.Request.Context(), actor, boatID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteBoat handles DELETE /api/v1/boats/:id.
func (h *BoatHandler) DeleteBoat(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	boatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid boat ID")
		return
	}

	if err := h.service.DeleteBoat(c.Request.Context(), actor, boatID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
