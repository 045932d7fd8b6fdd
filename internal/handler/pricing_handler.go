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

// PricingHandler handles HTTP requests for partner price overrides.
type PricingHandler struct {
	service *application.PartnerPriceService
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(service *application.PartnerPriceService) *PricingHandler {
	return &PricingHandler{service: service}
}

// RegisterRoutes registers all pricing routes on the given router group.
func (h *PricingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	partnerMW := middleware.RequireRole(auth.RolePartner, auth.RoleAdmin)

	r.GET("/api/v1/boats/:id/price", h.ResolvePrice)

	prices := r.Group("/api/v1/partner-prices")
	prices.Use(authMW, partnerMW)
	{
		prices.POST("", h.CreatePartnerPrice)
		prices.GET("", h.ListOwnPartnerPrices)
		prices.GET("/:id", h.GetPartnerPrice)
		prices.PUT("/:id", h.UpdatePartnerPrice)
		prices.DELETE("/:id", h.DeletePartnerPrice)
	}
}

// ResolvePrice handles GET /api/v1/boats/:id/price. Query parameters day_type
// and period select the matrix bucket.
func (h *PricingHandler) ResolvePrice(c *gin.Context) {
	boatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid boat ID")
		return
	}

	result, err := h.service.ResolvePrice(c.Request.Context(), boatID, c.Query("day_type"), c.Query("period"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreatePartnerPrice handles POST /api/v1/partner-prices.
func (h *PricingHandler) CreatePartnerPrice(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreatePartnerPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreatePartnerPrice(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListOwnPartnerPrices handles GET /api/v1/partner-prices.
func (h *PricingHandler) ListOwnPartnerPrices(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, limit := parsePagination(c)

	result, err := h.service.ListOwnPartnerPrices(c.Request.Context(), actor.ID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetPartnerPrice handles GET /api/v1/partner-prices/:id.
func (h *PricingHandler) GetPartnerPrice(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	priceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid price ID")
		return
	}

	result, err := h.service.GetPartnerPrice(c.Request.Context(), actor, priceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdatePartnerPrice handles PUT /api/v1/partner-prices/:id.
func (h *PricingHandler) UpdatePartnerPrice(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	priceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid price ID")
		return
	}

	var req application.UpdatePartnerPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdatePartnerPrice(c.Request.Context(), actor, priceID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeletePartnerPrice handles DELETE /api/v1/partner-prices/:id.
func (h *PricingHandler) DeletePartnerPrice(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	priceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid price ID")
		return
	}

	if err := h.service.DeletePartnerPrice(c.Request.Context(), actor, priceID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
