package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/funntour/service-rental/internal/application"
	"github.com/funntour/service-rental/internal/auth"
	"github.com/funntour/service-rental/internal/middleware"
	"github.com/funntour/service-rental/internal/response"
)

// AdminHandler exposes administrative endpoints: full booking listings,
// booking statistics and all partner price rows.
type AdminHandler struct {
	bookings *application.BookingService
	prices   *application.PartnerPriceService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(bookings *application.BookingService, prices *application.PartnerPriceService) *AdminHandler {
	return &AdminHandler{bookings: bookings, prices: prices}
}

// RegisterRoutes registers all admin routes on the given router group.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/bookings", h.ListAllBookings)
		admin.GET("/bookings/stats", h.GetBookingStats)
		admin.GET("/partner-prices", h.ListAllPartnerPrices)
	}
}

// ListAllBookings handles GET /api/v1/admin/bookings.
func (h *AdminHandler) ListAllBookings(c *gin.Context) {
	page, limit := parsePagination(c)

	dtos, total, err := h.bookings.ListAllBookings(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dtos, total, page, limit)
}

// GetBookingStats handles GET /api/v1/admin/bookings/stats.
func (h *AdminHandler) GetBookingStats(c *gin.Context) {
	stats, err := h.bookings.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}

// ListAllPartnerPrices handles GET /api/v1/admin/partner-prices.
func (h *AdminHandler) ListAllPartnerPrices(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.prices.ListAllPartnerPrices(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}
