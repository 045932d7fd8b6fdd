package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/funntour/service-rental/internal/application"
	"github.com/funntour/service-rental/internal/auth"
	"github.com/funntour/service-rental/internal/middleware"
	"github.com/funntour/service-rental/internal/response"
)

// GeoHandler handles HTTP requests for the location hierarchy.
type GeoHandler struct {
	service *application.GeoService
}

// NewGeoHandler creates a new GeoHandler.
func NewGeoHandler(service *application.GeoService) *GeoHandler {
	return &GeoHandler{service: service}
}

// RegisterRoutes registers geo routes. Reads are public; writes are
// admin-only.
func (h *GeoHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminMW := middleware.RequireRole(auth.RoleAdmin)

	geo := r.Group("/api/v1/geo")
	{
		geo.GET("/countries", h.ListCountries)
		geo.GET("/countries/:id/states", h.ListStates)
		geo.GET("/states/:id/cities", h.ListCities)

		geo.POST("/countries", authMW, adminMW, h.CreateCountry)
		geo.POST("/states", authMW, adminMW, h.CreateState)
		geo.POST("/cities", authMW, adminMW, h.CreateCity)
		geo.DELETE("/countries/:id", authMW, adminMW, h.DeleteCountry)
		geo.DELETE("/states/:id", authMW, adminMW, h.DeleteState)
		geo.DELETE("/cities/:id", authMW, adminMW, h.DeleteCity)
	}
}

// ListCountries handles GET /api/v1/geo/countries.
func (h *GeoHandler) ListCountries(c *gin.Context) {
	result, err := h.service.ListCountries(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListStates handles GET /api/v1/geo/countries/:id/states.
func (h *GeoHandler) ListStates(c *gin.Context) {
	countryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid country ID")
		return
	}

	result, err := h.service.ListStates(c.Request.Context(), countryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListCities handles GET /api/v1/geo/states/:id/cities.
func (h *GeoHandler) ListCities(c *gin.Context) {
	stateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid state ID")
		return
	}

	result, err := h.service.ListCities(c.Request.Context(), stateID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateCountry handles POST /api/v1/geo/countries.
func (h *GeoHandler) CreateCountry(c *gin.Context) {
	var req application.CreateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateCountry(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// CreateState handles POST /api/v1/geo/states.
func (h *GeoHandler) CreateState(c *gin.Context) {
	var req application.CreateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateState(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// CreateCity handles POST /api/v1/geo/cities.
func (h *GeoHandler) CreateCity(c *gin.Context) {
	var req application.CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateCity(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// DeleteCountry handles DELETE /api/v1/geo/countries/:id.
func (h *GeoHandler) DeleteCountry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid country ID")
		return
	}

	if err := h.service.DeleteCountry(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteState handles DELETE /api/v1/geo/states/:id.
func (h *GeoHandler) DeleteState(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid state ID")
		return
	}

	if err := h.service.DeleteState(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteCity handles DELETE /api/v1/geo/cities/:id.
func (h *GeoHandler) DeleteCity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid city ID")
		return
	}

	if err := h.service.DeleteCity(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
