package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/smartkart/smartkart/internal/domain/errors"
	"github.com/smartkart/smartkart/internal/server/http/dto"
	"github.com/smartkart/smartkart/internal/usecase"
)

// SupplierHandler serves supplier discovery, rating and dashboard endpoints.
type SupplierHandler struct {
	facade MarketFacade
}

// NewSupplierHandler constructs SupplierHandler.
func NewSupplierHandler(facade MarketFacade) *SupplierHandler {
	return &SupplierHandler{facade: facade}
}

// Nearby handles GET /api/suppliers/nearby.
func (h *SupplierHandler) Nearby(c *gin.Context) {
	longitude, okLon := queryFloat(c, "longitude", 0)
	latitude, okLat := queryFloat(c, "latitude", 0)
	maxDistance, okDist := queryFloat(c, "maxDistance", usecase.DefaultSearchRadiusMeters)
	if !okLon || !okLat || !okDist || c.Query("longitude") == "" || c.Query("latitude") == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	nearby, err := h.facade.NearbySuppliers(c.Request.Context(), longitude, latitude, maxDistance)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCoordinates):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	response := make([]dto.NearbySupplierResponse, 0, len(nearby))
	for _, n := range nearby {
		response = append(response, dto.NearbySupplierResponse{
			Supplier: dto.ToUserResponse(n.Supplier),
			Distance: n.Distance,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Rate handles POST /api/suppliers/:id/rating.
func (h *SupplierHandler) Rate(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.RateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	rating, count, err := h.facade.RateSupplier(c.Request.Context(), CurrentPrincipal(c), supplierID, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrForbidden):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrInvalidRating):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.RatingResponse{Rating: rating, RatingCount: count})
}

// Dashboard handles GET /api/suppliers/dashboard.
func (h *SupplierHandler) Dashboard(c *gin.Context) {
	stats, err := h.facade.SupplierDashboard(c.Request.Context(), CurrentPrincipal(c))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrForbidden):
			c.Status(http.StatusForbidden)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	response := dto.DashboardResponse{
		MonthlyOrders:  stats.MonthlyOrders,
		MonthlyRevenue: stats.MonthlyRevenue.Float64(),
		PendingOrders:  stats.PendingOrders,
		RecentOrders:   make([]dto.OrderResponse, 0, len(stats.RecentOrders)),
	}
	for _, o := range stats.RecentOrders {
		response.RecentOrders = append(response.RecentOrders, dto.ToOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}
