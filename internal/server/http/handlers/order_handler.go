package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/smartkart/smartkart/internal/domain/errors"
	"github.com/smartkart/smartkart/internal/domain/model"
	"github.com/smartkart/smartkart/internal/domain/repository"
	"github.com/smartkart/smartkart/internal/server/http/dto"
	"github.com/smartkart/smartkart/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

func orderErrorStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrForbidden):
		c.Status(http.StatusForbidden)
	case errors.Is(err, domainErrors.ErrConflict):
		c.Status(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrInvalidStatus), errors.Is(err, domainErrors.ErrInvalidAmount):
		c.Status(http.StatusUnprocessableEntity)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func orderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	items := make([]usecase.OrderItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = usecase.OrderItemInput{
			Name:         it.Name,
			Quantity:     it.Quantity,
			Unit:         it.Unit,
			PricePerUnit: model.MoneyFromFloat(it.PricePerUnit),
		}
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentPrincipal(c), usecase.CreateOrderInput{
		GroupID:         req.GroupID,
		SupplierID:      req.SupplierID,
		Items:           items,
		DeliveryDate:    req.DeliveryDate,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		orderErrorStatus(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	var status *model.OrderStatus
	if raw := c.Query("status"); raw != "" {
		s := model.OrderStatus(raw)
		status = &s
	}

	page, err := h.facade.Orders(c.Request.Context(), CurrentPrincipal(c), status,
		queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		orderErrorStatus(c, err)
		return
	}

	response := dto.OrderListResponse{
		Orders:      make([]dto.OrderResponse, 0, len(page.Orders)),
		Total:       page.Total,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
	}
	for _, o := range page.Orders {
		response.Orders = append(response.Orders, dto.ToOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.facade.Order(c.Request.Context(), CurrentPrincipal(c), id)
	if err != nil {
		orderErrorStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}

// Update handles PATCH /api/orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.UpdateOrder(c.Request.Context(), CurrentPrincipal(c), id, repository.OrderPatch{
		DeliveryDate:    req.DeliveryDate,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		orderErrorStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}

// Decide handles POST /api/orders/:id/decision.
func (h *OrderHandler) Decide(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.OrderDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.DecideOrder(c.Request.Context(), CurrentPrincipal(c), id, model.OrderStatus(req.Status), req.Reason)
	if err != nil {
		orderErrorStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}

// Progress handles POST /api/orders/:id/progress.
func (h *OrderHandler) Progress(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.OrderProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.ProgressOrder(c.Request.Context(), CurrentPrincipal(c), id, model.OrderStatus(req.Status), req.Notes)
	if err != nil {
		orderErrorStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}

// ScheduleDelivery handles POST /api/orders/:id/delivery.
func (h *OrderHandler) ScheduleDelivery(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.ScheduleDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.DeliveryDate.IsZero() || req.DeliveryAddress == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.ScheduleDelivery(c.Request.Context(), CurrentPrincipal(c), id, req.DeliveryDate, req.DeliveryAddress, req.Notes)
	if err != nil {
		orderErrorStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}
