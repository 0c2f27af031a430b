package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/smartkart/smartkart/internal/domain/errors"
	"github.com/smartkart/smartkart/internal/domain/model"
	"github.com/smartkart/smartkart/internal/server/http/dto"
)

// PaymentHandler manages UPI payment endpoints.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Link handles POST /api/payments/orders/:id/link.
func (h *PaymentHandler) Link(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.PaymentLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	link, amount, err := h.facade.PaymentLink(c.Request.Context(), id, model.MoneyFromFloat(req.Amount), req.Description)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.PaymentLinkResponse{PaymentLink: link, Amount: amount.Float64()})
}

// Confirm handles POST /api/payments/orders/:id/confirm.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req dto.PaymentConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.ProcessPayment(c.Request.Context(), CurrentPrincipal(c), id,
		req.TransactionID, model.MoneyFromFloat(req.Amount), req.Success)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}

// Status handles GET /api/payments/orders/:id.
func (h *PaymentHandler) Status(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.facade.PaymentStatus(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.PaymentStatusResponse{
		OrderID:       order.ID.String(),
		PaymentStatus: string(order.PaymentStatus),
		TotalAmount:   order.TotalAmount.Float64(),
	})
}

// History handles GET /api/payments/history.
func (h *PaymentHandler) History(c *gin.Context) {
	history, err := h.facade.PaymentHistory(c.Request.Context(), CurrentPrincipal(c),
		queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := dto.PaymentHistoryResponse{
		Orders:      make([]dto.OrderResponse, 0, len(history.Orders)),
		Total:       history.Total,
		TotalPages:  history.TotalPages,
		CurrentPage: history.CurrentPage,
		TotalPaid:   history.TotalPaid.Float64(),
	}
	for _, o := range history.Orders {
		response.Orders = append(response.Orders, dto.ToOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}
