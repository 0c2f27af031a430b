package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/smartkart/smartkart/internal/domain/errors"
	"github.com/smartkart/smartkart/internal/domain/model"
	"github.com/smartkart/smartkart/internal/server/http/dto"
	"github.com/smartkart/smartkart/internal/usecase"
)

// GroupHandler manages bulk order group endpoints.
type GroupHandler struct {
	facade GroupFacade
}

// NewGroupHandler constructs GroupHandler.
func NewGroupHandler(facade GroupFacade) *GroupHandler {
	return &GroupHandler{facade: facade}
}

// Create handles POST /api/groups.
func (h *GroupHandler) Create(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	members := make([]usecase.GroupShare, len(req.Members))
	for i, m := range req.Members {
		members[i] = usecase.GroupShare{VendorID: m.VendorID, SharePercentage: m.SharePercentage}
	}

	group, err := h.facade.CreateGroup(c.Request.Context(), CurrentPrincipal(c), usecase.CreateGroupInput{
		Name:         req.Name,
		Members:      members,
		TotalAmount:  model.MoneyFromFloat(req.TotalAmount),
		DeliveryDate: req.DeliveryDate,
		Description:  req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrForbidden):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrInvalidShares), errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToGroupResponse(*group))
}

// List handles GET /api/groups.
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.facade.Groups(c.Request.Context(), CurrentPrincipal(c).ID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.GroupResponse, 0, len(groups))
	for _, g := range groups {
		response = append(response, dto.ToGroupResponse(g))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/groups/:id.
func (h *GroupHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	group, err := h.facade.Group(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToGroupResponse(*group))
}
