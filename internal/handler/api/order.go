package api

import (
	"errors"
	"net/http"

	"velostore/internal/domain/order"
	reqdto "velostore/internal/handler/dto/request"
	resdto "velostore/internal/handler/dto/response"
	"velostore/internal/handler/middleware"
	"velostore/internal/usecase/commands"
	"velostore/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	orderTypeSale   = "sale"
	orderTypeRental = "rental"
)

type OrderHandler struct {
	orderCommands commands.OrderCommands
	orderQueries  queries.OrderQueries
}

func NewOrderHandler(orderCommands commands.OrderCommands, orderQueries queries.OrderQueries) *OrderHandler {
	return &OrderHandler{
		orderCommands: orderCommands,
		orderQueries:  orderQueries,
	}
}

// @Summary Set order status
// @Description Move a sale or rental order to an explicit status
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param type query string true "Order type" Enums(sale, rental)
// @Param request body reqdto.SetStatusRequest true "Target status"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) SetStatus(c *gin.Context) {
	orderID, orderType, ok := h.orderTarget(c)
	if !ok {
		return
	}

	var req reqdto.SetStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	var err error
	if orderType == orderTypeSale {
		err = h.orderCommands.SetSaleStatus(c.Request.Context(), orderID, req.Status)
	} else {
		err = h.orderCommands.SetRentalStatus(c.Request.Context(), orderID, req.Status)
	}
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Review pending request
// @Description Accept or decline a pending cancellation or return request
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param type query string true "Order type" Enums(sale, rental)
// @Param request body reqdto.ReviewRequest true "Decision"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/request-review [post]
func (h *OrderHandler) ReviewRequest(c *gin.Context) {
	orderID, orderType, ok := h.orderTarget(c)
	if !ok {
		return
	}

	var req reqdto.ReviewRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	var err error
	if orderType == orderTypeSale {
		err = h.orderCommands.ReviewSaleRequest(c.Request.Context(), orderID, req.Decision)
	} else {
		err = h.orderCommands.ReviewRentalRequest(c.Request.Context(), orderID, req.Decision)
	}
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Prepare rental item
// @Description Assign a physical asset to a rental line and record its outgoing condition
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental order ID"
// @Param request body reqdto.PrepareRentalItemRequest true "Preparation details"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/rental-preparation [post]
func (h *OrderHandler) PrepareRentalItem(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	var req reqdto.PrepareRentalItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.orderCommands.PrepareRentalItem(c.Request.Context(), orderID, req.ToCommand()); err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Request cancellation
// @Description Ask for an order to be cancelled; staff reviews the request
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param type query string true "Order type" Enums(sale, rental)
// @Param request body reqdto.CancellationRequest false "Reason (sale orders only)"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/cancellation-request [post]
func (h *OrderHandler) RequestCancellation(c *gin.Context) {
	customerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	orderID, orderType, ok := h.orderTarget(c)
	if !ok {
		return
	}

	var err error
	if orderType == orderTypeSale {
		var req reqdto.CancellationRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
		err = h.orderCommands.RequestSaleCancellation(c.Request.Context(), orderID, customerID, req.Reason)
	} else {
		err = h.orderCommands.RequestRentalCancellation(c.Request.Context(), orderID, customerID)
	}
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Request return
// @Description Ask for a rented item to be taken back; staff reviews the request
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental order ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/return-request [post]
func (h *OrderHandler) RequestReturn(c *gin.Context) {
	customerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	if err := h.orderCommands.RequestRentalReturn(c.Request.Context(), orderID, customerID); err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get order
// @Description Return one sale or rental order with its lines
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param type query string true "Order type" Enums(sale, rental)
// @Success 200 {object} resdto.SaleOrderResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	actorRole, _ := middleware.GetUserRole(c)

	orderID, orderType, ok := h.orderTarget(c)
	if !ok {
		return
	}

	if orderType == orderTypeSale {
		view, err := h.orderQueries.GetSale(c.Request.Context(), orderID, actorID, actorRole)
		if err != nil {
			h.respondOrderError(c, err)
			return
		}
		resp, err := resdto.FromSaleOrderView(view)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	view, err := h.orderQueries.GetRental(c.Request.Context(), orderID, actorID, actorRole)
	if err != nil {
		h.respondOrderError(c, err)
		return
	}
	resp, err := resdto.FromRentalOrderView(view)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List orders
// @Description Return the customer's sale and rental order history
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.OrderHistoryResponse
// @Failure 401 {object} map[string]string
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	customerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	history, err := h.orderQueries.History(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	resp, err := resdto.FromOrderHistoryView(history)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// orderTarget reads the order ID from the path and the order type from the
// query string, writing the error response itself when either is malformed.
func (h *OrderHandler) orderTarget(c *gin.Context) (uuid.UUID, string, bool) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return uuid.Nil, "", false
	}

	orderType := c.Query("type")
	if orderType != orderTypeSale && orderType != orderTypeRental {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Order type must be sale or rental",
		})
		return uuid.Nil, "", false
	}

	return orderID, orderType, true
}

func (h *OrderHandler) respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrOrderNotFound),
		errors.Is(err, queries.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
	case errors.Is(err, commands.ErrOrderNotOwned),
		errors.Is(err, queries.ErrOrderAccess):
		// Hide other customers' orders rather than acknowledging them.
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
	case errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidDecision):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, order.ErrNoPendingRequest),
		errors.Is(err, order.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
