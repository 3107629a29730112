package api

import (
	"errors"
	"net/http"

	reqdto "velostore/internal/handler/dto/request"
	resdto "velostore/internal/handler/dto/response"
	"velostore/internal/handler/middleware"
	"velostore/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutCommands commands.CheckoutCommands
}

func NewCheckoutHandler(checkoutCommands commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutCommands: checkoutCommands,
	}
}

// @Summary Checkout
// @Description Convert the active cart into sale and rental orders in one transaction
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /order/checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	customerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CheckoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.checkoutCommands.Checkout(c.Request.Context(), customerID, req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCartEmpty):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Cart is empty",
			})
		case errors.Is(err, commands.ErrAddressNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Shipping address not found",
			})
		case errors.Is(err, commands.ErrInvalidVoucher):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Voucher cannot be used",
			})
		case errors.Is(err, commands.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Insufficient stock for rental",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}
