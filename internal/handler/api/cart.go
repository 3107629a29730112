package api

import (
	"errors"
	"net/http"

	"velostore/internal/domain/cart"
	reqdto "velostore/internal/handler/dto/request"
	resdto "velostore/internal/handler/dto/response"
	"velostore/internal/handler/middleware"
	"velostore/internal/usecase/commands"
	"velostore/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartCommands commands.CartCommands
	cartQueries  queries.CartQueries
}

func NewCartHandler(cartCommands commands.CartCommands, cartQueries queries.CartQueries) *CartHandler {
	return &CartHandler{
		cartCommands: cartCommands,
		cartQueries:  cartQueries,
	}
}

// @Summary Add cart item
// @Description Add a buy or rent line to the active cart, merging with an identical line if present
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddCartItemRequest true "Cart item"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	customerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.AddCartItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.cartCommands.AddLine(c.Request.Context(), customerID, req.ToCommand())
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"cart_id": result.CartID.String(),
		"line_id": result.LineID.String(),
	})
}

// @Summary Update cart item
// @Description Change quantity or rental days of a cart line
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart line ID"
// @Param request body reqdto.UpdateCartItemRequest true "Fields to change"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /cart/items/{id} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	customerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	lineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cart line ID",
		})
		return
	}

	var req reqdto.UpdateCartItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.cartCommands.UpdateLine(c.Request.Context(), customerID, lineID, req.ToCommand()); err != nil {
		h.respondCartError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Remove cart item
// @Description Delete a line from the active cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart line ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	customerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	lineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cart line ID",
		})
		return
	}

	if err := h.cartCommands.RemoveLine(c.Request.Context(), customerID, lineID); err != nil {
		h.respondCartError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get cart summary
// @Description Return the active cart priced with optional per-scope voucher codes
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param buy_voucher_code query string false "Voucher code for the buy group"
// @Param rent_voucher_code query string false "Voucher code for the rent group"
// @Success 200 {object} resdto.CartSummaryResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	customerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	summary, err := h.cartQueries.GetSummary(
		c.Request.Context(),
		customerID,
		optionalQuery(c, "buy_voucher_code"),
		optionalQuery(c, "rent_voucher_code"),
	)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrVoucherNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Voucher not found",
			})
		case errors.Is(err, queries.ErrInvalidVoucher):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Voucher cannot be used",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	resp, err := resdto.FromCartSummaryView(summary)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
	case errors.Is(err, commands.ErrCartLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Cart line not found",
		})
	case errors.Is(err, commands.ErrProductNotRentable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Product cannot be rented",
		})
	case errors.Is(err, commands.ErrRentalDaysOutOfRange),
		errors.Is(err, cart.ErrInvalidRentalDays):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Rental days outside allowed range",
		})
	case errors.Is(err, cart.ErrInvalidKind),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrRentalDaysRequired),
		errors.Is(err, cart.ErrRentalDaysNotAllowed):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func optionalQuery(c *gin.Context, key string) *string {
	value, exists := c.GetQuery(key)
	if !exists || value == "" {
		return nil
	}
	return &value
}
