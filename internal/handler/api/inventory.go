package api

import (
	"errors"
	"net/http"

	resdto "velostore/internal/handler/dto/response"
	"velostore/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	inventoryQueries queries.InventoryQueries
}

func NewInventoryHandler(inventoryQueries queries.InventoryQueries) *InventoryHandler {
	return &InventoryHandler{
		inventoryQueries: inventoryQueries,
	}
}

// @Summary Product availability
// @Description Return how many units of a product are currently available to rent
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id}/availability [get]
func (h *InventoryHandler) GetAvailability(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	view, err := h.inventoryQueries.GetAvailability(c.Request.Context(), productID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
