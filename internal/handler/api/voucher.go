package api

import (
	"errors"
	"net/http"

	resdto "velostore/internal/handler/dto/response"
	"velostore/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type VoucherHandler struct {
	voucherQueries queries.VoucherQueries
}

func NewVoucherHandler(voucherQueries queries.VoucherQueries) *VoucherHandler {
	return &VoucherHandler{
		voucherQueries: voucherQueries,
	}
}

// @Summary List redeemable vouchers
// @Description Return vouchers currently usable, optionally narrowed to one scope
// @Tags vouchers
// @Produce json
// @Param scope query string false "Voucher scope" Enums(buy, rent, all)
// @Success 200 {array} resdto.VoucherResponse
// @Failure 400 {object} map[string]string
// @Router /vouchers [get]
func (h *VoucherHandler) ListRedeemable(c *gin.Context) {
	views, err := h.voucherQueries.ListRedeemable(c.Request.Context(), optionalQuery(c, "scope"))
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidVoucherScope):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Scope must be buy, rent or all",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	resp, err := resdto.FromVoucherViews(views)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
