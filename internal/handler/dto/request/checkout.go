package request

import (
	"strings"

	"velostore/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckoutRequest struct {
	AddressID     uuid.UUID `json:"address_id" binding:"required"`
	PaymentMethod string    `json:"payment_method" binding:"required"`
	VoucherCode   *string   `json:"voucher_code,omitempty"`
	Note          *string   `json:"note,omitempty"`
}

func (r CheckoutRequest) GetVoucherCode() *string {
	if r.VoucherCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.VoucherCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r CheckoutRequest) ToCommand() commands.CheckoutRequest {
	return commands.CheckoutRequest{
		AddressID:     r.AddressID,
		PaymentMethod: strings.TrimSpace(r.PaymentMethod),
		VoucherCode:   r.GetVoucherCode(),
		Note:          r.Note,
	}
}
