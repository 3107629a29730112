package response

import (
	"velostore/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CartLineResponse struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"productId"`
	ProductName    string    `json:"productName"`
	Kind           string    `json:"kind"`
	Quantity       int32     `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	RentalDays     *int32    `json:"rentalDays,omitempty"`
	SubtotalCents  int64     `json:"subtotalCents"`
}

type CartResponse struct {
	ID                uuid.UUID          `json:"id"`
	Status            string             `json:"status"`
	Lines             []CartLineResponse `json:"lines"`
	SubtotalBuyCents  int64              `json:"subtotalBuyCents"`
	SubtotalRentCents int64              `json:"subtotalRentCents"`
	SubtotalCents     int64              `json:"subtotalCents"`
}

type AppliedVoucherResponse struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Scope         string `json:"scope"`
	DiscountCents int64  `json:"discountCents"`
}

type CartSummaryResponse struct {
	Cart              CartResponse            `json:"cart"`
	BuyVoucher        *AppliedVoucherResponse `json:"buyVoucher,omitempty"`
	RentVoucher       *AppliedVoucherResponse `json:"rentVoucher,omitempty"`
	DiscountBuyCents  int64                   `json:"discountBuyCents"`
	DiscountRentCents int64                   `json:"discountRentCents"`
	TotalDueCents     int64                   `json:"totalDueCents"`
}

func FromCartSummaryView(view *queries.CartSummaryView) (*CartSummaryResponse, error) {
	var resp CartSummaryResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	if resp.Cart.Lines == nil {
		resp.Cart.Lines = []CartLineResponse{}
	}
	return &resp, nil
}
