package response

import (
	"time"

	"velostore/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type VoucherResponse struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Scope         string    `json:"scope"`
	Percent       *int32    `json:"percent,omitempty"`
	AmountCents   *int64    `json:"amountCents,omitempty"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
	MinOrderCents int64     `json:"minOrderCents"`
}

func FromVoucherViews(views []*queries.VoucherView) ([]VoucherResponse, error) {
	resp := make([]VoucherResponse, 0, len(views))
	if err := copier.Copy(&resp, views); err != nil {
		return nil, err
	}
	return resp, nil
}
