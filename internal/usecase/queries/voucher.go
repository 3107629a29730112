package queries

import (
	"context"
	"time"

	"velostore/internal/domain/voucher"
	"velostore/internal/pkg/clock"
	"velostore/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidVoucherScope = errs.New("invalid voucher scope filter")

type VoucherView struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Scope         string    `json:"scope"`
	Percent       *int32    `json:"percent,omitempty"`
	AmountCents   *int64    `json:"amount_cents,omitempty"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	MinOrderCents int64     `json:"min_order_cents"`
}

type VoucherQueries interface {
	// ListRedeemable returns vouchers currently usable: active, in window and
	// with quantity left, optionally narrowed to one scope (`all` always
	// included).
	ListRedeemable(ctx context.Context, scope *string) ([]*VoucherView, error)
}

type voucherQueriesImpl struct {
	store VoucherReadStore
	clock clock.Clock
}

func NewVoucherQueries(store VoucherReadStore, clk clock.Clock) VoucherQueries {
	return &voucherQueriesImpl{store: store, clock: clk}
}

func (q *voucherQueriesImpl) ListRedeemable(ctx context.Context, scope *string) ([]*VoucherView, error) {
	if scope != nil {
		if _, err := voucher.NewScope(*scope); err != nil {
			return nil, ErrInvalidVoucherScope
		}
	}
	return q.store.ListRedeemable(ctx, scope, q.clock.Now())
}
