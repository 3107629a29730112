package queries

import (
	"context"
	"time"

	"velostore/internal/domain/cart"
	"velostore/internal/domain/voucher"
	"velostore/internal/infra"
	"velostore/internal/pkg/clock"
	"velostore/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrVoucherNotFound = errs.New("voucher not found")
	ErrInvalidVoucher  = errs.New("voucher cannot be used")
)

type CartLineView struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Kind           string    `json:"kind"`
	Quantity       int32     `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	RentalDays     *int32    `json:"rental_days,omitempty"`
	SubtotalCents  int64     `json:"subtotal_cents"`
}

type CartView struct {
	ID                uuid.UUID      `json:"id"`
	Status            string         `json:"status"`
	Lines             []CartLineView `json:"lines"`
	SubtotalBuyCents  int64          `json:"subtotal_buy_cents"`
	SubtotalRentCents int64          `json:"subtotal_rent_cents"`
	SubtotalCents     int64          `json:"subtotal_cents"`
}

type AppliedVoucherView struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Scope         string `json:"scope"`
	DiscountCents int64  `json:"discount_cents"`
}

type CartSummaryView struct {
	Cart              CartView            `json:"cart"`
	BuyVoucher        *AppliedVoucherView `json:"buy_voucher,omitempty"`
	RentVoucher       *AppliedVoucherView `json:"rent_voucher,omitempty"`
	DiscountBuyCents  int64               `json:"discount_buy_cents"`
	DiscountRentCents int64               `json:"discount_rent_cents"`
	TotalDueCents     int64               `json:"total_due_cents"`
}

type CartReadStore interface {
	FindActiveByCustomer(ctx context.Context, customerID uuid.UUID) (*CartView, error)
}

type VoucherReadStore interface {
	FindByCode(ctx context.Context, code string) (*voucher.Voucher, error)
	ListRedeemable(ctx context.Context, scope *string, now time.Time) ([]*VoucherView, error)
}

type CartQueries interface {
	// GetSummary prices the cart with optional per-scope voucher codes.
	// A voucher whose minimum is not met contributes a zero discount; any
	// other failed predicate is surfaced as ErrInvalidVoucher.
	GetSummary(ctx context.Context, customerID uuid.UUID, buyCode, rentCode *string) (*CartSummaryView, error)
}

type cartQueriesImpl struct {
	carts    CartReadStore
	vouchers VoucherReadStore
	clock    clock.Clock
}

func NewCartQueries(carts CartReadStore, vouchers VoucherReadStore, clk clock.Clock) CartQueries {
	return &cartQueriesImpl{carts: carts, vouchers: vouchers, clock: clk}
}

func (q *cartQueriesImpl) GetSummary(ctx context.Context, customerID uuid.UUID, buyCode, rentCode *string) (*CartSummaryView, error) {
	view, err := q.carts.FindActiveByCustomer(ctx, customerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			view = &CartView{Status: string(cart.StatusActive), Lines: []CartLineView{}}
		} else {
			return nil, err
		}
	}

	summary := &CartSummaryView{Cart: *view}

	now := q.clock.Now()
	if buyCode != nil {
		applied, discount, err := q.applyVoucher(ctx, *buyCode, voucher.ScopeBuy, view.SubtotalBuyCents, now)
		if err != nil {
			return nil, err
		}
		summary.BuyVoucher = applied
		summary.DiscountBuyCents = discount
	}
	if rentCode != nil {
		applied, discount, err := q.applyVoucher(ctx, *rentCode, voucher.ScopeRent, view.SubtotalRentCents, now)
		if err != nil {
			return nil, err
		}
		summary.RentVoucher = applied
		summary.DiscountRentCents = discount
	}

	summary.TotalDueCents = view.SubtotalCents - summary.DiscountBuyCents - summary.DiscountRentCents
	return summary, nil
}

func (q *cartQueriesImpl) applyVoucher(ctx context.Context, code string, scope voucher.Scope, subtotalCents int64, now time.Time) (*AppliedVoucherView, int64, error) {
	v, err := q.vouchers.FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, 0, ErrVoucherNotFound
		}
		return nil, 0, err
	}

	if err := v.ValidateUsage(scope, now); err != nil {
		return nil, 0, errs.Mark(err, ErrInvalidVoucher)
	}

	// Below the voucher's floor a summary shows the voucher with no discount;
	// checkout is where this becomes a hard failure.
	discount, err := v.DiscountFor(subtotalCents)
	if err != nil {
		discount = 0
	}

	return &AppliedVoucherView{
		Code:          v.Code().String(),
		Name:          v.Name(),
		Scope:         v.Scope().String(),
		DiscountCents: discount,
	}, discount, nil
}
