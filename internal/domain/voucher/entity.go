package voucher

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInactive      = errors.New("voucher is paused")
	ErrNotYetValid   = errors.New("voucher is not yet valid")
	ErrExpired       = errors.New("voucher has expired")
	ErrExhausted     = errors.New("voucher has no remaining quantity")
	ErrScopeMismatch = errors.New("voucher does not apply to this order scope")
	ErrMinimumNotMet = errors.New("order total below voucher minimum")
)

// Voucher is a promotional code with a redemption budget. remainingQuantity
// is decremented exactly once per successful use; the conditional decrement
// lives in the repository, this entity only validates.
type Voucher struct {
	id                uuid.UUID
	code              Code
	name              string
	scope             Scope
	discount          Discount
	startAt           time.Time
	endAt             time.Time
	minOrderCents     int64
	remainingQuantity int32
	active            bool
	targetRank        *string
}

func NewVoucher(
	id uuid.UUID,
	code string,
	name string,
	scope string,
	percent *int32,
	amountCents *int64,
	startAt, endAt time.Time,
	minOrderCents int64,
	remainingQuantity int32,
	active bool,
	targetRank *string,
) (*Voucher, error) {
	voucherCode, err := NewCode(code)
	if err != nil {
		return nil, err
	}
	voucherScope, err := NewScope(scope)
	if err != nil {
		return nil, err
	}
	discount, err := NewDiscount(percent, amountCents)
	if err != nil {
		return nil, err
	}

	return &Voucher{
		id:                id,
		code:              voucherCode,
		name:              name,
		scope:             voucherScope,
		discount:          discount,
		startAt:           startAt,
		endAt:             endAt,
		minOrderCents:     minOrderCents,
		remainingQuantity: remainingQuantity,
		active:            active,
		targetRank:        targetRank,
	}, nil
}

// ValidateUsage checks every redeemability predicate except the minimum-order
// constraint: active, inside the inclusive validity window, quantity left and
// scope coverage.
func (v *Voucher) ValidateUsage(requested Scope, now time.Time) error {
	if !v.active {
		return ErrInactive
	}
	if now.Before(v.startAt) {
		return ErrNotYetValid
	}
	if now.After(v.endAt) {
		return ErrExpired
	}
	if v.remainingQuantity <= 0 {
		return ErrExhausted
	}
	if !v.scope.Covers(requested) {
		return ErrScopeMismatch
	}
	return nil
}

func (v *Voucher) MeetsMinimum(subtotalCents int64) bool {
	return subtotalCents >= v.minOrderCents
}

// DiscountFor returns the discount for a subtotal that already passed
// ValidateUsage. Returns ErrMinimumNotMet when the subtotal is below the
// voucher's floor; summary callers may treat that as a zero discount while
// checkout treats it as a hard failure.
func (v *Voucher) DiscountFor(subtotalCents int64) (int64, error) {
	if !v.MeetsMinimum(subtotalCents) {
		return 0, ErrMinimumNotMet
	}
	return v.discount.AmountFor(subtotalCents), nil
}

func (v *Voucher) ID() uuid.UUID            { return v.id }
func (v *Voucher) Code() Code               { return v.code }
func (v *Voucher) Name() string             { return v.name }
func (v *Voucher) Scope() Scope             { return v.scope }
func (v *Voucher) Discount() Discount       { return v.discount }
func (v *Voucher) StartAt() time.Time       { return v.startAt }
func (v *Voucher) EndAt() time.Time         { return v.endAt }
func (v *Voucher) MinOrderCents() int64     { return v.minOrderCents }
func (v *Voucher) RemainingQuantity() int32 { return v.remainingQuantity }
func (v *Voucher) Active() bool             { return v.active }
func (v *Voucher) TargetRank() *string      { return v.targetRank }
