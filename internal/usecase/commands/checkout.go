package commands

import (
	"context"
	"time"

	domcart "velostore/internal/domain/cart"
	"velostore/internal/domain/order"
	"velostore/internal/domain/voucher"
	"velostore/internal/infra"
	"velostore/internal/pkg/clock"
	"velostore/internal/pkg/errs"
	"velostore/internal/pkg/ptr"
	"velostore/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCartEmpty               = errs.New("cart is empty")
	ErrAddressNotFound         = errs.New("shipping address not found")
	ErrInvalidVoucher          = errs.New("voucher cannot be used")
	ErrInsufficientStock       = errs.New("insufficient stock for rental")
	ErrDatabaseOperationFailed = errs.New("order could not be created")
)

const numberRetries = 3

type CheckoutRequest struct {
	AddressID     uuid.UUID
	PaymentMethod string
	VoucherCode   *string
	Note          *string
}

type CheckoutResult struct {
	SaleOrderID       *uuid.UUID
	SaleOrderNumber   *string
	RentalOrderID     *uuid.UUID
	RentalOrderNumber *string
	DiscountCents     int64
	TotalDueCents     int64
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, customerID uuid.UUID, req CheckoutRequest) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCheckoutUseCase(uow shared.UnitOfWork, clk clock.Clock) CheckoutCommands {
	return &checkoutUseCaseImpl{uow: uow, clock: clk}
}

// Checkout converts the active cart into at most one sale order and one
// rental order inside a single transaction. Any failure after the first write
// rolls back everything and leaves the cart Active.
func (uc *checkoutUseCaseImpl) Checkout(ctx context.Context, customerID uuid.UUID, req CheckoutRequest) (*CheckoutResult, error) {
	var result CheckoutResult

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cartSnap, err := tx.Reads().ActiveCartByCustomer(ctx, customerID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCartEmpty
			}
			return err
		}
		if len(cartSnap.Lines) == 0 {
			return ErrCartEmpty
		}

		addr, err := tx.Reads().AddressByID(ctx, req.AddressID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrAddressNotFound
			}
			return err
		}
		if addr.CustomerID != customerID {
			return ErrAddressNotFound
		}

		buyLines, rentLines := partitionLines(cartSnap.Lines)
		subtotalBuy := linesSubtotal(buyLines)
		subtotalRent := linesSubtotal(rentLines)

		now := uc.clock.Now()

		var (
			redeeming  *voucher.Voucher
			allocation voucher.Allocation
		)
		if req.VoucherCode != nil {
			redeeming, allocation, err = uc.resolveVoucher(ctx, tx, customerID, *req.VoucherCode, subtotalBuy, subtotalRent, now)
			if err != nil {
				return err
			}
		}

		if err := uc.guardStock(ctx, tx, rentLines); err != nil {
			return err
		}

		if len(buyLines) > 0 {
			saleOrder, err := uc.createSaleOrder(ctx, tx, customerID, req, buyLines, subtotalBuy-allocation.BuyCents, now)
			if err != nil {
				return err
			}
			result.SaleOrderID = ptr.To(saleOrder.ID())
			result.SaleOrderNumber = ptr.To(saleOrder.Number())
		}

		if len(rentLines) > 0 {
			rentalOrder, err := uc.createRentalOrder(ctx, tx, customerID, req, rentLines, subtotalRent-allocation.RentCents, now)
			if err != nil {
				return err
			}
			result.RentalOrderID = ptr.To(rentalOrder.ID())
			result.RentalOrderNumber = ptr.To(rentalOrder.Number())
		}

		if redeeming != nil {
			if err := uc.redeemVoucher(ctx, tx, redeeming, customerID, result.SaleOrderID, result.RentalOrderID, now); err != nil {
				return err
			}
		}

		c := domcart.ReconstructCart(
			cartSnap.ID, cartSnap.CustomerID, domcart.Status(cartSnap.Status),
			cartSnap.CheckedOut, cartSnap.CreatedAt, cartSnap.ModifiedAt,
		)
		if err := c.Convert(now); err != nil {
			return err
		}
		if err := tx.Carts().Convert(ctx, tx.DB(), c); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrCartEmpty
			}
			return err
		}

		result.DiscountCents = allocation.TotalCents()
		result.TotalDueCents = subtotalBuy + subtotalRent - allocation.TotalCents()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func partitionLines(lines []shared.CartLineSnapshot) (buy, rent []shared.CartLineSnapshot) {
	for _, line := range lines {
		if domcart.Kind(line.Kind).IsRent() {
			rent = append(rent, line)
		} else {
			buy = append(buy, line)
		}
	}
	return buy, rent
}

func linesSubtotal(lines []shared.CartLineSnapshot) int64 {
	var total int64
	for _, line := range lines {
		total += domcart.SubtotalCents(line.UnitPriceCents, line.Quantity, domcart.Kind(line.Kind), line.RentalDays)
	}
	return total
}

// resolveVoucher enforces every redeemability predicate as a hard failure,
// including the minimum-order rule against the combined subtotal and the
// one-redemption-per-customer rule.
func (uc *checkoutUseCaseImpl) resolveVoucher(ctx context.Context, tx shared.Tx, customerID uuid.UUID, code string, subtotalBuy, subtotalRent int64, now time.Time) (*voucher.Voucher, voucher.Allocation, error) {
	snap, err := tx.Reads().VoucherByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, voucher.Allocation{}, ErrInvalidVoucher
		}
		return nil, voucher.Allocation{}, err
	}

	v, err := voucher.NewVoucher(
		snap.ID, snap.Code, snap.Name, snap.Scope,
		snap.Percent, snap.AmountCents,
		snap.StartAt, snap.EndAt,
		snap.MinOrderCents, snap.RemainingQuantity, snap.Active, snap.TargetRank,
	)
	if err != nil {
		return nil, voucher.Allocation{}, errs.Mark(err, ErrInvalidVoucher)
	}

	if err := v.ValidateUsage(v.Scope(), now); err != nil {
		return nil, voucher.Allocation{}, errs.Mark(err, ErrInvalidVoucher)
	}

	// A scoped voucher needs liable lines in its own group.
	switch v.Scope() {
	case voucher.ScopeBuy:
		if subtotalBuy == 0 {
			return nil, voucher.Allocation{}, ErrInvalidVoucher
		}
	case voucher.ScopeRent:
		if subtotalRent == 0 {
			return nil, voucher.Allocation{}, ErrInvalidVoucher
		}
	}

	if !v.MeetsMinimum(subtotalBuy + subtotalRent) {
		return nil, voucher.Allocation{}, ErrInvalidVoucher
	}

	used, err := tx.Reads().VoucherUsed(ctx, v.ID(), customerID)
	if err != nil {
		return nil, voucher.Allocation{}, err
	}
	if used {
		return nil, voucher.Allocation{}, ErrInvalidVoucher
	}

	return v, voucher.Allocate(v.Discount(), v.Scope(), subtotalBuy, subtotalRent), nil
}

func (uc *checkoutUseCaseImpl) guardStock(ctx context.Context, tx shared.Tx, rentLines []shared.CartLineSnapshot) error {
	if len(rentLines) == 0 {
		return nil
	}

	need := make(map[uuid.UUID]int32, len(rentLines))
	ids := make([]uuid.UUID, 0, len(rentLines))
	for _, line := range rentLines {
		if _, ok := need[line.ProductID]; !ok {
			ids = append(ids, line.ProductID)
		}
		need[line.ProductID] += line.Quantity
	}

	available, err := tx.Inventory().AvailableForUpdate(ctx, tx.DB(), ids)
	if err != nil {
		return err
	}
	for productID, quantity := range need {
		if available[productID] < quantity {
			return ErrInsufficientStock
		}
	}
	return nil
}

func (uc *checkoutUseCaseImpl) createSaleOrder(ctx context.Context, tx shared.Tx, customerID uuid.UUID, req CheckoutRequest, lines []shared.CartLineSnapshot, totalDue int64, now time.Time) (*order.SaleOrder, error) {
	orderLines := make([]order.SaleLine, len(lines))
	for i, line := range lines {
		orderLines[i] = order.SaleLine{
			ID:             uuid.New(),
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
		}
	}

	// The number's random tail can collide; regenerate under the unique
	// constraint a bounded number of times.
	for attempt := 0; attempt < numberRetries; attempt++ {
		o := order.NewSaleOrder(
			customerID, req.AddressID,
			order.GenerateNumber(order.SaleNumberPrefix, now),
			req.PaymentMethod, req.Note, totalDue, orderLines, now,
		)
		err := tx.SaleOrders().Create(ctx, tx.DB(), o)
		if err == nil {
			return o, nil
		}
		if !infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, err
		}
	}
	return nil, ErrDatabaseOperationFailed
}

func (uc *checkoutUseCaseImpl) createRentalOrder(ctx context.Context, tx shared.Tx, customerID uuid.UUID, req CheckoutRequest, lines []shared.CartLineSnapshot, totalDue int64, now time.Time) (*order.RentalOrder, error) {
	var maxDays int32
	orderLines := make([]order.RentalLine, len(lines))
	for i, line := range lines {
		days := int32(1)
		if line.RentalDays != nil {
			days = *line.RentalDays
		}
		if days > maxDays {
			maxDays = days
		}
		orderLines[i] = order.RentalLine{
			ID:             uuid.New(),
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
			RentalDays:     days,
		}
	}
	dueDate := now.AddDate(0, 0, int(maxDays))

	for attempt := 0; attempt < numberRetries; attempt++ {
		o := order.NewRentalOrder(
			customerID, req.AddressID,
			order.GenerateNumber(order.RentalNumberPrefix, now),
			req.PaymentMethod, totalDue, dueDate, orderLines, now,
		)
		err := tx.RentalOrders().Create(ctx, tx.DB(), o)
		if err == nil {
			return o, nil
		}
		if !infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, err
		}
	}
	return nil, ErrDatabaseOperationFailed
}

// redeemVoucher claims one redemption: the conditional decrement loses the
// race cleanly when quantity hit zero since validation, and the usage row's
// primary key enforces one redemption per customer.
func (uc *checkoutUseCaseImpl) redeemVoucher(ctx context.Context, tx shared.Tx, v *voucher.Voucher, customerID uuid.UUID, saleOrderID, rentalOrderID *uuid.UUID, now time.Time) error {
	err := tx.Vouchers().DecrementQuantity(ctx, tx.DB(), v.ID())
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return ErrInvalidVoucher
		}
		return err
	}

	err = tx.Vouchers().RecordUsage(ctx, tx.DB(), shared.VoucherUsage{
		VoucherID:     v.ID(),
		CustomerID:    customerID,
		SaleOrderID:   saleOrderID,
		RentalOrderID: rentalOrderID,
		UsedAt:        now,
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return ErrInvalidVoucher
		}
		return err
	}
	return nil
}
