package commands

import (
	"context"

	domcart "velostore/internal/domain/cart"
	"velostore/internal/infra"
	"velostore/internal/pkg/clock"
	"velostore/internal/pkg/config"
	"velostore/internal/pkg/errs"
	"velostore/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound      = errs.New("product not found")
	ErrProductNotRentable   = errs.New("product cannot be rented")
	ErrCartLineNotFound     = errs.New("cart line not found")
	ErrRentalDaysOutOfRange = errs.New("rental days outside allowed range")
)

type AddLineRequest struct {
	ProductID  uuid.UUID
	Kind       string
	Quantity   int32
	RentalDays *int32
}

type AddLineResult struct {
	CartID uuid.UUID
	LineID uuid.UUID
}

type UpdateLineRequest struct {
	Quantity   *int32
	RentalDays *int32
}

type CartCommands interface {
	AddLine(ctx context.Context, customerID uuid.UUID, req AddLineRequest) (*AddLineResult, error)
	UpdateLine(ctx context.Context, customerID, lineID uuid.UUID, req UpdateLineRequest) error
	RemoveLine(ctx context.Context, customerID, lineID uuid.UUID) error
}

type cartUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	cfg   config.RentalConfig
}

func NewCartUseCase(uow shared.UnitOfWork, clk clock.Clock, cfg config.RentalConfig) CartCommands {
	return &cartUseCaseImpl{uow: uow, clock: clk, cfg: cfg}
}

func (uc *cartUseCaseImpl) AddLine(ctx context.Context, customerID uuid.UUID, req AddLineRequest) (*AddLineResult, error) {
	kind, err := domcart.NewKind(req.Kind)
	if err != nil {
		return nil, err
	}

	var result AddLineResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		product, derr := tx.Reads().ProductByID(ctx, req.ProductID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrProductNotFound
			}
			return derr
		}

		// The stored unit price is a snapshot of the catalog price at add
		// time; merging later adds keeps the first price.
		unitPrice := product.ListPriceCents
		if kind.IsRent() {
			if !product.IsRentable || product.RentPriceCents == nil {
				return ErrProductNotRentable
			}
			if derr := uc.checkRentalDays(req.RentalDays); derr != nil {
				return derr
			}
			unitPrice = *product.RentPriceCents
		}

		now := uc.clock.Now()
		cartID, derr := uc.ensureActiveCart(ctx, tx, customerID)
		if derr != nil {
			return derr
		}

		line, derr := domcart.NewLine(cartID, req.ProductID, kind, req.Quantity, unitPrice, req.RentalDays, now)
		if derr != nil {
			return derr
		}

		lineID, derr := tx.Carts().UpsertLine(ctx, tx.DB(), line)
		if derr != nil {
			return derr
		}
		result = AddLineResult{CartID: cartID, LineID: lineID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (uc *cartUseCaseImpl) UpdateLine(ctx context.Context, customerID, lineID uuid.UUID, req UpdateLineRequest) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		line, derr := uc.ownedLine(ctx, tx, customerID, lineID)
		if derr != nil {
			return derr
		}

		now := uc.clock.Now()
		if req.Quantity != nil {
			if derr := line.UpdateQuantity(*req.Quantity, now); derr != nil {
				return derr
			}
		}
		if req.RentalDays != nil {
			if derr := uc.checkRentalDays(req.RentalDays); derr != nil {
				return derr
			}
			if derr := line.UpdateRentalDays(*req.RentalDays, now); derr != nil {
				return derr
			}
		}
		return tx.Carts().UpdateLine(ctx, tx.DB(), line)
	})
}

func (uc *cartUseCaseImpl) RemoveLine(ctx context.Context, customerID, lineID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		line, derr := uc.ownedLine(ctx, tx, customerID, lineID)
		if derr != nil {
			return derr
		}
		err := tx.Carts().DeleteLine(ctx, tx.DB(), line.CartID(), line.ID())
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrCartLineNotFound
		}
		return err
	})
}

func (uc *cartUseCaseImpl) checkRentalDays(days *int32) error {
	if days == nil {
		return nil
	}
	if int(*days) < uc.cfg.MinDays || int(*days) > uc.cfg.MaxDays {
		return ErrRentalDaysOutOfRange
	}
	return nil
}

// ensureActiveCart lazily creates the customer's single active cart.
func (uc *cartUseCaseImpl) ensureActiveCart(ctx context.Context, tx shared.Tx, customerID uuid.UUID) (uuid.UUID, error) {
	snap, err := tx.Reads().ActiveCartByCustomer(ctx, customerID)
	if err == nil {
		return snap.ID, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return uuid.Nil, err
	}

	c := domcart.NewCart(customerID, uc.clock.Now())
	if err := tx.Carts().Create(ctx, tx.DB(), c); err != nil {
		return uuid.Nil, err
	}
	return c.ID(), nil
}

// ownedLine loads a cart line and checks it belongs to the customer's active
// cart; anything else reads as not-found so line ids cannot be probed.
func (uc *cartUseCaseImpl) ownedLine(ctx context.Context, tx shared.Tx, customerID, lineID uuid.UUID) (*domcart.Line, error) {
	snap, err := tx.Reads().CartLineByID(ctx, lineID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCartLineNotFound
		}
		return nil, err
	}

	cartSnap, err := tx.Reads().ActiveCartByCustomer(ctx, customerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCartLineNotFound
		}
		return nil, err
	}
	if snap.CartID != cartSnap.ID {
		return nil, ErrCartLineNotFound
	}

	kind, err := domcart.NewKind(snap.Kind)
	if err != nil {
		return nil, err
	}
	return domcart.ReconstructLine(
		snap.ID, snap.CartID, snap.ProductID, kind,
		snap.Quantity, snap.UnitPriceCents, snap.RentalDays,
		snap.AddedAt, snap.UpdatedAt,
	), nil
}
