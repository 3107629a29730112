package commands

import (
	"context"

	"velostore/internal/domain/order"
	"velostore/internal/infra"
	"velostore/internal/pkg/clock"
	"velostore/internal/pkg/errs"
	"velostore/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errs.New("order not found")
	ErrOrderNotOwned = errs.New("order does not belong to customer")
)

type PrepareRentalItemRequest struct {
	LineID         uuid.UUID
	AssetID        string
	ConditionNotes *string
	EvidencePhotos []string
}

type OrderCommands interface {
	SetSaleStatus(ctx context.Context, orderID uuid.UUID, status string) error
	SetRentalStatus(ctx context.Context, orderID uuid.UUID, status string) error
	RequestSaleCancellation(ctx context.Context, orderID, customerID uuid.UUID, reason string) error
	RequestRentalCancellation(ctx context.Context, orderID, customerID uuid.UUID) error
	RequestRentalReturn(ctx context.Context, orderID, customerID uuid.UUID) error
	ReviewSaleRequest(ctx context.Context, orderID uuid.UUID, decision string) error
	ReviewRentalRequest(ctx context.Context, orderID uuid.UUID, decision string) error
	PrepareRentalItem(ctx context.Context, orderID uuid.UUID, req PrepareRentalItemRequest) error
}

type orderUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewOrderUseCase(uow shared.UnitOfWork, clk clock.Clock) OrderCommands {
	return &orderUseCaseImpl{uow: uow, clock: clk}
}

func (uc *orderUseCaseImpl) SetSaleStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	normalized, err := order.NormalizeSaleStatus(status)
	if err != nil {
		return err
	}
	return uc.withSaleOrder(ctx, orderID, func(o *order.SaleOrder) error {
		o.SetStatus(normalized, uc.clock.Now())
		return nil
	})
}

func (uc *orderUseCaseImpl) SetRentalStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	normalized, err := order.NormalizeRentalStatus(status)
	if err != nil {
		return err
	}
	return uc.withRentalOrder(ctx, orderID, func(o *order.RentalOrder) error {
		o.SetStatus(normalized, uc.clock.Now())
		return nil
	})
}

func (uc *orderUseCaseImpl) RequestSaleCancellation(ctx context.Context, orderID, customerID uuid.UUID, reason string) error {
	return uc.withSaleOrder(ctx, orderID, func(o *order.SaleOrder) error {
		if o.CustomerID() != customerID {
			return ErrOrderNotOwned
		}
		return o.RequestCancellation(reason, uc.clock.Now())
	})
}

func (uc *orderUseCaseImpl) RequestRentalCancellation(ctx context.Context, orderID, customerID uuid.UUID) error {
	return uc.withRentalOrder(ctx, orderID, func(o *order.RentalOrder) error {
		if o.CustomerID() != customerID {
			return ErrOrderNotOwned
		}
		return o.RequestCancellation(uc.clock.Now())
	})
}

func (uc *orderUseCaseImpl) RequestRentalReturn(ctx context.Context, orderID, customerID uuid.UUID) error {
	return uc.withRentalOrder(ctx, orderID, func(o *order.RentalOrder) error {
		if o.CustomerID() != customerID {
			return ErrOrderNotOwned
		}
		return o.RequestReturn(uc.clock.Now())
	})
}

func (uc *orderUseCaseImpl) ReviewSaleRequest(ctx context.Context, orderID uuid.UUID, decision string) error {
	d, err := order.NewDecision(decision)
	if err != nil {
		return err
	}
	return uc.withSaleOrder(ctx, orderID, func(o *order.SaleOrder) error {
		return o.ReviewCancellation(d, uc.clock.Now())
	})
}

func (uc *orderUseCaseImpl) ReviewRentalRequest(ctx context.Context, orderID uuid.UUID, decision string) error {
	d, err := order.NewDecision(decision)
	if err != nil {
		return err
	}
	return uc.withRentalOrder(ctx, orderID, func(o *order.RentalOrder) error {
		return o.ReviewRequest(d, uc.clock.Now())
	})
}

func (uc *orderUseCaseImpl) PrepareRentalItem(ctx context.Context, orderID uuid.UUID, req PrepareRentalItemRequest) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, derr := uc.loadRentalOrder(ctx, tx, orderID)
		if derr != nil {
			return derr
		}
		if derr := o.PrepareLine(req.LineID, req.AssetID, req.ConditionNotes, req.EvidencePhotos, uc.clock.Now()); derr != nil {
			return derr
		}

		for _, line := range o.Lines() {
			if line.ID == req.LineID {
				if derr := tx.RentalOrders().UpdateLinePreparation(ctx, tx.DB(), o.ID(), line); derr != nil {
					return derr
				}
				break
			}
		}
		return tx.RentalOrders().Update(ctx, tx.DB(), o)
	})
}

func (uc *orderUseCaseImpl) withSaleOrder(ctx context.Context, orderID uuid.UUID, mutate func(*order.SaleOrder) error) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().SaleOrderByID(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		status, err := order.NormalizeSaleStatus(snap.Status)
		if err != nil {
			return err
		}

		lines := make([]order.SaleLine, len(snap.Lines))
		for i, line := range snap.Lines {
			lines[i] = order.SaleLine(line)
		}
		o := order.ReconstructSaleOrder(
			snap.ID, snap.CustomerID, snap.ShipAddressID,
			snap.Number, snap.OrderDate, status,
			snap.FreightCents, snap.TotalDueCents,
			snap.PaymentMethod, snap.Note,
			snap.CancellationRequestedAt, snap.CancellationReason,
			snap.ModifiedAt, lines,
		)

		if err := mutate(o); err != nil {
			return err
		}
		return tx.SaleOrders().Update(ctx, tx.DB(), o)
	})
}

func (uc *orderUseCaseImpl) withRentalOrder(ctx context.Context, orderID uuid.UUID, mutate func(*order.RentalOrder) error) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := uc.loadRentalOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if err := mutate(o); err != nil {
			return err
		}
		return tx.RentalOrders().Update(ctx, tx.DB(), o)
	})
}

func (uc *orderUseCaseImpl) loadRentalOrder(ctx context.Context, tx shared.Tx, orderID uuid.UUID) (*order.RentalOrder, error) {
	snap, err := tx.Reads().RentalOrderByID(ctx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	status, err := order.NormalizeRentalStatus(snap.Status)
	if err != nil {
		return nil, err
	}

	lines := make([]order.RentalLine, len(snap.Lines))
	for i, line := range snap.Lines {
		lines[i] = order.RentalLine(line)
	}
	return order.ReconstructRentalOrder(
		snap.ID, snap.CustomerID, snap.DeliveryAddressID,
		snap.Number, snap.RentalDate, snap.DueDate, snap.ReturnDate,
		status, snap.TotalDueCents, snap.PaymentMethod,
		snap.ModifiedAt, lines,
	), nil
}
