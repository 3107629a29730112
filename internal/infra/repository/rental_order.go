package repository

import (
	"context"
	"time"

	"velostore/internal/domain/order"
	"velostore/internal/infra"
	"velostore/internal/infra/db"
	"velostore/internal/pkg/pgconv"
	"velostore/internal/usecase/shared"

	"github.com/google/uuid"
)

type RentalOrderRepository struct{}

func NewRentalOrderRepository() shared.RentalOrderRepository {
	return &RentalOrderRepository{}
}

func (r *RentalOrderRepository) Create(ctx context.Context, dbtx db.DBTX, o *order.RentalOrder) error {
	const headerQ = `
		INSERT INTO rental_orders
			(id, customer_id, number, rental_date, due_date, return_date, status,
			 total_due_cents, delivery_address_id, payment_method, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := dbtx.Exec(ctx, headerQ,
		pgconv.UUIDToPgtype(o.ID()),
		pgconv.UUIDToPgtype(o.CustomerID()),
		o.Number(),
		pgconv.TimeToPgtype(o.RentalDate()),
		pgconv.TimeToPgtype(o.DueDate()),
		pgconv.TimePtrToPgtype(o.ReturnDate()),
		o.Status().String(),
		o.TotalDueCents(),
		pgconv.UUIDToPgtype(o.DeliveryAddressID()),
		o.PaymentMethod(),
		pgconv.TimeToPgtype(o.ModifiedAt()),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("rental order number collision", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create rental order", err)
	}

	const lineQ = `
		INSERT INTO rental_order_lines
			(id, rental_order_id, product_id, quantity, unit_price_cents, rental_days,
			 assigned_asset_id, condition_notes, evidence_photos)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for _, line := range o.Lines() {
		_, err := dbtx.Exec(ctx, lineQ,
			pgconv.UUIDToPgtype(line.ID),
			pgconv.UUIDToPgtype(o.ID()),
			pgconv.UUIDToPgtype(line.ProductID),
			line.Quantity,
			line.UnitPriceCents,
			line.RentalDays,
			pgconv.StringPtrToPgtype(line.AssignedAssetID),
			pgconv.StringPtrToPgtype(line.ConditionNotes),
			line.EvidencePhotos,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to create rental order line", err)
		}
	}
	return nil
}

func (r *RentalOrderRepository) Update(ctx context.Context, dbtx db.DBTX, o *order.RentalOrder) error {
	const q = `
		UPDATE rental_orders
		SET status = $2, return_date = $3, modified_at = $4
		WHERE id = $1`

	tag, err := dbtx.Exec(ctx, q,
		pgconv.UUIDToPgtype(o.ID()),
		o.Status().String(),
		pgconv.TimePtrToPgtype(o.ReturnDate()),
		pgconv.TimeToPgtype(o.ModifiedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update rental order", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("rental order not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RentalOrderRepository) UpdateLinePreparation(ctx context.Context, dbtx db.DBTX, orderID uuid.UUID, line order.RentalLine) error {
	const q = `
		UPDATE rental_order_lines
		SET assigned_asset_id = $3, condition_notes = $4, evidence_photos = $5
		WHERE id = $1 AND rental_order_id = $2`

	tag, err := dbtx.Exec(ctx, q,
		pgconv.UUIDToPgtype(line.ID),
		pgconv.UUIDToPgtype(orderID),
		pgconv.StringPtrToPgtype(line.AssignedAssetID),
		pgconv.StringPtrToPgtype(line.ConditionNotes),
		line.EvidencePhotos,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update rental order line", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("rental order line not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RentalOrderRepository) MarkOverdue(ctx context.Context, dbtx db.DBTX, asOf time.Time) (int64, error) {
	const q = `
		UPDATE rental_orders
		SET status = $1, modified_at = $2
		WHERE due_date < $2
		  AND status IN ('Active', 'Confirmed', 'Preparing', 'Delivered')`

	tag, err := dbtx.Exec(ctx, q, order.RentalOverdue.String(), pgconv.TimeToPgtype(asOf))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark overdue rentals", err)
	}
	return tag.RowsAffected(), nil
}
