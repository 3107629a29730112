package repository

import (
	"context"

	"velostore/internal/domain/order"
	"velostore/internal/infra"
	"velostore/internal/infra/db"
	"velostore/internal/pkg/pgconv"
	"velostore/internal/usecase/shared"
)

type SaleOrderRepository struct{}

func NewSaleOrderRepository() shared.SaleOrderRepository {
	return &SaleOrderRepository{}
}

// Create inserts the header and lines. The unique index on number surfaces a
// DUPLICATE_KEY kind so checkout can regenerate the number and retry.
func (r *SaleOrderRepository) Create(ctx context.Context, dbtx db.DBTX, o *order.SaleOrder) error {
	const headerQ = `
		INSERT INTO sale_orders
			(id, customer_id, number, order_date, status, freight_cents, total_due_cents,
			 ship_address_id, payment_method, note, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := dbtx.Exec(ctx, headerQ,
		pgconv.UUIDToPgtype(o.ID()),
		pgconv.UUIDToPgtype(o.CustomerID()),
		o.Number(),
		pgconv.TimeToPgtype(o.OrderDate()),
		o.Status().String(),
		o.FreightCents(),
		o.TotalDueCents(),
		pgconv.UUIDToPgtype(o.ShipAddressID()),
		o.PaymentMethod(),
		pgconv.StringPtrToPgtype(o.Note()),
		pgconv.TimeToPgtype(o.ModifiedAt()),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("sale order number collision", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create sale order", err)
	}

	const lineQ = `
		INSERT INTO sale_order_lines (id, sale_order_id, product_id, quantity, unit_price_cents)
		VALUES ($1, $2, $3, $4, $5)`

	for _, line := range o.Lines() {
		_, err := dbtx.Exec(ctx, lineQ,
			pgconv.UUIDToPgtype(line.ID),
			pgconv.UUIDToPgtype(o.ID()),
			pgconv.UUIDToPgtype(line.ProductID),
			line.Quantity,
			line.UnitPriceCents,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to create sale order line", err)
		}
	}
	return nil
}

func (r *SaleOrderRepository) Update(ctx context.Context, dbtx db.DBTX, o *order.SaleOrder) error {
	const q = `
		UPDATE sale_orders
		SET status = $2,
		    cancellation_requested_at = $3,
		    cancellation_reason = $4,
		    modified_at = $5
		WHERE id = $1`

	tag, err := dbtx.Exec(ctx, q,
		pgconv.UUIDToPgtype(o.ID()),
		o.Status().String(),
		pgconv.TimePtrToPgtype(o.CancellationRequestedAt()),
		pgconv.StringPtrToPgtype(o.CancellationReason()),
		pgconv.TimeToPgtype(o.ModifiedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update sale order", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("sale order not found", nil, infra.KindNotFound)
	}
	return nil
}
