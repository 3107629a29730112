package repository

import (
	"context"

	"velostore/internal/domain/cart"
	"velostore/internal/infra"
	"velostore/internal/infra/db"
	"velostore/internal/pkg/pgconv"
	"velostore/internal/usecase/shared"

	"github.com/google/uuid"
)

type CartRepository struct{}

func NewCartRepository() shared.CartRepository {
	return &CartRepository{}
}

func (r *CartRepository) Create(ctx context.Context, dbtx db.DBTX, c *cart.Cart) error {
	const q = `
		INSERT INTO carts (id, customer_id, status, checked_out, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := dbtx.Exec(ctx, q,
		pgconv.UUIDToPgtype(c.ID()),
		pgconv.UUIDToPgtype(c.CustomerID()),
		string(c.Status()),
		c.CheckedOut(),
		pgconv.TimeToPgtype(c.CreatedAt()),
		pgconv.TimeToPgtype(c.ModifiedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create cart", err)
	}
	return nil
}

// UpsertLine relies on the unique merge-key index over
// (cart_id, product_id, transaction_type, COALESCE(rental_days, 0)); a
// concurrent duplicate add lands on the same row and adds quantities instead
// of creating a second line.
func (r *CartRepository) UpsertLine(ctx context.Context, dbtx db.DBTX, line *cart.Line) (uuid.UUID, error) {
	const q = `
		INSERT INTO cart_lines
			(id, cart_id, product_id, transaction_type, quantity, unit_price_cents, rental_days, added_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (cart_id, product_id, transaction_type, (COALESCE(rental_days, 0)))
		DO UPDATE SET
			quantity   = cart_lines.quantity + EXCLUDED.quantity,
			updated_at = EXCLUDED.updated_at
		RETURNING id`

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, q,
		pgconv.UUIDToPgtype(line.ID()),
		pgconv.UUIDToPgtype(line.CartID()),
		pgconv.UUIDToPgtype(line.ProductID()),
		line.Kind().String(),
		line.Quantity(),
		line.UnitPriceCents(),
		pgconv.Int32PtrToPgtype(line.RentalDays()),
		pgconv.TimeToPgtype(line.AddedAt()),
		pgconv.TimeToPgtype(line.UpdatedAt()),
	).Scan(&id)
	if err != nil {
		if pgconv.IsForeignKeyViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("cart or product does not exist", err, infra.KindForeignKeyViolated)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to upsert cart line", err)
	}
	return id, nil
}

func (r *CartRepository) UpdateLine(ctx context.Context, dbtx db.DBTX, line *cart.Line) error {
	const q = `
		UPDATE cart_lines
		SET quantity = $2, rental_days = $3, updated_at = $4
		WHERE id = $1`

	tag, err := dbtx.Exec(ctx, q,
		pgconv.UUIDToPgtype(line.ID()),
		line.Quantity(),
		pgconv.Int32PtrToPgtype(line.RentalDays()),
		pgconv.TimeToPgtype(line.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update cart line", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("cart line not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *CartRepository) DeleteLine(ctx context.Context, dbtx db.DBTX, cartID, lineID uuid.UUID) error {
	const q = `DELETE FROM cart_lines WHERE id = $1 AND cart_id = $2`

	tag, err := dbtx.Exec(ctx, q, pgconv.UUIDToPgtype(lineID), pgconv.UUIDToPgtype(cartID))
	if err != nil {
		return infra.WrapRepoErr("failed to delete cart line", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("cart line not found", nil, infra.KindNotFound)
	}
	return nil
}

// Convert flips the cart to Converted only while it is still active, so two
// concurrent checkouts of the same cart cannot both succeed.
func (r *CartRepository) Convert(ctx context.Context, dbtx db.DBTX, c *cart.Cart) error {
	const q = `
		UPDATE carts
		SET status = $2, checked_out = TRUE, modified_at = $3
		WHERE id = $1 AND checked_out = FALSE`

	tag, err := dbtx.Exec(ctx, q,
		pgconv.UUIDToPgtype(c.ID()),
		string(c.Status()),
		pgconv.TimeToPgtype(c.ModifiedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to convert cart", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("cart already checked out", nil, infra.KindConflict)
	}
	return nil
}
