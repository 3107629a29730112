package readstore

import (
	"context"

	"velostore/internal/domain/cart"
	"velostore/internal/infra"
	"velostore/internal/infra/db"
	"velostore/internal/pkg/pgconv"
	"velostore/internal/usecase/queries"
	"velostore/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CartReadStore struct {
	db db.DBTX
}

func NewCartReadStore(dbtx db.DBTX) *CartReadStore {
	return &CartReadStore{db: dbtx}
}

// FindActiveByCustomer builds the priced cart view. Line subtotals are
// recomputed here rather than read from storage.
func (r *CartReadStore) FindActiveByCustomer(ctx context.Context, customerID uuid.UUID) (*queries.CartView, error) {
	const q = `
		SELECT c.id, c.status,
		       l.id, l.product_id, p.name, l.transaction_type,
		       l.quantity, l.unit_price_cents, l.rental_days
		FROM carts c
		LEFT JOIN cart_lines l ON l.cart_id = c.id
		LEFT JOIN products p ON p.id = l.product_id
		WHERE c.customer_id = $1 AND c.status = 'Active' AND c.checked_out = FALSE
		ORDER BY l.added_at`

	rows, err := r.db.Query(ctx, q, pgconv.UUIDToPgtype(customerID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active cart", err)
	}
	defer rows.Close()

	var view *queries.CartView
	for rows.Next() {
		var (
			cartID      uuid.UUID
			status      string
			lineID      pgtype.UUID
			productID   pgtype.UUID
			productName pgtype.Text
			kind        pgtype.Text
			quantity    pgtype.Int4
			unitPrice   pgtype.Int8
			rentalDays  pgtype.Int4
		)
		err := rows.Scan(&cartID, &status, &lineID, &productID, &productName,
			&kind, &quantity, &unitPrice, &rentalDays)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan cart row", err)
		}

		if view == nil {
			view = &queries.CartView{ID: cartID, Status: status, Lines: []queries.CartLineView{}}
		}
		if !lineID.Valid {
			continue
		}

		days := pgconv.Int32PtrFromPgtype(rentalDays)
		subtotal := cart.SubtotalCents(unitPrice.Int64, quantity.Int32, cart.Kind(kind.String), days)
		view.Lines = append(view.Lines, queries.CartLineView{
			ID:             pgconv.UUIDFromPgtype(lineID),
			ProductID:      pgconv.UUIDFromPgtype(productID),
			ProductName:    productName.String,
			Kind:           kind.String,
			Quantity:       quantity.Int32,
			UnitPriceCents: unitPrice.Int64,
			RentalDays:     days,
			SubtotalCents:  subtotal,
		})
		if cart.Kind(kind.String).IsRent() {
			view.SubtotalRentCents += subtotal
		} else {
			view.SubtotalBuyCents += subtotal
		}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read cart rows", err)
	}
	if view == nil {
		return nil, infra.WrapRepoErr("active cart not found", nil, infra.KindNotFound)
	}
	view.SubtotalCents = view.SubtotalBuyCents + view.SubtotalRentCents
	return view, nil
}

// FindSnapshotByCustomer is the write-side read used by commands.
func (r *CartReadStore) FindSnapshotByCustomer(ctx context.Context, customerID uuid.UUID) (*shared.CartSnapshot, error) {
	const q = `
		SELECT c.id, c.customer_id, c.status, c.checked_out, c.created_at, c.modified_at,
		       l.id, l.product_id, l.transaction_type, l.quantity, l.unit_price_cents,
		       l.rental_days, l.added_at, l.updated_at
		FROM carts c
		LEFT JOIN cart_lines l ON l.cart_id = c.id
		WHERE c.customer_id = $1 AND c.status = 'Active' AND c.checked_out = FALSE
		ORDER BY l.added_at`

	rows, err := r.db.Query(ctx, q, pgconv.UUIDToPgtype(customerID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active cart", err)
	}
	defer rows.Close()

	var snap *shared.CartSnapshot
	for rows.Next() {
		var (
			cartID     uuid.UUID
			custID     uuid.UUID
			status     string
			checkedOut bool
			createdAt  pgtype.Timestamptz
			modifiedAt pgtype.Timestamptz
			lineID     pgtype.UUID
			productID  pgtype.UUID
			kind       pgtype.Text
			quantity   pgtype.Int4
			unitPrice  pgtype.Int8
			rentalDays pgtype.Int4
			addedAt    pgtype.Timestamptz
			updatedAt  pgtype.Timestamptz
		)
		err := rows.Scan(&cartID, &custID, &status, &checkedOut, &createdAt, &modifiedAt,
			&lineID, &productID, &kind, &quantity, &unitPrice, &rentalDays, &addedAt, &updatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan cart row", err)
		}

		if snap == nil {
			snap = &shared.CartSnapshot{
				ID:         cartID,
				CustomerID: custID,
				Status:     status,
				CheckedOut: checkedOut,
				CreatedAt:  pgconv.TimeFromPgtype(createdAt),
				ModifiedAt: pgconv.TimeFromPgtype(modifiedAt),
				Lines:      []shared.CartLineSnapshot{},
			}
		}
		if !lineID.Valid {
			continue
		}
		snap.Lines = append(snap.Lines, shared.CartLineSnapshot{
			ID:             pgconv.UUIDFromPgtype(lineID),
			CartID:         cartID,
			ProductID:      pgconv.UUIDFromPgtype(productID),
			Kind:           kind.String,
			Quantity:       quantity.Int32,
			UnitPriceCents: unitPrice.Int64,
			RentalDays:     pgconv.Int32PtrFromPgtype(rentalDays),
			AddedAt:        pgconv.TimeFromPgtype(addedAt),
			UpdatedAt:      pgconv.TimeFromPgtype(updatedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read cart rows", err)
	}
	if snap == nil {
		return nil, infra.WrapRepoErr("active cart not found", nil, infra.KindNotFound)
	}
	return snap, nil
}

func (r *CartReadStore) LineByID(ctx context.Context, lineID uuid.UUID) (*shared.CartLineSnapshot, error) {
	const q = `
		SELECT id, cart_id, product_id, transaction_type, quantity, unit_price_cents,
		       rental_days, added_at, updated_at
		FROM cart_lines
		WHERE id = $1`

	var (
		snap       shared.CartLineSnapshot
		rentalDays pgtype.Int4
		addedAt    pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, q, pgconv.UUIDToPgtype(lineID)).Scan(
		&snap.ID, &snap.CartID, &snap.ProductID, &snap.Kind, &snap.Quantity,
		&snap.UnitPriceCents, &rentalDays, &addedAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("cart line not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find cart line by ID", err)
	}
	snap.RentalDays = pgconv.Int32PtrFromPgtype(rentalDays)
	snap.AddedAt = pgconv.TimeFromPgtype(addedAt)
	snap.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &snap, nil
}
