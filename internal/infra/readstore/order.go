package readstore

import (
	"context"

	"velostore/internal/domain/cart"
	"velostore/internal/domain/order"
	"velostore/internal/infra"
	"velostore/internal/infra/db"
	"velostore/internal/pkg/pgconv"
	"velostore/internal/pkg/ptr"
	"velostore/internal/usecase/queries"
	"velostore/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (r *OrderReadStore) FindSaleByID(ctx context.Context, id uuid.UUID) (*queries.SaleOrderView, error) {
	const headerQ = `
		SELECT id, customer_id, number, order_date, status, freight_cents, total_due_cents,
		       payment_method, note, cancellation_requested_at, cancellation_reason
		FROM sale_orders
		WHERE id = $1`

	var (
		view        queries.SaleOrderView
		orderDate   pgtype.Timestamptz
		note        pgtype.Text
		requestedAt pgtype.Timestamptz
		reason      pgtype.Text
	)
	err := r.db.QueryRow(ctx, headerQ, pgconv.UUIDToPgtype(id)).Scan(
		&view.ID, &view.CustomerID, &view.Number, &orderDate, &view.Status,
		&view.FreightCents, &view.TotalDueCents, &view.PaymentMethod,
		&note, &requestedAt, &reason,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("sale order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find sale order by ID", err)
	}
	view.OrderDate = pgconv.TimeFromPgtype(orderDate)
	view.Note = pgconv.StringPtrFromPgtype(note)
	view.CancellationRequestedAt = pgconv.TimePtrFromPgtype(requestedAt)
	view.CancellationReason = pgconv.StringPtrFromPgtype(reason)

	const linesQ = `
		SELECT l.id, l.product_id, p.name, l.quantity, l.unit_price_cents
		FROM sale_order_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.sale_order_id = $1
		ORDER BY p.name`

	rows, err := r.db.Query(ctx, linesQ, pgconv.UUIDToPgtype(id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load sale order lines", err)
	}
	defer rows.Close()

	view.Lines = []queries.SaleOrderLineView{}
	for rows.Next() {
		var line queries.SaleOrderLineView
		if err := rows.Scan(&line.ID, &line.ProductID, &line.ProductName, &line.Quantity, &line.UnitPriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan sale order line", err)
		}
		line.SubtotalCents = cart.SubtotalCents(line.UnitPriceCents, line.Quantity, cart.KindBuy, nil)
		view.Lines = append(view.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read sale order lines", err)
	}
	return &view, nil
}

func (r *OrderReadStore) FindRentalByID(ctx context.Context, id uuid.UUID) (*queries.RentalOrderView, error) {
	const headerQ = `
		SELECT id, customer_id, number, rental_date, due_date, return_date, status,
		       total_due_cents, payment_method
		FROM rental_orders
		WHERE id = $1`

	var (
		view       queries.RentalOrderView
		rentalDate pgtype.Timestamptz
		dueDate    pgtype.Timestamptz
		returnDate pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, headerQ, pgconv.UUIDToPgtype(id)).Scan(
		&view.ID, &view.CustomerID, &view.Number, &rentalDate, &dueDate, &returnDate,
		&view.Status, &view.TotalDueCents, &view.PaymentMethod,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rental order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rental order by ID", err)
	}
	view.RentalDate = pgconv.TimeFromPgtype(rentalDate)
	view.DueDate = pgconv.TimeFromPgtype(dueDate)
	view.ReturnDate = pgconv.TimePtrFromPgtype(returnDate)
	view.StatusCode = order.RentalStatus(view.Status).LegacyCode()

	const linesQ = `
		SELECT l.id, l.product_id, p.name, l.quantity, l.unit_price_cents, l.rental_days,
		       l.assigned_asset_id, l.condition_notes, l.evidence_photos
		FROM rental_order_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.rental_order_id = $1
		ORDER BY p.name`

	rows, err := r.db.Query(ctx, linesQ, pgconv.UUIDToPgtype(id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load rental order lines", err)
	}
	defer rows.Close()

	view.Lines = []queries.RentalOrderLineView{}
	for rows.Next() {
		var (
			line    queries.RentalOrderLineView
			assetID pgtype.Text
			notes   pgtype.Text
			photos  []string
		)
		err := rows.Scan(&line.ID, &line.ProductID, &line.ProductName, &line.Quantity,
			&line.UnitPriceCents, &line.RentalDays, &assetID, &notes, &photos)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan rental order line", err)
		}
		line.AssignedAssetID = pgconv.StringPtrFromPgtype(assetID)
		line.ConditionNotes = pgconv.StringPtrFromPgtype(notes)
		line.EvidencePhotos = photos
		line.SubtotalCents = cart.SubtotalCents(line.UnitPriceCents, line.Quantity, cart.KindRent, ptr.To(line.RentalDays))
		view.Lines = append(view.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read rental order lines", err)
	}
	return &view, nil
}

func (r *OrderReadStore) ListSalesByCustomer(ctx context.Context, customerID uuid.UUID) ([]*queries.SaleOrderListItem, error) {
	const q = `
		SELECT id, number, order_date, status, total_due_cents
		FROM sale_orders
		WHERE customer_id = $1
		ORDER BY order_date DESC`

	rows, err := r.db.Query(ctx, q, pgconv.UUIDToPgtype(customerID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list sale orders", err)
	}
	defer rows.Close()

	items := []*queries.SaleOrderListItem{}
	for rows.Next() {
		var (
			item      queries.SaleOrderListItem
			orderDate pgtype.Timestamptz
		)
		if err := rows.Scan(&item.ID, &item.Number, &orderDate, &item.Status, &item.TotalDueCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan sale order row", err)
		}
		item.OrderDate = pgconv.TimeFromPgtype(orderDate)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read sale order rows", err)
	}
	return items, nil
}

func (r *OrderReadStore) ListRentalsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*queries.RentalOrderListItem, error) {
	const q = `
		SELECT id, number, rental_date, due_date, return_date, status, total_due_cents
		FROM rental_orders
		WHERE customer_id = $1
		ORDER BY rental_date DESC`

	rows, err := r.db.Query(ctx, q, pgconv.UUIDToPgtype(customerID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rental orders", err)
	}
	defer rows.Close()

	items := []*queries.RentalOrderListItem{}
	for rows.Next() {
		var (
			item       queries.RentalOrderListItem
			rentalDate pgtype.Timestamptz
			dueDate    pgtype.Timestamptz
			returnDate pgtype.Timestamptz
		)
		err := rows.Scan(&item.ID, &item.Number, &rentalDate, &dueDate, &returnDate,
			&item.Status, &item.TotalDueCents)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan rental order row", err)
		}
		item.RentalDate = pgconv.TimeFromPgtype(rentalDate)
		item.DueDate = pgconv.TimeFromPgtype(dueDate)
		item.ReturnDate = pgconv.TimePtrFromPgtype(returnDate)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read rental order rows", err)
	}
	return items, nil
}

// SaleSnapshotByID backs command-side reconstruction.
func (r *OrderReadStore) SaleSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.SaleOrderSnapshot, error) {
	const headerQ = `
		SELECT id, customer_id, number, order_date, status, freight_cents, total_due_cents,
		       ship_address_id, payment_method, note, cancellation_requested_at,
		       cancellation_reason, modified_at
		FROM sale_orders
		WHERE id = $1`

	var (
		snap        shared.SaleOrderSnapshot
		orderDate   pgtype.Timestamptz
		note        pgtype.Text
		requestedAt pgtype.Timestamptz
		reason      pgtype.Text
		modifiedAt  pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, headerQ, pgconv.UUIDToPgtype(id)).Scan(
		&snap.ID, &snap.CustomerID, &snap.Number, &orderDate, &snap.Status,
		&snap.FreightCents, &snap.TotalDueCents, &snap.ShipAddressID,
		&snap.PaymentMethod, &note, &requestedAt, &reason, &modifiedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("sale order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find sale order by ID", err)
	}
	snap.OrderDate = pgconv.TimeFromPgtype(orderDate)
	snap.Note = pgconv.StringPtrFromPgtype(note)
	snap.CancellationRequestedAt = pgconv.TimePtrFromPgtype(requestedAt)
	snap.CancellationReason = pgconv.StringPtrFromPgtype(reason)
	snap.ModifiedAt = pgconv.TimeFromPgtype(modifiedAt)

	const linesQ = `
		SELECT id, product_id, quantity, unit_price_cents
		FROM sale_order_lines
		WHERE sale_order_id = $1`

	rows, err := r.db.Query(ctx, linesQ, pgconv.UUIDToPgtype(id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load sale order lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line shared.SaleOrderLineSnapshot
		if err := rows.Scan(&line.ID, &line.ProductID, &line.Quantity, &line.UnitPriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan sale order line", err)
		}
		snap.Lines = append(snap.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read sale order lines", err)
	}
	return &snap, nil
}

func (r *OrderReadStore) RentalSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.RentalOrderSnapshot, error) {
	const headerQ = `
		SELECT id, customer_id, number, rental_date, due_date, return_date, status,
		       total_due_cents, delivery_address_id, payment_method, modified_at
		FROM rental_orders
		WHERE id = $1`

	var (
		snap       shared.RentalOrderSnapshot
		rentalDate pgtype.Timestamptz
		dueDate    pgtype.Timestamptz
		returnDate pgtype.Timestamptz
		modifiedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, headerQ, pgconv.UUIDToPgtype(id)).Scan(
		&snap.ID, &snap.CustomerID, &snap.Number, &rentalDate, &dueDate, &returnDate,
		&snap.Status, &snap.TotalDueCents, &snap.DeliveryAddressID, &snap.PaymentMethod, &modifiedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rental order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rental order by ID", err)
	}
	snap.RentalDate = pgconv.TimeFromPgtype(rentalDate)
	snap.DueDate = pgconv.TimeFromPgtype(dueDate)
	snap.ReturnDate = pgconv.TimePtrFromPgtype(returnDate)
	snap.ModifiedAt = pgconv.TimeFromPgtype(modifiedAt)

	const linesQ = `
		SELECT id, product_id, quantity, unit_price_cents, rental_days,
		       assigned_asset_id, condition_notes, evidence_photos
		FROM rental_order_lines
		WHERE rental_order_id = $1`

	rows, err := r.db.Query(ctx, linesQ, pgconv.UUIDToPgtype(id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load rental order lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			line    shared.RentalOrderLineSnapshot
			assetID pgtype.Text
			notes   pgtype.Text
			photos  []string
		)
		err := rows.Scan(&line.ID, &line.ProductID, &line.Quantity, &line.UnitPriceCents,
			&line.RentalDays, &assetID, &notes, &photos)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan rental order line", err)
		}
		line.AssignedAssetID = pgconv.StringPtrFromPgtype(assetID)
		line.ConditionNotes = pgconv.StringPtrFromPgtype(notes)
		line.EvidencePhotos = photos
		snap.Lines = append(snap.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read rental order lines", err)
	}
	return &snap, nil
}
