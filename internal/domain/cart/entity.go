package cart

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCartConverted = errors.New("cart has already been checked out")
	ErrLineNotInCart = errors.New("line does not belong to this cart")
)

type Status string

const (
	StatusActive    Status = "Active"
	StatusConverted Status = "Converted"
)

// Cart is a customer's single open basket. It is created lazily on first add
// and consumed exactly once by checkout, after which it becomes immutable
// history (Converted carts are never reused).
type Cart struct {
	id         uuid.UUID
	customerID uuid.UUID
	status     Status
	checkedOut bool
	createdAt  time.Time
	modifiedAt time.Time
}

func NewCart(customerID uuid.UUID, now time.Time) *Cart {
	return &Cart{
		id:         uuid.New(),
		customerID: customerID,
		status:     StatusActive,
		checkedOut: false,
		createdAt:  now,
		modifiedAt: now,
	}
}

func ReconstructCart(
	id, customerID uuid.UUID,
	status Status,
	checkedOut bool,
	createdAt, modifiedAt time.Time,
) *Cart {
	return &Cart{
		id:         id,
		customerID: customerID,
		status:     status,
		checkedOut: checkedOut,
		createdAt:  createdAt,
		modifiedAt: modifiedAt,
	}
}

func (c *Cart) IsActive() bool {
	return c.status == StatusActive && !c.checkedOut
}

// Convert retires the cart at checkout. It is a one-way transition.
func (c *Cart) Convert(now time.Time) error {
	if !c.IsActive() {
		return ErrCartConverted
	}
	c.status = StatusConverted
	c.checkedOut = true
	c.modifiedAt = now
	return nil
}

func (c *Cart) ID() uuid.UUID         { return c.id }
func (c *Cart) CustomerID() uuid.UUID { return c.customerID }
func (c *Cart) Status() Status        { return c.status }
func (c *Cart) CheckedOut() bool      { return c.checkedOut }
func (c *Cart) CreatedAt() time.Time  { return c.createdAt }
func (c *Cart) ModifiedAt() time.Time { return c.modifiedAt }

// Line is one (product, kind, rental days) entry. Unit price is snapshotted
// from the catalog when the line is first added and is not re-derived later;
// merging an existing line keeps the stored price.
type Line struct {
	id             uuid.UUID
	cartID         uuid.UUID
	productID      uuid.UUID
	kind           Kind
	quantity       int32
	unitPriceCents int64
	rentalDays     *int32
	addedAt        time.Time
	updatedAt      time.Time
}

func NewLine(
	cartID, productID uuid.UUID,
	kind Kind,
	quantity int32,
	unitPriceCents int64,
	rentalDays *int32,
	now time.Time,
) (*Line, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if kind.IsRent() {
		if rentalDays == nil {
			return nil, ErrRentalDaysRequired
		}
		if *rentalDays < 1 {
			return nil, ErrInvalidRentalDays
		}
	} else if rentalDays != nil {
		return nil, ErrRentalDaysNotAllowed
	}

	return &Line{
		id:             uuid.New(),
		cartID:         cartID,
		productID:      productID,
		kind:           kind,
		quantity:       quantity,
		unitPriceCents: unitPriceCents,
		rentalDays:     rentalDays,
		addedAt:        now,
		updatedAt:      now,
	}, nil
}

func ReconstructLine(
	id, cartID, productID uuid.UUID,
	kind Kind,
	quantity int32,
	unitPriceCents int64,
	rentalDays *int32,
	addedAt, updatedAt time.Time,
) *Line {
	return &Line{
		id:             id,
		cartID:         cartID,
		productID:      productID,
		kind:           kind,
		quantity:       quantity,
		unitPriceCents: unitPriceCents,
		rentalDays:     rentalDays,
		addedAt:        addedAt,
		updatedAt:      updatedAt,
	}
}

func (l *Line) UpdateQuantity(quantity int32, now time.Time) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	l.quantity = quantity
	l.updatedAt = now
	return nil
}

func (l *Line) UpdateRentalDays(days int32, now time.Time) error {
	if !l.kind.IsRent() {
		return ErrRentalDaysNotAllowed
	}
	if days < 1 {
		return ErrInvalidRentalDays
	}
	l.rentalDays = &days
	l.updatedAt = now
	return nil
}

func (l *Line) SubtotalCents() int64 {
	return SubtotalCents(l.unitPriceCents, l.quantity, l.kind, l.rentalDays)
}

func (l *Line) ID() uuid.UUID         { return l.id }
func (l *Line) CartID() uuid.UUID     { return l.cartID }
func (l *Line) ProductID() uuid.UUID  { return l.productID }
func (l *Line) Kind() Kind            { return l.kind }
func (l *Line) Quantity() int32       { return l.quantity }
func (l *Line) UnitPriceCents() int64 { return l.unitPriceCents }
func (l *Line) RentalDays() *int32    { return l.rentalDays }
func (l *Line) AddedAt() time.Time    { return l.addedAt }
func (l *Line) UpdatedAt() time.Time  { return l.updatedAt }
