package order

import (
	"time"

	"github.com/google/uuid"
)

// RentalOrder is the rental side of a checkout. Its lines carry the physical
// asset assignment filled in by the staff preparation step.
type RentalOrder struct {
	id                uuid.UUID
	customerID        uuid.UUID
	number            string
	rentalDate        time.Time
	dueDate           time.Time
	returnDate        *time.Time
	status            RentalStatus
	totalDueCents     int64
	deliveryAddressID uuid.UUID
	paymentMethod     string
	modifiedAt        time.Time
	lines             []RentalLine
}

type RentalLine struct {
	ID              uuid.UUID
	ProductID       uuid.UUID
	Quantity        int32
	UnitPriceCents  int64
	RentalDays      int32
	AssignedAssetID *string
	ConditionNotes  *string
	EvidencePhotos  []string
}

func NewRentalOrder(
	customerID, deliveryAddressID uuid.UUID,
	number string,
	paymentMethod string,
	totalDueCents int64,
	dueDate time.Time,
	lines []RentalLine,
	now time.Time,
) *RentalOrder {
	return &RentalOrder{
		id:                uuid.New(),
		customerID:        customerID,
		number:            number,
		rentalDate:        now,
		dueDate:           dueDate,
		status:            RentalActive,
		totalDueCents:     totalDueCents,
		deliveryAddressID: deliveryAddressID,
		paymentMethod:     paymentMethod,
		modifiedAt:        now,
		lines:             lines,
	}
}

func ReconstructRentalOrder(
	id, customerID, deliveryAddressID uuid.UUID,
	number string,
	rentalDate, dueDate time.Time,
	returnDate *time.Time,
	status RentalStatus,
	totalDueCents int64,
	paymentMethod string,
	modifiedAt time.Time,
	lines []RentalLine,
) *RentalOrder {
	return &RentalOrder{
		id:                id,
		customerID:        customerID,
		number:            number,
		rentalDate:        rentalDate,
		dueDate:           dueDate,
		returnDate:        returnDate,
		status:            status,
		totalDueCents:     totalDueCents,
		deliveryAddressID: deliveryAddressID,
		paymentMethod:     paymentMethod,
		modifiedAt:        modifiedAt,
		lines:             lines,
	}
}

// SetStatus applies a staff-driven transition to an allow-listed status.
// Returned stamps the return date once, only if unset.
func (o *RentalOrder) SetStatus(status RentalStatus, now time.Time) {
	o.status = status
	if status == RentalReturned && o.returnDate == nil {
		o.returnDate = &now
	}
	o.modifiedAt = now
}

// RequestCancellation is the customer asking out before the rental runs.
func (o *RentalOrder) RequestCancellation(now time.Time) error {
	if o.status != RentalActive && o.status != RentalConfirmed {
		return ErrInvalidState
	}
	o.status = RentalCancelRequested
	o.modifiedAt = now
	return nil
}

// RequestReturn is the customer handing the asset back mid-rental.
func (o *RentalOrder) RequestReturn(now time.Time) error {
	switch o.status {
	case RentalConfirmed, RentalPreparing, RentalDelivered, RentalOverdue:
		o.status = RentalReturnRequested
		o.modifiedAt = now
		return nil
	}
	return ErrInvalidState
}

// ReviewRequest resolves a pending customer request. The transition table is
// closed: Cancel Requested and Return Requested are the only states with a
// pending request, and each decision lands in exactly one documented state.
func (o *RentalOrder) ReviewRequest(decision Decision, now time.Time) error {
	switch o.status {
	case RentalCancelRequested:
		if decision == DecisionAccept {
			o.status = RentalCancelled
		} else {
			o.status = RentalConfirmed
		}
	case RentalReturnRequested:
		if decision == DecisionAccept {
			o.status = RentalReturned
			if o.returnDate == nil {
				o.returnDate = &now
			}
		} else {
			o.status = RentalConfirmed
		}
	default:
		return ErrNoPendingRequest
	}
	o.modifiedAt = now
	return nil
}

// PrepareLine assigns a physical asset to a line before handover. Despite the
// update-shaped payload this is a state transition: it is legal only while the
// order is Confirmed or Preparing, and a Confirmed order auto-advances to
// Preparing on the first prepared line.
func (o *RentalOrder) PrepareLine(lineID uuid.UUID, assetID string, conditionNotes *string, evidencePhotos []string, now time.Time) error {
	if o.status != RentalConfirmed && o.status != RentalPreparing {
		return ErrInvalidState
	}

	var line *RentalLine
	for i := range o.lines {
		if o.lines[i].ID == lineID {
			line = &o.lines[i]
			break
		}
	}
	if line == nil {
		return ErrInvalidState
	}

	line.AssignedAssetID = &assetID
	if conditionNotes != nil {
		line.ConditionNotes = conditionNotes
	}
	if len(evidencePhotos) > 0 {
		line.EvidencePhotos = evidencePhotos
	}

	if o.status == RentalConfirmed {
		o.status = RentalPreparing
	}
	o.modifiedAt = now
	return nil
}

// IsPastDue reports whether an order still out in the field has blown its due
// date; the overdue sweeper flips those to Overdue.
func (o *RentalOrder) IsPastDue(now time.Time) bool {
	switch o.status {
	case RentalActive, RentalConfirmed, RentalPreparing, RentalDelivered:
		return now.After(o.dueDate)
	}
	return false
}

func (o *RentalOrder) ID() uuid.UUID                { return o.id }
func (o *RentalOrder) CustomerID() uuid.UUID        { return o.customerID }
func (o *RentalOrder) Number() string               { return o.number }
func (o *RentalOrder) RentalDate() time.Time        { return o.rentalDate }
func (o *RentalOrder) DueDate() time.Time           { return o.dueDate }
func (o *RentalOrder) ReturnDate() *time.Time       { return o.returnDate }
func (o *RentalOrder) Status() RentalStatus         { return o.status }
func (o *RentalOrder) TotalDueCents() int64         { return o.totalDueCents }
func (o *RentalOrder) DeliveryAddressID() uuid.UUID { return o.deliveryAddressID }
func (o *RentalOrder) PaymentMethod() string        { return o.paymentMethod }
func (o *RentalOrder) ModifiedAt() time.Time        { return o.modifiedAt }
func (o *RentalOrder) Lines() []RentalLine          { return o.lines }
