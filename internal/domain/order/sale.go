package order

import (
	"time"

	"github.com/google/uuid"
)

// SaleOrder is the purchase side of a checkout. It is created once and then
// mutated only through status transitions; cancellation is a status value,
// never a row deletion.
type SaleOrder struct {
	id                     uuid.UUID
	customerID             uuid.UUID
	number                 string
	orderDate              time.Time
	status                 SaleStatus
	freightCents           int64
	totalDueCents          int64
	shipAddressID          uuid.UUID
	paymentMethod          string
	note                   *string
	cancellationRequestedAt *time.Time
	cancellationReason     *string
	modifiedAt             time.Time
	lines                  []SaleLine
}

// SaleLine copies quantity and the cart line's stored unit price at checkout;
// both are immutable afterwards.
type SaleLine struct {
	ID             uuid.UUID
	ProductID      uuid.UUID
	Quantity       int32
	UnitPriceCents int64
}

func NewSaleOrder(
	customerID, shipAddressID uuid.UUID,
	number string,
	paymentMethod string,
	note *string,
	totalDueCents int64,
	lines []SaleLine,
	now time.Time,
) *SaleOrder {
	return &SaleOrder{
		id:            uuid.New(),
		customerID:    customerID,
		number:        number,
		orderDate:     now,
		status:        SalePending,
		freightCents:  0, // freight computation belongs to an external collaborator
		totalDueCents: totalDueCents,
		shipAddressID: shipAddressID,
		paymentMethod: paymentMethod,
		note:          note,
		modifiedAt:    now,
		lines:         lines,
	}
}

func ReconstructSaleOrder(
	id, customerID, shipAddressID uuid.UUID,
	number string,
	orderDate time.Time,
	status SaleStatus,
	freightCents, totalDueCents int64,
	paymentMethod string,
	note *string,
	cancellationRequestedAt *time.Time,
	cancellationReason *string,
	modifiedAt time.Time,
	lines []SaleLine,
) *SaleOrder {
	return &SaleOrder{
		id:                      id,
		customerID:              customerID,
		number:                  number,
		orderDate:               orderDate,
		status:                  status,
		freightCents:            freightCents,
		totalDueCents:           totalDueCents,
		shipAddressID:           shipAddressID,
		paymentMethod:           paymentMethod,
		note:                    note,
		cancellationRequestedAt: cancellationRequestedAt,
		cancellationReason:      cancellationReason,
		modifiedAt:              modifiedAt,
		lines:                   lines,
	}
}

// SetStatus applies a staff-driven transition. Input is validated against the
// allow-list (case-insensitive) by the caller via NormalizeSaleStatus; here
// the canonical value is recorded.
func (o *SaleOrder) SetStatus(status SaleStatus, now time.Time) {
	o.status = status
	o.modifiedAt = now
}

// RequestCancellation records the customer's request as metadata next to the
// status, matching the review workflow that keys on it. Only orders that have
// not shipped can ask.
func (o *SaleOrder) RequestCancellation(reason string, now time.Time) error {
	if o.status != SalePending && o.status != SaleConfirmed {
		return ErrInvalidState
	}
	o.status = SaleCancelRequested
	o.cancellationRequestedAt = &now
	o.cancellationReason = &reason
	o.modifiedAt = now
	return nil
}

// HasPendingRequest mirrors the source system: either the metadata or the
// status marks a request as open.
func (o *SaleOrder) HasPendingRequest() bool {
	return o.cancellationRequestedAt != nil || o.status == SaleCancelRequested
}

// ReviewCancellation resolves a pending cancellation request.
// accept -> Cancelled; decline -> Confirmed and the request metadata is
// cleared so the order rejoins the normal flow.
func (o *SaleOrder) ReviewCancellation(decision Decision, now time.Time) error {
	if !o.HasPendingRequest() {
		return ErrNoPendingRequest
	}
	if decision == DecisionAccept {
		o.status = SaleCancelled
	} else {
		o.status = SaleConfirmed
		o.cancellationRequestedAt = nil
		o.cancellationReason = nil
	}
	o.modifiedAt = now
	return nil
}

func (o *SaleOrder) ID() uuid.UUID                      { return o.id }
func (o *SaleOrder) CustomerID() uuid.UUID              { return o.customerID }
func (o *SaleOrder) Number() string                     { return o.number }
func (o *SaleOrder) OrderDate() time.Time               { return o.orderDate }
func (o *SaleOrder) Status() SaleStatus                 { return o.status }
func (o *SaleOrder) FreightCents() int64                { return o.freightCents }
func (o *SaleOrder) TotalDueCents() int64               { return o.totalDueCents }
func (o *SaleOrder) ShipAddressID() uuid.UUID           { return o.shipAddressID }
func (o *SaleOrder) PaymentMethod() string              { return o.paymentMethod }
func (o *SaleOrder) Note() *string                      { return o.note }
func (o *SaleOrder) CancellationRequestedAt() *time.Time { return o.cancellationRequestedAt }
func (o *SaleOrder) CancellationReason() *string        { return o.cancellationReason }
func (o *SaleOrder) ModifiedAt() time.Time              { return o.modifiedAt }
func (o *SaleOrder) Lines() []SaleLine                  { return o.lines }
