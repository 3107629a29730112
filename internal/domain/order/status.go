package order

import (
	"errors"
	"strings"
)

var (
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrInvalidDecision  = errors.New("decision must be accept or decline")
	ErrNoPendingRequest = errors.New("order has no pending request")
	ErrInvalidState     = errors.New("operation not allowed in current order state")
)

// Decision is a staff verdict on a customer's cancellation or return request.
type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionDecline Decision = "decline"
)

func NewDecision(s string) (Decision, error) {
	switch Decision(strings.ToLower(s)) {
	case DecisionAccept, DecisionDecline:
		return Decision(strings.ToLower(s)), nil
	}
	return "", ErrInvalidDecision
}

// SaleStatus is the sale order lifecycle value. The canonical casing below is
// what gets persisted and serialized; SetStatus input is matched
// case-insensitively.
type SaleStatus string

const (
	SalePending         SaleStatus = "Pending"
	SaleConfirmed       SaleStatus = "Confirmed"
	SalePreparing       SaleStatus = "Preparing"
	SaleShipped         SaleStatus = "Shipped"
	SaleDelivered       SaleStatus = "Delivered"
	SaleCancelled       SaleStatus = "Cancelled"
	SaleCancelRequested SaleStatus = "Cancel Requested"
	SaleReturned        SaleStatus = "Returned"
	SaleReturnRequested SaleStatus = "Return Requested"
)

var saleStatuses = []SaleStatus{
	SalePending, SaleConfirmed, SalePreparing, SaleShipped, SaleDelivered,
	SaleCancelled, SaleCancelRequested, SaleReturned, SaleReturnRequested,
}

// NormalizeSaleStatus maps any-cased input to its canonical form, rejecting
// values outside the allow-list.
func NormalizeSaleStatus(input string) (SaleStatus, error) {
	for _, s := range saleStatuses {
		if strings.EqualFold(string(s), input) {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

func (s SaleStatus) String() string {
	return string(s)
}

// RentalStatus normalizes the source system's mix of numeric lifecycle codes
// and string review sub-states into one enum. The canonical label is the
// persisted and serialized form; the legacy numeric codes exist only for wire
// compatibility via LegacyCode.
type RentalStatus string

const (
	RentalActive          RentalStatus = "Active"
	RentalCompleted       RentalStatus = "Completed"
	RentalOverdue         RentalStatus = "Overdue"
	RentalCancelled       RentalStatus = "Cancelled"
	RentalConfirmed       RentalStatus = "Confirmed"
	RentalPreparing       RentalStatus = "Preparing"
	RentalDelivered       RentalStatus = "Delivered"
	RentalCancelRequested RentalStatus = "Cancel Requested"
	RentalReturnRequested RentalStatus = "Return Requested"
	RentalReturned        RentalStatus = "Returned"
)

var rentalStatuses = []RentalStatus{
	RentalActive, RentalCompleted, RentalOverdue, RentalCancelled,
	RentalConfirmed, RentalPreparing, RentalDelivered,
	RentalCancelRequested, RentalReturnRequested, RentalReturned,
}

var rentalLegacyCodes = map[RentalStatus]int16{
	RentalActive:    1,
	RentalCompleted: 2,
	RentalOverdue:   3,
	RentalCancelled: 4,
}

func NormalizeRentalStatus(input string) (RentalStatus, error) {
	for _, s := range rentalStatuses {
		if strings.EqualFold(string(s), input) {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// RentalStatusFromLegacyCode accepts the source system's 1..4 codes.
func RentalStatusFromLegacyCode(code int16) (RentalStatus, error) {
	for s, c := range rentalLegacyCodes {
		if c == code {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

func (s RentalStatus) String() string {
	return string(s)
}

// LegacyCode returns the numeric lifecycle code, or 0 for the review
// sub-states that never had one.
func (s RentalStatus) LegacyCode() int16 {
	return rentalLegacyCodes[s]
}
