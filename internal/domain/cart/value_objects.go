package cart

import "errors"

var (
	ErrInvalidKind          = errors.New("invalid transaction kind")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrRentalDaysRequired   = errors.New("rental days required for rent lines")
	ErrRentalDaysNotAllowed = errors.New("rental days not allowed for buy lines")
	ErrInvalidRentalDays    = errors.New("rental days out of range")
)

// Kind distinguishes purchase lines from rental lines. It is part of the
// merge key: a buy and a rent of the same product never collapse into one row.
type Kind string

const (
	KindBuy  Kind = "buy"
	KindRent Kind = "rent"
)

func NewKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindBuy, KindRent:
		return Kind(s), nil
	}
	return "", ErrInvalidKind
}

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsRent() bool {
	return k == KindRent
}

// SubtotalCents is the single source of truth for line subtotals:
// unit price x quantity x rental days (days = 1 for buy lines).
// It is recomputed on every read and write instead of being stored, so the
// value can never drift from the line it belongs to.
func SubtotalCents(unitPriceCents int64, quantity int32, kind Kind, rentalDays *int32) int64 {
	days := int64(1)
	if kind.IsRent() && rentalDays != nil {
		days = int64(*rentalDays)
	}
	return unitPriceCents * int64(quantity) * days
}
