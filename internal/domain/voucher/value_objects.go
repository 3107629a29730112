package voucher

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidCode            = errors.New("invalid voucher code format")
	ErrInvalidScope           = errors.New("invalid voucher scope")
	ErrInvalidDiscountAmount  = errors.New("discount amount cannot be negative")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
	ErrAmbiguousDiscount      = errors.New("discount must be either a percentage or a fixed amount, not both")
	ErrMissingDiscount        = errors.New("discount must have either a percentage or a fixed amount")
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

// Code is case-normalized to upper case; lookups are case-insensitive.
type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !codeRegex.MatchString(code) {
		return Code(""), ErrInvalidCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

// Scope is the order category a voucher may discount.
type Scope string

const (
	ScopeBuy  Scope = "buy"
	ScopeRent Scope = "rent"
	ScopeAll  Scope = "all"
)

func NewScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(s)) {
	case ScopeBuy, ScopeRent, ScopeAll:
		return Scope(strings.ToLower(s)), nil
	}
	return "", ErrInvalidScope
}

func (s Scope) String() string {
	return string(s)
}

// Covers reports whether a voucher with this scope may discount an order of
// the requested scope. `all` covers everything.
func (s Scope) Covers(requested Scope) bool {
	return s == ScopeAll || s == requested
}

// Discount is a percentage (0-100, whole percent) or a fixed amount in cents,
// never both. Setting one clears the other by construction.
type Discount struct {
	percent     *int32
	amountCents *int64
}

func NewPercentageDiscount(percent int32) (Discount, error) {
	if percent < 0 || percent > 100 {
		return Discount{}, ErrInvalidDiscountPercent
	}
	return Discount{percent: &percent}, nil
}

func NewFixedDiscount(amountCents int64) (Discount, error) {
	if amountCents < 0 {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{amountCents: &amountCents}, nil
}

func NewDiscount(percent *int32, amountCents *int64) (Discount, error) {
	if percent != nil && amountCents != nil {
		return Discount{}, ErrAmbiguousDiscount
	}
	if percent == nil && amountCents == nil {
		return Discount{}, ErrMissingDiscount
	}
	if percent != nil {
		return NewPercentageDiscount(*percent)
	}
	return NewFixedDiscount(*amountCents)
}

func (d Discount) IsPercentage() bool {
	return d.percent != nil
}

func (d Discount) Percent() int32 {
	if d.percent != nil {
		return *d.percent
	}
	return 0
}

func (d Discount) AmountCents() int64 {
	if d.amountCents != nil {
		return *d.amountCents
	}
	return 0
}

// AmountFor computes the discount for a subtotal, capped at the subtotal so
// the resulting total can never go negative.
func (d Discount) AmountFor(subtotalCents int64) int64 {
	if subtotalCents <= 0 {
		return 0
	}
	var amount int64
	if d.IsPercentage() {
		amount = subtotalCents * int64(d.Percent()) / 100
	} else {
		amount = d.AmountCents()
	}
	if amount > subtotalCents {
		return subtotalCents
	}
	return amount
}
