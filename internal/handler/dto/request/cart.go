package request

import (
	"velostore/internal/usecase/commands"

	"github.com/google/uuid"
)

type AddCartItemRequest struct {
	ProductID  uuid.UUID `json:"product_id" binding:"required"`
	Kind       string    `json:"kind" binding:"required,oneof=buy rent"`
	Quantity   int32     `json:"quantity" binding:"required,gt=0"`
	RentalDays *int32    `json:"rental_days,omitempty"`
}

func (r AddCartItemRequest) ToCommand() commands.AddLineRequest {
	return commands.AddLineRequest{
		ProductID:  r.ProductID,
		Kind:       r.Kind,
		Quantity:   r.Quantity,
		RentalDays: r.RentalDays,
	}
}

// UpdateCartItemRequest leaves untouched whatever field is omitted.
type UpdateCartItemRequest struct {
	Quantity   *int32 `json:"quantity,omitempty" binding:"omitempty,gt=0"`
	RentalDays *int32 `json:"rental_days,omitempty" binding:"omitempty,gt=0"`
}

func (r UpdateCartItemRequest) ToCommand() commands.UpdateLineRequest {
	return commands.UpdateLineRequest{
		Quantity:   r.Quantity,
		RentalDays: r.RentalDays,
	}
}
