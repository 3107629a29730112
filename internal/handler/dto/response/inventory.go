package response

import (
	"velostore/internal/usecase/queries"

	"github.com/google/uuid"
)

type AvailabilityResponse struct {
	ProductID     uuid.UUID `json:"productId"`
	TotalPhysical int32     `json:"totalPhysical"`
	Maintenance   int32     `json:"maintenance"`
	Renting       int32     `json:"renting"`
	Available     int32     `json:"available"`
}

func FromAvailabilityView(view *queries.AvailabilityView) *AvailabilityResponse {
	return &AvailabilityResponse{
		ProductID:     view.ProductID,
		TotalPhysical: view.TotalPhysical,
		Maintenance:   view.Maintenance,
		Renting:       view.Renting,
		Available:     view.Available,
	}
}
