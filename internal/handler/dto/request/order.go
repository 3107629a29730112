package request

import (
	"velostore/internal/usecase/commands"

	"github.com/google/uuid"
)

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ReviewRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accept decline"`
}

type CancellationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type PrepareRentalItemRequest struct {
	LineID         uuid.UUID `json:"line_id" binding:"required"`
	AssetID        string    `json:"asset_id" binding:"required"`
	ConditionNotes *string   `json:"condition_notes,omitempty"`
	EvidencePhotos []string  `json:"evidence_photos,omitempty"`
}

func (r PrepareRentalItemRequest) ToCommand() commands.PrepareRentalItemRequest {
	return commands.PrepareRentalItemRequest{
		LineID:         r.LineID,
		AssetID:        r.AssetID,
		ConditionNotes: r.ConditionNotes,
		EvidencePhotos: r.EvidencePhotos,
	}
}
