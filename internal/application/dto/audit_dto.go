package dto

import (
	"time"

	"github.com/jhoicas/labstock-api/internal/domain/entity"
)

// TransferRecordResponse is one row of transfer history.
type TransferRecordResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	SourceLabID      string    `json:"source_lab_id"`
	DestinationLabID string    `json:"destination_lab_id"`
	Quantity         int64     `json:"quantity"`
	Notes            string    `json:"notes,omitempty"`
	ActorID          string    `json:"actor_id"`
	Timestamp        time.Time `json:"timestamp"`
}

// ActionRecordResponse is one row of the user action trail.
type ActionRecordResponse struct {
	ID            string    `json:"id"`
	ActorID       string    `json:"actor_id"`
	ActionType    string    `json:"action_type"`
	ProductID     string    `json:"product_id"`
	LabID         string    `json:"lab_id"`
	QuantityDelta int64     `json:"quantity_delta"`
	Notes         string    `json:"notes,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// ToTransferRecordResponse maps an entity to its public view.
func ToTransferRecordResponse(r *entity.TransferRecord) TransferRecordResponse {
	return TransferRecordResponse{
		ID:               r.ID,
		ProductID:        r.ProductID,
		SourceLabID:      r.SourceLabID,
		DestinationLabID: r.DestinationLabID,
		Quantity:         r.Quantity,
		Notes:            r.Notes,
		ActorID:          r.ActorID,
		Timestamp:        r.Timestamp,
	}
}

// ToActionRecordResponse maps an entity to its public view.
func ToActionRecordResponse(r *entity.ActionRecord) ActionRecordResponse {
	return ActionRecordResponse{
		ID:            r.ID,
		ActorID:       r.ActorID,
		ActionType:    r.ActionType,
		ProductID:     r.ProductID,
		LabID:         r.LabID,
		QuantityDelta: r.QuantityDelta,
		Notes:         r.Notes,
		Timestamp:     r.Timestamp,
	}
}
