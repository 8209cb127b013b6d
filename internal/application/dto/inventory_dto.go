package dto

import (
	"time"

	"github.com/jhoicas/labstock-api/internal/domain/entity"
	"github.com/jhoicas/labstock-api/internal/domain/location"
	"github.com/jhoicas/labstock-api/internal/domain/stocklevel"
)

// AddItemRequest is the payload for creating a stock item. Location uses the
// wire encoding ("workspace" or "cabinet-<n>-<upper|lower>").
type AddItemRequest struct {
	Name            string `json:"name"`
	RegistryNumber  string `json:"registry_number"`
	Quantity        int64  `json:"quantity"`
	Unit            string `json:"unit"`
	MinimumQuantity int64  `json:"minimum_quantity"`
	Location        string `json:"location"`
	Notes           string `json:"notes"`
	LabID           string `json:"lab_id"`
}

// EditItemRequest is the payload for a full-record edit. Version must be the
// version the client last read; a stale version is rejected with 409.
type EditItemRequest struct {
	Version         int64  `json:"version"`
	Name            string `json:"name"`
	RegistryNumber  string `json:"registry_number"`
	Quantity        int64  `json:"quantity"`
	Unit            string `json:"unit"`
	MinimumQuantity int64  `json:"minimum_quantity"`
	Location        string `json:"location"`
	Notes           string `json:"notes"`
}

// TransferRequest is the payload for moving quantity between labs.
type TransferRequest struct {
	SourceItemID     string `json:"source_item_id"`
	DestinationLabID string `json:"destination_lab_id"`
	Quantity         int64  `json:"quantity"`
	Notes            string `json:"notes"`
}

// ItemResponse is the public view of a stock item.
type ItemResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	RegistryNumber  string           `json:"registry_number"`
	Quantity        int64            `json:"quantity"`
	Unit            string           `json:"unit"`
	MinimumQuantity int64            `json:"minimum_quantity"`
	Location        string           `json:"location"`
	Notes           string           `json:"notes,omitempty"`
	LabID           string           `json:"lab_id"`
	Version         int64            `json:"version"`
	StockLevel      stocklevel.Level `json:"stock_level"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// TransferResponse is the post-transfer state of both rows.
type TransferResponse struct {
	Source      ItemResponse `json:"source"`
	Destination ItemResponse `json:"destination"`
	Created     bool         `json:"destination_created"`
}

// ToItemResponse maps an entity to its public view.
func ToItemResponse(it *entity.StockItem) ItemResponse {
	return ItemResponse{
		ID:              it.ID,
		Name:            it.Name,
		RegistryNumber:  it.RegistryNumber,
		Quantity:        it.Quantity,
		Unit:            it.Unit,
		MinimumQuantity: it.MinimumQuantity,
		Location:        location.Of(it).String(),
		Notes:           it.Notes,
		LabID:           it.LabID,
		Version:         it.Version,
		StockLevel:      stocklevel.Evaluate(it.Quantity, it.MinimumQuantity),
		UpdatedAt:       it.UpdatedAt,
	}
}
