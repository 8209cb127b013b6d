package dto

import "github.com/jhoicas/labstock-api/internal/domain/entity"

// CreateLabRequest is the payload for creating a laboratory (admin only).
type CreateLabRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	MaxCabinets int    `json:"max_cabinets"`
}

// LabResponse is the public view of a laboratory.
type LabResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	MaxCabinets int    `json:"max_cabinets"`
}

// ToLabResponse maps an entity to its public view.
func ToLabResponse(lab *entity.Lab) LabResponse {
	return LabResponse{
		ID:          lab.ID,
		Code:        lab.Code,
		Name:        lab.Name,
		Description: lab.Description,
		Location:    lab.Location,
		MaxCabinets: lab.MaxCabinets,
	}
}
