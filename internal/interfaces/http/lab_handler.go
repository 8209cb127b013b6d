package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labstock-api/internal/application/dto"
	"github.com/jhoicas/labstock-api/internal/domain"
	"github.com/jhoicas/labstock-api/internal/domain/entity"
	"github.com/jhoicas/labstock-api/internal/domain/repository"
	"github.com/jhoicas/labstock-api/internal/domain/validation"
)

// LabHandler covers laboratory listing and creation. Labs are small and
// mostly static, so the handler talks to the repository directly.
type LabHandler struct {
	labRepo repository.LabRepository
}

// NewLabHandler builds the handler.
func NewLabHandler(labRepo repository.LabRepository) *LabHandler {
	return &LabHandler{labRepo: labRepo}
}

// List godoc
// @Summary      List all labs
// @Tags         labs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LabResponse
// @Router       /api/labs [get]
func (h *LabHandler) List(c *fiber.Ctx) error {
	labs, err := h.labRepo.List()
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.LabResponse, 0, len(labs))
	for _, lab := range labs {
		out = append(out, dto.ToLabResponse(lab))
	}
	return c.JSON(out)
}

// GetByCode godoc
// @Summary      Get one lab by code
// @Tags         labs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LabResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/labs/code/{code} [get]
func (h *LabHandler) GetByCode(c *fiber.Ctx) error {
	lab, err := h.labRepo.GetByCode(c.Params("code"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if lab == nil {
		return writeDomainError(c, domain.ErrNotFound)
	}
	return c.JSON(dto.ToLabResponse(lab))
}

// Create godoc
// @Summary      Create a lab (admin)
// @Tags         labs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLabRequest  true  "code, name, max_cabinets"
// @Success      201   {object}  dto.LabResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/labs [post]
func (h *LabHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLabRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if errs := validation.Lab(validation.LabInput{Code: in.Code, Name: in.Name, MaxCabinets: in.MaxCabinets}); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: errs.Error()})
	}
	lab := &entity.Lab{
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		MaxCabinets: in.MaxCabinets,
	}
	if err := h.labRepo.Create(lab); err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToLabResponse(lab))
}
