package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labstock-api/internal/application/dto"
	"github.com/jhoicas/labstock-api/internal/application/inventory"
)

// ItemHandler covers the stock item lifecycle outside transfers.
type ItemHandler struct {
	uc *inventory.UseCase
}

// NewItemHandler builds the handler.
func NewItemHandler(uc *inventory.UseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Add a stock item to a lab
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddItemRequest  true  "name, registry_number, quantity, unit, minimum_quantity, location, lab_id"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	item, err := h.uc.AddItem(c.Context(), inventory.AddItemInput{
		Name:            in.Name,
		RegistryNumber:  in.RegistryNumber,
		Quantity:        in.Quantity,
		Unit:            in.Unit,
		MinimumQuantity: in.MinimumQuantity,
		Location:        in.Location,
		Notes:           in.Notes,
		LabID:           in.LabID,
		ActorID:         GetUserID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToItemResponse(item))
}

// GetByID godoc
// @Summary      Get one stock item
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToItemResponse(item))
}

// Update godoc
// @Summary      Edit a stock item (version-conditional)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EditItemRequest  true  "full record plus the version last read"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stale version"
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.EditItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	item, err := h.uc.EditItem(c.Context(), inventory.EditItemInput{
		ItemID:          c.Params("id"),
		ExpectedVersion: in.Version,
		Name:            in.Name,
		RegistryNumber:  in.RegistryNumber,
		Quantity:        in.Quantity,
		Unit:            in.Unit,
		MinimumQuantity: in.MinimumQuantity,
		Location:        in.Location,
		Notes:           in.Notes,
		ActorID:         GetUserID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToItemResponse(item))
}

// Delete godoc
// @Summary      Delete a stock item (admin, version-conditional)
// @Tags         items
// @Security     Bearer
// @Param        version  query  int  true  "version last read"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "stale version"
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	version := c.QueryInt("version", -1)
	if version < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "version query parameter is required"})
	}
	if err := h.uc.DeleteItem(c.Context(), c.Params("id"), int64(version), GetUserID(c)); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByLab godoc
// @Summary      List a lab's items
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "page size (default 50, max 100)"
// @Param        offset  query  int  false  "page offset"
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/labs/{id}/items [get]
func (h *ItemHandler) ListByLab(c *fiber.Ctx) error {
	items, err := h.uc.ListByLab(c.Context(), c.Params("id"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ToItemResponse(it))
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// Search godoc
// @Summary      Search items by name or registry number
// @Description  Matching is case- and diacritic-insensitive.
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  true   "search text"
// @Param        lab_id  query  string  false  "narrow to one lab"
// @Success      200  {array}   dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items/search [get]
func (h *ItemHandler) Search(c *fiber.Ctx) error {
	items, err := h.uc.Search(c.Context(), c.Query("q"), c.Query("lab_id"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ToItemResponse(it))
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}
