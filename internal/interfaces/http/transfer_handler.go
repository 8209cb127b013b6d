package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labstock-api/internal/application/dto"
	"github.com/jhoicas/labstock-api/internal/application/transfer"
)

// TransferHandler exposes the transfer engine.
type TransferHandler struct {
	uc *transfer.UseCase
}

// NewTransferHandler builds the handler.
func NewTransferHandler(uc *transfer.UseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Transfer godoc
// @Summary      Move quantity between labs
// @Description  Decrements the source item and increments (or creates) the
// @Description  matching item in the destination lab, atomically. A 409 means
// @Description  a concurrent writer touched a row; re-read and retry.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "source_item_id, destination_lab_id, quantity"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	res, err := h.uc.Transfer(c.Context(), transfer.Input{
		SourceItemID:     in.SourceItemID,
		DestinationLabID: in.DestinationLabID,
		Quantity:         in.Quantity,
		ActorID:          GetUserID(c),
		Notes:            in.Notes,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.TransferResponse{
		Source:      dto.ToItemResponse(res.Source),
		Destination: dto.ToItemResponse(res.Destination),
		Created:     res.Created,
	})
}
