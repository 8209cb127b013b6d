package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labstock-api/internal/application/audit"
	"github.com/jhoicas/labstock-api/internal/application/dto"
	"github.com/jhoicas/labstock-api/internal/domain/repository"
)

// AuditHandler serves the read side of the immutable history.
type AuditHandler struct {
	uc *audit.UseCase
}

// NewAuditHandler builds the handler.
func NewAuditHandler(uc *audit.UseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// ListTransfers godoc
// @Summary      Transfer history, newest first
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "filter by item"
// @Param        lab_id      query  string  false  "filter by source or destination lab"
// @Param        from        query  string  false  "RFC 3339 lower bound"
// @Param        to          query  string  false  "RFC 3339 upper bound"
// @Success      200  {array}   dto.TransferRecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/history/transfers [get]
func (h *AuditHandler) ListTransfers(c *fiber.Ctx) error {
	from, to, ok := parseTimeRange(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to must be RFC 3339 timestamps"})
	}
	records, err := h.uc.ListTransfers(c.Context(), repository.TransferFilter{
		ProductID: c.Query("product_id"),
		LabID:     c.Query("lab_id"),
		From:      from,
		To:        to,
	}, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.TransferRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.ToTransferRecordResponse(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "transfers": out})
}

// ListActions godoc
// @Summary      User action trail, newest first
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        actor_id     query  string  false  "filter by user"
// @Param        product_id   query  string  false  "filter by item"
// @Param        lab_id       query  string  false  "filter by lab"
// @Param        action_type  query  string  false  "add | edit | delete | transfer"
// @Success      200  {array}   dto.ActionRecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/history/actions [get]
func (h *AuditHandler) ListActions(c *fiber.Ctx) error {
	from, to, ok := parseTimeRange(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to must be RFC 3339 timestamps"})
	}
	records, err := h.uc.ListActions(c.Context(), repository.ActionFilter{
		ActorID:    c.Query("actor_id"),
		ProductID:  c.Query("product_id"),
		LabID:      c.Query("lab_id"),
		ActionType: c.Query("action_type"),
		From:       from,
		To:         to,
	}, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.ActionRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.ToActionRecordResponse(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "actions": out})
}

// parseTimeRange reads optional from/to query params as RFC 3339.
func parseTimeRange(c *fiber.Ctx) (from, to *time.Time, ok bool) {
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, false
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, false
		}
		to = &t
	}
	return from, to, true
}
