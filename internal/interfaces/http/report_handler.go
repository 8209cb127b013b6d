package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labstock-api/internal/application/reports"
)

// ReportHandler serves downloadable inventory reports.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Export godoc
// @Summary      Download a lab's inventory report
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        code    path   string  true   "lab code"
// @Param        format  query  string  false  "pdf (default) or xml"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/labs/{code} [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	labCode := c.Params("code")
	format := c.Query("format", reports.FormatPDF)

	data, contentType, err := h.uc.Export(c.Context(), labCode, format)
	if err != nil {
		return writeDomainError(c, err)
	}

	ext := "pdf"
	if format == reports.FormatSpreadsheet {
		ext = "xml"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="inventory-lab-%s.%s"`, labCode, ext))
	return c.Send(data)
}
