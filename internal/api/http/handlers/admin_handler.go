package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafe-feedback/internal/api/dto"
	"github.com/spec-kit/cafe-feedback/internal/service"
)

// AdminHandler exposes the feedback listing and export surface. The
// /admin prefix is a routing convention carried over from the widget's
// #admin fragment, not an access control boundary.
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// List handles GET /admin/feedback.
func (h *AdminHandler) List(c *fiber.Ctx) error {
	records := h.adminService.Query(c.Context(), c.Query("q"))
	resp := make([]dto.EnrichedRecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, dto.EnrichedRecordResponse{
			FeedbackRecordResponse: recordResponse(r.FeedbackRecord),
			Employee:               r.Employee,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Export handles GET /admin/feedback/export, serving the filtered set
// as a date-stamped CSV download.
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	records := h.adminService.Query(c.Context(), c.Query("q"))
	csv := h.adminService.ExportCSV(records)

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+h.adminService.ExportFilename()+`"`)
	return c.Send(csv)
}
