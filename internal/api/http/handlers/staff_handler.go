package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafe-feedback/internal/api/dto"
	"github.com/spec-kit/cafe-feedback/internal/domain"
	"github.com/spec-kit/cafe-feedback/internal/service"
)

// StaffHandler exposes the roster endpoints.
type StaffHandler struct {
	rosterService *service.RosterService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(rosterService *service.RosterService) *StaffHandler {
	return &StaffHandler{rosterService: rosterService}
}

// List handles GET /staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	members := h.rosterService.List(c.Context(), c.Query("q"))
	resp := make([]dto.StaffResponse, 0, len(members))
	for i := range members {
		resp = append(resp, staffResponse(&members[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Import handles POST /staff/import. The upload is either a multipart
// "file" field or a raw text body, one unquoted name,role,avatarUrl
// row per line.
func (h *StaffHandler) Import(c *fiber.Ctx) error {
	contents, err := importContents(c)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid upload")
	}
	if contents == "" {
		return fiber.NewError(http.StatusBadRequest, "empty upload")
	}

	imported, err := h.rosterService.ImportFrom(c.Context(), contents)
	if err != nil {
		return err
	}

	resp := dto.RosterImportResponse{Added: len(imported)}
	for i := range imported {
		resp.Members = append(resp.Members, staffResponse(&imported[i]))
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": resp})
}

func importContents(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		// No multipart upload; fall back to the raw body.
		return string(c.Body()), nil
	}
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func staffResponse(member *domain.StaffMember) dto.StaffResponse {
	return dto.StaffResponse{
		ID:        member.ID,
		Name:      member.Name,
		Role:      member.Role,
		AvatarURL: member.AvatarURL,
	}
}
