package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafe-feedback/internal/api/dto"
	"github.com/spec-kit/cafe-feedback/internal/domain"
	"github.com/spec-kit/cafe-feedback/internal/service"
)

// FeedbackHandler exposes the submission endpoint.
type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

// NewFeedbackHandler constructs handler.
func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// Submit handles POST /feedback.
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var req dto.FeedbackSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.feedbackService.Submit(c.Context(), service.SubmissionInput{
		EmployeeID: req.EmployeeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		OrderCode:  req.OrderCode,
		Source:     req.Source,
		Device:     req.Device,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FeedbackSubmitResponse{
		Record:          recordResponse(result.Record),
		Relayed:         result.Relayed,
		Notice:          result.Notice,
		NoticeTTLMillis: result.NoticeTTLMillis,
	}})
}

func recordResponse(record domain.FeedbackRecord) dto.FeedbackRecordResponse {
	return dto.FeedbackRecordResponse{
		Timestamp:  record.Timestamp,
		EmployeeID: record.EmployeeID,
		Rating:     record.Rating,
		Comment:    record.Comment,
		OrderCode:  record.OrderCode,
		Source:     record.Source,
		Device:     record.Device,
	}
}
