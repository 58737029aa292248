package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitContact handles POST /api/contact. The message is persisted and
// queued for delivery; the response returns immediately with 202 and an
// id the owner can use to check delivery status.
func (s *Server) SubmitContact(c *fiber.Ctx) error {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.contactService.Submit(c.Context(), service.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"id":     msg.ID,
		"status": msg.Status,
	})
}

// GetContactStatus handles GET /api/contact/:id. Only the delivery
// state is exposed; the stored message stays private.
func (s *Server) GetContactStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	msg, err := s.contactService.Status(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"id":     msg.ID,
		"status": msg.Status,
	})
}
