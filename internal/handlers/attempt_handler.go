package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-mocker/internal/repositories"
)

type AttemptHandler struct {
	attemptRepo repositories.AttemptRepository
}

func NewAttemptHandler(attemptRepo repositories.AttemptRepository) *AttemptHandler {
	return &AttemptHandler{
		attemptRepo: attemptRepo,
	}
}

// HandleGetAttempt handles GET /attempts/:id
func (h *AttemptHandler) HandleGetAttempt(c *fiber.Ctx) error {
	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid attempt ID format",
		})
	}

	attempt, err := h.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, repositories.ErrAttemptNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Attempt not found",
			})
		}
		return err
	}

	return c.JSON(attempt)
}
