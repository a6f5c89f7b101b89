package handlers

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-mocker/internal/models"
	"alfredoptarigan/resume-mocker/internal/services"
)

type RoastHandler struct {
	roastService services.RoastService
	maxFileSize  int64
}

func NewRoastHandler(roastService services.RoastService, maxFileSize int64) *RoastHandler {
	return &RoastHandler{
		roastService: roastService,
		maxFileSize:  maxFileSize,
	}
}

// HandleRoast handles POST /roast
func (h *RoastHandler) HandleRoast(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Please upload a resume file in the 'file' field.",
			Code:  string(services.KindInvalidFile),
		})
	}

	intensity, err := parseIntensity(c.FormValue("intensity"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: services.UserMessage(services.ErrInvalidIntensity),
			Code:  string(services.KindInvalidIntensity),
		})
	}

	upload, err := services.ReadMultipartFile(fileHeader, h.maxFileSize)
	if err != nil {
		return writeRoastError(c, err, "")
	}

	outcome, err := h.roastService.RequestRoast(c.UserContext(), upload, intensity)
	if err != nil {
		attemptID := ""
		if outcome != nil {
			attemptID = outcome.AttemptID.String()
		}
		return writeRoastError(c, err, attemptID)
	}

	return c.JSON(models.RoastResponse{
		AttemptID:      outcome.AttemptID.String(),
		Intensity:      outcome.Intensity,
		IntensityLabel: models.IntensityLabel(outcome.Intensity),
		ScoreBand:      models.ScoreBandFor(outcome.Result.MockScore),
		Result:         outcome.Result,
	})
}

func parseIntensity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.DefaultIntensity, nil
	}
	return strconv.Atoi(raw)
}

func writeRoastError(c *fiber.Ctx, err error, attemptID string) error {
	status := StatusForError(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("❌ Unexpected roast error: %v", err)
	}

	return c.Status(status).JSON(models.ErrorResponse{
		Error:     services.UserMessage(err),
		Code:      string(services.KindOf(err)),
		AttemptID: attemptID,
	})
}

// StatusForError maps a roast failure onto an HTTP status.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrUnsupportedFileType):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, services.ErrInvalidFile), errors.Is(err, services.ErrInvalidIntensity):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrMissingCredential):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, services.ErrRequestTimeout):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, services.ErrServiceCallFailed), errors.Is(err, services.ErrMalformedResponse):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
