package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/peakform/AthleteHubBack/internal/services"
)

const maxLogoSizeBytes = 2 * 1024 * 1024

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) GetLogo(c *fiber.Ctx) error {
	url, err := h.settingsService.LogoURL(c.Context())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(fiber.Map{"logo_url": nil})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch logo"})
	}
	return c.JSON(fiber.Map{"logo_url": url})
}

func (h *SettingsHandler) UploadLogo(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "logo file is required"})
	}
	if fileHeader.Size <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "logo file is empty"})
	}
	if fileHeader.Size > maxLogoSizeBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "logo file exceeds 2MB limit"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open logo file"})
	}
	defer file.Close()

	url, err := h.settingsService.UploadLogo(c.Context(), file, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStorageUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).
				JSON(fiber.Map{"error": "Storage service is not configured"})
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid logo file"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload logo"})
		}
	}

	return c.JSON(fiber.Map{"logo_url": url})
}
