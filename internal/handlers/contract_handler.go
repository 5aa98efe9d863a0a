package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/peakform/AthleteHubBack/internal/models"
	"github.com/peakform/AthleteHubBack/internal/services"
)

type contractApplicationService interface {
	SignContract(ctx context.Context, actorID int64, role string, enrollmentID int64, signature string) (*models.Contract, error)
	ListContracts(ctx context.Context, status string) ([]models.Contract, error)
}

type ContractHandler struct {
	enrollmentService contractApplicationService
}

func NewContractHandler(enrollmentService contractApplicationService) *ContractHandler {
	return &ContractHandler{enrollmentService: enrollmentService}
}

type signContractRequest struct {
	EnrollmentID int64  `json:"enrollment_id"`
	Signature    string `json:"signature"`
}

func (h *ContractHandler) Sign(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req signContractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.EnrollmentID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid enrollment id"})
	}

	role, _ := currentRole(c)
	contract, err := h.enrollmentService.SignContract(c.Context(), userID, role, req.EnrollmentID, req.Signature)
	if err != nil {
		return mapContractError(c, err)
	}

	return c.JSON(fiber.Map{"contract": contract})
}

func (h *ContractHandler) List(c *fiber.Ctx) error {
	contracts, err := h.enrollmentService.ListContracts(c.Context(), c.Query("status"))
	if err != nil {
		return mapContractError(c, err)
	}
	return c.JSON(fiber.Map{"contracts": contracts})
}

func mapContractError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrAlreadySigned):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Contract is already signed"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Contract not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process contract request"})
	}
}
