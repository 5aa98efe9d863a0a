package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/peakform/AthleteHubBack/internal/services"
)

type paymentProcessor interface {
	Process(ctx context.Context, input services.PaymentInput) (*services.PaymentReceipt, error)
}

type PaymentHandler struct {
	paymentService paymentProcessor
}

func NewPaymentHandler(paymentService paymentProcessor) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type paymentRequest struct {
	CardNumber string  `json:"card_number"`
	Expiry     string  `json:"expiry"`
	CVC        string  `json:"cvc"`
	HolderName string  `json:"holder_name"`
	Amount     float64 `json:"amount"`
}

// Simulate runs the fake card charge. No money moves; the receipt exists so
// the frontend payment flow has something real to render.
func (h *PaymentHandler) Simulate(c *fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	receipt, err := h.paymentService.Process(c.Context(), services.PaymentInput{
		CardNumber: req.CardNumber,
		Expiry:     req.Expiry,
		CVC:        req.CVC,
		HolderName: req.HolderName,
		Amount:     req.Amount,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment details"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment failed"})
	}

	return c.JSON(fiber.Map{"receipt": receipt})
}
