package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentService is a stand-in for a real gateway. It checks only card field
// shape, waits a fixed processing delay, and returns a fake receipt. Nothing
// else in the system reads the result; enrollment is deliberately not gated
// on it.
type PaymentService struct {
	processingDelay time.Duration
}

func NewPaymentService() *PaymentService {
	return &PaymentService{processingDelay: 2 * time.Second}
}

type PaymentInput struct {
	CardNumber string
	Expiry     string
	CVC        string
	HolderName string
	Amount     float64
}

type PaymentReceipt struct {
	ReceiptID   string    `json:"receipt_id"`
	CardLast4   string    `json:"card_last4"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	ProcessedAt time.Time `json:"processed_at"`
}

var nonDigits = regexp.MustCompile(`\D`)
var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)

func (s *PaymentService) Process(ctx context.Context, input PaymentInput) (*PaymentReceipt, error) {
	digits := nonDigits.ReplaceAllString(input.CardNumber, "")
	if len(digits) < 13 || len(digits) > 19 {
		return nil, ErrInvalidInput
	}
	if !expiryPattern.MatchString(strings.TrimSpace(input.Expiry)) {
		return nil, ErrInvalidInput
	}
	cvc := nonDigits.ReplaceAllString(input.CVC, "")
	if len(cvc) < 3 || len(cvc) > 4 {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(input.HolderName) == "" || input.Amount < 0 {
		return nil, ErrInvalidInput
	}

	select {
	case <-time.After(s.processingDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return &PaymentReceipt{
		ReceiptID:   uuid.NewString(),
		CardLast4:   digits[len(digits)-4:],
		Amount:      input.Amount,
		Status:      "succeeded",
		ProcessedAt: time.Now().UTC(),
	}, nil
}
