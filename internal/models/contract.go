package models

import "time"

const (
	ContractPending = "pending"
	ContractSigned  = "signed"
	ContractExpired = "expired"
)

type Contract struct {
	ID            int64          `json:"id"`
	EnrollmentID  int64          `json:"enrollment_id"`
	Status        string         `json:"status"`
	Signature     *string        `json:"signature,omitempty"`
	SignedAt      *time.Time     `json:"signed_at,omitempty"`
	Version       int            `json:"version"`
	ProgramName   string         `json:"program_name"`
	Customization *Customization `json:"customization,omitempty"`
	UserName      string         `json:"user_name"`
	UserEmail     string         `json:"user_email"`
	CreatedAt     time.Time      `json:"created_at"`
}
