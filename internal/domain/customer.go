package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	CustomerStatusPending  = "pending"
	CustomerStatusVerified = "verified"
	CustomerStatusRejected = "rejected"
)

// Customer is an onboarded borrower with verified KYC details.
type Customer struct {
	ID              uuid.UUID `json:"id" db:"id"`
	FullName        string    `json:"full_name" db:"full_name"`
	FullNameSinhala string    `json:"full_name_si,omitempty" db:"full_name_si"`
	NIC             string    `json:"nic" db:"nic"`
	Phone           string    `json:"phone" db:"phone"`
	Address         string    `json:"address" db:"address"`
	PostalCode      string    `json:"postal_code" db:"postal_code"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

type RegisterCustomerRequest struct {
	FullName        string `json:"full_name" validate:"required,min=2"`
	FullNameSinhala string `json:"full_name_si" validate:"omitempty,min=2"`
	NIC             string `json:"nic" validate:"required,nic"`
	Phone           string `json:"phone" validate:"required,slphone"`
	Address         string `json:"address" validate:"required"`
	PostalCode      string `json:"postal_code" validate:"required,slpostal"`
}
