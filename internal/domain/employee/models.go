package employee

import "time"

type Employee struct {
	ID               int64     `json:"id"`
	FullName         string    `json:"fullName"`
	NationalID       string    `json:"nationalId"`
	Position         string    `json:"position"`
	Email            string    `json:"email,omitempty"`
	ExternalSellerID *int64    `json:"externalSellerId,omitempty"`
	HiredOn          time.Time `json:"hiredOn"`
	Active           bool      `json:"active"`
}

// Credentials carries the stored login material. It never leaves the
// auth flow, so it has no JSON tags.
type Credentials struct {
	EmployeeID   int64
	FullName     string
	Position     string
	PasswordHash string
}

type CreateInput struct {
	FullName         string `json:"fullName"`
	NationalID       string `json:"nationalId"`
	Position         string `json:"position"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	ExternalSellerID *int64 `json:"externalSellerId"`
}
