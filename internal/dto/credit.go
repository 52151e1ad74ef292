package dto

import "github.com/shopspring/decimal"

type RegisterCreditRequestDTO struct {
	ExternalID      string          `json:"external_id" validate:"required,max=100" example:"E2E-20240901-0001"`
	Amount          decimal.Decimal `json:"amount" validate:"required" example:"100.00"`
	PayerName       string          `json:"payer_name" validate:"omitempty,max=255" example:"João Silva"`
	PayerDocument   string          `json:"payer_document" validate:"omitempty,max=18" example:"98765432100"`
	Description     string          `json:"description" validate:"omitempty,max=500"`
	TransactionDate string          `json:"transaction_date" validate:"omitempty" example:"2024-09-01T11:58:00Z"`
}

type CreditResponseDTO struct {
	UUID            string          `json:"uuid"`
	ExternalID      string          `json:"external_id"`
	Amount          decimal.Decimal `json:"amount"`
	PayerName       string          `json:"payer_name,omitempty"`
	Status          string          `json:"status" example:"PENDING"`
	TransactionDate string          `json:"transaction_date"`
	Created         bool            `json:"created"`
}

type PendingCreditsResponseDTO struct {
	Credits     []CreditResponseDTO `json:"credits"`
	Total       int                 `json:"total"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
}

type CancelCreditRequestDTO struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// CreditWebhookDTO is the gateway's incoming-payment notification payload.
type CreditWebhookDTO struct {
	ExternalID      string          `json:"external_id" validate:"required"`
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	PayerName       string          `json:"payer_name"`
	PayerDocument   string          `json:"payer_document"`
	Description     string          `json:"description"`
	TransactionDate string          `json:"transaction_date"`
}
