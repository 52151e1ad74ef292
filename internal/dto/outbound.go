package dto

import "github.com/shopspring/decimal"

type OutboundRequestDTO struct {
	Amount           decimal.Decimal `json:"amount" validate:"required" example:"80.00"`
	RecipientKey     string          `json:"recipient_key" validate:"required,max=255" example:"payee@example.com"`
	RecipientKeyType string          `json:"recipient_key_type" validate:"required,oneof=CPF CNPJ EMAIL PHONE RANDOM" example:"EMAIL"`
	RecipientName    string          `json:"recipient_name" validate:"omitempty,max=255"`
	Notes            string          `json:"notes" validate:"omitempty,max=500"`
}

type ProcessOutboundRequestDTO struct {
	Action          string `json:"action" validate:"required,oneof=approve reject" example:"approve"`
	RejectionReason string `json:"rejection_reason" validate:"omitempty,max=500"`
	ReceiptRef      string `json:"receipt_ref" validate:"omitempty"`
	SettlementID    string `json:"settlement_id" validate:"omitempty,max=100"`
}

type OutboundResponseDTO struct {
	UUID             string          `json:"uuid"`
	Amount           decimal.Decimal `json:"amount"`
	RecipientKey     string          `json:"recipient_key"`
	RecipientKeyType string          `json:"recipient_key_type"`
	RecipientName    string          `json:"recipient_name,omitempty"`
	Status           string          `json:"status" example:"PENDING"`
	RejectionReason  string          `json:"rejection_reason,omitempty"`
	SettlementID     string          `json:"settlement_id,omitempty"`
	CreatedAt        string          `json:"created_at"`
	ProcessedAt      string          `json:"processed_at,omitempty"`
}

// TransferWebhookDTO is the gateway's settlement status notification for a
// previously approved outbound transfer.
type TransferWebhookDTO struct {
	CorrelationID string          `json:"correlation_id" validate:"required"`
	Status        string          `json:"status" validate:"required" example:"failed"`
	Amount        decimal.Decimal `json:"amount"`
	Message       string          `json:"message"`
}
