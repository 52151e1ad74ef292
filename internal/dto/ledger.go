package dto

import "github.com/shopspring/decimal"

type BalanceResponseDTO struct {
	AccountUUID string          `json:"account_uuid"`
	Balance     decimal.Decimal `json:"balance" example:"90.00"`
}

type LedgerEntryDTO struct {
	UUID          string          `json:"uuid"`
	EntryType     string          `json:"entry_type" example:"PIX_CREDIT"`
	Direction     string          `json:"direction" example:"CREDIT"`
	Amount        decimal.Decimal `json:"amount" example:"90.00"`
	BalanceAfter  decimal.Decimal `json:"balance_after" example:"90.00"`
	Description   string          `json:"description,omitempty"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	CreatedAt     string          `json:"created_at" example:"2024-09-01T12:00:00Z"`
}

type ExtractResponseDTO struct {
	AccountUUID    string           `json:"account_uuid"`
	PeriodStart    string           `json:"period_start"`
	PeriodEnd      string           `json:"period_end"`
	OpeningBalance decimal.Decimal  `json:"opening_balance"`
	ClosingBalance decimal.Decimal  `json:"closing_balance"`
	TotalCredits   decimal.Decimal  `json:"total_credits"`
	TotalDebits    decimal.Decimal  `json:"total_debits"`
	Entries        []LedgerEntryDTO `json:"entries"`
}

type EntriesResponseDTO struct {
	Entries []LedgerEntryDTO `json:"entries"`
	Total   int              `json:"total"`
}
