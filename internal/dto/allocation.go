package dto

import "github.com/shopspring/decimal"

type AllocateRequestDTO struct {
	CreditUUID    string          `json:"credit_uuid" validate:"required,uuid4"`
	AccountUUID   string          `json:"account_uuid" validate:"required,uuid4"`
	DiscountType  string          `json:"discount_type" validate:"required,oneof=PERCENTAGE FIXED" example:"PERCENTAGE"`
	DiscountValue decimal.Decimal `json:"discount_value" validate:"required" example:"10"`
	Notes         string          `json:"notes" validate:"omitempty,max=500"`
}

type SimulateRequestDTO struct {
	CreditUUID    string          `json:"credit_uuid" validate:"required,uuid4"`
	DiscountType  string          `json:"discount_type" validate:"required,oneof=PERCENTAGE FIXED" example:"FIXED"`
	DiscountValue decimal.Decimal `json:"discount_value" validate:"required" example:"5.00"`
}

type SimulationResponseDTO struct {
	GrossAmount        decimal.Decimal `json:"gross_amount" example:"100.00"`
	DiscountType       string          `json:"discount_type"`
	DiscountValue      decimal.Decimal `json:"discount_value"`
	DiscountAmount     decimal.Decimal `json:"discount_amount" example:"10.00"`
	NetAmount          decimal.Decimal `json:"net_amount" example:"90.00"`
	CompanyMargin      decimal.Decimal `json:"company_margin" example:"10.00"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage" example:"10"`
}

type AllocationResponseDTO struct {
	UUID           string          `json:"uuid"`
	CreditUUID     string          `json:"credit_uuid"`
	AccountUUID    string          `json:"account_uuid"`
	GrossAmount    decimal.Decimal `json:"gross_amount"`
	DiscountType   string          `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	CompanyMargin  decimal.Decimal `json:"company_margin"`
	Notes          string          `json:"notes,omitempty"`
	AllocatedAt    string          `json:"allocated_at"`
	BalanceAfter   decimal.Decimal `json:"balance_after"`
}
