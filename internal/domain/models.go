package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountRole string

const (
	RoleOperator AccountRole = "OPERATOR"
	RoleHolder   AccountRole = "HOLDER"
)

type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
	AccountBlocked  AccountStatus = "BLOCKED"
)

// Account is a party able to hold a balance. The balance itself is never
// stored here; it is always the balance_after of the account's latest ledger
// entry.
type Account struct {
	ID           int           `db:"id"`
	UUID         string        `db:"uuid"`
	Email        string        `db:"email"`
	PasswordHash string        `db:"password_hash"`
	FullName     string        `db:"full_name"`
	Document     string        `db:"document"`
	Role         AccountRole   `db:"role"`
	Status       AccountStatus `db:"status"`
	CreatedAt    time.Time     `db:"created_at"`
}

func (a *Account) IsOperator() bool {
	return a.Role == RoleOperator
}

func (a *Account) IsActive() bool {
	return a.Status == AccountActive
}

// CanReceiveAllocation reports whether the account is an eligible allocation
// target: an active ordinary holder. Operators never receive allocations.
func (a *Account) CanReceiveAllocation() bool {
	return a.Role == RoleHolder && a.Status == AccountActive
}

type CreditStatus string

const (
	CreditPending   CreditStatus = "PENDING"
	CreditAllocated CreditStatus = "ALLOCATED"
	CreditCancelled CreditStatus = "CANCELLED"
	CreditRefunded  CreditStatus = "REFUNDED"
)

// IncomingCredit is one externally received payment pooled in the omnibus
// account, awaiting allocation to a holder.
type IncomingCredit struct {
	ID              int             `db:"id"`
	UUID            string          `db:"uuid"`
	ExternalID      string          `db:"external_id"`
	Amount          decimal.Decimal `db:"amount"`
	PayerName       string          `db:"payer_name"`
	PayerDocument   string          `db:"payer_document"`
	Description     string          `db:"description"`
	Status          CreditStatus    `db:"status"`
	AllocationID    *int            `db:"allocation_id"`
	TransactionDate time.Time       `db:"transaction_date"`
	CreatedAt       time.Time       `db:"created_at"`
}

func (c *IncomingCredit) IsPending() bool {
	return c.Status == CreditPending
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)

// Allocation records one incoming credit being distributed to one account,
// net of a discount retained as company margin. Immutable once created.
type Allocation struct {
	ID             int             `db:"id"`
	UUID           string          `db:"uuid"`
	CreditID       int             `db:"credit_id"`
	AccountID      int             `db:"account_id"`
	AllocatedBy    int             `db:"allocated_by"`
	GrossAmount    decimal.Decimal `db:"gross_amount"`
	DiscountType   DiscountType    `db:"discount_type"`
	DiscountValue  decimal.Decimal `db:"discount_value"`
	DiscountAmount decimal.Decimal `db:"discount_amount"`
	NetAmount      decimal.Decimal `db:"net_amount"`
	CompanyMargin  decimal.Decimal `db:"company_margin"`
	Notes          string          `db:"notes"`
	AllocatedAt    time.Time       `db:"allocated_at"`

	// Joined for presentation, not columns of the allocations table.
	CreditUUID  string `db:"credit_uuid"`
	AccountUUID string `db:"account_uuid"`
}

type EntryType string

const (
	EntryPixCredit        EntryType = "PIX_CREDIT"
	EntryPixDebit         EntryType = "PIX_DEBIT"
	EntryCompanyFee       EntryType = "COMPANY_FEE"
	EntryWithdrawal       EntryType = "WITHDRAWAL"
	EntryTransferIn       EntryType = "TRANSFER_IN"
	EntryTransferOut      EntryType = "TRANSFER_OUT"
	EntryAdjustmentCredit EntryType = "ADJUSTMENT_CREDIT"
	EntryAdjustmentDebit  EntryType = "ADJUSTMENT_DEBIT"
)

type EntryDirection string

const (
	DirectionCredit EntryDirection = "CREDIT"
	DirectionDebit  EntryDirection = "DEBIT"
)

// Reference types correlate ledger entries with the operation that produced
// them. Reversal idempotency keys off (reference_type, reference_id).
const (
	ReferencePix         = "PIX"
	ReferencePixOut      = "PIX_OUT"
	ReferencePixReversal = "PIX_REVERSAL"
)

// LedgerEntry is an append-only accounting record. Never updated or deleted
// after insertion; corrections are made with compensating entries.
type LedgerEntry struct {
	ID              int64           `db:"id"`
	UUID            string          `db:"uuid"`
	AllocationID    *int            `db:"allocation_id"`
	CreditID        *int            `db:"credit_id"`
	AccountID       int             `db:"account_id"`
	EntryType       EntryType       `db:"entry_type"`
	Direction       EntryDirection  `db:"direction"`
	Amount          decimal.Decimal `db:"amount"`
	BalanceAfter    decimal.Decimal `db:"balance_after"`
	Description     string          `db:"description"`
	ReferenceType   string          `db:"reference_type"`
	ReferenceID     string          `db:"reference_id"`
	CreatedBy       int             `db:"created_by"`
	PreviousEntryID *int64          `db:"previous_entry_id"`
	EntryHash       string          `db:"entry_hash"`
	CreatedAt       time.Time       `db:"created_at"`
}

// SignedAmount is positive for credits and negative for debits.
func (e *LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Direction == DirectionDebit {
		return e.Amount.Neg()
	}
	return e.Amount
}

type OutboundStatus string

const (
	OutboundPending    OutboundStatus = "PENDING"
	OutboundProcessing OutboundStatus = "PROCESSING"
	OutboundCompleted  OutboundStatus = "COMPLETED"
	OutboundCancelled  OutboundStatus = "CANCELLED"
	OutboundRejected   OutboundStatus = "REJECTED"
)

// OutboundRequest is a holder-initiated debit instruction which touches the
// ledger only once an operator approves it.
type OutboundRequest struct {
	ID               int             `db:"id"`
	UUID             string          `db:"uuid"`
	AccountID        int             `db:"account_id"`
	Amount           decimal.Decimal `db:"amount"`
	RecipientKey     string          `db:"recipient_key"`
	RecipientKeyType string          `db:"recipient_key_type"`
	RecipientName    string          `db:"recipient_name"`
	Notes            string          `db:"notes"`
	Status           OutboundStatus  `db:"status"`
	ProcessedBy      *int            `db:"processed_by"`
	ProcessedAt      *time.Time      `db:"processed_at"`
	RejectionReason  string          `db:"rejection_reason"`
	ReceiptRef       string          `db:"receipt_ref"`
	SettlementID     string          `db:"settlement_id"`
	CreatedAt        time.Time       `db:"created_at"`
}

// AuditRecord is an immutable trace of a sensitive action: who did what, when,
// and the monetary values before and after.
type AuditRecord struct {
	ID         int64          `db:"id"`
	ActorID    int            `db:"actor_id"`
	ActorEmail string         `db:"actor_email"`
	ActorRole  string         `db:"actor_role"`
	Action     string         `db:"action"`
	EntityType string         `db:"entity_type"`
	EntityID   string         `db:"entity_id"`
	OldValues  map[string]any `db:"old_values"`
	NewValues  map[string]any `db:"new_values"`
	IPAddress  string         `db:"ip_address"`
	CreatedAt  time.Time      `db:"created_at"`
}
