package ledger

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/dto"
	"github.com/brpay/pixledger/internal/service/ledgerservice"
	"github.com/brpay/pixledger/pkg/auth"
	"github.com/brpay/pixledger/pkg/utils"
)

type Service interface {
	GetBalance(ctx context.Context, accountID int) (*ledgerservice.Balance, error)
	GetExtract(ctx context.Context, accountID int, from, to *time.Time, limit, offset int) (*ledgerservice.Extract, error)
	GetEntries(ctx context.Context, accountID int, limit, offset int) ([]domain.LedgerEntry, error)
}

type AccountResolver interface {
	GetAccountByID(ctx context.Context, id int) (*domain.Account, error)
}

type LedgerHandler struct {
	ledgerService Service
	accounts      AccountResolver
}

func New(ledgerService Service, accounts AccountResolver) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService, accounts: accounts}
}

// GetBalance godoc
//
//	@Summary		Current balance
//	@Description	Return the authenticated account's balance, taken from the latest ledger entry.
//	@Tags			Ledger
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance"
//	@Failure		401	{object}	utils.Response			"Unauthorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/ledger/balance [get]
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.GetAccountByID(r.Context(), auth.AccountIDFromContext(r.Context()))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	balance, err := h.ledgerService.GetBalance(r.Context(), account.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Account not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		AccountUUID: account.UUID,
		Balance:     balance.Current,
	})
}

// GetExtract godoc
//
//	@Summary		Account extract
//	@Description	Chronological statement for a period, with opening and closing balances. from/to are RFC3339.
//	@Tags			Ledger
//	@Security		BearerAuth
//	@Produce		json
//	@Param			from	query		string	false	"Period start (RFC3339)"
//	@Param			to		query		string	false	"Period end (RFC3339)"
//	@Success		200		{object}	dto.ExtractResponseDTO	"Extract"
//	@Failure		400		{object}	utils.Response			"Invalid period"
//	@Failure		401		{object}	utils.Response			"Unauthorized"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/ledger/extract [get]
func (h *LedgerHandler) GetExtract(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.GetAccountByID(r.Context(), auth.AccountIDFromContext(r.Context()))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	from, err := parseTimeParam(r, "from")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid from")
		return
	}
	to, err := parseTimeParam(r, "to")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid to")
		return
	}
	if from != nil && to != nil && to.Before(*from) {
		utils.RespondWithError(w, http.StatusBadRequest, "period end precedes start")
		return
	}
	limit, offset := utils.Pagination(r, 100)

	extract, err := h.ledgerService.GetExtract(r.Context(), account.ID, from, to, limit, offset)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := dto.ExtractResponseDTO{
		AccountUUID:    account.UUID,
		OpeningBalance: extract.OpeningBalance,
		ClosingBalance: extract.ClosingBalance,
		TotalCredits:   extract.TotalCredits,
		TotalDebits:    extract.TotalDebits,
		Entries:        make([]dto.LedgerEntryDTO, 0, len(extract.Entries)),
	}
	if from != nil {
		resp.PeriodStart = from.Format(time.RFC3339)
	}
	if to != nil {
		resp.PeriodEnd = to.Format(time.RFC3339)
	}
	for i := range extract.Entries {
		resp.Entries = append(resp.Entries, entryToDTO(&extract.Entries[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GetEntries godoc
//
//	@Summary		Ledger entries
//	@Description	The authenticated account's ledger entries, newest first.
//	@Tags			Ledger
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.EntriesResponseDTO	"Entries"
//	@Failure		401	{object}	utils.Response			"Unauthorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/ledger/entries [get]
func (h *LedgerHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	accountID := auth.AccountIDFromContext(r.Context())
	limit, offset := utils.Pagination(r, 50)

	entries, err := h.ledgerService.GetEntries(r.Context(), accountID, limit, offset)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := dto.EntriesResponseDTO{
		Entries: make([]dto.LedgerEntryDTO, 0, len(entries)),
		Total:   len(entries),
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, entryToDTO(&entries[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func parseTimeParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func entryToDTO(e *domain.LedgerEntry) dto.LedgerEntryDTO {
	return dto.LedgerEntryDTO{
		UUID:          e.UUID,
		EntryType:     string(e.EntryType),
		Direction:     string(e.Direction),
		Amount:        e.Amount,
		BalanceAfter:  e.BalanceAfter,
		Description:   e.Description,
		ReferenceType: e.ReferenceType,
		ReferenceID:   e.ReferenceID,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
}
