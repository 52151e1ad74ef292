package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/dto"
	"github.com/brpay/pixledger/internal/service/ledgerservice"
	"github.com/brpay/pixledger/pkg/auth"
	"github.com/brpay/pixledger/pkg/utils"
)

type AccountService interface {
	GetAccount(ctx context.Context, accountUUID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, id int) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error)
	BlockAccount(ctx context.Context, accountUUID string, operator *domain.Account) (*domain.Account, error)
	UnblockAccount(ctx context.Context, accountUUID string, operator *domain.Account) (*domain.Account, error)
	ActivateAccount(ctx context.Context, accountUUID string, operator *domain.Account) (*domain.Account, error)
}

type LedgerService interface {
	VerifyChain(ctx context.Context, accountID int) (*ledgerservice.ChainReport, error)
}

type AuditRepo interface {
	FindRecent(ctx context.Context, limit, offset int) ([]domain.AuditRecord, error)
}

type AdminHandler struct {
	accountService AccountService
	ledgerService  LedgerService
	auditRepo      AuditRepo
}

func New(accountService AccountService, ledgerService LedgerService, auditRepo AuditRepo) *AdminHandler {
	return &AdminHandler{
		accountService: accountService,
		ledgerService:  ledgerService,
		auditRepo:      auditRepo,
	}
}

// ListAccounts godoc
//
//	@Summary		List accounts
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.AccountResponseDTO	"Accounts"
//	@Failure		401	{object}	utils.Response			"Unauthorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/admin/accounts [get]
func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	limit, offset := utils.Pagination(r, 50)

	accounts, err := h.accountService.ListAccounts(r.Context(), limit, offset)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]dto.AccountResponseDTO, 0, len(accounts))
	for i := range accounts {
		resp = append(resp, accountToDTO(&accounts[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// BlockAccount godoc
//
//	@Summary		Block an account
//	@Description	Block the account and anonymize its personal data. Ledger history is preserved.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			uuid	path		string	true	"Account UUID"
//	@Success		200		{object}	dto.AccountResponseDTO	"Account blocked"
//	@Failure		404		{object}	utils.Response			"Account not found"
//	@Failure		409		{object}	utils.Response			"Account already blocked"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/admin/accounts/{uuid}/block [post]
func (h *AdminHandler) BlockAccount(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.accountService.BlockAccount)
}

// UnblockAccount godoc
//
//	@Summary		Unblock an account
//	@Description	Move a blocked account to INACTIVE. Activation is a separate step.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			uuid	path		string	true	"Account UUID"
//	@Success		200		{object}	dto.AccountResponseDTO	"Account unblocked"
//	@Failure		404		{object}	utils.Response			"Account not found"
//	@Failure		409		{object}	utils.Response			"Account is not blocked"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/admin/accounts/{uuid}/unblock [post]
func (h *AdminHandler) UnblockAccount(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.accountService.UnblockAccount)
}

// ActivateAccount godoc
//
//	@Summary		Activate an account
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			uuid	path		string	true	"Account UUID"
//	@Success		200		{object}	dto.AccountResponseDTO	"Account activated"
//	@Failure		404		{object}	utils.Response			"Account not found"
//	@Failure		409		{object}	utils.Response			"Account is blocked"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/admin/accounts/{uuid}/activate [post]
func (h *AdminHandler) ActivateAccount(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.accountService.ActivateAccount)
}

func (h *AdminHandler) transition(w http.ResponseWriter, r *http.Request, fn func(context.Context, string, *domain.Account) (*domain.Account, error)) {
	operator, err := h.accountService.GetAccountByID(r.Context(), auth.AccountIDFromContext(r.Context()))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	account, err := fn(r.Context(), chi.URLParam(r, "uuid"), operator)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Account not found")
		case errors.Is(err, domain.ErrInvalidState):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, accountToDTO(account))
}

// VerifyChain godoc
//
//	@Summary		Verify an account's ledger chain
//	@Description	Replay the account's entire ledger from zero and report the first broken link, if any.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			uuid	path		string	true	"Account UUID"
//	@Success		200		{object}	dto.ChainReportResponseDTO	"Chain report"
//	@Failure		404		{object}	utils.Response				"Account not found"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/admin/accounts/{uuid}/verify-chain [get]
func (h *AdminHandler) VerifyChain(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountService.GetAccount(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Account not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	report, err := h.ledgerService.VerifyChain(r.Context(), account.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.ChainReportResponseDTO{
		AccountUUID: account.UUID,
		Entries:     report.Entries,
		Valid:       report.Valid,
		BrokenAtID:  report.BrokenAtID,
		Detail:      report.Detail,
	})
}

// GetAuditLog godoc
//
//	@Summary		Recent audit records
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.AuditRecordDTO	"Audit records"
//	@Failure		401	{object}	utils.Response		"Unauthorized"
//	@Failure		500	{object}	utils.Response		"Internal server error"
//	@Router			/api/admin/audit [get]
func (h *AdminHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	limit, offset := utils.Pagination(r, 50)

	records, err := h.auditRepo.FindRecent(r.Context(), limit, offset)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]dto.AuditRecordDTO, 0, len(records))
	for i := range records {
		rec := &records[i]
		resp = append(resp, dto.AuditRecordDTO{
			ID:         rec.ID,
			ActorEmail: rec.ActorEmail,
			ActorRole:  rec.ActorRole,
			Action:     rec.Action,
			EntityType: rec.EntityType,
			EntityID:   rec.EntityID,
			OldValues:  rec.OldValues,
			NewValues:  rec.NewValues,
			CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func accountToDTO(a *domain.Account) dto.AccountResponseDTO {
	return dto.AccountResponseDTO{
		UUID:      a.UUID,
		Email:     a.Email,
		FullName:  a.FullName,
		Role:      string(a.Role),
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}
