package credits

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/dto"
	"github.com/brpay/pixledger/internal/service/creditservice"
	"github.com/brpay/pixledger/pkg/auth"
	"github.com/brpay/pixledger/pkg/utils"
)

type Service interface {
	Register(ctx context.Context, params creditservice.RegisterParams, actorID int) (*domain.IncomingCredit, bool, error)
	Cancel(ctx context.Context, creditUUID, reason string, actor *domain.Account) (*domain.IncomingCredit, error)
	MarkRefunded(ctx context.Context, creditUUID string, actor *domain.Account) (*domain.IncomingCredit, error)
	GetCredit(ctx context.Context, creditUUID string) (*domain.IncomingCredit, error)
	GetPending(ctx context.Context, limit, offset int) ([]domain.IncomingCredit, int, decimal.Decimal, error)
}

type AccountResolver interface {
	GetAccountByID(ctx context.Context, id int) (*domain.Account, error)
}

type CreditHandler struct {
	creditService Service
	accounts      AccountResolver
	validate      *validator.Validate
}

func New(creditService Service, accounts AccountResolver) *CreditHandler {
	return &CreditHandler{
		creditService: creditService,
		accounts:      accounts,
		validate:      validator.New(),
	}
}

// RegisterCredit godoc
//
//	@Summary		Register an incoming credit
//	@Description	Record an externally received PIX payment in the pending registry. Idempotent on external_id.
//	@Tags			Credits
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterCreditRequestDTO	true	"Incoming payment"
//	@Success		200		{object}	dto.CreditResponseDTO			"Already registered"
//	@Success		201		{object}	dto.CreditResponseDTO			"Credit registered"
//	@Failure		400		{object}	utils.Response					"Invalid request body"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/credits [post]
func (h *CreditHandler) RegisterCredit(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterCreditRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.register(w, r, req.ExternalID, req.Amount, req.PayerName, req.PayerDocument, req.Description, req.TransactionDate, auth.AccountIDFromContext(r.Context()))
}

// Webhook godoc
//
//	@Summary		Gateway payment notification
//	@Description	Receive the payment gateway's incoming-credit notification. Duplicate deliveries are harmless.
//	@Tags			Credits
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreditWebhookDTO	true	"Gateway notification"
//	@Success		200		{object}	dto.CreditResponseDTO	"Already registered"
//	@Success		201		{object}	dto.CreditResponseDTO	"Credit registered"
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/credits/webhook [post]
func (h *CreditHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var req dto.CreditWebhookDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.register(w, r, req.ExternalID, req.Amount, req.PayerName, req.PayerDocument, req.Description, req.TransactionDate, 0)
}

func (h *CreditHandler) register(w http.ResponseWriter, r *http.Request, externalID string, amount decimal.Decimal, payerName, payerDocument, description, transactionDate string, actorID int) {
	txDate := time.Time{}
	if transactionDate != "" {
		parsed, err := time.Parse(time.RFC3339, transactionDate)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid transaction_date")
			return
		}
		txDate = parsed
	}

	credit, created, err := h.creditService.Register(r.Context(), creditservice.RegisterParams{
		ExternalID:      externalID,
		Amount:          amount,
		PayerName:       payerName,
		PayerDocument:   payerDocument,
		Description:     description,
		TransactionDate: txDate,
	}, actorID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	utils.RespondWithJSON(w, status, creditToDTO(credit, created))
}

// GetPending godoc
//
//	@Summary		List pending credits
//	@Description	List credits awaiting allocation, newest first, with count and total amount.
//	@Tags			Credits
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.PendingCreditsResponseDTO	"Pending credits"
//	@Failure		401	{object}	utils.Response					"Unauthorized"
//	@Failure		500	{object}	utils.Response					"Internal server error"
//	@Router			/api/credits/pending [get]
func (h *CreditHandler) GetPending(w http.ResponseWriter, r *http.Request) {
	limit, offset := utils.Pagination(r, 20)

	credits, total, totalAmount, err := h.creditService.GetPending(r.Context(), limit, offset)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := dto.PendingCreditsResponseDTO{
		Credits:     make([]dto.CreditResponseDTO, 0, len(credits)),
		Total:       total,
		TotalAmount: totalAmount,
	}
	for i := range credits {
		resp.Credits = append(resp.Credits, creditToDTO(&credits[i], false))
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// Cancel godoc
//
//	@Summary		Cancel a pending credit
//	@Description	Mark a still pending credit as cancelled. Allocated credits are final.
//	@Tags			Credits
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			uuid	path		string						true	"Credit UUID"
//	@Param			request	body		dto.CancelCreditRequestDTO	false	"Cancellation reason"
//	@Success		200		{object}	dto.CreditResponseDTO		"Credit cancelled"
//	@Failure		404		{object}	utils.Response				"Credit not found"
//	@Failure		409		{object}	utils.Response				"Credit not pending"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/credits/{uuid}/cancel [post]
func (h *CreditHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	creditUUID := chi.URLParam(r, "uuid")

	var req dto.CancelCreditRequestDTO
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	actor, err := h.accounts.GetAccountByID(r.Context(), auth.AccountIDFromContext(r.Context()))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	credit, err := h.creditService.Cancel(r.Context(), creditUUID, req.Reason, actor)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Credit not found")
		case errors.Is(err, domain.ErrInvalidState):
			utils.RespondWithError(w, http.StatusConflict, "Credit is not pending")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, creditToDTO(credit, false))
}

// Refund godoc
//
//	@Summary		Mark a pending credit as refunded
//	@Description	Record that the gateway returned a still pending credit to the payer. Allocated credits are final.
//	@Tags			Credits
//	@Security		BearerAuth
//	@Produce		json
//	@Param			uuid	path		string					true	"Credit UUID"
//	@Success		200		{object}	dto.CreditResponseDTO	"Credit refunded"
//	@Failure		404		{object}	utils.Response			"Credit not found"
//	@Failure		409		{object}	utils.Response			"Credit not pending"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/credits/{uuid}/refund [post]
func (h *CreditHandler) Refund(w http.ResponseWriter, r *http.Request) {
	creditUUID := chi.URLParam(r, "uuid")

	actor, err := h.accounts.GetAccountByID(r.Context(), auth.AccountIDFromContext(r.Context()))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	credit, err := h.creditService.MarkRefunded(r.Context(), creditUUID, actor)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Credit not found")
		case errors.Is(err, domain.ErrInvalidState):
			utils.RespondWithError(w, http.StatusConflict, "Credit is not pending")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, creditToDTO(credit, false))
}

// Get godoc
//
//	@Summary		Get one incoming credit
//	@Description	A single registered credit by its identifier.
//	@Tags			Credits
//	@Security		BearerAuth
//	@Produce		json
//	@Param			uuid	path		string					true	"Credit UUID"
//	@Success		200		{object}	dto.CreditResponseDTO	"Credit"
//	@Failure		404		{object}	utils.Response			"Credit not found"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/credits/{uuid} [get]
func (h *CreditHandler) Get(w http.ResponseWriter, r *http.Request) {
	credit, err := h.creditService.GetCredit(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Credit not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, creditToDTO(credit, false))
}

func creditToDTO(c *domain.IncomingCredit, created bool) dto.CreditResponseDTO {
	return dto.CreditResponseDTO{
		UUID:            c.UUID,
		ExternalID:      c.ExternalID,
		Amount:          c.Amount,
		PayerName:       c.PayerName,
		Status:          string(c.Status),
		TransactionDate: c.TransactionDate.Format(time.RFC3339),
		Created:         created,
	}
}
