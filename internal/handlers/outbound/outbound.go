package outbound

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/dto"
	"github.com/brpay/pixledger/internal/service/outboundservice"
	"github.com/brpay/pixledger/pkg/auth"
	"github.com/brpay/pixledger/pkg/utils"
)

type Service interface {
	Request(ctx context.Context, accountID int, params outboundservice.RequestParams) (*domain.OutboundRequest, error)
	CancelRequest(ctx context.Context, requestUUID string, accountID int) (*domain.OutboundRequest, error)
	Approve(ctx context.Context, requestUUID string, operator *domain.Account, receiptRef, settlementID string) (*domain.OutboundRequest, error)
	Reject(ctx context.Context, requestUUID string, operator *domain.Account, reason string) (*domain.OutboundRequest, error)
	ProcessSettlement(ctx context.Context, correlationID, status, message string) error
	GetRequest(ctx context.Context, requestUUID string) (*domain.OutboundRequest, error)
	GetRequests(ctx context.Context, accountID int, status *domain.OutboundStatus, limit, offset int) ([]domain.OutboundRequest, error)
	GetPendingRequests(ctx context.Context, limit, offset int) ([]domain.OutboundRequest, error)
}

type AccountResolver interface {
	GetAccountByID(ctx context.Context, id int) (*domain.Account, error)
}

type OutboundHandler struct {
	outboundService Service
	accounts        AccountResolver
	validate        *validator.Validate
}

func New(outboundService Service, accounts AccountResolver) *OutboundHandler {
	return &OutboundHandler{
		outboundService: outboundService,
		accounts:        accounts,
		validate:        validator.New(),
	}
}

// Request godoc
//
//	@Summary		Request an outbound transfer
//	@Description	Record the holder's intent to send money to an external PIX key. Funds move only on operator approval.
//	@Tags			Outbound
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.OutboundRequestDTO	true	"Transfer request"
//	@Success		201		{object}	dto.OutboundResponseDTO	"Request created"
//	@Failure		400		{object}	utils.Response			"Invalid request"
//	@Failure		402		{object}	utils.Response			"Insufficient balance"
//	@Failure		422		{object}	utils.Response			"Account not eligible"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/outbound [post]
func (h *OutboundHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req dto.OutboundRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := h.outboundService.Request(r.Context(), auth.AccountIDFromContext(r.Context()), outboundservice.RequestParams{
		Amount:           req.Amount,
		RecipientKey:     req.RecipientKey,
		RecipientKeyType: req.RecipientKeyType,
		RecipientName:    req.RecipientName,
		Notes:            req.Notes,
	})
	if err != nil {
		respondOutboundError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, requestToDTO(request))
}

// GetMyRequests godoc
//
//	@Summary		List my outbound requests
//	@Description	The authenticated holder's outbound requests, newest first. Filter by status with ?status=.
//	@Tags			Outbound
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status	query		string	false	"Status filter"	Enums(PENDING, COMPLETED, REJECTED, CANCELLED, REVERSED)
//	@Success		200		{array}		dto.OutboundResponseDTO	"Requests"
//	@Failure		401		{object}	utils.Response			"Unauthorized"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/outbound/my [get]
func (h *OutboundHandler) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	limit, offset := utils.Pagination(r, 20)

	var status *domain.OutboundStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.OutboundStatus(raw)
		status = &s
	}

	requests, err := h.outboundService.GetRequests(r.Context(), auth.AccountIDFromContext(r.Context()), status, limit, offset)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, requestsToDTO(requests))
}

// Get godoc
//
//	@Summary		Get one outbound request
//	@Description	A single request by its identifier. Holders see only their own requests.
//	@Tags			Outbound
//	@Security		BearerAuth
//	@Produce		json
//	@Param			uuid	path		string	true	"Request UUID"
//	@Success		200		{object}	dto.OutboundResponseDTO	"Request"
//	@Failure		404		{object}	utils.Response			"Request not found"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/outbound/{uuid} [get]
func (h *OutboundHandler) Get(w http.ResponseWriter, r *http.Request) {
	request, err := h.outboundService.GetRequest(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondOutboundError(w, err)
		return
	}
	if request.AccountID != auth.AccountIDFromContext(r.Context()) && !auth.IsOperator(r.Context()) {
		utils.RespondWithError(w, http.StatusNotFound, "request not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, requestToDTO(request))
}

// Cancel godoc
//
//	@Summary		Cancel my pending request
//	@Description	Withdraw a still pending outbound request. Only the requester may cancel.
//	@Tags			Outbound
//	@Security		BearerAuth
//	@Produce		json
//	@Param			uuid	path		string	true	"Request UUID"
//	@Success		200		{object}	dto.OutboundResponseDTO	"Request cancelled"
//	@Failure		403		{object}	utils.Response			"Not the requester"
//	@Failure		404		{object}	utils.Response			"Request not found"
//	@Failure		409		{object}	utils.Response			"Request already processed"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/outbound/{uuid}/cancel [post]
func (h *OutboundHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	request, err := h.outboundService.CancelRequest(r.Context(), chi.URLParam(r, "uuid"), auth.AccountIDFromContext(r.Context()))
	if err != nil {
		respondOutboundError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, requestToDTO(request))
}

// GetPending godoc
//
//	@Summary		List pending outbound requests
//	@Description	Requests awaiting operator action, oldest first.
//	@Tags			Outbound
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.OutboundResponseDTO	"Pending requests"
//	@Failure		401	{object}	utils.Response			"Unauthorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/outbound/pending [get]
func (h *OutboundHandler) GetPending(w http.ResponseWriter, r *http.Request) {
	limit, offset := utils.Pagination(r, 20)

	requests, err := h.outboundService.GetPendingRequests(r.Context(), limit, offset)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, requestsToDTO(requests))
}

// Process godoc
//
//	@Summary		Approve or reject a request
//	@Description	Approve debits the requester's ledger and submits the transfer to the gateway. Reject requires a reason.
//	@Tags			Outbound
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			uuid	path		string						true	"Request UUID"
//	@Param			request	body		dto.ProcessOutboundRequestDTO	true	"Decision"
//	@Success		200		{object}	dto.OutboundResponseDTO		"Request processed"
//	@Failure		400		{object}	utils.Response				"Invalid request"
//	@Failure		402		{object}	utils.Response				"Insufficient balance"
//	@Failure		404		{object}	utils.Response				"Request not found"
//	@Failure		409		{object}	utils.Response				"Request already processed"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/outbound/{uuid}/process [post]
func (h *OutboundHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req dto.ProcessOutboundRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	operator, err := h.accounts.GetAccountByID(r.Context(), auth.AccountIDFromContext(r.Context()))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	requestUUID := chi.URLParam(r, "uuid")
	var request *domain.OutboundRequest
	switch req.Action {
	case "approve":
		request, err = h.outboundService.Approve(r.Context(), requestUUID, operator, req.ReceiptRef, req.SettlementID)
	case "reject":
		request, err = h.outboundService.Reject(r.Context(), requestUUID, operator, req.RejectionReason)
	}
	if err != nil {
		respondOutboundError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, requestToDTO(request))
}

// Webhook godoc
//
//	@Summary		Gateway settlement notification
//	@Description	Receive the gateway's terminal status for an approved transfer. Failed transfers are reversed.
//	@Tags			Outbound
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.TransferWebhookDTO	true	"Settlement notification"
//	@Success		200		"Processed"
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		404		{object}	utils.Response	"Unknown correlation id"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/outbound/webhook [post]
func (h *OutboundHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferWebhookDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.outboundService.ProcessSettlement(r.Context(), req.CorrelationID, req.Status, req.Message); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Unknown correlation id")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, nil)
}

func respondOutboundError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, outboundservice.ErrNotRequester):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidState) || errors.Is(err, domain.ErrConflict):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, outboundservice.ErrAccountNotEligible):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrValidation):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func requestToDTO(req *domain.OutboundRequest) dto.OutboundResponseDTO {
	out := dto.OutboundResponseDTO{
		UUID:             req.UUID,
		Amount:           req.Amount,
		RecipientKey:     req.RecipientKey,
		RecipientKeyType: req.RecipientKeyType,
		RecipientName:    req.RecipientName,
		Status:           string(req.Status),
		RejectionReason:  req.RejectionReason,
		SettlementID:     req.SettlementID,
		CreatedAt:        req.CreatedAt.Format(time.RFC3339),
	}
	if req.ProcessedAt != nil {
		out.ProcessedAt = req.ProcessedAt.Format(time.RFC3339)
	}
	return out
}

func requestsToDTO(requests []domain.OutboundRequest) []dto.OutboundResponseDTO {
	out := make([]dto.OutboundResponseDTO, 0, len(requests))
	for i := range requests {
		out = append(out, requestToDTO(&requests[i]))
	}
	return out
}
