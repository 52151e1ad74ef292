package allocations

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
	"github.com/brpay/pixledger/internal/service/allocationservice"
	"github.com/brpay/pixledger/pkg/auth"
	"github.com/brpay/pixledger/pkg/utils"
)

type Service interface {
	Simulate(ctx context.Context, creditUUID string, discountType domain.DiscountType, discountValue decimal.Decimal) (*allocationservice.Simulation, error)
	Allocate(ctx context.Context, creditUUID, accountUUID string, discountType domain.DiscountType, discountValue decimal.Decimal, operatorID int, notes string) (*domain.Allocation, *domain.LedgerEntry, error)
	GetAllocation(ctx context.Context, allocationUUID string) (*domain.Allocation, error)
	GetAllocations(ctx context.Context, accountID *int, limit, offset int) ([]domain.Allocation, error)
}

type AccountResolver interface {
	GetAccountByID(ctx context.Context, id int) (*domain.Account, error)
	GetAccount(ctx context.Context, accountUUID string) (*domain.Account, error)
}

type AllocationHandler struct {
	allocationService Service
	accounts          AccountResolver
	validate          *validator.Validate
}

func New(allocationService Service, accounts AccountResolver) *AllocationHandler {
	return &AllocationHandler{
		allocationService: allocationService,
		accounts:          accounts,
		validate:          validator.New(),
	}
}

// Simulate godoc
//
//	@Summary		Simulate an allocation
//	@Description	Preview discount, net amount and margin for a pending credit without committing anything.
//	@Tags			Allocations
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SimulateRequestDTO		true	"Simulation parameters"
//	@Success		200		{object}	dto.SimulationResponseDTO	"Simulation result"
//	@Failure		400		{object}	utils.Response				"Invalid request"
//	@Failure		404		{object}	utils.Response				"Credit not found"
//	@Failure		409		{object}	utils.Response				"Credit not pending"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/allocations/simulate [post]
func (h *AllocationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req dto.SimulateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	sim, err := h.allocationService.Simulate(r.Context(), req.CreditUUID, domain.DiscountType(req.DiscountType), req.DiscountValue)
	if err != nil {
		respondAllocationError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.SimulationResponseDTO{
		GrossAmount:        sim.GrossAmount,
		DiscountType:       string(sim.DiscountType),
		DiscountValue:      sim.DiscountValue,
		DiscountAmount:     sim.DiscountAmount,
		NetAmount:          sim.NetAmount,
		CompanyMargin:      sim.CompanyMargin,
		DiscountPercentage: sim.DiscountPercentage,
	})
}

// Allocate godoc
//
//	@Summary		Allocate a credit to an account
//	@Description	Atomically allocate a pending credit, crediting the target account's ledger with the net amount.
//	@Tags			Allocations
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AllocateRequestDTO		true	"Allocation parameters"
//	@Success		201		{object}	dto.AllocationResponseDTO	"Allocation recorded"
//	@Failure		400		{object}	utils.Response				"Invalid request"
//	@Failure		404		{object}	utils.Response				"Credit or account not found"
//	@Failure		409		{object}	utils.Response				"Credit not pending"
//	@Failure		422		{object}	utils.Response				"Account not eligible"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/allocations [post]
func (h *AllocationHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	var req dto.AllocateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	operatorID := auth.AccountIDFromContext(r.Context())
	allocation, entry, err := h.allocationService.Allocate(
		r.Context(),
		req.CreditUUID,
		req.AccountUUID,
		domain.DiscountType(req.DiscountType),
		req.DiscountValue,
		operatorID,
		req.Notes,
	)
	if err != nil {
		respondAllocationError(w, err)
		return
	}

	resp := allocationToDTO(allocation)
	resp.BalanceAfter = entry.BalanceAfter
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// GetAllocations godoc
//
//	@Summary		List allocations
//	@Description	Operators see all allocations, optionally filtered by account. Holders see their own.
//	@Tags			Allocations
//	@Security		BearerAuth
//	@Produce		json
//	@Param			account	query		string	false	"Account UUID filter (operators only)"
//	@Success		200		{array}		dto.AllocationResponseDTO	"Allocations"
//	@Failure		401		{object}	utils.Response				"Unauthorized"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/allocations [get]
func (h *AllocationHandler) GetAllocations(w http.ResponseWriter, r *http.Request) {
	limit, offset := utils.Pagination(r, 20)

	actor, err := h.accounts.GetAccountByID(r.Context(), auth.AccountIDFromContext(r.Context()))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var accountFilter *int
	if actor.Role == domain.RoleOperator {
		if accountUUID := r.URL.Query().Get("account"); accountUUID != "" {
			filtered, err := h.accounts.GetAccount(r.Context(), accountUUID)
			if err != nil {
				utils.RespondWithError(w, http.StatusNotFound, "Account not found")
				return
			}
			accountFilter = &filtered.ID
		}
	} else {
		accountFilter = &actor.ID
	}

	allocations, err := h.allocationService.GetAllocations(r.Context(), accountFilter, limit, offset)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]dto.AllocationResponseDTO, 0, len(allocations))
	for i := range allocations {
		resp = append(resp, allocationToDTO(&allocations[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GetAllocation godoc
//
//	@Summary		Get an allocation
//	@Tags			Allocations
//	@Security		BearerAuth
//	@Produce		json
//	@Param			uuid	path		string	true	"Allocation UUID"
//	@Success		200		{object}	dto.AllocationResponseDTO	"Allocation"
//	@Failure		404		{object}	utils.Response				"Allocation not found"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/allocations/{uuid} [get]
func (h *AllocationHandler) GetAllocation(w http.ResponseWriter, r *http.Request) {
	allocation, err := h.allocationService.GetAllocation(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Allocation not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, allocationToDTO(allocation))
}

func respondAllocationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, allocationservice.ErrCreditNotFound) || errors.Is(err, domain.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, allocationservice.ErrAccountNotEligible):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrInvalidState) || errors.Is(err, domain.ErrConflict):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrValidation):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func allocationToDTO(a *domain.Allocation) dto.AllocationResponseDTO {
	return dto.AllocationResponseDTO{
		UUID:           a.UUID,
		CreditUUID:     a.CreditUUID,
		AccountUUID:    a.AccountUUID,
		GrossAmount:    a.GrossAmount,
		DiscountType:   string(a.DiscountType),
		DiscountValue:  a.DiscountValue,
		DiscountAmount: a.DiscountAmount,
		NetAmount:      a.NetAmount,
		CompanyMargin:  a.CompanyMargin,
		Notes:          a.Notes,
		AllocatedAt:    a.AllocatedAt.Format(time.RFC3339),
	}
}
