package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/internal/dto"
	"github.com/brpay/pixledger/internal/service/authservice"
	"github.com/brpay/pixledger/pkg/utils"
)

type Service interface {
	Register(ctx context.Context, email, password, fullName, document string) (*domain.Account, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
	GenerateToken(account *domain.Account) (string, error)
}

type AuthHandler struct {
	authService Service
	validate    *validator.Validate
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// Register godoc
//
//	@Summary		Register a holder account
//	@Description	Create a new active holder account and return an access token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterRequestDTO	true	"Registration payload"
//	@Success		200		{object}	dto.AuthResponseDTO		"Account created"
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		409		{object}	utils.Response			"Email already registered"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.authService.Register(r.Context(), req.Email, req.Password, req.FullName, req.Document)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrEmailTaken):
			utils.RespondWithError(w, http.StatusConflict, "Email already registered")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	token, err := h.authService.GenerateToken(account)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.AuthResponseDTO{
		AccountUUID: account.UUID,
		Token:       token,
		Role:        string(account.Role),
	})
}

// Login godoc
//
//	@Summary		Authenticate an account
//	@Description	Exchange email and password for an access token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login payload"
//	@Success		200		{object}	dto.AuthResponseDTO	"Authenticated"
//	@Failure		400		{object}	utils.Response		"Invalid request body"
//	@Failure		401		{object}	utils.Response		"Invalid credentials"
//	@Failure		403		{object}	utils.Response		"Account blocked"
//	@Failure		500		{object}	utils.Response		"Internal server error"
//	@Router			/api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.authService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrAccountBlocked):
			utils.RespondWithError(w, http.StatusForbidden, "Account blocked")
		default:
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		}
		return
	}

	token, err := h.authService.GenerateToken(account)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.AuthResponseDTO{
		AccountUUID: account.UUID,
		Token:       token,
		Role:        string(account.Role),
	})
}
