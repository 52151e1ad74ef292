package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/brpay/pixledger/docs"
	adminhandlers "github.com/brpay/pixledger/internal/handlers/admin"
	allocationhandlers "github.com/brpay/pixledger/internal/handlers/allocations"
	authhandlers "github.com/brpay/pixledger/internal/handlers/auth"
	credithandlers "github.com/brpay/pixledger/internal/handlers/credits"
	ledgerhandlers "github.com/brpay/pixledger/internal/handlers/ledger"
	outboundhandlers "github.com/brpay/pixledger/internal/handlers/outbound"
	"github.com/brpay/pixledger/internal/repo"
	"github.com/brpay/pixledger/internal/service"
	"github.com/brpay/pixledger/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type CreditHandler interface {
	RegisterCredit(w http.ResponseWriter, r *http.Request)
	Webhook(w http.ResponseWriter, r *http.Request)
	GetPending(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Refund(w http.ResponseWriter, r *http.Request)
}

type AllocationHandler interface {
	Simulate(w http.ResponseWriter, r *http.Request)
	Allocate(w http.ResponseWriter, r *http.Request)
	GetAllocation(w http.ResponseWriter, r *http.Request)
	GetAllocations(w http.ResponseWriter, r *http.Request)
}

type LedgerHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetExtract(w http.ResponseWriter, r *http.Request)
	GetEntries(w http.ResponseWriter, r *http.Request)
}

type OutboundHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	GetPending(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
	Webhook(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	ListAccounts(w http.ResponseWriter, r *http.Request)
	BlockAccount(w http.ResponseWriter, r *http.Request)
	UnblockAccount(w http.ResponseWriter, r *http.Request)
	ActivateAccount(w http.ResponseWriter, r *http.Request)
	VerifyChain(w http.ResponseWriter, r *http.Request)
	GetAuditLog(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler       AuthHandler
	CreditHandler     CreditHandler
	AllocationHandler AllocationHandler
	LedgerHandler     LedgerHandler
	OutboundHandler   OutboundHandler
	AdminHandler      AdminHandler

	jwtService auth.JWTServiceInterface
	metrics    http.Handler
}

func New(s *service.Services, repo *repo.Repositories) *Handlers {
	return &Handlers{
		AuthHandler:       authhandlers.New(s.AuthService),
		CreditHandler:     credithandlers.New(s.CreditService, s.Accounts),
		AllocationHandler: allocationhandlers.New(s.AllocationService, s.Accounts),
		LedgerHandler:     ledgerhandlers.New(s.LedgerService, s.Accounts),
		OutboundHandler:   outboundhandlers.New(s.OutboundService, s.Accounts),
		AdminHandler:      adminhandlers.New(s.Accounts, s.Ledger, repo.AuditRepo),
		jwtService:        s.JWTService,
		metrics:           s.Collector.Handler(),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Method(http.MethodGet, "/metrics", h.metrics)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.AuthHandler.Register)
			r.Post("/login", h.AuthHandler.Login)
		})

		// Gateway callbacks carry no bearer token.
		r.Post("/credits/webhook", h.CreditHandler.Webhook)
		r.Post("/outbound/webhook", h.OutboundHandler.Webhook)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.jwtService))

			r.Get("/ledger/balance", h.LedgerHandler.GetBalance)
			r.Get("/ledger/extract", h.LedgerHandler.GetExtract)
			r.Get("/ledger/entries", h.LedgerHandler.GetEntries)

			r.Post("/outbound", h.OutboundHandler.Request)
			r.Get("/outbound/my", h.OutboundHandler.GetMyRequests)
			r.Get("/outbound/{uuid}", h.OutboundHandler.Get)
			r.Post("/outbound/{uuid}/cancel", h.OutboundHandler.Cancel)

			r.Get("/allocations", h.AllocationHandler.GetAllocations)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireOperator)

				r.Get("/outbound/pending", h.OutboundHandler.GetPending)
				r.Post("/outbound/{uuid}/process", h.OutboundHandler.Process)

				r.Post("/credits", h.CreditHandler.RegisterCredit)
				r.Get("/credits/pending", h.CreditHandler.GetPending)
				r.Get("/credits/{uuid}", h.CreditHandler.Get)
				r.Post("/credits/{uuid}/cancel", h.CreditHandler.Cancel)
				r.Post("/credits/{uuid}/refund", h.CreditHandler.Refund)

				r.Post("/allocations", h.AllocationHandler.Allocate)
				r.Post("/allocations/simulate", h.AllocationHandler.Simulate)
				r.Get("/allocations/{uuid}", h.AllocationHandler.GetAllocation)

				r.Get("/admin/accounts", h.AdminHandler.ListAccounts)
				r.Post("/admin/accounts/{uuid}/block", h.AdminHandler.BlockAccount)
				r.Post("/admin/accounts/{uuid}/unblock", h.AdminHandler.UnblockAccount)
				r.Post("/admin/accounts/{uuid}/activate", h.AdminHandler.ActivateAccount)
				r.Get("/admin/accounts/{uuid}/verify-chain", h.AdminHandler.VerifyChain)
				r.Get("/admin/audit", h.AdminHandler.GetAuditLog)
			})
		})
	})

	return r
}
