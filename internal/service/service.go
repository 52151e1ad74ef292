package service

import (
	"github.com/brpay/pixledger/internal/handlers/allocations"
	"github.com/brpay/pixledger/internal/handlers/auth"
	"github.com/brpay/pixledger/internal/handlers/credits"
	"github.com/brpay/pixledger/internal/handlers/ledger"
	"github.com/brpay/pixledger/internal/handlers/outbound"

	pkgauth "github.com/brpay/pixledger/pkg/auth"
	"github.com/brpay/pixledger/pkg/clients"
	"github.com/brpay/pixledger/pkg/metrics"

	"github.com/brpay/pixledger/internal/config"
	"github.com/brpay/pixledger/internal/gateway"
	"github.com/brpay/pixledger/internal/notify"
	"github.com/brpay/pixledger/internal/pg"
	"github.com/brpay/pixledger/internal/repo"
	"github.com/brpay/pixledger/internal/service/allocationservice"
	"github.com/brpay/pixledger/internal/service/authservice"
	"github.com/brpay/pixledger/internal/service/creditservice"
	"github.com/brpay/pixledger/internal/service/ledgerservice"
	"github.com/brpay/pixledger/internal/service/outboundservice"
)

type Services struct {
	AuthService       auth.Service
	CreditService     credits.Service
	AllocationService allocations.Service
	LedgerService     ledger.Service
	OutboundService   outbound.Service

	Accounts   *authservice.Service
	Ledger     *ledgerservice.Service
	Outbound   *outboundservice.Service
	JWTService pkgauth.JWTServiceInterface
	Collector  *metrics.Collector
}

func New(cfg *config.Config, repo *repo.Repositories, txManager pg.TXManager) *Services {
	collector := metrics.NewCollector()
	jwtService := pkgauth.NewJWTService(cfg.JWTSecret)
	gatewayClient := gateway.NewHTTPGateway(cfg.GatewayAddress, clients.NewHTTPClient())
	notifier := notify.NewLogNotifier()

	authService := authservice.New(repo.AccountRepo, repo.AuditRepo, &pkgauth.HashService{}, jwtService, txManager)
	creditService := creditservice.New(repo.CreditRepo, repo.AuditRepo, txManager, collector)
	allocationService := allocationservice.New(repo.CreditRepo, repo.AccountRepo, repo.AllocationRepo, repo.LedgerRepo, repo.AuditRepo, txManager, collector)
	ledgerService := ledgerservice.New(repo.LedgerRepo, repo.AccountRepo)
	outboundService := outboundservice.New(repo.OutboundRepo, repo.AccountRepo, repo.LedgerRepo, repo.AuditRepo, gatewayClient, notifier, txManager, collector)

	return &Services{
		AuthService:       authService,
		CreditService:     creditService,
		AllocationService: allocationService,
		LedgerService:     ledgerService,
		OutboundService:   outboundService,
		Accounts:          authService,
		Ledger:            ledgerService,
		Outbound:          outboundService,
		JWTService:        jwtService,
		Collector:         collector,
	}
}
