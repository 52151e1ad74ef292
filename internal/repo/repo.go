package repo

import (
	"github.com/brpay/pixledger/internal/pg"
	accountrepo "github.com/brpay/pixledger/internal/repo/account-repo"
	allocationrepo "github.com/brpay/pixledger/internal/repo/allocation-repo"
	auditrepo "github.com/brpay/pixledger/internal/repo/audit-repo"
	creditrepo "github.com/brpay/pixledger/internal/repo/credit-repo"
	ledgerrepo "github.com/brpay/pixledger/internal/repo/ledger-repo"
	outboundrepo "github.com/brpay/pixledger/internal/repo/outbound-repo"
)

type Repositories struct {
	AccountRepo    *accountrepo.Repository
	CreditRepo     *creditrepo.Repository
	AllocationRepo *allocationrepo.Repository
	LedgerRepo     *ledgerrepo.Repository
	OutboundRepo   *outboundrepo.Repository
	AuditRepo      *auditrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		AccountRepo:    accountrepo.New(conn),
		CreditRepo:     creditrepo.New(conn),
		AllocationRepo: allocationrepo.New(conn),
		LedgerRepo:     ledgerrepo.New(conn, txManager),
		OutboundRepo:   outboundrepo.New(conn),
		AuditRepo:      auditrepo.New(conn),
	}
}
