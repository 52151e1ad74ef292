package gateway

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/brpay/pixledger/internal/domain"
)

// Settler applies a gateway-reported terminal status to an approved request.
type Settler interface {
	ProcessSettlement(ctx context.Context, correlationID, status, message string) error
}

// UnconfirmedSource lists approved requests whose settlement receipt has not
// arrived yet.
type UnconfirmedSource interface {
	FindUnconfirmed(ctx context.Context, olderThan time.Time, limit int) ([]domain.OutboundRequest, error)
}

var pollingRequests sync.Map

// Watcher reconciles approved transfers whose webhook never arrived by
// polling the gateway's status endpoint.
type Watcher struct {
	gateway      Client
	settler      Settler
	outboundRepo UnconfirmedSource
	workerPool   WorkerPoolI
	limit        int
	graceDelay   time.Duration
	pollInterval time.Duration
}

func NewWatcher(gw Client, settler Settler, outboundRepo UnconfirmedSource) *Watcher {
	return &Watcher{
		gateway:      gw,
		settler:      settler,
		outboundRepo: outboundRepo,
		workerPool:   NewWorkerPool(10),
		limit:        1000,
		graceDelay:   time.Second * 30,
		pollInterval: time.Second * 5,
	}
}

func (w *Watcher) Start(ctx context.Context) {
	zap.L().Info("Settlement watcher started")
	go w.run(ctx)
}

func (w *Watcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping settlement watcher")
			return
		case <-ticker.C:
			w.pollUnconfirmed(ctx)
		}
	}
}

func (w *Watcher) pollUnconfirmed(ctx context.Context) {
	requests, err := w.outboundRepo.FindUnconfirmed(ctx, time.Now().Add(-w.graceDelay), w.limit)
	if err != nil {
		zap.L().Error("Failed to fetch unconfirmed requests", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, request := range requests {
		request := request

		if _, loaded := pollingRequests.LoadOrStore(request.UUID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := w.workerPool.AddTask(ctx, func() error {
				defer pollingRequests.Delete(request.UUID)
				return w.reconcile(ctx, request)
			})
			if err != nil {
				pollingRequests.Delete(request.UUID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error polling settlements", zap.Error(err))
	}
}

func (w *Watcher) reconcile(ctx context.Context, request domain.OutboundRequest) error {
	status, err := w.gateway.GetTransferStatus(ctx, request.UUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Approved on our side but unknown to the gateway: the submit
			// never landed, so the debit has to come back.
			return w.settler.ProcessSettlement(ctx, request.UUID, StatusFailed, "transfer unknown to gateway")
		}
		zap.L().Warn("Gateway status poll failed",
			zap.String("correlation_id", request.UUID),
			zap.Error(err),
		)
		return nil
	}

	if status.Status == StatusProcessing {
		return nil
	}
	return w.settler.ProcessSettlement(ctx, request.UUID, status.Status, status.Message)
}
