package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/brpay/pixledger/internal/domain"
	"github.com/brpay/pixledger/pkg/clients"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

// Transfer statuses as reported by the payment gateway.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusRejected   = "rejected"
)

// TransferRequest instructs the gateway to send money out of the omnibus
// account. CorrelationID is our outbound request identifier; the gateway
// echoes it back on every status report.
type TransferRequest struct {
	CorrelationID    string          `json:"correlation_id"`
	Amount           decimal.Decimal `json:"amount"`
	RecipientKey     string          `json:"recipient_key"`
	RecipientKeyType string          `json:"recipient_key_type"`
	RecipientName    string          `json:"recipient_name,omitempty"`
}

type TransferResult struct {
	Accepted   bool   `json:"accepted"`
	GatewayRef string `json:"gateway_ref"`
	Message    string `json:"message,omitempty"`
}

type TransferStatus struct {
	CorrelationID string `json:"correlation_id"`
	Status        string `json:"status"`
	ReceiptRef    string `json:"receipt_ref,omitempty"`
	Message       string `json:"message,omitempty"`
}

// Client talks to the external payment gateway.
type Client interface {
	CreateTransfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
	GetTransferStatus(ctx context.Context, correlationID string) (*TransferStatus, error)
}

type HTTPGateway struct {
	url    string
	client clients.HTTPClientI
}

func NewHTTPGateway(url string, client clients.HTTPClientI) *HTTPGateway {
	return &HTTPGateway{
		url:    url,
		client: client,
	}
}

// CreateTransfer submits the outbound instruction. Transport failures are
// retried; a definitive gateway rejection is returned as an unaccepted
// result, not an error.
func (g *HTTPGateway) CreateTransfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	var statusCode int
	var respBody []byte
	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		statusCode, respBody, err = g.client.Post(g.url+"/api/transfers", headers, body)
		if err != nil {
			if attempt < maxRetries {
				time.Sleep(retryInterval * time.Duration(attempt))
				continue
			}
			return nil, fmt.Errorf("%w: gateway unreachable after %d retries: %v", domain.ErrExternalDependency, maxRetries, err)
		}
		break
	}

	switch statusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		var result TransferResult
		if err := json.Unmarshal(respBody, &result); err != nil {
			return nil, fmt.Errorf("failed to parse gateway response: %w", err)
		}
		return &result, nil
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		var result TransferResult
		if err := json.Unmarshal(respBody, &result); err != nil {
			result.Message = string(respBody)
		}
		result.Accepted = false
		return &result, nil
	default:
		zap.L().Error("unexpected gateway status", zap.Int("status", statusCode))
		return nil, fmt.Errorf("%w: gateway returned status %d", domain.ErrExternalDependency, statusCode)
	}
}

// GetTransferStatus polls the gateway for the settlement state of one
// transfer.
func (g *HTTPGateway) GetTransferStatus(ctx context.Context, correlationID string) (*TransferStatus, error) {
	url := g.url + "/api/transfers/" + correlationID

	var statusCode int
	var respBody []byte
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		statusCode, respBody, _, err = g.client.Get(url, nil)
		if err != nil {
			if attempt < maxRetries {
				time.Sleep(retryInterval * time.Duration(attempt))
				continue
			}
			return nil, fmt.Errorf("%w: gateway unreachable after %d retries: %v", domain.ErrExternalDependency, maxRetries, err)
		}
		break
	}

	switch statusCode {
	case http.StatusOK:
		var status TransferStatus
		if err := json.Unmarshal(respBody, &status); err != nil {
			return nil, fmt.Errorf("failed to parse gateway response: %w", err)
		}
		if status.CorrelationID != correlationID {
			return nil, fmt.Errorf("correlation id mismatch: expected %s, got %s", correlationID, status.CorrelationID)
		}
		return &status, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: transfer %s unknown to gateway", domain.ErrNotFound, correlationID)
	default:
		zap.L().Error("unexpected gateway status", zap.Int("status", statusCode), zap.String("correlation_id", correlationID))
		return nil, fmt.Errorf("%w: gateway returned status %d", domain.ErrExternalDependency, statusCode)
	}
}
