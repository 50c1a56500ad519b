// Package inventory talks to the inventory service that owns ingredient
// stock levels. The lifecycle engine pushes two kinds of adjustment:
// deductions when a draft is finalized, and restocks when a cancellation
// or return puts sellable units back.
package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"pos/internal/core/ports"
	"pos/internal/pkg/errs"
)

const requestTimeout = 10 * time.Second

type adjustmentRequest struct {
	Lines []adjustmentLine `json:"lines"`
}

type adjustmentLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// HTTPStockAdjuster implements ports.StockAdjuster against the inventory
// service's REST endpoints. Callers treat failures as best-effort; the
// adapter itself reports them faithfully.
type HTTPStockAdjuster struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPStockAdjuster creates an adjuster for the inventory service at
// baseURL.
func NewHTTPStockAdjuster(baseURL string, logger *slog.Logger) (*HTTPStockAdjuster, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("inventory base url")
	}

	return &HTTPStockAdjuster{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logger.With("component", "inventory"),
	}, nil
}

// Deduct posts the consumed quantities to the inventory service. An empty
// line set is a no-op.
func (a *HTTPStockAdjuster) Deduct(ctx context.Context, lines []ports.StockLine) error {
	return a.post(ctx, "/api/v1/stock/deduct", "stock deducted", lines)
}

// Restock posts the returned quantities to the inventory service. An empty
// line set is a no-op.
func (a *HTTPStockAdjuster) Restock(ctx context.Context, lines []ports.StockLine) error {
	return a.post(ctx, "/api/v1/stock/restock", "stock restocked", lines)
}

func (a *HTTPStockAdjuster) post(ctx context.Context, path, logMsg string, lines []ports.StockLine) error {
	if len(lines) == 0 {
		return nil
	}

	payload := adjustmentRequest{Lines: make([]adjustmentLine, 0, len(lines))}
	for _, line := range lines {
		payload.Lines = append(payload.Lines, adjustmentLine{
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal stock adjustment: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build stock adjustment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("call inventory service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("inventory service returned status %d", resp.StatusCode)
	}

	a.logger.Debug(logMsg, "lines", len(lines))
	return nil
}

// DisabledStockAdjuster is used when no inventory service is configured.
// Adjustments are logged and acknowledged so the lifecycle flows behave
// identically with and without inventory integration.
type DisabledStockAdjuster struct {
	logger *slog.Logger
}

// NewDisabledStockAdjuster creates a no-op adjuster.
func NewDisabledStockAdjuster(logger *slog.Logger) *DisabledStockAdjuster {
	return &DisabledStockAdjuster{logger: logger.With("component", "inventory")}
}

// Deduct logs the skipped adjustment and succeeds.
func (a *DisabledStockAdjuster) Deduct(_ context.Context, lines []ports.StockLine) error {
	a.logger.Debug("inventory integration disabled, deduct skipped", "lines", len(lines))
	return nil
}

// Restock logs the skipped adjustment and succeeds.
func (a *DisabledStockAdjuster) Restock(_ context.Context, lines []ports.StockLine) error {
	a.logger.Debug("inventory integration disabled, restock skipped", "lines", len(lines))
	return nil
}
