// Package payments checks charge outcomes with the external payment
// provider. Card and QR terminals report a charge reference; the provider
// is the source of truth for whether that charge actually settled.
package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
)

const requestTimeout = 10 * time.Second

type verifyResponse struct {
	Verified bool `json:"verified"`
}

// HTTPPaymentVerifier implements ports.PaymentVerifier against the payment
// provider's REST endpoint.
type HTTPPaymentVerifier struct {
	baseURL string
	client  *http.Client
}

// NewHTTPPaymentVerifier creates a verifier for the provider at baseURL.
func NewHTTPPaymentVerifier(baseURL string) (*HTTPPaymentVerifier, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("payment provider base url")
	}

	return &HTTPPaymentVerifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}, nil
}

// Verify asks the provider whether the referenced charge settled. A false
// verdict is a definitive decline, not an error.
func (v *HTTPPaymentVerifier) Verify(ctx context.Context, orderID kernel.UUID, reference string) (bool, error) {
	if reference == "" {
		return false, errs.NewValueIsRequiredError("charge reference")
	}

	endpoint := fmt.Sprintf("%s/api/v1/charges/%s/verify?order_id=%s",
		v.baseURL, url.PathEscape(reference), url.QueryEscape(orderID.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build verify request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("call payment provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var verdict verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return false, fmt.Errorf("decode verify response: %w", err)
	}

	return verdict.Verified, nil
}

// TrustingPaymentVerifier is used when no payment provider is configured;
// single-terminal cafés confirm card payments on the operator's word just
// like cash.
type TrustingPaymentVerifier struct{}

// NewTrustingPaymentVerifier creates a verifier that approves every charge.
func NewTrustingPaymentVerifier() *TrustingPaymentVerifier {
	return &TrustingPaymentVerifier{}
}

// Verify approves unconditionally.
func (v *TrustingPaymentVerifier) Verify(context.Context, kernel.UUID, string) (bool, error) {
	return true, nil
}
