package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// MPItem is one line of the checkout preference sent to Mercado Pago.
type MPItem struct {
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// MPPreferenceRequest creates a checkout preference; ExternalReference
// carries our pedido id so the webhook can be correlated back.
type MPPreferenceRequest struct {
	Items             []MPItem `json:"items"`
	ExternalReference string   `json:"external_reference"`
	NotificationURL   string   `json:"notification_url,omitempty"`
}

// MPPreferenceResponse is the subset of the gateway response we consume.
type MPPreferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// MPClient talks to the Mercado Pago preferences API. Callers wrap requests
// in the circuit breaker so a downed gateway fails fast.
type MPClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewMPClient(baseURL, accessToken string) *MPClient {
	return &MPClient{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// CrearPreferencia registers a checkout preference and returns the redirect
// URL (init_point) the customer must open to pay.
func (c *MPClient) CrearPreferencia(ctx context.Context, pref MPPreferenceRequest) (*MPPreferenceResponse, error) {
	body, err := json.Marshal(pref)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: marshal preference: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("mercadopago: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("mercadopago: gateway returned %d", resp.StatusCode)
	}

	var result MPPreferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("mercadopago: decode response: %w", err)
	}
	return &result, nil
}
