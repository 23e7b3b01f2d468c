package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stayinn/internal/modules/payment"

	"github.com/google/uuid"
)

const DefaultBaseURL = "https://api.stripe.com"

// Client talks to the Stripe REST API directly: form-encoded requests,
// bearer auth, JSON responses. Amounts cross this boundary in major
// currency units and are converted to Stripe's subunits here.
type Client struct {
	secretKey     string
	webhookSecret string
	baseURL       string
	httpClient    *http.Client
}

func NewClient(secretKey, webhookSecret, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		secretKey:     secretKey,
		webhookSecret: webhookSecret,
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
}

const subunitFactor = 100

type intentPayload struct {
	ID            string            `json:"id"`
	ClientSecret  string            `json:"client_secret"`
	Status        string            `json:"status"`
	Amount        int64             `json:"amount"`
	AmountRecv    int64             `json:"amount_received"`
	Currency      string            `json:"currency"`
	PaymentMethod string            `json:"payment_method"`
	LatestCharge  string            `json:"latest_charge"`
	Metadata      map[string]string `json:"metadata"`
}

func (p *intentPayload) toIntent() *payment.Intent {
	amount := p.Amount
	if p.AmountRecv > 0 {
		amount = p.AmountRecv
	}
	return &payment.Intent{
		ID:            p.ID,
		ClientSecret:  p.ClientSecret,
		Status:        p.Status,
		Amount:        amount / subunitFactor,
		Currency:      p.Currency,
		PaymentMethod: p.PaymentMethod,
		LatestCharge:  p.LatestCharge,
		Metadata:      p.Metadata,
	}
}

func (c *Client) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*payment.Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount*subunitFactor, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	for k, v := range metadata {
		form.Set("metadata["+k+"]", v)
	}

	var out intentPayload
	if err := c.do(ctx, http.MethodPost, "/v1/payment_intents", form, uuid.NewString(), &out); err != nil {
		return nil, err
	}
	return out.toIntent(), nil
}

func (c *Client) RetrieveIntent(ctx context.Context, id string) (*payment.Intent, error) {
	var out intentPayload
	if err := c.do(ctx, http.MethodGet, "/v1/payment_intents/"+url.PathEscape(id), nil, "", &out); err != nil {
		return nil, err
	}
	return out.toIntent(), nil
}

func (c *Client) Refund(ctx context.Context, intentID string, amount int64, reason string) (*payment.RefundResult, error) {
	form := url.Values{}
	form.Set("payment_intent", intentID)
	form.Set("amount", strconv.FormatInt(amount*subunitFactor, 10))
	form.Set("reason", "requested_by_customer")
	if reason != "" {
		form.Set("metadata[reason]", reason)
	}

	var out struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Amount int64  `json:"amount"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/refunds", form, refundIdempotencyKey(intentID, amount), &out); err != nil {
		return nil, err
	}
	return &payment.RefundResult{ID: out.ID, Status: out.Status, Amount: out.Amount / subunitFactor}, nil
}

// refundIdempotencyKey is derived from the intent and amount so that two
// concurrent refund attempts for the same booking collapse into one charge
// reversal on Stripe's side.
func refundIdempotencyKey(intentID string, amount int64) string {
	name := "refund:" + intentID + ":" + strconv.FormatInt(amount, 10)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, idemKey string, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if idemKey != "" {
		// Stripe dedupes retried writes on this key.
		req.Header.Set("Idempotency-Key", idemKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("stripe response read failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Type    string `json:"type"`
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe %s: %s (%s)", path, apiErr.Error.Message, apiErr.Error.Code)
		}
		return fmt.Errorf("stripe %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.Unmarshal(data, out)
}
