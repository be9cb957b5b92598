package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bambora-bridge/internal/checkout"
	"bambora-bridge/internal/logger"
	"bambora-bridge/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultMerchantURL    = "https://merchant-v1.api-eu.bambora.com"
	defaultCheckoutURL    = "https://api.v1.checkout.bambora.com"
	defaultTransactionURL = "https://transaction-v1.api-eu.bambora.com"

	// Money-moving calls get a strict outbound budget; everything else a
	// general one.
	limitStrict   = rate.Limit(2)
	burstStrict   = 5
	limitGeneral  = rate.Limit(10)
	burstGeneral  = 20
	clientTimeout = 15 * time.Second
)

// APIKey builds the gateway API key from its three parts. The gateway expects
// base64("access@merchant:secret") in a Basic Authorization header.
func APIKey(accessToken, merchantNumber, secretToken string) string {
	raw := fmt.Sprintf("%s@%s:%s", accessToken, merchantNumber, secretToken)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// Client is a typed client for the Bambora Checkout merchant, checkout and
// transaction APIs. One instance is shared per store; the API key is resolved
// once at construction.
type Client struct {
	httpClient     *http.Client
	apiKey         string
	merchantURL    string
	checkoutURL    string
	transactionURL string
	opLimiter      *rate.Limiter
	limiter        *rate.Limiter
	stats          metrics.GatewayStats
}

func NewClient(apiKey string) *Client {
	if apiKey == "" {
		logger.L().Warn("Bambora API key is empty")
	}

	return &Client{
		httpClient:     &http.Client{Timeout: clientTimeout},
		apiKey:         apiKey,
		merchantURL:    defaultMerchantURL,
		checkoutURL:    defaultCheckoutURL,
		transactionURL: defaultTransactionURL,
		opLimiter:      rate.NewLimiter(limitStrict, burstStrict),
		limiter:        rate.NewLimiter(limitGeneral, burstGeneral),
	}
}

// Stats reports the client's outbound call counters.
func (c *Client) Stats() metrics.Snapshot {
	return c.stats.Snapshot()
}

// SetCheckout creates a hosted payment session for the given request.
func (c *Client) SetCheckout(ctx context.Context, req *checkout.Request) (*CheckoutResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var res CheckoutResponse
	if err := c.do(ctx, http.MethodPost, c.checkoutURL+"/checkout", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// PaymentTypes lists the payment types available for a currency and amount.
func (c *Client) PaymentTypes(ctx context.Context, currency string, amountMinorUnits int64) (*PaymentTypesResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/paymenttypes?currency=%s&amount=%d", c.merchantURL, currency, amountMinorUnits)
	var res PaymentTypesResponse
	if err := c.do(ctx, http.MethodGet, url, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Transaction fetches the gateway transaction with the given id.
func (c *Client) Transaction(ctx context.Context, transactionID string) (*TransactionResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/transactions/%s", c.merchantURL, transactionID)
	var res TransactionResponse
	if err := c.do(ctx, http.MethodGet, url, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

type operationRequest struct {
	Amount       int64           `json:"amount"`
	Currency     string          `json:"currency"`
	InvoiceLines []checkout.Line `json:"invoicelines,omitempty"`
}

// Capture settles all or part of an authorized transaction.
func (c *Client) Capture(ctx context.Context, reference string, amountMinorUnits int64, currency string, lines []checkout.Line) (*OperationResponse, error) {
	url := fmt.Sprintf("%s/transactions/%s/capture", c.transactionURL, reference)
	return c.operation(ctx, url, &operationRequest{Amount: amountMinorUnits, Currency: currency, InvoiceLines: lines})
}

// Credit refunds all or part of a captured transaction.
func (c *Client) Credit(ctx context.Context, reference string, amountMinorUnits int64, currency string, lines []checkout.Line) (*OperationResponse, error) {
	url := fmt.Sprintf("%s/transactions/%s/credit", c.transactionURL, reference)
	return c.operation(ctx, url, &operationRequest{Amount: amountMinorUnits, Currency: currency, InvoiceLines: lines})
}

// Delete voids an authorized, uncaptured transaction.
func (c *Client) Delete(ctx context.Context, reference string) (*OperationResponse, error) {
	url := fmt.Sprintf("%s/transactions/%s/delete", c.transactionURL, reference)
	return c.operation(ctx, url, nil)
}

func (c *Client) operation(ctx context.Context, url string, body *operationRequest) (*OperationResponse, error) {
	if err := c.opLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	var res OperationResponse
	var payload interface{}
	if body != nil {
		payload = body
	}
	if err := c.do(ctx, http.MethodPost, url, payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) do(ctx context.Context, method, url string, body, out interface{}) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", method),
		zap.String("url", url),
	)

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			log.Error("Failed to marshal gateway request", zap.Error(err))
			return err
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return err
	}

	req.Header.Set("Authorization", "Basic "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.stats.Requests.Inc()
	timer := metrics.StartTimer()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.stats.Failures.Inc()
		log.Error("Gateway request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return fmt.Errorf("failed to read gateway response: %w", err)
	}

	log.Debug("Gateway call completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", timer.Duration()),
	)

	// The gateway reports business errors through meta on 2xx responses;
	// anything else is a transport-level failure.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.stats.Failures.Inc()
		log.Error("Gateway returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return fmt.Errorf("bambora error: %s", string(bodyBytes))
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		log.Error("Failed decoding gateway response", zap.Error(err))
		return err
	}

	return nil
}
