// Package paypal wraps the PayPal v2 Checkout API: the ledger only needs to
// create a capture-intent order and to capture it later. Everything else
// (approval UI, webhooks) lives on the client side.
package paypal

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	ClientId string `envconfig:"PAYPAL_CLIENT_ID" required:"true"`
	Secret   string `envconfig:"PAYPAL_SECRET" required:"true"`
	Url      string `envconfig:"PAYPAL_URL" default:"https://api-m.sandbox.paypal.com"`
	Timeout  int    `envconfig:"PAYPAL_TIMEOUT" default:"30"` // seconds
}

func LoadConfig() (c *Config, err error) {
	c = &Config{}
	err = envconfig.Process("", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CaptureResult is the only thing the ledger consumes from the provider.
type CaptureResult struct {
	OrderId  string
	Status   string
	Amount   string
	Currency string
}

// Provider is the boundary the ledger engine talks to. The default
// implementation is Client; tests substitute their own.
type Provider interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency string) (orderId string, err error)
	CaptureOrder(ctx context.Context, orderId string) (*CaptureResult, error)
}

type Client struct {
	cfg  *Config
	http *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewClient(cfg *Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.cfg.Url+"/v1/oauth2/token",
			strings.NewReader(url.Values{"grant_type": {"client_credentials"}}.Encode()))
		if err != nil {
			return backoff.Permanent(err)
		}
		credentials := base64.StdEncoding.EncodeToString([]byte(c.cfg.ClientId + ":" + c.cfg.Secret))
		req.Header.Set("Authorization", "Basic "+credentials)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return fmt.Errorf("paypal token endpoint returned %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("paypal token endpoint returned %d", resp.StatusCode))
		}

		token := tokenResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
			return backoff.Permanent(err)
		}
		c.accessToken = token.AccessToken
		// refresh a minute early
		c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn-60) * time.Second)
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx))
	if err != nil {
		return "", err
	}
	return c.accessToken, nil
}

type orderResponse struct {
	Id            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				Amount struct {
					CurrencyCode string `json:"currency_code"`
					Value        string `json:"value"`
				} `json:"amount"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

func (c *Client) CreateOrder(ctx context.Context, amount decimal.Decimal, currency string) (string, error) {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return "", err
	}

	body := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{"amount": map[string]string{
				"currency_code": currency,
				"value":         amount.StringFixed(2),
			}},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Url+"/v2/checkout/orders", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("paypal order creation returned %d", resp.StatusCode)
	}

	order := orderResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return "", err
	}
	if order.Id == "" {
		return "", fmt.Errorf("paypal order creation returned no order id")
	}
	return order.Id, nil
}

func (c *Client) CaptureOrder(ctx context.Context, orderId string) (*CaptureResult, error) {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	captureUrl := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.cfg.Url, url.PathEscape(orderId))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, captureUrl, bytes.NewReader([]byte("{}")))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("paypal order capture returned %d", resp.StatusCode)
	}

	order := orderResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, err
	}

	result := &CaptureResult{
		OrderId: order.Id,
		Status:  order.Status,
	}
	if len(order.PurchaseUnits) > 0 && len(order.PurchaseUnits[0].Payments.Captures) > 0 {
		capture := order.PurchaseUnits[0].Payments.Captures[0].Amount
		result.Amount = capture.Value
		result.Currency = capture.CurrencyCode
	}
	return result, nil
}
