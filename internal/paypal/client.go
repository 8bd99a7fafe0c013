package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// ErrUnexpectedStatus возвращается, если PayPal ответил не 2xx.
var ErrUnexpectedStatus = errors.New("paypal: unexpected status")

// Widget - граница с платёжной системой: создание заказа и списание по нему.
type Widget interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error)
}

// Client - REST-клиент PayPal Orders v2.
type Client struct {
	clientID   string
	secret     string
	apiURL     string
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
	now         func() time.Time
}

// NewClient создаёт новый клиент PayPal. apiURL - https://api-m.sandbox.paypal.com
// или https://api-m.paypal.com.
func NewClient(clientID, secret, apiURL string, timeout time.Duration) *Client {
	return &Client{
		clientID:   clientID,
		secret:     secret,
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// token возвращает закэшированный access token, обновляя его за минуту до истечения.
func (c *Client) token(ctx context.Context) (string, error) {
	const op = "paypal.Client.token"

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && c.now().Before(c.expiresAt) {
		return c.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/v1/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tr tokenResponse
	if err := c.do(req, &tr); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	c.accessToken = tr.AccessToken
	c.expiresAt = c.now().Add(time.Duration(tr.ExpiresIn)*time.Second - time.Minute)
	return c.accessToken, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	tok, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: %s: %s", ErrUnexpectedStatus, resp.Status, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// CreateOrder создаёт заказ с intent CAPTURE.
func (c *Client) CreateOrder(ctx context.Context, orderReq OrderRequest) (*Order, error) {
	const op = "paypal.Client.CreateOrder"

	req, err := c.newRequest(ctx, http.MethodPost, "/v2/checkout/orders", orderReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var order Order
	if err := c.do(req, &order); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &order, nil
}

// CaptureOrder списывает средства по подтверждённому покупателем заказу.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	const op = "paypal.Client.CaptureOrder"

	req, err := c.newRequest(ctx, http.MethodPost, "/v2/checkout/orders/"+url.PathEscape(orderID)+"/capture", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var res CaptureResult
	if err := c.do(req, &res); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &res, nil
}
