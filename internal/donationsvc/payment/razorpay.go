package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://api.razorpay.com/v1"

// OrderRequest is the body of POST /orders. Amount is in paise.
type OrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type Order struct {
	ID       string `json:"id"`
	Entity   string `json:"entity"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

type RazorpayClient struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

func NewRazorpayClient(keyID, keySecret, baseURL string, timeout time.Duration) *RazorpayClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &RazorpayClient{
		keyID:      keyID,
		keySecret:  keySecret,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// KeyID is the public key embedded in the checkout page.
func (c *RazorpayClient) KeyID() string {
	return c.keyID
}

func (c *RazorpayClient) KeySecret() string {
	return c.keySecret
}

func (c *RazorpayClient) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	httpReq.SetBasicAuth(c.keyID, c.keySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read order response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("create order: %s: %s", apiErr.Error.Code, apiErr.Error.Description)
		}
		return nil, fmt.Errorf("create order: unexpected status %d", resp.StatusCode)
	}

	order := &Order{}
	if err := json.Unmarshal(raw, order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("create order: response without order id")
	}
	return order, nil
}

var (
	ErrAmountOutOfRange = errors.New("amount out of range")

	maxPaise = decimal.NewFromInt(math.MaxInt64)
	minPaise = decimal.NewFromInt(math.MinInt64)
)

// ToPaise converts a rupee amount to whole paise, rounding half away from
// zero. Amounts whose paise value does not fit an int64 are rejected.
func ToPaise(amount decimal.Decimal) (int64, error) {
	paise := amount.Shift(2).Round(0)
	if paise.GreaterThan(maxPaise) || paise.LessThan(minPaise) {
		return 0, fmt.Errorf("%w: %s", ErrAmountOutOfRange, amount)
	}
	return paise.IntPart(), nil
}

// Receipt builds the receipt reference sent with every order.
func Receipt(at time.Time) string {
	return fmt.Sprintf("receipt_order_%d", at.UnixMilli())
}
