package utils

import (
	"context"
	"encoding/json"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// PaymentGateway is the subset of the Paystack transaction API the payment
// flow relies on.
type PaymentGateway interface {
	InitializeTransaction(ctx context.Context, req InitializeTransactionRequest) (*InitializeTransactionData, error)
	VerifyTransaction(ctx context.Context, reference string) (*VerifyTransactionData, error)
}

type InitializeTransactionRequest struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"` // minor units
	Reference   string `json:"reference"`
	Currency    string `json:"currency,omitempty"`
	CallbackURL string `json:"callback_url,omitempty"`
}

type InitializeTransactionData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type VerifyTransactionData struct {
	Status          string          `json:"status"` // success, failed, abandoned, ...
	Reference       string          `json:"reference"`
	Amount          int64           `json:"amount"`
	Currency        string          `json:"currency"`
	GatewayResponse string          `json:"gateway_response"`
	PaidAt          string          `json:"paid_at"`
	Raw             json.RawMessage `json:"-"`
}

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// PaystackClient talks to the Paystack REST API.
type PaystackClient struct {
	client *resty.Client
}

var _ PaymentGateway = (*PaystackClient)(nil)

func NewPaystackClient(baseURL, secretKey string) *PaystackClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(secretKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
	return &PaystackClient{client: client}
}

func (p *PaystackClient) InitializeTransaction(ctx context.Context, req InitializeTransactionRequest) (*InitializeTransactionData, error) {
	var env paystackEnvelope
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&env).
		SetError(&env).
		Post("/transaction/initialize")
	if err != nil {
		return nil, errors.Wrap(err, "paystack initialize")
	}
	if resp.IsError() || !env.Status {
		return nil, errors.Errorf("paystack initialize rejected (%d): %s", resp.StatusCode(), env.Message)
	}

	var data InitializeTransactionData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, errors.Wrap(err, "paystack initialize: decode data")
	}
	if data.AuthorizationURL == "" {
		return nil, errors.New("paystack initialize: missing authorization_url")
	}
	return &data, nil
}

// VerifyTransaction fetches the transaction state. A non-success payment is
// reported through Status, not as an error; errors mean the gateway could not
// answer.
func (p *PaystackClient) VerifyTransaction(ctx context.Context, reference string) (*VerifyTransactionData, error) {
	var env paystackEnvelope
	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&env).
		SetError(&env).
		Get("/transaction/verify/" + url.PathEscape(reference))
	if err != nil {
		return nil, errors.Wrap(err, "paystack verify")
	}
	if resp.StatusCode() >= 500 {
		return nil, errors.Errorf("paystack verify: upstream status %d", resp.StatusCode())
	}
	if !env.Status || len(env.Data) == 0 || string(env.Data) == "null" {
		return &VerifyTransactionData{Status: "failed", Reference: reference, GatewayResponse: env.Message}, nil
	}

	var data VerifyTransactionData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, errors.Wrap(err, "paystack verify: decode data")
	}
	data.Raw = env.Data
	return &data, nil
}

// ToMinorUnits converts a decimal price into integer minor currency units.
func ToMinorUnits(amount float64) int64 {
	if amount <= 0 {
		return 0
	}
	return int64(math.Round(amount * 100))
}
