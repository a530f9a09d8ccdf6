package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kuhlali/chamapro-extend/internal/metrics"
)

const (
	tokenPath        = "/oauth/v1/generate?grant_type=client_credentials"
	stkPushPath      = "/mpesa/stkpush/v1/processrequest"
	b2cPath          = "/mpesa/b2c/v1/paymentrequest"
	tokenExpirySlack = 60 * time.Second
)

const (
	opToken        = "token"
	opCollection   = "collection"
	opDisbursement = "disbursement"
)

// Daraja timestamps are East Africa Time.
var eat = time.FixedZone("EAT", 3*60*60)

type Client struct {
	cfg  Config
	http *http.Client
	now  func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func NewClient(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type stkPushPayload struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type b2cPayload struct {
	InitiatorName      string `json:"InitiatorName"`
	SecurityCredential string `json:"SecurityCredential"`
	CommandID          string `json:"CommandID"`
	Amount             int64  `json:"Amount"`
	PartyA             string `json:"PartyA"`
	PartyB             string `json:"PartyB"`
	Remarks            string `json:"Remarks"`
	QueueTimeOutURL    string `json:"QueueTimeOutURL"`
	ResultURL          string `json:"ResultURL"`
	Occasion           string `json:"Occasion"`
}

type apiResponse struct {
	MerchantRequestID        string `json:"MerchantRequestID"`
	CheckoutRequestID        string `json:"CheckoutRequestID"`
	ConversationID           string `json:"ConversationID"`
	OriginatorConversationID string `json:"OriginatorConversationID"`
	ResponseCode             string `json:"ResponseCode"`
	ResponseDescription      string `json:"ResponseDescription"`
	CustomerMessage          string `json:"CustomerMessage"`
	ErrorCode                string `json:"errorCode"`
	ErrorMessage             string `json:"errorMessage"`
}

type tokenResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresIn   json.RawMessage `json:"expires_in"`
}

// RequestCollection starts an STK push. The returned CheckoutRequestID is the
// correlation id of the later callback.
func (c *Client) RequestCollection(ctx context.Context, req CollectionRequest) Result {
	timestamp := c.now().In(eat).Format("20060102150405")

	payload := stkPushPayload{
		BusinessShortCode: c.cfg.ShortCode,
		Password:          Password(c.cfg.ShortCode, c.cfg.PassKey, timestamp),
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            req.Amount,
		PartyA:            req.Phone,
		PartyB:            c.cfg.ShortCode,
		PhoneNumber:       req.Phone,
		CallBackURL:       c.cfg.CallbackURL + CallbackPath,
		AccountReference:  req.Reference,
		TransactionDesc:   req.Description,
	}

	return c.call(ctx, opCollection, stkPushPath, payload)
}

// RequestDisbursement sends a B2C business payment.
func (c *Client) RequestDisbursement(ctx context.Context, req DisbursementRequest) Result {
	payload := b2cPayload{
		InitiatorName:      c.cfg.InitiatorName,
		SecurityCredential: c.cfg.SecurityCredential,
		CommandID:          "BusinessPayment",
		Amount:             req.Amount,
		PartyA:             c.cfg.ShortCode,
		PartyB:             req.Phone,
		Remarks:            req.Remarks,
		QueueTimeOutURL:    c.cfg.CallbackURL + B2CTimeoutPath,
		ResultURL:          c.cfg.CallbackURL + B2CResultPath,
		Occasion:           req.Occasion,
	}

	return c.call(ctx, opDisbursement, b2cPath, payload)
}

// Password is base64(shortcode + passkey + timestamp).
func Password(shortCode, passKey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortCode + passKey + timestamp))
}

func (c *Client) call(ctx context.Context, op, path string, payload any) Result {
	start := time.Now()
	res := c.send(ctx, op, path, payload)
	res.Operation = op

	metrics.GatewayLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	metrics.GatewayRequests.WithLabelValues(op, res.Outcome.String()).Inc()

	return res
}

func (c *Client) send(ctx context.Context, op, path string, payload any) Result {
	body, err := json.Marshal(payload)
	if err != nil {
		return failure(op, OutcomePermanent, "encoding request", err)
	}

	// A 401 usually means the cached token was revoked early; refresh once.
	for attempt := 0; ; attempt++ {
		token, res, ok := c.accessToken(ctx)
		if !ok {
			return res
		}

		res, unauthorized := c.post(ctx, op, path, token, body)
		if unauthorized && attempt == 0 {
			c.invalidateToken(token)
			continue
		}

		return res
	}
}

func (c *Client) post(ctx context.Context, op, path, token string, body []byte) (Result, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return failure(op, OutcomePermanent, "creating request", err), false
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return failure(op, OutcomeTransient, "executing request", err), false
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(op, OutcomeTransient, "reading response", err), false
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return failure(op, OutcomePermanent, "unauthorized", statusError(resp.StatusCode)), true
	}

	var out apiResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reason := out.ErrorMessage
		if reason == "" {
			reason = http.StatusText(resp.StatusCode)
		}

		return failure(op, classifyStatus(resp.StatusCode), reason, statusError(resp.StatusCode)), false
	}

	if decodeErr != nil {
		return failure(op, OutcomePermanent, "decoding response", decodeErr), false
	}

	res := Result{
		MerchantRequestID:        out.MerchantRequestID,
		CheckoutRequestID:        out.CheckoutRequestID,
		ConversationID:           out.ConversationID,
		OriginatorConversationID: out.OriginatorConversationID,
		ResponseCode:             out.ResponseCode,
		Description:              out.ResponseDescription,
		CustomerMessage:          out.CustomerMessage,
		Outcome:                  OutcomeAccepted,
	}

	if out.ResponseCode != "0" {
		res.Outcome = OutcomePermanent
		if res.Description == "" {
			res.Description = out.ErrorMessage
		}
	}

	return res, false
}

// accessToken returns a cached token or fetches a new one. A failed fetch is
// reported as a non-accepted Result.
func (c *Client) accessToken(ctx context.Context) (string, Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, Result{}, true
	}

	token, ttl, res, ok := c.fetchToken(ctx)
	metrics.GatewayRequests.WithLabelValues(opToken, res.Outcome.String()).Inc()

	if !ok {
		return "", res, false
	}

	c.token = token
	c.expiresAt = c.now().Add(ttl - tokenExpirySlack)

	return token, Result{}, true
}

func (c *Client) fetchToken(ctx context.Context) (string, time.Duration, Result, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+tokenPath, nil)
	if err != nil {
		return "", 0, failure(opToken, OutcomePermanent, "creating token request", err), false
	}

	req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", 0, failure(opToken, OutcomeTransient, "failed to get access token", err), false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, failure(opToken, classifyStatus(resp.StatusCode), "failed to get access token", statusError(resp.StatusCode)), false
	}

	var out tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", 0, failure(opToken, OutcomePermanent, "failed to get access token", err), false
	}

	if out.AccessToken == "" {
		return "", 0, failure(opToken, OutcomePermanent, "failed to get access token", errors.New("empty access token")), false
	}

	return out.AccessToken, parseExpiresIn(out.ExpiresIn), Result{Outcome: OutcomeAccepted}, true
}

func (c *Client) invalidateToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == token {
		c.token = ""
		c.expiresAt = time.Time{}
	}
}

// parseExpiresIn accepts both "3599" and 3599; Daraja sends a string.
func parseExpiresIn(raw json.RawMessage) time.Duration {
	s := strings.Trim(string(raw), `"`)

	secs, err := strconv.Atoi(s)
	if err != nil || secs <= 0 {
		return 0
	}

	return time.Duration(secs) * time.Second
}

func classifyStatus(code int) Outcome {
	if code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout {
		return OutcomeTransient
	}

	return OutcomePermanent
}

func statusError(code int) error {
	return fmt.Errorf("unexpected status code %d", code)
}

func failure(op string, outcome Outcome, reason string, err error) Result {
	return Result{
		Operation:    op,
		Outcome:      outcome,
		ResponseCode: "1",
		Description:  reason,
		cause:        err,
	}
}
