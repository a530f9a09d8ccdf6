package payment

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Callback is the result of an STK push as posted by the gateway.
type Callback struct {
	MerchantRequestID string
	CheckoutRequestID string
	ResultCode        int
	ResultDesc        string
	Items             map[string]string
}

func (c *Callback) Succeeded() bool {
	return c.ResultCode == 0
}

// Item returns a metadata value by name.
func (c *Callback) Item(name string) (string, bool) {
	v, ok := c.Items[name]
	return v, ok
}

type stkCallbackEnvelope struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        *int   `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []metadataItem `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

type metadataItem struct {
	Name  string          `json:"Name"`
	Value json.RawMessage `json:"Value"`
}

// ParseCallback decodes an STK callback body. Bodies that are not JSON or
// carry no CheckoutRequestID or ResultCode fail with ErrMalformedCallback.
func ParseCallback(body []byte) (*Callback, error) {
	var env stkCallbackEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCallback, err)
	}

	stk := env.Body.StkCallback
	if stk.CheckoutRequestID == "" {
		return nil, fmt.Errorf("%w: missing CheckoutRequestID", ErrMalformedCallback)
	}

	// A zero value would read as success.
	if stk.ResultCode == nil {
		return nil, fmt.Errorf("%w: missing ResultCode", ErrMalformedCallback)
	}

	cb := &Callback{
		MerchantRequestID: stk.MerchantRequestID,
		CheckoutRequestID: stk.CheckoutRequestID,
		ResultCode:        *stk.ResultCode,
		ResultDesc:        stk.ResultDesc,
		Items:             make(map[string]string, len(stk.CallbackMetadata.Item)),
	}

	for _, item := range stk.CallbackMetadata.Item {
		if v, ok := itemValue(item.Value); ok {
			cb.Items[item.Name] = v
		}
	}

	return cb, nil
}

// itemValue renders numbers and strings alike; the gateway sends the phone
// number as a bare integer.
func itemValue(raw json.RawMessage) (string, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return "", false
	}

	if strings.HasPrefix(s, `"`) {
		v, err := strconv.Unquote(s)
		if err != nil {
			return "", false
		}

		return v, true
	}

	return s, true
}

// DisbursementResult is the asynchronous outcome of a B2C payment.
type DisbursementResult struct {
	ResultType               int
	ResultCode               int
	ResultDesc               string
	OriginatorConversationID string
	ConversationID           string
	TransactionID            string
}

type b2cResultEnvelope struct {
	Result struct {
		ResultType               int    `json:"ResultType"`
		ResultCode               int    `json:"ResultCode"`
		ResultDesc               string `json:"ResultDesc"`
		OriginatorConversationID string `json:"OriginatorConversationID"`
		ConversationID           string `json:"ConversationID"`
		TransactionID            string `json:"TransactionID"`
	} `json:"Result"`
}

func ParseDisbursementResult(body []byte) (*DisbursementResult, error) {
	var env b2cResultEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCallback, err)
	}

	r := env.Result
	if r.ConversationID == "" && r.OriginatorConversationID == "" {
		return nil, fmt.Errorf("%w: missing conversation id", ErrMalformedCallback)
	}

	return &DisbursementResult{
		ResultType:               r.ResultType,
		ResultCode:               r.ResultCode,
		ResultDesc:               r.ResultDesc,
		OriginatorConversationID: r.OriginatorConversationID,
		ConversationID:           r.ConversationID,
		TransactionID:            r.TransactionID,
	}, nil
}
