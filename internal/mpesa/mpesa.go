// Package mpesa is a client for the Safaricom Daraja API: OAuth tokens,
// STK push collections and B2C disbursements.
package mpesa

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	SandboxURL    = "https://sandbox.safaricom.co.ke"
	ProductionURL = "https://api.safaricom.co.ke"
)

// Paths on the callback host that Daraja posts results to.
const (
	CallbackPath   = "/payments/callback/"
	B2CResultPath  = "/payments/b2c/result/"
	B2CTimeoutPath = "/payments/b2c/timeout/"
)

// BaseURLFor maps an environment name to the Daraja host.
func BaseURLFor(env string) string {
	if strings.EqualFold(env, "production") {
		return ProductionURL
	}

	return SandboxURL
}

// Config is everything the client needs; it is built once by the caller.
type Config struct {
	BaseURL            string
	ConsumerKey        string
	ConsumerSecret     string
	ShortCode          string
	PassKey            string
	CallbackURL        string // scheme and host the gateway calls back on
	InitiatorName      string
	SecurityCredential string
	Timeout            time.Duration
}

// CollectionRequest asks a customer to pay via an STK push prompt.
type CollectionRequest struct {
	Phone       string
	Amount      int64 // whole shillings
	Reference   string
	Description string
}

// DisbursementRequest sends money from the business account to a phone.
type DisbursementRequest struct {
	Phone    string
	Amount   int64 // whole shillings
	Remarks  string
	Occasion string
}

// Outcome classifies a gateway interaction.
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeTransient
	OutcomePermanent
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeTransient:
		return "transient"
	case OutcomePermanent:
		return "permanent"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the answer to a collection or disbursement request. Only an
// accepted result carries correlation ids.
type Result struct {
	Operation string
	Outcome   Outcome

	MerchantRequestID        string
	CheckoutRequestID        string
	ConversationID           string
	OriginatorConversationID string

	ResponseCode    string
	Description     string
	CustomerMessage string

	cause error
}

func (r Result) Accepted() bool {
	return r.Outcome == OutcomeAccepted
}

// Err returns nil for accepted results and a *RejectionError otherwise.
func (r Result) Err() error {
	if r.Accepted() {
		return nil
	}

	return &RejectionError{
		Operation: r.Operation,
		Transient: r.Outcome == OutcomeTransient,
		Reason:    r.Description,
		Err:       r.cause,
	}
}

// RejectionError reports that the gateway did not accept a request.
type RejectionError struct {
	Operation string
	Transient bool
	Reason    string
	Err       error
}

func (e *RejectionError) Error() string {
	kind := "rejected"
	if e.Transient {
		kind = "unavailable"
	}

	if e.Reason == "" {
		return fmt.Sprintf("mpesa %s %s", e.Operation, kind)
	}

	return fmt.Sprintf("mpesa %s %s: %s", e.Operation, kind, e.Reason)
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}

// IsRejection reports whether err is a gateway rejection.
func IsRejection(err error) bool {
	var rej *RejectionError
	return errors.As(err, &rej)
}
