package payment_test

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/group"
	"github.com/kuhlali/chamapro-extend/internal/payment"
)

type ledgerPenalty struct {
	GroupID uuid.UUID
	UserID  uuid.UUID
	Amount  decimal.Decimal
	IsPaid  bool
	PaidAt  *time.Time
}

type ledgerState struct {
	txs       map[string]payment.Transaction
	balances  map[uuid.UUID]decimal.Decimal
	expiries  map[uuid.UUID]*time.Time
	penalties []ledgerPenalty
}

func (s ledgerState) clone() ledgerState {
	return ledgerState{
		txs:       maps.Clone(s.txs),
		balances:  maps.Clone(s.balances),
		expiries:  maps.Clone(s.expiries),
		penalties: append([]ledgerPenalty(nil), s.penalties...),
	}
}

// ledger is an in-memory Repository. Settlements work on a copy of the
// state that replaces it only on Commit.
type ledger struct {
	mu    sync.Mutex
	state ledgerState

	creditErr error
}

func newLedger() *ledger {
	return &ledger{state: ledgerState{
		txs:      map[string]payment.Transaction{},
		balances: map[uuid.UUID]decimal.Decimal{},
		expiries: map[uuid.UUID]*time.Time{},
	}}
}

func (l *ledger) CreateTransaction(_ context.Context, tx *payment.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx.ID = uuid.New()
	l.state.txs[tx.CheckoutRequestID] = *tx

	return nil
}

func (l *ledger) BeginSettlement(context.Context) (payment.SettlementTx, error) {
	l.mu.Lock()
	return &ledgerTx{l: l, staged: l.state.clone()}, nil
}

func (l *ledger) tx(id string) payment.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state.txs[id]
}

func (l *ledger) balance(groupID uuid.UUID) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state.balances[groupID]
}

func (l *ledger) penalties() []ledgerPenalty {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]ledgerPenalty(nil), l.state.penalties...)
}

// ledgerTx holds the ledger lock until Commit or Rollback, like a row lock.
type ledgerTx struct {
	l      *ledger
	staged ledgerState
	done   bool
}

func (t *ledgerTx) LockTransaction(_ context.Context, id string) (*payment.Transaction, error) {
	tx, ok := t.staged.txs[id]
	if !ok {
		return nil, payment.ErrNotFound
	}

	return &tx, nil
}

func (t *ledgerTx) UpdateTransaction(_ context.Context, tx *payment.Transaction) error {
	t.staged.txs[tx.CheckoutRequestID] = *tx
	return nil
}

func (t *ledgerTx) CreditGroup(_ context.Context, groupID uuid.UUID, amount decimal.Decimal) error {
	if t.l.creditErr != nil {
		return t.l.creditErr
	}

	t.staged.balances[groupID] = t.staged.balances[groupID].Add(amount)

	return nil
}

func (t *ledgerTx) ClearPenalties(_ context.Context, groupID, userID uuid.UUID, paidAt time.Time) (int64, error) {
	var n int64

	for i, p := range t.staged.penalties {
		if p.GroupID == groupID && p.UserID == userID && !p.IsPaid {
			t.staged.penalties[i].IsPaid = true
			t.staged.penalties[i].PaidAt = &paidAt
			n++
		}
	}

	return n, nil
}

func (t *ledgerTx) LockSubscription(_ context.Context, groupID uuid.UUID) (*time.Time, error) {
	expiry, ok := t.staged.expiries[groupID]
	if !ok {
		return nil, group.ErrNotFound
	}

	return expiry, nil
}

func (t *ledgerTx) RenewSubscription(_ context.Context, groupID uuid.UUID, expiry time.Time) error {
	t.staged.expiries[groupID] = &expiry
	return nil
}

func (t *ledgerTx) Commit() error {
	if !t.done {
		t.l.state = t.staged
		t.done = true
		t.l.mu.Unlock()
	}

	return nil
}

func (t *ledgerTx) Rollback() error {
	if !t.done {
		t.done = true
		t.l.mu.Unlock()
	}

	return nil
}
