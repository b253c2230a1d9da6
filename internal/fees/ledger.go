// Package fees keeps the additive charges applied to a cart.
package fees

import (
	"github.com/shopspring/decimal"

	"commerce-api/internal/domain/entity"
	"commerce-api/internal/sanitize"
)

// Ledger maps fee ids to fees. The zero value is not usable, use NewLedger.
type Ledger struct {
	fees map[string]entity.Fee
}

func NewLedger() *Ledger {
	return &Ledger{fees: make(map[string]entity.Fee)}
}

// NewLedgerFrom starts a ledger with a copy of fees
func NewLedgerFrom(fees map[string]entity.Fee) *Ledger {
	l := NewLedger()
	for id, fee := range fees {
		l.fees[id] = fee
	}
	return l
}

// ID returns id, or the key derived from label when id is empty. The
// result is empty when neither yields a usable key.
func ID(label, id string) string {
	if id == "" {
		return sanitize.Key(label)
	}
	return id
}

// Add stores the fee under ID(label, id), replacing any fee with the same
// id. It returns every fee in the ledger.
func (l *Ledger) Add(amount decimal.Decimal, label, id string) map[string]entity.Fee {
	l.fees[ID(label, id)] = entity.Fee{
		Amount: amount,
		Label:  label,
	}

	return l.All()
}

// Has reports whether any fee was added
func (l *Ledger) Has() bool {
	return len(l.fees) > 0
}

func (l *Ledger) Get(id string) (entity.Fee, bool) {
	fee, ok := l.fees[id]
	return fee, ok
}

// Total sums the amounts of all fees
func (l *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, fee := range l.fees {
		total = total.Add(fee.Amount)
	}
	return total
}

// All returns a copy of the fees
func (l *Ledger) All() map[string]entity.Fee {
	out := make(map[string]entity.Fee, len(l.fees))
	for id, fee := range l.fees {
		out[id] = fee
	}
	return out
}

func (l *Ledger) Reset() {
	l.fees = make(map[string]entity.Fee)
}
