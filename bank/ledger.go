// Package bank implements the in-memory banking core: account ledgers
// with derived totals, the account directory, the single user session
// with its inactivity countdown, and the transfer/loan/close operations.
//
// Monetary values use github.com/shopspring/decimal throughout. float64
// cannot represent most decimal fractions exactly, and the interest and
// conversion rules below depend on exact thresholds.
package bank

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Movement is a single signed ledger entry. Positive amounts are
// deposits, negative amounts are withdrawals. A movement is immutable
// once recorded.
type Movement struct {
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

// Ledger is an account's append-only movement history. Entries keep
// insertion order; sorting is done on copies at view time. Balance and
// the summary totals are always derived from the entries, never stored.
//
// A Ledger is not safe for concurrent use on its own; the owning Service
// serializes all access.
type Ledger struct {
	entries []Movement
}

// NewLedger creates a ledger pre-populated with the given movements.
func NewLedger(movements ...Movement) Ledger {
	return Ledger{entries: append([]Movement(nil), movements...)}
}

// Record appends a movement. Amount sign and magnitude are not checked
// here; callers enforce eligibility before recording.
func (l *Ledger) Record(amount decimal.Decimal, at time.Time) {
	l.entries = append(l.entries, Movement{Amount: amount, Timestamp: at})
}

// Balance returns the sum of all movement amounts.
func (l *Ledger) Balance() decimal.Decimal {
	total := decimal.Zero
	for _, m := range l.entries {
		total = total.Add(m.Amount)
	}
	return total
}

// Income returns the sum of all deposits.
func (l *Ledger) Income() decimal.Decimal {
	total := decimal.Zero
	for _, m := range l.entries {
		if m.Amount.IsPositive() {
			total = total.Add(m.Amount)
		}
	}
	return total
}

// Expense returns the absolute value of the sum of all withdrawals.
func (l *Ledger) Expense() decimal.Decimal {
	total := decimal.Zero
	for _, m := range l.entries {
		if m.Amount.IsNegative() {
			total = total.Add(m.Amount)
		}
	}
	return total.Abs()
}

// Interest accrues rate percent on each deposit and sums the
// contributions. Any single contribution below 1 unit of currency is
// discarded before summing; the bank does not pay fractional-unit
// interest on a deposit.
func (l *Ledger) Interest(rate decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)
	total := decimal.Zero
	for _, m := range l.entries {
		if !m.Amount.IsPositive() {
			continue
		}
		contribution := m.Amount.Mul(rate).Div(hundred)
		if contribution.LessThan(one) {
			continue
		}
		total = total.Add(contribution)
	}
	return total
}

// View returns a copy of the movements, in insertion order or ascending
// by amount. The stored order is never mutated.
func (l *Ledger) View(sortAscending bool) []Movement {
	out := make([]Movement, len(l.entries))
	copy(out, l.entries)
	if sortAscending {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Amount.LessThan(out[j].Amount)
		})
	}
	return out
}

// HasMovementAtLeast reports whether any movement amount is >= min.
// Loan eligibility: the bank wants evidence of at least one movement
// covering 10% of the requested amount.
func (l *Ledger) HasMovementAtLeast(min decimal.Decimal) bool {
	for _, m := range l.entries {
		if m.Amount.GreaterThanOrEqual(min) {
			return true
		}
	}
	return false
}

// Len returns the number of recorded movements.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// DateFormatter renders an absolute date for a locale. It is the
// presentation collaborator the core delegates to when a movement is too
// old for a relative label.
type DateFormatter func(t time.Time, locale string) string

// defaultDateFormat is a plain numeric short date. Real locale-aware
// formatting belongs to the presentation layer.
func defaultDateFormat(t time.Time, _ string) string {
	return t.Format("1/2/2006")
}

// DaysBetween returns the absolute difference between two instants in
// whole days, rounded.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(math.Abs(b.Sub(a).Hours() / 24)))
}

// DisplayDate classifies a movement timestamp relative to now: "Today",
// "Yesterday", "N days ago" for 2-7 days, otherwise the locale-formatted
// absolute date.
func DisplayDate(ts, now time.Time, locale string, format DateFormatter) string {
	if format == nil {
		format = defaultDateFormat
	}
	switch days := DaysBetween(ts, now); {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return format(ts, locale)
	}
}
