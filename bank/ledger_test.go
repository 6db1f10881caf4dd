package bank

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLedgerBalance(t *testing.T) {
	t.Run("balance equals the movement sum after every record", func(t *testing.T) {
		var l Ledger
		now := time.Now()
		amounts := []string{"200", "455.23", "-306.5", "25000", "-642.21"}
		expected := decimal.Zero

		for _, a := range amounts {
			l.Record(dec(a), now)
			expected = expected.Add(dec(a))
			assert.True(t, expected.Equal(l.Balance()), "after recording %s", a)
		}
		assert.True(t, dec("24706.52").Equal(l.Balance()))
	})

	t.Run("empty ledger balances to zero", func(t *testing.T) {
		var l Ledger
		assert.True(t, l.Balance().IsZero())
	})
}

func TestLedgerSummary(t *testing.T) {
	now := time.Now()
	l := NewLedger(
		Movement{Amount: dec("200"), Timestamp: now},
		Movement{Amount: dec("450"), Timestamp: now},
		Movement{Amount: dec("-400"), Timestamp: now},
		Movement{Amount: dec("3000"), Timestamp: now},
		Movement{Amount: dec("-650"), Timestamp: now},
	)

	assert.True(t, dec("3650").Equal(l.Income()))
	assert.True(t, dec("1050").Equal(l.Expense()))
}

func TestLedgerInterest(t *testing.T) {
	now := time.Now()

	t.Run("contribution below one unit is discarded", func(t *testing.T) {
		// 79.97 * 1.2% = 0.95964 -> dropped entirely
		l := NewLedger(Movement{Amount: dec("79.97"), Timestamp: now})
		assert.True(t, l.Interest(dec("1.2")).IsZero())
	})

	t.Run("contribution of at least one unit is included", func(t *testing.T) {
		// 1300 * 1.2% = 15.6
		l := NewLedger(Movement{Amount: dec("1300"), Timestamp: now})
		assert.True(t, dec("15.6").Equal(l.Interest(dec("1.2"))))
	})

	t.Run("withdrawals never accrue interest", func(t *testing.T) {
		l := NewLedger(Movement{Amount: dec("-5000"), Timestamp: now})
		assert.True(t, l.Interest(dec("1.2")).IsZero())
	})

	t.Run("seed history accrues the known total", func(t *testing.T) {
		l := NewLedger(
			Movement{Amount: dec("200"), Timestamp: now},
			Movement{Amount: dec("455.23"), Timestamp: now},
			Movement{Amount: dec("-306.5"), Timestamp: now},
			Movement{Amount: dec("25000"), Timestamp: now},
			Movement{Amount: dec("-642.21"), Timestamp: now},
			Movement{Amount: dec("-133.9"), Timestamp: now},
			Movement{Amount: dec("79.97"), Timestamp: now},
			Movement{Amount: dec("1300"), Timestamp: now},
		)
		// 2.4 + 5.46276 + 300 + 15.6; the 79.97 deposit is below threshold
		assert.True(t, dec("323.46276").Equal(l.Interest(dec("1.2"))))
	})
}

func TestLedgerView(t *testing.T) {
	now := time.Now()
	l := NewLedger(
		Movement{Amount: dec("200"), Timestamp: now},
		Movement{Amount: dec("-300"), Timestamp: now},
		Movement{Amount: dec("100"), Timestamp: now},
	)

	sorted := l.View(true)
	require.Len(t, sorted, 3)
	assert.True(t, dec("-300").Equal(sorted[0].Amount))
	assert.True(t, dec("100").Equal(sorted[1].Amount))
	assert.True(t, dec("200").Equal(sorted[2].Amount))

	// Stored order survives any number of sorted views.
	l.View(true)
	unsorted := l.View(false)
	require.Len(t, unsorted, 3)
	assert.True(t, dec("200").Equal(unsorted[0].Amount))
	assert.True(t, dec("-300").Equal(unsorted[1].Amount))
	assert.True(t, dec("100").Equal(unsorted[2].Amount))
}

func TestLedgerHasMovementAtLeast(t *testing.T) {
	now := time.Now()
	l := NewLedger(Movement{Amount: dec("50"), Timestamp: now})

	// 10% of 400 is 40: eligible. 10% of 600 is 60: not.
	assert.True(t, l.HasMovementAtLeast(dec("40")))
	assert.False(t, l.HasMovementAtLeast(dec("60")))
}

func TestDisplayDate(t *testing.T) {
	now := time.Date(2022, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"same instant", now, "Today"},
		{"a few hours ago", now.Add(-5 * time.Hour), "Today"},
		{"one day ago", now.Add(-24 * time.Hour), "Yesterday"},
		{"1.6 days rounds to two", now.Add(-38*time.Hour - 24*time.Minute), "2 days ago"},
		{"four days ago", now.Add(-4 * 24 * time.Hour), "4 days ago"},
		{"seven days ago", now.Add(-7 * 24 * time.Hour), "7 days ago"},
		{"eight days ago", now.Add(-8 * 24 * time.Hour), "4/23/2022"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayDate(tt.ts, now, "en-US", nil))
		})
	}

	t.Run("custom formatter handles absolute dates", func(t *testing.T) {
		format := func(ts time.Time, locale string) string {
			return locale + ":" + ts.Format("2006-01-02")
		}
		got := DisplayDate(now.Add(-30*24*time.Hour), now, "az-AZ", format)
		assert.Equal(t, "az-AZ:2022-04-01", got)
	})
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysBetween(a, a.Add(11*time.Hour)))
	assert.Equal(t, 1, DaysBetween(a, a.Add(13*time.Hour))) // 0.54 days rounds up
	assert.Equal(t, 3, DaysBetween(a.Add(3*24*time.Hour), a))
}
