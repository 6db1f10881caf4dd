package bank

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Account is a bank account record. Username is derived from Owner at
// directory construction and is the account's lookup key. Balance is
// never stored; it is derived from the ledger.
type Account struct {
	Owner        string
	Username     string
	InterestRate decimal.Decimal // percent, e.g. 1.2
	PIN          int
	Currency     string // ISO 4217 code, for the presentation layer
	Locale       string // BCP 47 tag, for the presentation layer
	Ledger       Ledger
}

// DeriveUsername builds the login username from an owner name: the
// lower-cased initial of each whitespace-separated word, joined.
// "Mustafa Abdullazada" -> "ma".
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, word := range strings.Fields(strings.ToLower(owner)) {
		b.WriteString(string([]rune(word)[0]))
	}
	return b.String()
}

// SeedAccounts returns the two demo accounts with their fixed movement
// histories. The service starts from exactly this state on every boot;
// nothing is persisted.
func SeedAccounts() []*Account {
	return []*Account{
		{
			Owner:        "Mustafa Abdullazada",
			InterestRate: decimal.RequireFromString("1.2"),
			PIN:          1111,
			Currency:     "AZN",
			Locale:       "az-AZ",
			Ledger: NewLedger(
				seedMovement("200", "2020-11-18T21:31:17.178Z"),
				seedMovement("455.23", "2020-12-23T07:42:02.383Z"),
				seedMovement("-306.5", "2021-01-28T09:15:04.904Z"),
				seedMovement("25000", "2021-04-01T10:17:24.185Z"),
				seedMovement("-642.21", "2021-05-08T14:11:59.604Z"),
				seedMovement("-133.9", "2022-04-24T17:01:17.194Z"),
				seedMovement("79.97", "2022-04-28T23:36:17.929Z"),
				seedMovement("1300", "2022-04-29T10:51:36.790Z"),
			),
		},
		{
			Owner:        "Jessica Davis",
			InterestRate: decimal.RequireFromString("1.5"),
			PIN:          2222,
			Currency:     "USD",
			Locale:       "en-US",
			Ledger: NewLedger(
				seedMovement("5000", "2020-11-01T13:15:33.035Z"),
				seedMovement("3400", "2020-11-30T09:48:16.867Z"),
				seedMovement("-150", "2020-12-25T06:04:23.907Z"),
				seedMovement("-790", "2021-01-25T14:18:46.235Z"),
				seedMovement("-3210", "2021-02-05T16:33:06.386Z"),
				seedMovement("-1000", "2021-04-10T14:43:26.374Z"),
				seedMovement("8500", "2021-06-25T18:49:59.371Z"),
				seedMovement("-30", "2021-07-26T12:01:20.894Z"),
			),
		},
	}
}

func seedMovement(amount, timestamp string) Movement {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		panic("bank: bad seed timestamp " + timestamp)
	}
	return Movement{Amount: decimal.RequireFromString(amount), Timestamp: t}
}
