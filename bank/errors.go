package bank

import "errors"

// Domain errors for the banking core. All of them are recoverable: an
// operation that returns one of these has changed no ledger or session
// state. The HTTP layer translates them to status codes.
var (
	// ErrInvalidCredentials is returned when a username/PIN pair does not
	// match an account exactly.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountNotFound is returned when a username resolves to no account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrIneligibleTransfer is returned for a non-positive amount, a
	// self-transfer, or insufficient balance.
	ErrIneligibleTransfer = errors.New("transfer does not meet eligibility rules")

	// ErrIneligibleLoan is returned for a non-positive amount or when no
	// movement covers 10% of the requested loan.
	ErrIneligibleLoan = errors.New("loan request does not meet eligibility rules")

	// ErrNoActiveSession is returned when an operation carries no valid
	// session token.
	ErrNoActiveSession = errors.New("no active session")

	// ErrDuplicateUsername is returned when two accounts derive the same
	// username at directory construction.
	ErrDuplicateUsername = errors.New("duplicate username")
)
