package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"bankist-api/bank"
)

var validate = validator.New()

// LoginRequest is the expected JSON body for POST /login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	PIN      int    `json:"pin" validate:"required"`
}

// TransferRequest is the expected JSON body for POST /transfers.
// Amount is a decimal string; shopspring/decimal rejects anything that is
// not an exact number during decoding.
type TransferRequest struct {
	To     string          `json:"to" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// LoanRequest is the expected JSON body for POST /loans.
type LoanRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CloseAccountRequest is the expected JSON body for DELETE /account. The
// user re-confirms the credentials of the account being closed.
type CloseAccountRequest struct {
	Username string `json:"username" validate:"required"`
	PIN      int    `json:"pin" validate:"required"`
}

// LoginResponse carries the session token the client replays as a Bearer
// credential, plus the initial statement.
type LoginResponse struct {
	Token     string          `json:"token"`
	Statement *bank.Statement `json:"statement"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
