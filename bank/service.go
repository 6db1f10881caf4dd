package bank

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Config holds the timing knobs of the banking core. Zero values fall
// back to the demo defaults.
type Config struct {
	// SessionDuration is the inactivity allowance; the countdown restarts
	// from here on login and after every successful mutation.
	SessionDuration time.Duration
	// TickInterval is the wall-clock length of one countdown second.
	// Tests shrink it to drive the timer quickly.
	TickInterval time.Duration
	// LoanApprovalDelay is how long a loan stays pending before the
	// movement is recorded.
	LoanApprovalDelay time.Duration
}

const (
	defaultSessionDuration   = 300 * time.Second
	defaultTickInterval      = time.Second
	defaultLoanApprovalDelay = 2500 * time.Millisecond
)

func (c Config) withDefaults() Config {
	if c.SessionDuration <= 0 {
		c.SessionDuration = defaultSessionDuration
	}
	if c.TickInterval <= 0 {
		c.TickInterval = defaultTickInterval
	}
	if c.LoanApprovalDelay <= 0 {
		c.LoanApprovalDelay = defaultLoanApprovalDelay
	}
	return c
}

// Exchange converts a transferred amount into the receiving account's
// currency, keyed by the receiver's username.
type Exchange func(toUsername string, amount decimal.Decimal) decimal.Decimal

// demoExchange is the demo's placeholder conversion: the "ma" seed
// account is credited at 1.7x, everyone else at 1/1.7. It is tied to the
// seed data, not a general exchange-rate feature.
func demoExchange(toUsername string, amount decimal.Decimal) decimal.Decimal {
	rate := decimal.RequireFromString("1.7")
	if toUsername == "ma" {
		return amount.Mul(rate)
	}
	return amount.Div(rate)
}

// Service owns the directory and the single session, and serializes every
// operation behind one mutex. HTTP handlers, countdown ticks, and pending
// loan completions all funnel through it, so no ledger is ever mutated
// concurrently.
type Service struct {
	mu     sync.Mutex
	dir    *Directory
	cfg    Config
	logger *slog.Logger

	sess  *Session
	timer *countdown

	now        func() time.Time
	exchange   Exchange
	formatDate DateFormatter
	onTick     func(remaining string)
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the time source. Tests pin it for stable display
// dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithExchange replaces the cross-currency conversion rule.
func WithExchange(e Exchange) Option {
	return func(s *Service) { s.exchange = e }
}

// WithDateFormatter replaces the absolute-date renderer used for
// movements older than a week.
func WithDateFormatter(f DateFormatter) Option {
	return func(s *Service) { s.formatDate = f }
}

// WithTickFunc installs a hook that receives the rendered mm:ss on every
// countdown tick. The hook runs with the service's internal lock held, so
// it must not call back into the Service.
func WithTickFunc(fn func(remaining string)) Option {
	return func(s *Service) { s.onTick = fn }
}

// NewService builds the banking core around a directory.
func NewService(dir *Directory, cfg Config, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		dir:      dir,
		cfg:      cfg.withDefaults(),
		logger:   logger,
		now:      time.Now,
		exchange: demoExchange,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MovementLine is one statement row: the raw movement plus its
// presentation classification.
type MovementLine struct {
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   time.Time       `json:"timestamp"`
	DisplayDate string          `json:"display_date"`
	Type        string          `json:"type"` // "deposit" or "withdrawal"
}

// Statement is the full state the presentation layer renders after every
// mutation: the movement list in the requested order, the derived totals,
// and the session's remaining time.
type Statement struct {
	Owner            string          `json:"owner"`
	Username         string          `json:"username"`
	Currency         string          `json:"currency"`
	Locale           string          `json:"locale"`
	Movements        []MovementLine  `json:"movements"`
	Balance          decimal.Decimal `json:"balance"`
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	Interest         decimal.Decimal `json:"interest"`
	RemainingSeconds int             `json:"remaining_seconds"`
	Sorted           bool            `json:"sorted"`
	Active           bool            `json:"active"`
}

// Login authenticates a username/PIN pair, replaces any existing session,
// and starts a fresh inactivity countdown. It returns the session token
// and the initial statement.
func (s *Service) Login(username string, pin int) (string, *Statement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.dir.Authenticate(username, pin)
	if err != nil {
		s.logger.Warn("login rejected", "username", username)
		return "", nil, err
	}

	// A second login replaces the session; startCountdownLocked cancels
	// the previous countdown before starting the new one.
	s.sess = &Session{
		account: acc,
		token:   uuid.NewString(),
	}
	s.startCountdownLocked()

	s.logger.Info("login", "username", acc.Username, "owner", acc.Owner)
	return s.sess.token, s.statementLocked(), nil
}

// Statement returns the current account's rendered state. Viewing does
// not restart the countdown.
func (s *Service) Statement(token string) (*Statement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireSessionLocked(token); err != nil {
		return nil, err
	}
	return s.statementLocked(), nil
}

// ToggleSort flips the session's ascending-sort flag and returns the
// statement in the new order. Sorting is viewing, so the countdown is not
// restarted.
func (s *Service) ToggleSort(token string) (*Statement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireSessionLocked(token); err != nil {
		return nil, err
	}
	s.sess.sorted = !s.sess.sorted
	return s.statementLocked(), nil
}

// Transfer moves amount from the logged-in account to another account.
// The sender is debited exactly amount; the receiver is credited the
// converted amount. On any failed precondition neither ledger changes.
// Success restarts the inactivity countdown.
func (s *Service) Transfer(token, toUsername string, amount decimal.Decimal) (*Statement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireSessionLocked(token); err != nil {
		return nil, err
	}

	sender := s.sess.account
	if !amount.IsPositive() {
		return nil, ErrIneligibleTransfer
	}
	receiver, ok := s.dir.FindByUsername(toUsername)
	if !ok {
		return nil, ErrAccountNotFound
	}
	if receiver.Username == sender.Username {
		return nil, ErrIneligibleTransfer
	}
	if sender.Ledger.Balance().LessThan(amount) {
		return nil, ErrIneligibleTransfer
	}

	now := s.now()
	sender.Ledger.Record(amount.Neg(), now)
	receiver.Ledger.Record(s.exchange(receiver.Username, amount), now)
	s.startCountdownLocked()

	s.logger.Info("transfer",
		"from", sender.Username, "to", receiver.Username, "amount", amount.String())
	return s.statementLocked(), nil
}

// RequestLoan checks eligibility and schedules the loan for approval
// after the configured delay. The amount is floored to a whole unit
// first; the account must hold at least one movement covering 10% of it.
//
// Approval is fire-and-forget: the movement is recorded on the requesting
// account even if the session has ended by then (the demo bank keeps its
// promise), but the countdown only restarts when that account is still
// the active session. Multiple pending loans complete independently.
func (s *Service) RequestLoan(token string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireSessionLocked(token); err != nil {
		return err
	}

	amount = amount.Floor()
	if !amount.IsPositive() {
		return ErrIneligibleLoan
	}
	threshold := amount.Mul(decimal.RequireFromString("0.1"))
	if !s.sess.account.Ledger.HasMovementAtLeast(threshold) {
		return ErrIneligibleLoan
	}

	acc := s.sess.account
	s.logger.Info("loan requested", "username", acc.Username, "amount", amount.String())
	time.AfterFunc(s.cfg.LoanApprovalDelay, func() {
		s.completeLoan(acc, amount)
	})
	return nil
}

func (s *Service) completeLoan(acc *Account, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc.Ledger.Record(amount, s.now())
	if s.sess != nil && s.sess.account == acc {
		s.startCountdownLocked()
	}
	s.logger.Info("loan approved", "username", acc.Username, "amount", amount.String())
}

// CloseAccount removes the logged-in account from the directory after the
// user re-confirms username and PIN, and destroys the session
// immediately. The ledger is discarded with the account; no movement is
// recorded.
func (s *Service) CloseAccount(token, username string, pin int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireSessionLocked(token); err != nil {
		return err
	}

	acc := s.sess.account
	if username != acc.Username || pin != acc.PIN {
		return ErrInvalidCredentials
	}
	s.dir.Remove(acc.Username)
	s.endSessionLocked()

	s.logger.Info("account closed", "username", acc.Username)
	return nil
}

// Close stops the countdown goroutine and drops the session. Used on
// server shutdown.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess != nil {
		s.endSessionLocked()
	}
}

func (s *Service) requireSessionLocked(token string) error {
	if s.sess == nil || token == "" || token != s.sess.token {
		return ErrNoActiveSession
	}
	return nil
}

func (s *Service) statementLocked() *Statement {
	acc := s.sess.account
	now := s.now()

	movements := acc.Ledger.View(s.sess.sorted)
	lines := make([]MovementLine, len(movements))
	for i, m := range movements {
		kind := "deposit"
		if !m.Amount.IsPositive() {
			kind = "withdrawal"
		}
		lines[i] = MovementLine{
			Amount:      m.Amount,
			Timestamp:   m.Timestamp,
			DisplayDate: DisplayDate(m.Timestamp, now, acc.Locale, s.formatDate),
			Type:        kind,
		}
	}

	return &Statement{
		Owner:            acc.Owner,
		Username:         acc.Username,
		Currency:         acc.Currency,
		Locale:           acc.Locale,
		Movements:        lines,
		Balance:          acc.Ledger.Balance(),
		Income:           acc.Ledger.Income(),
		Expense:          acc.Ledger.Expense(),
		Interest:         acc.Ledger.Interest(acc.InterestRate),
		RemainingSeconds: s.sess.remaining,
		Sorted:           s.sess.sorted,
		Active:           true,
	}
}
