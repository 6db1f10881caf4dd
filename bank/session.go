package bank

import (
	"fmt"
	"time"
)

// Session is the record of the currently authenticated account. At most
// one session exists at a time; the token is the bearer credential the
// presentation layer replays on every request.
type Session struct {
	account   *Account
	token     string
	remaining int  // seconds left until inactivity logout
	sorted    bool // ascending-by-amount statement order
}

// countdown is one scheduled inactivity timer. Restarting the timer
// replaces the whole value, so a stale goroutine can recognize that it
// has been superseded by pointer identity.
type countdown struct {
	stop chan struct{}
}

// FormatRemaining renders a second count as mm:ss.
func FormatRemaining(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// startCountdownLocked cancels any running countdown and starts a fresh
// one at the full session duration. Must be called with s.mu held and an
// active session.
func (s *Service) startCountdownLocked() {
	s.stopCountdownLocked()
	seconds := int(s.cfg.SessionDuration / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	s.sess.remaining = seconds
	s.renderTickLocked()
	c := &countdown{stop: make(chan struct{})}
	s.timer = c
	go s.runCountdown(c)
}

// stopCountdownLocked cancels the running countdown, if any. Must be
// called with s.mu held.
func (s *Service) stopCountdownLocked() {
	if s.timer != nil {
		close(s.timer.stop)
		s.timer = nil
	}
}

// runCountdown drives one countdown until it is stopped, superseded, or
// reaches zero.
func (s *Service) runCountdown(c *countdown) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if s.tick(c) {
				return
			}
		}
	}
}

// tick advances the countdown by one second. The remaining time is
// rendered before expiry is acted on, so 00:00 is the last value the
// presentation layer sees. Reports whether this countdown is finished.
func (s *Service) tick(c *countdown) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != c || s.sess == nil {
		return true // superseded by a newer countdown or an ended session
	}
	s.sess.remaining--
	s.renderTickLocked()
	if s.sess.remaining == 0 {
		s.logger.Info("session expired", "username", s.sess.account.Username)
		s.endSessionLocked()
		return true
	}
	return false
}

// renderTickLocked pushes the current mm:ss to the tick hook, when one is
// installed. Must be called with s.mu held and an active session; the
// hook therefore runs under the lock and must not re-enter the Service.
func (s *Service) renderTickLocked() {
	if s.onTick != nil {
		s.onTick(FormatRemaining(s.sess.remaining))
	}
}

// endSessionLocked destroys the session and its countdown. Must be called
// with s.mu held.
func (s *Service) endSessionLocked() {
	s.stopCountdownLocked()
	s.sess = nil
}
