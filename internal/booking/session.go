package booking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/anikett35/MediMage/internal/identity"
)

// DefaultPaymentDelay matches the pause the web client shows before confirming.
const DefaultPaymentDelay = 2 * time.Second

// Simulator stands in for a payment gateway. It never charges anything and
// always succeeds unless ctx ends first.
type Simulator struct {
	Delay time.Duration
}

func (s Simulator) Charge(ctx context.Context) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Session holds one visitor's booking state and keeps it in step with the identity provider.
type Session struct {
	simulator   Simulator
	logger      *slog.Logger
	now         func() time.Time
	unsubscribe func()

	mu    sync.Mutex
	state State
}

func NewSession(provider identity.Provider, simulator Simulator, logger *slog.Logger) *Session {
	s := &Session{
		simulator: simulator,
		logger:    logger,
		now:       time.Now,
		state:     NewState(),
	}
	s.state.User = provider.CurrentUser()
	s.unsubscribe = provider.OnAuthChange(func(user *identity.User) {
		if _, err := s.Dispatch(AuthChanged(user)); err != nil {
			s.logger.Warn("failed to apply auth change", "error", err)
		}
	})
	return s
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dispatch applies a to the current state. A zero At is set to the current time.
func (s *Session) Dispatch(a Action) (State, error) {
	if a.At.IsZero() {
		a.At = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(s.state, a)
	if err != nil {
		return s.state.Clone(), err
	}
	s.state = next
	return next.Clone(), nil
}

// Pay submits the open booking's payment and waits for the simulator.
// A cancelled ctx settles the payment as failed.
func (s *Session) Pay(ctx context.Context) (State, error) {
	if _, err := s.Dispatch(SubmitPayment()); err != nil {
		return s.State(), err
	}

	chargeErr := s.simulator.Charge(ctx)
	state, err := s.Dispatch(PaymentSettled(chargeErr == nil))
	if err != nil {
		return state, err
	}
	if chargeErr != nil {
		s.logger.InfoContext(ctx, "payment simulation interrupted", "error", chargeErr)
		return state, chargeErr
	}
	return state, nil
}

// Close stops following the identity provider.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
