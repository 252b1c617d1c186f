// Package identity adapts an external sign-in provider to the two capabilities the
// booking flow needs: who is signed in now, and a notification when that changes.
package identity

import "sync"

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Provider reports sign-in state. CurrentUser is nil when nobody is signed in.
// OnAuthChange returns a function that removes the callback.
type Provider interface {
	CurrentUser() *User
	OnAuthChange(callback func(*User)) func()
}

// Session is an in-process Provider. Sign-in happens elsewhere; Session only records the result.
type Session struct {
	verifier *TokenVerifier

	mu        sync.Mutex
	user      *User
	nextID    int
	callbacks map[int]func(*User)
}

// NewSession returns a signed-out session. verifier may be nil if SignInWithToken is not used.
func NewSession(verifier *TokenVerifier) *Session {
	return &Session{
		verifier:  verifier,
		callbacks: make(map[int]func(*User)),
	}
}

func (s *Session) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) OnAuthChange(callback func(*User)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.callbacks[id] = callback

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.callbacks, id)
	}
}

func (s *Session) SignIn(user User) {
	s.set(&user)
}

func (s *Session) SignOut() {
	s.set(nil)
}

// SignInWithToken verifies an ID token from the provider and signs its subject in.
func (s *Session) SignInWithToken(token string) (*User, error) {
	if s.verifier == nil {
		return nil, ErrInvalidToken
	}
	user, err := s.verifier.Verify(token)
	if err != nil {
		return nil, err
	}
	s.set(user)
	return user, nil
}

// set swaps the user and notifies callbacks outside the lock so they may call back in.
func (s *Session) set(user *User) {
	s.mu.Lock()
	s.user = user
	callbacks := make([]func(*User), 0, len(s.callbacks))
	for _, cb := range s.callbacks {
		callbacks = append(callbacks, cb)
	}
	s.mu.Unlock()

	for _, cb := range callbacks {
		if user == nil {
			cb(nil)
			continue
		}
		u := *user
		cb(&u)
	}
}
