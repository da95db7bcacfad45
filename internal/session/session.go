// Package session carries the identity of the clinical operator acting on a
// request. A Session starts empty, may be given an email exactly once, and
// is passed explicitly to every service that scopes data to the operator.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	ErrAlreadySet = errors.New("session operator already set")
	ErrEmptyEmail = errors.New("operator email is empty")
	ErrNoSession  = errors.New("no session in context")
)

type Session struct {
	mu    sync.RWMutex
	email string
	set   bool
}

func New() *Session {
	return &Session{}
}

// WithEmail returns a session already bound to email.
func WithEmail(email string) (*Session, error) {
	s := New()
	if err := s.SetEmail(email); err != nil {
		return nil, err
	}
	return s, nil
}

// Email reports the operator email, or false when none has been set.
func (s *Session) Email() (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email, s.set
}

func (s *Session) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set {
		return ErrAlreadySet
	}
	s.email = email
	s.set = true
	return nil
}

type ctxKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, error) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}

// MustFromContext panics when the session middleware was not installed.
func MustFromContext(ctx context.Context) *Session {
	s, err := FromContext(ctx)
	if err != nil {
		panic("session: " + err.Error() + "; is the session middleware installed?")
	}
	return s
}
