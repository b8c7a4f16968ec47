// Package session holds per-account conversation state: the step the chat
// flow is waiting on and a small payload. It is deliberately in-process and
// expiring; financial facts (price, balance, stock) are never read from
// here, only from the ledger inside a transaction.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultTTL    = 30 * time.Minute
	sweepInterval = time.Minute
)

type entry struct {
	Step      string
	Payload   string
	expiresAt time.Time
}

type Store struct {
	mu      sync.Mutex
	entries map[int64]entry
	ttl     time.Duration
}

func NewStore() *Store {
	return &Store{
		entries: make(map[int64]entry),
		ttl:     defaultTTL,
	}
}

// Start runs the expiry sweep until the context is canceled.
func (s *Store) Start(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("session sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(time.Now())
		}
	}
}

func (s *Store) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}

// Set replaces the account's step and payload, refreshing the TTL.
func (s *Store) Set(accountID int64, step, payload string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[accountID] = entry{
		Step:      step,
		Payload:   payload,
		expiresAt: time.Now().Add(s.ttl),
	}
}

// Get returns the current step and payload, or empty strings when the
// account has no live session.
func (s *Store) Get(accountID int64) (step, payload string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[accountID]
	if !ok || time.Now().After(e.expiresAt) {
		return "", ""
	}
	return e.Step, e.Payload
}

func (s *Store) Clear(accountID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, accountID)
}
