package services

import (
	"errors"
	"sync"
	"time"

	"github.com/tuifinancial/finserv/internal/security"
)

const (
	ResetTokenTTL = 15 * time.Minute

	// 32 random bytes keep the URL-safe token above 256 bits of entropy.
	resetTokenByteLength = 32
)

var (
	ErrResetTokenNotFound = errors.New("reset token not found")
	ErrResetTokenExpired  = errors.New("reset token expired")
)

type resetEntry struct {
	Email     string
	ExpiresAt time.Time
}

// ResetTokenStore keeps single-use password-reset tokens in process memory.
// Tokens are deliberately lost on restart; durability would require swapping
// this type for one backed by an expiring key-value store, without touching
// callers.
type ResetTokenStore struct {
	mu      sync.Mutex
	entries map[string]resetEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewResetTokenStore() *ResetTokenStore {
	return &ResetTokenStore{
		entries: make(map[string]resetEntry),
		ttl:     ResetTokenTTL,
		now:     time.Now,
	}
}

// Issue binds a fresh random token to the email for one TTL.
func (store *ResetTokenStore) Issue(email string) (string, error) {
	token, err := security.RandomToken(resetTokenByteLength)
	if err != nil {
		return "", err
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	store.entries[token] = resetEntry{
		Email:     email,
		ExpiresAt: store.now().Add(store.ttl),
	}
	return token, nil
}

// Consume removes the token and returns its bound email. Lookup and delete
// happen under one lock so two concurrent resets cannot both spend the same
// token. An expired token is removed and reported as expired.
func (store *ResetTokenStore) Consume(token string) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, exists := store.entries[token]
	if !exists {
		return "", ErrResetTokenNotFound
	}

	delete(store.entries, token)
	if store.now().After(entry.ExpiresAt) {
		return "", ErrResetTokenExpired
	}
	return entry.Email, nil
}
