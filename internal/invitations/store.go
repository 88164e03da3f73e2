package invitations

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// Invitation is a pending offer to join an apartment as a renter, keyed by a
// single-use token mailed to the invitee. Invitations live in redis with a
// TTL; an unaccepted invitation simply expires, nothing to clean up.
type Invitation struct {
	ApartmentID int64     `json:"apartment_id"`
	Email       string    `json:"email"`
	InvitedBy   int64     `json:"invited_by"`
	CreatedAt   time.Time `json:"created_at"`
}

var ErrNotFound = errors.New("invitation not found")

const (
	keyPrefix  = "invite:"
	tokenLen   = 64
	tokenChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	defaultTTL = 7 * 24 * time.Hour
)

type Store struct {
	rdb *redis.Client
	ttl time.Duration
	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{rdb: rdb, ttl: ttl, clock: time.Now}
}

// Create stores a new invitation and returns its token.
func (s *Store) Create(ctx context.Context, apartmentID int64, email string, invitedBy int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	inv := Invitation{
		ApartmentID: apartmentID,
		Email:       email,
		InvitedBy:   invitedBy,
		CreatedAt:   s.clock().UTC(),
	}
	payload, err := json.Marshal(inv)
	if err != nil {
		return "", err
	}

	if err := s.rdb.Set(ctx, keyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("storing invitation: %w", err)
	}
	return token, nil
}

// Get returns the invitation without consuming it.
func (s *Store) Get(ctx context.Context, token string) (Invitation, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Invitation{}, ErrNotFound
		}
		return Invitation{}, fmt.Errorf("loading invitation: %w", err)
	}
	return decode(raw)
}

// Accept consumes the invitation: the token is deleted atomically with the
// read, so it can be accepted at most once.
func (s *Store) Accept(ctx context.Context, token string) (Invitation, error) {
	raw, err := s.rdb.GetDel(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Invitation{}, ErrNotFound
		}
		return Invitation{}, fmt.Errorf("accepting invitation: %w", err)
	}
	return decode(raw)
}

func decode(raw []byte) (Invitation, error) {
	var inv Invitation
	if err := json.Unmarshal(raw, &inv); err != nil {
		return Invitation{}, fmt.Errorf("decoding invitation: %w", err)
	}
	return inv, nil
}

func generateToken() (string, error) {
	out := make([]byte, tokenLen)
	charsetSize := big.NewInt(int64(len(tokenChars)))
	for i := range out {
		n, err := rand.Int(rand.Reader, charsetSize)
		if err != nil {
			return "", fmt.Errorf("generating token: %w", err)
		}
		out[i] = tokenChars[n.Int64()]
	}
	return string(out), nil
}
