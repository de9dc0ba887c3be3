package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/StudioSpot/service-booking/internal/auth"
	"github.com/StudioSpot/service-booking/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Session is the server-side state behind a refresh token.
type Session struct {
	UserID uuid.UUID
	Role   string
}

// Store keeps refresh-token sessions in Redis with an explicit
// save/load/clear lifecycle. Tokens are stored hashed; a stolen dump cannot
// be replayed.
type Store struct {
	client *redis.Client
}

// NewStore creates a Store backed by the given Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func sessionKey(tokenHash string) string {
	return "session:" + tokenHash
}

// Save records a session for the raw refresh token, expiring with the token.
func (s *Store) Save(ctx context.Context, rawToken string, sess Session, ttl time.Duration) error {
	key := sessionKey(auth.HashRefreshToken(rawToken))
	value := sess.UserID.String() + "|" + sess.Role
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load resolves a raw refresh token to its session. An unknown or expired
// token yields an UnauthorizedError.
func (s *Store) Load(ctx context.Context, rawToken string) (*Session, error) {
	key := sessionKey(auth.HashRefreshToken(rawToken))
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.NewUnauthorizedError("invalid or expired refresh token")
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var userIDStr, role string
	for i := 0; i < len(value); i++ {
		if value[i] == '|' {
			userIDStr, role = value[:i], value[i+1:]
			break
		}
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt session value: %w", err)
	}

	return &Session{UserID: userID, Role: role}, nil
}

// Clear removes the session for the raw refresh token. Clearing an unknown
// token is a no-op.
func (s *Store) Clear(ctx context.Context, rawToken string) error {
	key := sessionKey(auth.HashRefreshToken(rawToken))
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
