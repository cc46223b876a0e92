package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/leaf-supply-chain/internal/model"
	"github.com/iliyamo/leaf-supply-chain/internal/utils"
)

// ErrInvalidSession covers a bad token, an expired token and a session that
// no longer exists in Redis.
var ErrInvalidSession = errors.New("invalid session")

// Sessions keeps session records in Redis with a TTL. The cookie value is a
// signed token naming the record.
type Sessions struct {
	Redis  *redis.Client
	Secret string
	TTL    time.Duration
	Now    func() time.Time
}

func sessionKey(sid string) string { return "session:" + sid }

// Create opens a session for u and returns the signed token with its expiry.
func (s *Sessions) Create(ctx context.Context, u *model.User) (string, time.Time, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	sid := uuid.NewString()
	data := model.SessionData{UserID: u.UserID, UserRole: u.RoleID, UserEmail: u.Email, CreatedAt: now().UTC()}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("marshal session: %w", err)
	}
	if err := s.Redis.Set(ctx, sessionKey(sid), raw, s.TTL).Err(); err != nil {
		return "", time.Time{}, fmt.Errorf("store session: %w", err)
	}
	token, exp, err := utils.NewSessionToken(s.Secret, sid, u.UserID, u.RoleID, s.TTL)
	if err != nil {
		_ = s.Redis.Del(ctx, sessionKey(sid)).Err()
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return token, exp, nil
}

// Resolve returns the session data and id behind token.
func (s *Sessions) Resolve(ctx context.Context, token string) (*model.SessionData, string, error) {
	claims, err := utils.ParseSessionToken(s.Secret, token)
	if err != nil {
		return nil, "", ErrInvalidSession
	}
	raw, err := s.Redis.Get(ctx, sessionKey(claims.SessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, "", ErrInvalidSession
	}
	if err != nil {
		return nil, "", fmt.Errorf("load session: %w", err)
	}
	var data model.SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, "", fmt.Errorf("unmarshal session: %w", err)
	}
	if data.UserID != claims.Subject {
		return nil, "", ErrInvalidSession
	}
	return &data, claims.SessionID, nil
}

// Delete ends one session. Deleting a missing session is not an error.
func (s *Sessions) Delete(ctx context.Context, sid string) error {
	if err := s.Redis.Del(ctx, sessionKey(sid)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
