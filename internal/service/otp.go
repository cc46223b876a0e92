package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/leaf-supply-chain/internal/apperr"
	"github.com/iliyamo/leaf-supply-chain/internal/model"
	"github.com/iliyamo/leaf-supply-chain/internal/queue"
	"github.com/iliyamo/leaf-supply-chain/internal/utils"
)

const otpDigits = 6

var errOTPInvalid = apperr.Invalid("Invalid or expired OTP")

// OTP issues and checks one-time codes. One challenge per email lives in
// Redis; a new one replaces the old and a successful check removes it.
type OTP struct {
	Redis      *redis.Client
	TTL        time.Duration
	BcryptCost int
	Events     EventPublisher
	Now        func() time.Time
}

func (s *OTP) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func otpKey(email string) string { return "otp:" + email }

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", apperr.Invalid("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", apperr.Invalid("email format is invalid")
	}
	return email, nil
}

// Generate stores a fresh challenge for email and queues the code for
// delivery. If the code cannot be queued the challenge is removed again.
func (s *OTP) Generate(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	code, err := utils.NewNumericCode(otpDigits)
	if err != nil {
		return fmt.Errorf("generate otp code: %w", err)
	}
	hash, err := utils.HashPassword(code, s.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash otp code: %w", err)
	}
	now := s.now()
	raw, err := json.Marshal(model.OTPChallenge{Email: email, CodeHash: hash, ExpiresAt: now.Add(s.TTL)})
	if err != nil {
		return fmt.Errorf("marshal otp challenge: %w", err)
	}
	key := otpKey(email)
	if err := s.Redis.Set(ctx, key, raw, s.TTL).Err(); err != nil {
		return fmt.Errorf("store otp challenge: %w", err)
	}
	ev := queue.OTPRequestedEvent{Email: email, Code: code, RequestedAt: now}
	if err := s.Events.Publish(ctx, queue.OTPRequestedQueue, ev); err != nil {
		_ = s.Redis.Del(ctx, key).Err()
		return apperr.Upstream("Failed to send OTP", err)
	}
	return nil
}

// Verify accepts code once. Missing, expired and mismatching challenges all
// fail the same way.
func (s *OTP) Verify(ctx context.Context, email, code string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return errOTPInvalid
	}
	key := otpKey(email)
	raw, err := s.Redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return errOTPInvalid
	}
	if err != nil {
		return fmt.Errorf("load otp challenge: %w", err)
	}
	var ch model.OTPChallenge
	if err := json.Unmarshal(raw, &ch); err != nil {
		return fmt.Errorf("unmarshal otp challenge: %w", err)
	}
	if s.now().After(ch.ExpiresAt) {
		_ = s.Redis.Del(ctx, key).Err()
		return errOTPInvalid
	}
	if !utils.VerifyPassword(ch.CodeHash, strings.TrimSpace(code)) {
		return errOTPInvalid
	}
	// A concurrent verify may have consumed the challenge first.
	n, err := s.Redis.Del(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("delete otp challenge: %w", err)
	}
	if n == 0 {
		return errOTPInvalid
	}
	return nil
}
