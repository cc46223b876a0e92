package utils

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestFormatLargeNumber(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,0k"},
		{1500, "1,500k"},
		{12050, "12,50k"},
		{999999, "999,999k"},
		{1_000_000, "1,0m"},
		{2_300_000, "2,300m"},
		{2_345_678, "2,345m"},
	}
	for _, c := range cases {
		if got := FormatLargeNumber(c.in); got != c.want {
			t.Errorf("FormatLargeNumber(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNewNumericCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := NewNumericCode(6)
		if err != nil {
			t.Fatalf("code: %v", err)
		}
		if len(code) != 6 || strings.Trim(code, "0123456789") != "" {
			t.Fatalf("bad code %q", code)
		}
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword(hash, "s3cret") || VerifyPassword(hash, "other") {
		t.Fatal("verify mismatch")
	}
}

func TestSessionToken(t *testing.T) {
	tok, exp, err := NewSessionToken("k", "sid-1", "user-1", 4, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry in the past: %v", exp)
	}
	claims, err := ParseSessionToken("k", tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.SessionID != "sid-1" || claims.Subject != "user-1" || claims.Role != 4 {
		t.Fatalf("claims = %+v", claims)
	}
	if _, err := ParseSessionToken("other", tok); err == nil {
		t.Fatal("wrong secret accepted")
	}
}

func TestSessionTokenExpired(t *testing.T) {
	tok, _, err := NewSessionToken("k", "sid", "u", 1, -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseSessionToken("k", tok); err == nil {
		t.Fatal("expired token accepted")
	}
}
