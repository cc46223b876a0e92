package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/iliyamo/leaf-supply-chain/internal/config"
)

func TestSendWithoutHostOnlyLogs(t *testing.T) {
	s := NewSender(config.SMTPConfig{}, zap.NewNop())
	s.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("relay called without host")
		return nil
	}
	if err := s.Send(context.Background(), "a@b.co", "x", "y"); err != nil {
		t.Fatalf("send: %v", err)
	}
}

func TestSendComposesMessage(t *testing.T) {
	var gotAddr string
	var gotMsg []byte
	s := NewSender(config.SMTPConfig{Host: "smtp.example.com", Port: "587", From: "noreply@example.com"}, zap.NewNop())
	s.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotMsg = addr, msg
		if from != "noreply@example.com" || len(to) != 1 || to[0] != "a@b.co" {
			t.Fatalf("envelope from=%s to=%v", from, to)
		}
		return nil
	}
	if err := s.Send(context.Background(), "a@b.co", "Your OTP Code", "Your OTP is 123456."); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Fatalf("addr = %s", gotAddr)
	}
	msg := string(gotMsg)
	if !strings.Contains(msg, "Subject: Your OTP Code\r\n") || !strings.HasSuffix(msg, "Your OTP is 123456.\r\n") {
		t.Fatalf("message = %q", msg)
	}
}

func TestSendWrapsRelayError(t *testing.T) {
	s := NewSender(config.SMTPConfig{Host: "h", Port: "25"}, zap.NewNop())
	boom := errors.New("relay down")
	s.send = func(string, smtp.Auth, string, []string, []byte) error { return boom }
	if err := s.Send(context.Background(), "a@b.co", "s", "b"); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
