package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Mailer delivers a plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// OTPMailHandler delivers the code of each otp.requested event.
func OTPMailHandler(m Mailer) HandlerFunc {
	return func(ctx context.Context, body []byte) error {
		var ev OTPRequestedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal otp event: %w", err)
		}
		if ev.Email == "" || ev.Code == "" {
			return fmt.Errorf("otp event missing email or code")
		}
		return m.Send(ctx, ev.Email, "Your OTP Code", fmt.Sprintf("Your OTP is %s.", ev.Code))
	}
}

// ShipmentLogHandler writes every shipment event as one structured log line.
func ShipmentLogHandler(log *zap.Logger) HandlerFunc {
	return func(_ context.Context, body []byte) error {
		var ev ShipmentEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal shipment event: %w", err)
		}
		log.Info("shipment event",
			zap.String("action", ev.Action),
			zap.Int64("shipment_id", ev.ShipmentID),
			zap.String("user_id", ev.UserID),
			zap.Int64("courier_id", ev.CourierID),
			zap.Int64("quantity", ev.Quantity),
			zap.Int64s("flour_ids", ev.FlourIDs),
			zap.Time("occurred_at", ev.OccurredAt),
		)
		return nil
	}
}
