package notification

import (
	"context"
	"log"
)

// Sender is the outbound SMS capability. Retries, if any, belong to the
// dispatcher; a sender call either delivers or errors.
type Sender interface {
	Send(ctx context.Context, toE164, body string) error
}

// LogSender is the default wiring when no SMS gateway is configured; it
// records what would have been sent.
type LogSender struct{}

func (LogSender) Send(_ context.Context, toE164, body string) error {
	log.Printf("sms -> %s: %s", toE164, body)
	return nil
}
