// Package notification is the side-effect boundary between the state
// machines and the SMS gateway. Dispatch is best-effort: every failure is
// logged and swallowed so a slow or broken gateway is structurally unable to
// fail or delay a state transition.
package notification

import (
	"context"
	"strings"
	"time"

	domainUser "loanflow-backend/internal/domain/user"
	"loanflow-backend/pkg/phone"

	"log"
)

// templates map dispatch events to message bodies; {param} placeholders are
// filled from the params map.
var templates = map[string]string{
	"contract_sent":   "Your loan contract is ready to sign: {signature_url}",
	"contract_resent": "Reminder: your loan contract is waiting for signature: {signature_url}",
}

type Dispatcher struct {
	users   domainUser.Repository
	sender  Sender
	timeout time.Duration
}

func NewDispatcher(users domainUser.Repository, sender Sender, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{users: users, sender: sender, timeout: timeout}
}

// Dispatch resolves the user's phone, normalizes it, and hands the rendered
// message to the sender on a detached timeout context, so neither the
// lookup nor the gateway can inherit (or eat) the caller's deadline.
func (d *Dispatcher) Dispatch(_ context.Context, userID, event string, params map[string]string) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	u, err := d.users.GetByUserID(ctx, userID)
	if err != nil {
		log.Printf("notification: resolve user %s for %s: %v", userID, event, err)
		return
	}

	to := phone.Normalize(u.Personal.Phone)
	body := render(event, params)
	if err := d.sender.Send(ctx, to, body); err != nil {
		log.Printf("notification: send %s to %s: %v", event, to, err)
	}
}

func render(event string, params map[string]string) string {
	body, ok := templates[event]
	if !ok {
		body = event
	}
	for k, v := range params {
		body = strings.ReplaceAll(body, "{"+k+"}", v)
	}
	return body
}
