package sendermock

import (
	"context"
	"sync"
)

// Sent is one recorded outbound message.
type Sent struct {
	To   string
	Body string
}

// Sender records every send and optionally fails with Err.
type Sender struct {
	mu   sync.Mutex
	Err  error
	Sent []Sent
}

func (m *Sender) Send(_ context.Context, toE164, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, Sent{To: toE164, Body: body})
	return m.Err
}

func (m *Sender) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

func (m *Sender) Last() (Sent, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return Sent{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}
