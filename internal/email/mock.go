package email

import (
	"sync"

	"feedback_backend/internal/logger"
)

// MockProvider records sent mail instead of delivering it. Used in tests
// and when no SMTP host is configured.
type MockProvider struct {
	mu   sync.Mutex
	Sent []MockMessage
}

type MockMessage struct {
	To    string
	Kind  string // "verification" or "password_reset"
	Token string
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) SendVerification(to, token string) error {
	p.record(MockMessage{To: to, Kind: "verification", Token: token})
	return nil
}

func (p *MockProvider) SendPasswordReset(to, token string) error {
	p.record(MockMessage{To: to, Kind: "password_reset", Token: token})
	return nil
}

func (p *MockProvider) record(msg MockMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Sent = append(p.Sent, msg)
	logger.Debug("mock email recorded", "to", msg.To, "kind", msg.Kind)
}

// LastFor returns the most recent message sent to the address.
func (p *MockProvider) LastFor(to string) *MockMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.Sent) - 1; i >= 0; i-- {
		if p.Sent[i].To == to {
			msg := p.Sent[i]
			return &msg
		}
	}
	return nil
}
