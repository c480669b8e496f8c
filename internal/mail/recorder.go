package mail

import (
	"context"
	"sync"

	"github.com/docfolio/backend/internal/apperror"
)

// Recorder is a Mailer for unit tests: it records every message and can be
// told to fail for specific recipients.
type Recorder struct {
	mu     sync.Mutex
	Sent   []Message
	FailTo map[string]bool
}

var _ Mailer = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{FailTo: make(map[string]bool)}
}

func (r *Recorder) Send(ctx context.Context, m Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, to := range m.To {
		if r.FailTo[to] {
			return apperror.Unavailable("could not send email to "+to, nil)
		}
	}
	r.Sent = append(r.Sent, m)
	return nil
}

// SentTo returns the messages addressed to the given recipient.
func (r *Recorder) SentTo(email string) []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Message
	for _, m := range r.Sent {
		for _, to := range m.To {
			if to == email {
				out = append(out, m)
			}
		}
	}
	return out
}
