package mail

import "context"

// Message is one transactional email.
type Message struct {
	To      []string
	Subject string
	HTML    string
	Params  map[string]string
}

// Mailer sends transactional email. Implementations must treat a non-nil
// error as "not delivered"; callers decide whether that aborts the
// operation (interactive flows) or is logged and skipped (the sweep).
type Mailer interface {
	Send(ctx context.Context, m Message) error
}
