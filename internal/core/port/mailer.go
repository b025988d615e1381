package port

import "context"

// Email is one outbound message.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers a single email and returns the provider message id.
// Failures may be transient (provider throttling, network); the dispatch
// pipeline retries them per recipient.
type Mailer interface {
	Send(ctx context.Context, e Email) (messageID string, err error)
}
