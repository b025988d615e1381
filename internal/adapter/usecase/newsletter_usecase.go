package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookpress/internal/core/domain"
	"bookpress/internal/core/port"
	"bookpress/internal/dispatch"
)

// emailPattern is the syntactic check applied to candidate recipients.
// Addresses failing it are dropped silently, not reported as failures.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NewsletterUseCase orchestrates newsletter management and the dispatch
// pipeline: recipient resolution, batch fan-out with retry, and the
// final status/metrics write.
type NewsletterUseCase struct {
	newsletters port.NewsletterRepository
	subscribers port.SubscriberRepository
	mailer      port.Mailer
	locks       port.DispatchLock
	logger      *slog.Logger

	now   func() time.Time
	sleep dispatch.SleepFunc
}

// NewNewsletterUseCase creates the orchestrator.
func NewNewsletterUseCase(
	newsletters port.NewsletterRepository,
	subscribers port.SubscriberRepository,
	mailer port.Mailer,
	locks port.DispatchLock,
	logger *slog.Logger,
) *NewsletterUseCase {
	return &NewsletterUseCase{
		newsletters: newsletters,
		subscribers: subscribers,
		mailer:      mailer,
		locks:       locks,
		logger:      logger,
		now:         time.Now,
		sleep:       dispatch.Sleep,
	}
}

// Create stores a draft newsletter after validating subject and content.
func (u *NewsletterUseCase) Create(ctx context.Context, subject, content string) (*domain.Newsletter, error) {
	subject = strings.TrimSpace(subject)
	content = strings.TrimSpace(content)
	if subject == "" {
		return nil, fmt.Errorf("%w: subject is required", port.ErrInvalidOption)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: html content is required", port.ErrInvalidOption)
	}

	n := &domain.Newsletter{
		Subject: subject,
		Content: content,
		Status:  domain.NewsletterStatusDraft,
	}
	if err := u.newsletters.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create newsletter: %w", err)
	}
	return n, nil
}

// Get returns one newsletter or ErrNotFound.
func (u *NewsletterUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Newsletter, error) {
	n, err := u.newsletters.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load newsletter: %w", err)
	}
	if n == nil {
		return nil, port.ErrNotFound
	}
	return n, nil
}

// List returns all newsletters.
func (u *NewsletterUseCase) List(ctx context.Context) ([]domain.Newsletter, error) {
	return u.newsletters.List(ctx)
}

func validateOptions(opts port.DispatchOptions) error {
	switch {
	case opts.BatchSize < 1:
		return fmt.Errorf("%w: batchSize must be >= 1", port.ErrInvalidOption)
	case opts.BatchDelayMs < 0:
		return fmt.Errorf("%w: batchDelayMs must be >= 0", port.ErrInvalidOption)
	case opts.MaxConcurrency < 1:
		return fmt.Errorf("%w: maxConcurrency must be >= 1", port.ErrInvalidOption)
	case opts.Retries < 0:
		return fmt.Errorf("%w: retries must be >= 0", port.ErrInvalidOption)
	}
	return nil
}

// normalizeRecipients trims, lowercases, deduplicates and syntactically
// validates the raw email list, preserving first-seen order.
func normalizeRecipients(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || !emailPattern.MatchString(e) {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Dispatch runs one send attempt for the newsletter. See the port
// documentation for the sentinel errors it returns.
func (u *NewsletterUseCase) Dispatch(ctx context.Context, id uuid.UUID, opts port.DispatchOptions) (*port.DispatchSummary, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	// Serialise concurrent dispatches for the same newsletter before
	// touching any state.
	release, err := u.locks.Acquire(ctx, id.String())
	if err != nil {
		return nil, err
	}
	defer release()

	n, err := u.newsletters.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load newsletter: %w", err)
	}
	if n == nil {
		return nil, port.ErrNotFound
	}
	if n.Status == domain.NewsletterStatusSent {
		return nil, port.ErrAlreadySent
	}

	raw, err := u.subscribers.ListEmails(ctx, port.SubscriberFilter{
		OnlyActive:   true,
		OnlyVerified: opts.OnlyVerified,
		Attributes:   opts.CustomFilter,
	})
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	recipients := normalizeRecipients(raw)
	if len(recipients) == 0 {
		return nil, port.ErrNoRecipients
	}

	// Conditional claim: closes the check-then-act window should another
	// writer have slipped past the lock.
	claimed, err := u.newsletters.MarkSending(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("claim newsletter: %w", err)
	}
	if !claimed {
		return nil, port.ErrAlreadySent
	}

	u.logger.Info("newsletter dispatch started",
		slog.String("id", id.String()),
		slog.String("subject", n.Subject),
		slog.Int("recipients", len(recipients)),
		slog.Bool("dry_run", opts.DryRun),
	)

	send := func(ctx context.Context, email string) (string, error) {
		return u.mailer.Send(ctx, port.Email{To: email, Subject: n.Subject, HTML: n.Content})
	}
	if opts.DryRun {
		// Exercises the whole pipeline without touching the transport.
		send = func(ctx context.Context, email string) (string, error) { return "", nil }
	}

	outcomes, tally := dispatch.Run(ctx, recipients, send, dispatch.Config{
		BatchSize:      opts.BatchSize,
		BatchDelay:     time.Duration(opts.BatchDelayMs) * time.Millisecond,
		MaxConcurrency: opts.MaxConcurrency,
		Retries:        opts.Retries,
		Sleep:          u.sleep,
	})

	status := domain.NewsletterStatusPartial
	switch {
	case opts.DryRun:
		status = domain.NewsletterStatusDrySent
	case tally.Failed == 0 && len(outcomes) == len(recipients):
		status = domain.NewsletterStatusSent
	}

	now := u.now()
	var sentAt *time.Time
	if !opts.DryRun {
		sentAt = &now
	}
	metrics := domain.NewsletterMetrics{
		TotalRecipients: len(recipients),
		Sent:            tally.Sent,
		Failed:          tally.Failed,
		DryRun:          opts.DryRun,
		LastAttemptAt:   &now,
	}
	if err := u.newsletters.UpdateDispatchResult(ctx, id, status, sentAt, metrics); err != nil {
		return nil, fmt.Errorf("persist dispatch result: %w", err)
	}

	u.logger.Info("newsletter dispatch finished",
		slog.String("id", id.String()),
		slog.Int("total", len(recipients)),
		slog.Int("sent", tally.Sent),
		slog.Int("failed", tally.Failed),
		slog.String("status", status),
	)

	results := make([]port.RecipientResult, len(outcomes))
	for i, o := range outcomes {
		results[i] = port.RecipientResult{
			Email:     o.Email,
			Success:   o.Success,
			MessageID: o.MessageID,
			Error:     o.Error,
		}
	}
	return &port.DispatchSummary{
		NewsletterID: id,
		Subject:      n.Subject,
		Total:        len(recipients),
		Sent:         tally.Sent,
		Failed:       tally.Failed,
		Status:       status,
		DryRun:       opts.DryRun,
		Results:      results,
	}, nil
}
