package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"bookpress/internal/core/domain"
	"bookpress/internal/core/port"
)

// --- fakes ---

type dispatchWrite struct {
	status  string
	sentAt  *time.Time
	metrics domain.NewsletterMetrics
}

type fakeNewsletterRepo struct {
	byID        map[uuid.UUID]*domain.Newsletter
	claimDenied bool

	claimed bool
	written *dispatchWrite
}

func newFakeNewsletterRepo(ns ...*domain.Newsletter) *fakeNewsletterRepo {
	r := &fakeNewsletterRepo{byID: map[uuid.UUID]*domain.Newsletter{}}
	for _, n := range ns {
		r.byID[n.ID] = n
	}
	return r
}

func (r *fakeNewsletterRepo) Create(ctx context.Context, n *domain.Newsletter) error {
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	r.byID[n.ID] = n
	return nil
}

func (r *fakeNewsletterRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Newsletter, error) {
	return r.byID[id], nil
}

func (r *fakeNewsletterRepo) List(ctx context.Context) ([]domain.Newsletter, error) {
	return nil, nil
}

func (r *fakeNewsletterRepo) MarkSending(ctx context.Context, id uuid.UUID) (bool, error) {
	if r.claimDenied {
		return false, nil
	}
	r.claimed = true
	return true, nil
}

func (r *fakeNewsletterRepo) UpdateDispatchResult(ctx context.Context, id uuid.UUID, status string, sentAt *time.Time, m domain.NewsletterMetrics) error {
	r.written = &dispatchWrite{status: status, sentAt: sentAt, metrics: m}
	return nil
}

type fakeSubscriberRepo struct {
	emails []string
	filter port.SubscriberFilter
}

func (r *fakeSubscriberRepo) Upsert(ctx context.Context, s *domain.Subscriber) (bool, error) {
	return true, nil
}
func (r *fakeSubscriberRepo) FindByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	return nil, nil
}
func (r *fakeSubscriberRepo) VerifyByToken(ctx context.Context, token string) (bool, error) {
	return false, nil
}
func (r *fakeSubscriberRepo) Deactivate(ctx context.Context, email string) (bool, error) {
	return false, nil
}
func (r *fakeSubscriberRepo) ListEmails(ctx context.Context, f port.SubscriberFilter) ([]string, error) {
	r.filter = f
	return r.emails, nil
}
func (r *fakeSubscriberRepo) CountActive(ctx context.Context) (int64, error) { return 0, nil }

// fakeMailer records sends and fails the configured recipients forever.
type fakeMailer struct {
	mu       sync.Mutex
	attempts map[string]int
	failing  map[string]bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{attempts: map[string]int{}, failing: map[string]bool{}}
}

func (m *fakeMailer) Send(ctx context.Context, e port.Email) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[e.To]++
	if m.failing[e.To] {
		return "", errors.New("provider rejected")
	}
	return "mid-" + e.To, nil
}

func (m *fakeMailer) totalSends(t *testing.T) int {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.attempts {
		total += n
	}
	return total
}

type fakeLock struct {
	err      error
	held     int
	released int
}

func (l *fakeLock) Acquire(ctx context.Context, key string) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.held++
	return func() { l.released++ }, nil
}

// --- helpers ---

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestUseCase(repo *fakeNewsletterRepo, subs *fakeSubscriberRepo, mailer port.Mailer, lock port.DispatchLock) (*NewsletterUseCase, *[]time.Duration) {
	u := NewNewsletterUseCase(repo, subs, mailer, lock,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	u.now = func() time.Time { return testNow }
	var delays []time.Duration
	var mu sync.Mutex
	u.sleep = func(ctx context.Context, d time.Duration) {
		mu.Lock()
		delays = append(delays, d)
		mu.Unlock()
	}
	return u, &delays
}

func draftNewsletter() *domain.Newsletter {
	return &domain.Newsletter{
		ID:      uuid.New(),
		Subject: "Hello",
		Content: "<h1>Hi</h1>",
		Status:  domain.NewsletterStatusDraft,
	}
}

// subscriberEmails builds n clean addresses plus the requested number of
// case/whitespace duplicates and malformed entries.
func subscriberEmails(n, dupes, malformed int) []string {
	out := make([]string, 0, n+dupes+malformed)
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("user%d@example.com", i))
	}
	for i := 0; i < dupes; i++ {
		out = append(out, fmt.Sprintf("  USER%d@Example.COM ", i))
	}
	for i := 0; i < malformed; i++ {
		if i%2 == 0 {
			out = append(out, fmt.Sprintf("no-at-sign-%d.example.com", i))
		} else {
			out = append(out, fmt.Sprintf("no-dot-%d@example", i))
		}
	}
	return out
}

// --- tests ---

// TestDispatchEndToEnd mirrors the happy-path scenario: 250 raw
// subscribers (3 duplicates, 2 malformed), batch size 100 → 245
// recipients, 3 batches, 2 inter-batch delays, everything sent.
func TestDispatchEndToEnd(t *testing.T) {
	n := draftNewsletter()
	repo := newFakeNewsletterRepo(n)
	subs := &fakeSubscriberRepo{emails: subscriberEmails(245, 3, 2)}
	mailer := newFakeMailer()
	lock := &fakeLock{}
	u, delays := newTestUseCase(repo, subs, mailer, lock)

	opts := port.DefaultDispatchOptions()
	summary, err := u.Dispatch(context.Background(), n.ID, opts)
	require.NoError(t, err)

	require.Equal(t, 245, summary.Total)
	require.Equal(t, 245, summary.Sent)
	require.Equal(t, 0, summary.Failed)
	require.Equal(t, domain.NewsletterStatusSent, summary.Status)
	require.Len(t, summary.Results, 245)
	// Malformed addresses never show up in the results.
	for _, r := range summary.Results {
		require.True(t, r.Success)
		require.NotContains(t, r.Email, "no-at-sign")
	}

	require.Equal(t, 245, mailer.totalSends(t))

	// ceil(245/100)-1 inter-batch pauses of the configured delay.
	require.Len(t, *delays, 2)
	for _, d := range *delays {
		require.Equal(t, time.Second, d)
	}

	require.True(t, repo.claimed)
	require.NotNil(t, repo.written)
	require.Equal(t, domain.NewsletterStatusSent, repo.written.status)
	require.NotNil(t, repo.written.sentAt)
	require.Equal(t, testNow, *repo.written.sentAt)
	require.Equal(t, 245, repo.written.metrics.TotalRecipients)
	require.Equal(t, 245, repo.written.metrics.Sent)
	require.Equal(t, 0, repo.written.metrics.Failed)
	require.Equal(t, 1, lock.released)

	// The default filter asks for active and verified subscribers.
	require.True(t, subs.filter.OnlyActive)
	require.True(t, subs.filter.OnlyVerified)
}

// TestDispatchPartialFailure checks permanently failing recipients are
// retried, counted and reported without aborting the run.
func TestDispatchPartialFailure(t *testing.T) {
	n := draftNewsletter()
	repo := newFakeNewsletterRepo(n)
	subs := &fakeSubscriberRepo{emails: subscriberEmails(245, 3, 2)}
	mailer := newFakeMailer()
	for i := 0; i < 10; i++ {
		mailer.failing[fmt.Sprintf("user%d@example.com", i)] = true
	}
	lock := &fakeLock{}
	u, _ := newTestUseCase(repo, subs, mailer, lock)

	summary, err := u.Dispatch(context.Background(), n.ID, port.DefaultDispatchOptions())
	require.NoError(t, err)

	require.Equal(t, 235, summary.Sent)
	require.Equal(t, 10, summary.Failed)
	require.Equal(t, domain.NewsletterStatusPartial, summary.Status)

	failed := 0
	for _, r := range summary.Results {
		if !r.Success {
			failed++
			require.Equal(t, "provider rejected", r.Error)
		}
	}
	require.Equal(t, 10, failed)

	// Failing recipients get retries+1 attempts each.
	require.Equal(t, 3, mailer.attempts["user0@example.com"])

	require.Equal(t, domain.NewsletterStatusPartial, repo.written.status)
	require.NotNil(t, repo.written.sentAt, "an attempt occurred, sentAt must be set")
	require.Equal(t, 10, repo.written.metrics.Failed)
}

// TestDispatchAlreadySentIsIdempotent checks the terminal-status guard
// rejects a re-send without touching metrics.
func TestDispatchAlreadySentIsIdempotent(t *testing.T) {
	n := draftNewsletter()
	n.Status = domain.NewsletterStatusSent
	repo := newFakeNewsletterRepo(n)
	mailer := newFakeMailer()
	u, _ := newTestUseCase(repo, &fakeSubscriberRepo{emails: subscriberEmails(5, 0, 0)}, mailer, &fakeLock{})

	_, err := u.Dispatch(context.Background(), n.ID, port.DefaultDispatchOptions())
	require.ErrorIs(t, err, port.ErrAlreadySent)
	require.Nil(t, repo.written)
	require.Zero(t, mailer.totalSends(t))
}

// TestDispatchClaimLostIsConflict covers the conditional-update path: a
// competing writer took the newsletter between guard and claim.
func TestDispatchClaimLostIsConflict(t *testing.T) {
	n := draftNewsletter()
	repo := newFakeNewsletterRepo(n)
	repo.claimDenied = true
	u, _ := newTestUseCase(repo, &fakeSubscriberRepo{emails: subscriberEmails(5, 0, 0)}, newFakeMailer(), &fakeLock{})

	_, err := u.Dispatch(context.Background(), n.ID, port.DefaultDispatchOptions())
	require.ErrorIs(t, err, port.ErrAlreadySent)
	require.Nil(t, repo.written)
}

// TestDispatchDryRun checks the transport is never touched while the
// rest of the pipeline runs for real.
func TestDispatchDryRun(t *testing.T) {
	n := draftNewsletter()
	repo := newFakeNewsletterRepo(n)
	mailer := newFakeMailer()
	u, _ := newTestUseCase(repo, &fakeSubscriberRepo{emails: subscriberEmails(42, 0, 0)}, mailer, &fakeLock{})

	opts := port.DefaultDispatchOptions()
	opts.DryRun = true
	summary, err := u.Dispatch(context.Background(), n.ID, opts)
	require.NoError(t, err)

	require.Equal(t, 42, summary.Sent)
	require.Equal(t, 0, summary.Failed)
	require.Equal(t, domain.NewsletterStatusDrySent, summary.Status)
	require.Zero(t, mailer.totalSends(t), "dry run must not contact the transport")

	require.Equal(t, domain.NewsletterStatusDrySent, repo.written.status)
	require.Nil(t, repo.written.sentAt)
	require.True(t, repo.written.metrics.DryRun)
	require.Equal(t, testNow, *repo.written.metrics.LastAttemptAt)
}

func TestDispatchNotFound(t *testing.T) {
	u, _ := newTestUseCase(newFakeNewsletterRepo(), &fakeSubscriberRepo{}, newFakeMailer(), &fakeLock{})
	_, err := u.Dispatch(context.Background(), uuid.New(), port.DefaultDispatchOptions())
	require.ErrorIs(t, err, port.ErrNotFound)
}

func TestDispatchNoValidRecipients(t *testing.T) {
	n := draftNewsletter()
	repo := newFakeNewsletterRepo(n)
	// Only malformed addresses: all dropped during normalisation.
	subs := &fakeSubscriberRepo{emails: subscriberEmails(0, 0, 4)}
	u, _ := newTestUseCase(repo, subs, newFakeMailer(), &fakeLock{})

	_, err := u.Dispatch(context.Background(), n.ID, port.DefaultDispatchOptions())
	require.ErrorIs(t, err, port.ErrNoRecipients)
	require.False(t, repo.claimed, "claim must not happen before recipients exist")
}

func TestDispatchConcurrentDuplicateRejected(t *testing.T) {
	n := draftNewsletter()
	lock := &fakeLock{err: port.ErrDispatchRunning}
	u, _ := newTestUseCase(newFakeNewsletterRepo(n), &fakeSubscriberRepo{}, newFakeMailer(), lock)

	_, err := u.Dispatch(context.Background(), n.ID, port.DefaultDispatchOptions())
	require.ErrorIs(t, err, port.ErrDispatchRunning)
}

func TestDispatchInvalidOptions(t *testing.T) {
	n := draftNewsletter()
	u, _ := newTestUseCase(newFakeNewsletterRepo(n), &fakeSubscriberRepo{}, newFakeMailer(), &fakeLock{})

	cases := []func(*port.DispatchOptions){
		func(o *port.DispatchOptions) { o.BatchSize = 0 },
		func(o *port.DispatchOptions) { o.BatchDelayMs = -1 },
		func(o *port.DispatchOptions) { o.MaxConcurrency = 0 },
		func(o *port.DispatchOptions) { o.Retries = -1 },
	}
	for _, mutate := range cases {
		opts := port.DefaultDispatchOptions()
		mutate(&opts)
		_, err := u.Dispatch(context.Background(), n.ID, opts)
		require.ErrorIs(t, err, port.ErrInvalidOption)
	}
}

func TestNormalizeRecipients(t *testing.T) {
	in := []string{
		" Alice@Example.com ",
		"alice@example.com",
		"ALICE@EXAMPLE.COM",
		"bob@example.com",
		"not-an-email",
		"missing@dot",
		"",
		"carol@example.org",
	}
	got := normalizeRecipients(in)
	require.Equal(t, []string{"alice@example.com", "bob@example.com", "carol@example.org"}, got)
}

func TestCreateNewsletterValidation(t *testing.T) {
	repo := newFakeNewsletterRepo()
	u, _ := newTestUseCase(repo, &fakeSubscriberRepo{}, newFakeMailer(), &fakeLock{})

	_, err := u.Create(context.Background(), "   ", "<p>body</p>")
	require.ErrorIs(t, err, port.ErrInvalidOption)

	_, err = u.Create(context.Background(), "Subject", "")
	require.ErrorIs(t, err, port.ErrInvalidOption)

	n, err := u.Create(context.Background(), " Subject ", " <p>body</p> ")
	require.NoError(t, err)
	require.Equal(t, "Subject", n.Subject)
	require.Equal(t, domain.NewsletterStatusDraft, n.Status)
}
