// Package cron runs the background schedule that publishes blog posts
// whose publish time has passed.
package cron

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"bookpress/internal/core/port"
)

// Publisher periodically flips due scheduled posts to published.
type Publisher struct {
	blogs  port.BlogUseCase
	logger *slog.Logger
	c      *cron.Cron
}

// NewPublisher creates a stopped publisher.
func NewPublisher(blogs port.BlogUseCase, logger *slog.Logger) *Publisher {
	return &Publisher{blogs: blogs, logger: logger, c: cron.New()}
}

// Start registers the job under spec and starts the scheduler. Specs use
// robfig/cron syntax, including descriptors like "@every 1m".
func (p *Publisher) Start(spec string) error {
	_, err := p.c.AddFunc(spec, p.run)
	if err != nil {
		return err
	}
	p.c.Start()
	p.logger.Info("blog publisher started", slog.String("spec", spec))
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (p *Publisher) Stop() {
	<-p.c.Stop().Done()
	p.logger.Info("blog publisher stopped")
}

func (p *Publisher) run() {
	n, err := p.blogs.PublishDue(context.Background())
	if err != nil {
		p.logger.Error("publish due posts", slog.Any("error", err))
		return
	}
	if n > 0 {
		p.logger.Info("scheduled posts published", slog.Int64("count", n))
	}
}
