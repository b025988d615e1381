package configs

// Cron configures the scheduled-blog publisher.
type Cron struct {
	// PublishSpec is a robfig/cron spec controlling how often scheduled
	// posts are checked for publication.
	PublishSpec string `env:"PUBLISH_SPEC" envDefault:"@every 1m"`
}
