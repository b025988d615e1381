package configs

// Mail configures the outbound email transport. Provider selects the
// adapter: "ses" (AWS SES v2) or "smtp".
type Mail struct {
	Provider string `env:"PROVIDER" envDefault:"ses"`

	// From is the sender address used for all newsletter mail.
	From string `env:"FROM" envDefault:"newsletter@bookpress.local"`
	// FromName is the display name attached to From.
	FromName string `env:"FROM_NAME" envDefault:"Bookpress"`

	// RatePerSecond caps how many sends per second the transport will
	// present to the provider, independent of dispatch batching. Zero
	// disables the limiter.
	RatePerSecond float64 `env:"RATE_PER_SECOND" envDefault:"14"`

	// AWS credentials for the SES adapter. When AccessKey is empty the
	// SDK's default credential chain is used.
	AWSRegion    string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSAccessKey string `env:"AWS_ACCESS_KEY"`
	AWSSecretKey string `env:"AWS_SECRET_KEY"`

	// SMTP settings for the smtp adapter.
	SMTPHost     string `env:"SMTP_HOST" envDefault:"localhost"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
}
