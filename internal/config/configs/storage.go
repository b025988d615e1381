package configs

// Storage configures the S3 bucket that receives uploaded images.
type Storage struct {
	Bucket string `env:"BUCKET" envDefault:"bookpress-uploads"`
	Region string `env:"REGION" envDefault:"us-east-1"`
	// BaseURL overrides the public URL prefix of stored objects, e.g.
	// when a CDN fronts the bucket. Empty means the standard
	// bucket.s3.region.amazonaws.com form.
	BaseURL string `env:"BASE_URL"`
}
