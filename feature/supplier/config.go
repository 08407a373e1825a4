package supplier

// Config holds configuration for the supplier feed source.
type Config struct {
	// FeedURL is the address of the supplier's zipped stock sheet.
	FeedURL string `mapstructure:"feed_url" default:""`
	// TimeoutSeconds is the HTTP timeout for the feed download.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
	// ArchivePrefix is the object key prefix for archived feeds.
	ArchivePrefix string `mapstructure:"archive_prefix" default:"feeds"`
}
