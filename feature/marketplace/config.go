package marketplace

// Config holds configuration for the marketplace API client.
type Config struct {
	// BaseURL is the root of the seller API.
	BaseURL string `mapstructure:"base_url" default:""`
	// ClientID identifies the seller account.
	ClientID string `mapstructure:"client_id" default:""`
	// ApiKey is the seller API token.
	ApiKey string `mapstructure:"api_key" default:""`
	// PageLimit is the catalog page size for snapshot pagination.
	PageLimit int `mapstructure:"page_limit" default:"1000"`
	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
