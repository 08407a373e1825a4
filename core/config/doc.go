// Package config provides configuration management for the sync service.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection details for report persistence
//   - Storage: S3/MinIO credentials for feed archiving
//   - Log: Logging level and format
//   - Sync: batch size, retry policy, concurrency and run toggles
//   - Supplier: feed URL and fetch timeout
//   - Marketplace: seller API endpoint and credentials
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.MaxBatchSize)
package config
