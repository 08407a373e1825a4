// Package database provides the MySQL connection used for sync report
// persistence.
//
// The connection is built with GORM over the mysql driver, with explicit
// connect/read/write timeouts in the DSN and a startup ping so a dead
// database surfaces immediately rather than on first use. Persistence is
// an optional concern: both the CLI and the service run without it when
// the connection fails.
package database
