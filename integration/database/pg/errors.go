package pg

import "errors"

// Error variables returned by the connection helpers. Match with errors.Is
// for retry logic and user-facing messages.
var (
	// ErrEmptyConnectionString indicates no connection string was configured.
	ErrEmptyConnectionString = errors.New("empty postgres connection string")

	// ErrFailedToParseConnString indicates the connection string is not a
	// valid postgres:// URL or DSN.
	ErrFailedToParseConnString = errors.New("failed to parse postgres connection string")

	// ErrPostgresNotReady indicates the server did not answer a ping within
	// the configured attempts.
	ErrPostgresNotReady = errors.New("postgres did not become ready within the given time period")

	// ErrHealthcheckFailed indicates a health check ping failed.
	ErrHealthcheckFailed = errors.New("postgres healthcheck failed")
)
