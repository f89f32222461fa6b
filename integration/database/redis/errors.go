package redis

import "errors"

// Error variables returned by the connection helpers. Match with errors.Is
// for retry logic and user-facing messages.
var (
	// ErrEmptyConnectionURL indicates no connection URL was configured.
	ErrEmptyConnectionURL = errors.New("empty redis connection URL")

	// ErrFailedToParseRedisConnString indicates the connection URL is not a
	// valid redis:// or rediss:// URL.
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")

	// ErrRedisNotReady indicates the server did not answer a ping within
	// the configured attempts and timeout.
	ErrRedisNotReady = errors.New("redis did not become ready within the given time period")

	// ErrHealthcheckFailed indicates a health check ping failed.
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)
