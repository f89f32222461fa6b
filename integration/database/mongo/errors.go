package mongo

import "errors"

// Error variables returned by the connection helpers. Match with errors.Is
// for retry logic and user-facing messages.
var (
	// ErrFailedToConnectToMongo indicates all connection attempts were
	// exhausted without a successful ping.
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongodb")

	// ErrEmptyDatabaseName indicates NewWithDatabase was called without a
	// database name.
	ErrEmptyDatabaseName = errors.New("empty mongodb database name")

	// ErrHealthcheckFailed indicates a health check ping failed.
	ErrHealthcheckFailed = errors.New("mongodb healthcheck failed")
)
