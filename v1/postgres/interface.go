package postgres

import "context"

//go:generate mockgen -source=interface.go -destination=mock_client.go -package=postgres

// Client is the read-only view of Postgres the rest of the module needs: a
// place to pull records from.
type Client interface {
	// QueryRecords runs query and returns one map per row, keyed by column
	// name. Values keep their pgx Go types.
	QueryRecords(ctx context.Context, query string, args ...any) ([]map[string]any, error)

	// Ping checks the connection.
	Ping(ctx context.Context) error

	// Close releases the pool.
	Close()
}
