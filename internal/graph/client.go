package graph

import (
	"context"
	"time"

	"github.com/zero-day-ai/agentkit/internal/config"
	"github.com/zero-day-ai/agentkit/internal/types"
)

// Client provides an interface for graph database operations.
// Implementations must be thread-safe for concurrent access.
type Client interface {
	// Connect establishes a connection to the graph database.
	Connect(ctx context.Context) error

	// Close releases all resources and closes the database connection.
	// Safe to call more than once.
	Close(ctx context.Context) error

	// Health returns the current health status of the connection.
	Health(ctx context.Context) types.HealthStatus

	// Query executes a read Cypher query with the given parameters.
	// Each call runs in its own session and managed read transaction.
	Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)

	// Execute runs a write Cypher query with the given parameters in a
	// managed write transaction.
	Execute(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)

	// CreateNode creates a new node with the specified labels and properties.
	// Returns the element ID of the created node.
	CreateNode(ctx context.Context, labels []string, props map[string]any) (string, error)

	// CreateRelationship creates a relationship between two nodes identified
	// by element ID.
	CreateRelationship(ctx context.Context, fromID, toID, relType string, props map[string]any) error

	// DeleteNode deletes a node and its relationships by element ID.
	DeleteNode(ctx context.Context, nodeID string) error
}

// QueryResult represents the result of a Cypher query execution.
type QueryResult struct {
	// Records contains the result rows as maps of column name to value.
	Records []map[string]any

	// Columns contains the names of the columns in the result set.
	Columns []string

	// Summary contains metadata about the query execution.
	Summary QuerySummary
}

// QuerySummary provides metadata about query execution.
type QuerySummary struct {
	ExecutionTime        time.Duration
	NodesCreated         int
	NodesDeleted         int
	RelationshipsCreated int
	RelationshipsDeleted int
	PropertiesSet        int
}

// ClientConfig contains connection options for graph database clients.
// It mirrors config.Neo4jConfig so the graph package stays usable without
// the full toolkit configuration.
type ClientConfig struct {
	URI                     string
	Username                string
	Password                string
	Database                string
	MaxConnectionPoolSize   int
	ConnectionTimeout       time.Duration
	MaxTransactionRetryTime time.Duration
}

// ConfigFromNeo4j builds a ClientConfig from the toolkit Neo4j configuration.
func ConfigFromNeo4j(cfg config.Neo4jConfig) ClientConfig {
	return ClientConfig{
		URI:                     cfg.URI,
		Username:                cfg.Username,
		Password:                cfg.Password,
		Database:                cfg.Database,
		MaxConnectionPoolSize:   cfg.MaxConnectionPoolSize,
		ConnectionTimeout:       cfg.ConnectionTimeout,
		MaxTransactionRetryTime: cfg.MaxTransactionRetryTime,
	}
}

// Validate checks if the configuration is valid.
func (c ClientConfig) Validate() error {
	if c.URI == "" {
		return types.NewError(ErrCodeInvalidConfig, "URI cannot be empty")
	}
	if c.Username == "" {
		return types.NewError(ErrCodeInvalidConfig, "Username cannot be empty")
	}
	if c.Password == "" {
		return types.NewError(ErrCodeInvalidConfig, "Password cannot be empty")
	}
	if c.ConnectionTimeout <= 0 {
		return types.NewError(ErrCodeInvalidConfig, "ConnectionTimeout must be positive")
	}
	if c.MaxTransactionRetryTime <= 0 {
		return types.NewError(ErrCodeInvalidConfig, "MaxTransactionRetryTime must be positive")
	}
	return nil
}
