package graph

import "github.com/zero-day-ai/agentkit/internal/types"

// Graph database error codes
const (
	// Connection errors
	ErrCodeConnectionFailed types.ErrorCode = "GRAPH_CONNECTION_FAILED"
	ErrCodeConnectionClosed types.ErrorCode = "GRAPH_CONNECTION_CLOSED"

	// Configuration errors
	ErrCodeInvalidConfig types.ErrorCode = "GRAPH_INVALID_CONFIG"

	// Query errors
	ErrCodeQueryFailed types.ErrorCode = "GRAPH_QUERY_FAILED"
	ErrCodeWriteFailed types.ErrorCode = "GRAPH_WRITE_FAILED"

	// Node and relationship errors
	ErrCodeNodeNotFound             types.ErrorCode = "GRAPH_NODE_NOT_FOUND"
	ErrCodeNodeCreateFailed         types.ErrorCode = "GRAPH_NODE_CREATE_FAILED"
	ErrCodeNodeDeleteFailed         types.ErrorCode = "GRAPH_NODE_DELETE_FAILED"
	ErrCodeRelationshipCreateFailed types.ErrorCode = "GRAPH_RELATIONSHIP_CREATE_FAILED"
)
