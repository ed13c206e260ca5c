package graph

import (
	"fmt"
	"sync"
	"time"

	"context"

	"github.com/zero-day-ai/agentkit/internal/types"
)

// MockCall records a method invocation on the mock client.
type MockCall struct {
	Method string
	Cypher string
	Params map[string]any
}

// MockClient is an in-memory implementation of Client for testing.
// Responses are configurable and every call is recorded for verification.
type MockClient struct {
	mu sync.RWMutex

	connected bool
	calls     []MockCall

	// Configurable responses
	QueryResults map[string]QueryResult // keyed by cypher text
	QueryErr     error
	ExecuteErr   error
	ConnectErr   error
	HealthStatus *types.HealthStatus

	nodes      map[string]map[string]any
	nextNodeID int
}

// NewMockClient creates a new mock graph client for testing.
func NewMockClient() *MockClient {
	return &MockClient{
		QueryResults: make(map[string]QueryResult),
		nodes:        make(map[string]map[string]any),
		nextNodeID:   1,
	}
}

func (m *MockClient) record(method, cypher string, params map[string]any) {
	m.calls = append(m.calls, MockCall{Method: method, Cypher: cypher, Params: params})
}

// Calls returns a copy of the recorded calls.
func (m *MockClient) Calls() []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// Connect simulates establishing a connection.
func (m *MockClient) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Connect", "", nil)
	if m.ConnectErr != nil {
		return m.ConnectErr
	}
	m.connected = true
	return nil
}

// Close simulates closing the connection. Idempotent.
func (m *MockClient) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Close", "", nil)
	m.connected = false
	return nil
}

// Health returns the configured health status, or one derived from the
// connection state.
func (m *MockClient) Health(ctx context.Context) types.HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.HealthStatus != nil {
		return *m.HealthStatus
	}
	if !m.connected {
		return types.Unhealthy("not connected")
	}
	return types.Healthy("mock graph client")
}

// Query returns the configured result for the cypher text, or an empty result.
func (m *MockClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Query", cypher, params)
	if m.QueryErr != nil {
		return QueryResult{}, m.QueryErr
	}
	if result, ok := m.QueryResults[cypher]; ok {
		return result, nil
	}
	return QueryResult{Records: []map[string]any{}}, nil
}

// Execute behaves like Query but honors ExecuteErr.
func (m *MockClient) Execute(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Execute", cypher, params)
	if m.ExecuteErr != nil {
		return QueryResult{}, m.ExecuteErr
	}
	if result, ok := m.QueryResults[cypher]; ok {
		return result, nil
	}
	return QueryResult{Records: []map[string]any{}}, nil
}

// CreateNode stores the node in memory and returns a synthetic element ID.
func (m *MockClient) CreateNode(ctx context.Context, labels []string, props map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("CreateNode", "", props)
	id := fmt.Sprintf("mock-node-%d-%d", m.nextNodeID, time.Now().UnixNano())
	m.nextNodeID++
	m.nodes[id] = props
	return id, nil
}

// CreateRelationship records the call. Both endpoints must exist.
func (m *MockClient) CreateRelationship(ctx context.Context, fromID, toID, relType string, props map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("CreateRelationship", relType, props)
	if _, ok := m.nodes[fromID]; !ok {
		return types.NewError(ErrCodeNodeNotFound, fmt.Sprintf("node not found: %s", fromID))
	}
	if _, ok := m.nodes[toID]; !ok {
		return types.NewError(ErrCodeNodeNotFound, fmt.Sprintf("node not found: %s", toID))
	}
	return nil
}

// DeleteNode removes the node from the in-memory store.
func (m *MockClient) DeleteNode(ctx context.Context, nodeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("DeleteNode", "", nil)
	delete(m.nodes, nodeID)
	return nil
}
