package agentkit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/agentkit/internal/audit"
	"github.com/zero-day-ai/agentkit/internal/config"
	"github.com/zero-day-ai/agentkit/internal/embedder"
	"github.com/zero-day-ai/agentkit/internal/graph"
	"github.com/zero-day-ai/agentkit/internal/observability"
	"github.com/zero-day-ai/agentkit/internal/types"
	"github.com/zero-day-ai/agentkit/internal/validation"
	"github.com/zero-day-ai/agentkit/internal/vector"
)

// newTestToolkit assembles a toolkit around a mock graph client with real
// SQLite-backed audit and knowledge stores.
func newTestToolkit(t *testing.T) (*Toolkit, *graph.MockClient) {
	t.Helper()

	ctx := context.Background()
	dir := t.TempDir()

	client := graph.NewMockClient()
	require.NoError(t, client.Connect(ctx))

	cfg := config.DefaultConfig()
	cfg.Neo4j.URI = "bolt://localhost:7687"
	cfg.Neo4j.Username = "neo4j"
	cfg.Neo4j.Password = "password"
	cfg.Audit.Path = filepath.Join(dir, "audit.db")
	cfg.Validation.KnowledgePath = filepath.Join(dir, "knowledge.db")
	cfg.Embedder = config.EmbedderConfig{Provider: "mock", Dimensions: 16}

	log := observability.NewLogger(cfg.Logging)

	auditStore, err := audit.NewStore(cfg.Audit.Path)
	require.NoError(t, err)

	emb, err := embedder.New(cfg.Embedder)
	require.NoError(t, err)

	vectors, err := vector.NewSqliteStore(cfg.Validation.KnowledgePath)
	require.NoError(t, err)

	tk := &Toolkit{
		cfg:         cfg,
		log:         log,
		graph:       client,
		auditStore:  auditStore,
		auditLogger: audit.NewLogger(auditStore, log, true),
		vectors:     vectors,
		validator:   validation.New(emb, vectors, client, cfg.Validation, log),
	}
	t.Cleanup(func() { tk.Close(context.Background()) })

	return tk, client
}

func TestToolkit_QueryGraph(t *testing.T) {
	ctx := context.Background()
	tk, client := newTestToolkit(t)

	cypher := "MATCH (h:Host) RETURN h.ip AS ip"
	client.QueryResults[cypher] = graph.QueryResult{
		Records: []map[string]any{
			{"ip": "10.0.0.5"},
			{"ip": "10.0.0.6"},
		},
	}

	rows, err := tk.QueryGraph(ctx, cypher, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "10.0.0.5", rows[0]["ip"])

	calls := client.Calls()
	require.NotEmpty(t, calls)
	assert.Equal(t, "Query", calls[len(calls)-1].Method)
}

func TestToolkit_QueryGraph_EmptyResult(t *testing.T) {
	tk, _ := newTestToolkit(t)

	rows, err := tk.QueryGraph(context.Background(), "MATCH (n:Nothing) RETURN n", nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestToolkit_ExecuteGraph(t *testing.T) {
	ctx := context.Background()
	tk, client := newTestToolkit(t)

	_, err := tk.ExecuteGraph(ctx, "CREATE (f:Finding {id: $id})", map[string]any{"id": "f-1"})
	require.NoError(t, err)

	calls := client.Calls()
	assert.Equal(t, "Execute", calls[len(calls)-1].Method)
}

func TestToolkit_LogAgentAction(t *testing.T) {
	ctx := context.Background()
	tk, _ := newTestToolkit(t)

	record, err := tk.LogAgentAction(ctx, "recon-agent", "port_scan", map[string]any{
		"target": "10.0.0.5",
	})
	require.NoError(t, err)
	assert.False(t, record.ID.IsZero())

	trail, err := tk.AuditTrail(ctx, audit.Filter{Actor: "recon-agent"})
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, "port_scan", trail[0].Action)
	assert.Equal(t, "10.0.0.5", trail[0].Metadata["target"])
}

func TestToolkit_LogAgentAction_Validation(t *testing.T) {
	tk, _ := newTestToolkit(t)

	_, err := tk.LogAgentAction(context.Background(), "", "act", nil)
	require.Error(t, err)
}

func TestToolkit_ValidateWithGraphRAG(t *testing.T) {
	ctx := context.Background()
	tk, _ := newTestToolkit(t)

	t.Run("no knowledge yields unsupported", func(t *testing.T) {
		result, err := tk.ValidateWithGraphRAG(ctx, "host 10.0.0.5 runs telnet", nil)
		require.NoError(t, err)
		assert.Equal(t, validation.VerdictUnsupported, result.Verdict)
	})

	t.Run("empty content is an error", func(t *testing.T) {
		_, err := tk.ValidateWithGraphRAG(ctx, "", nil)
		require.Error(t, err)

		var terr *types.ToolkitError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, types.VALIDATION_EMPTY_CONTENT, terr.Code)
	})
}

func TestToolkit_ValidateWithGraphRAG_Unavailable(t *testing.T) {
	tk, _ := newTestToolkit(t)
	tk.validator = nil

	_, err := tk.ValidateWithGraphRAG(context.Background(), "claim", nil)
	require.Error(t, err)

	var terr *types.ToolkitError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, types.VALIDATION_FAILED, terr.Code)
}

func TestToolkit_CalculateConfidence(t *testing.T) {
	tk, _ := newTestToolkit(t)

	got, err := tk.CalculateConfidence([]float64{0.8, 0.6}, []float64{0.7, 0.3})
	require.NoError(t, err)
	assert.InDelta(t, 0.74, got, 1e-9)
}

func TestToolkit_Health(t *testing.T) {
	tk, _ := newTestToolkit(t)

	health := tk.Health(context.Background())
	require.Contains(t, health, "graph")
	require.Contains(t, health, "audit")
	require.Contains(t, health, "knowledge")

	assert.True(t, health["graph"].IsHealthy())
	assert.True(t, health["audit"].IsHealthy())
}

func TestToolkit_Close(t *testing.T) {
	tk, _ := newTestToolkit(t)

	require.NoError(t, tk.Close(context.Background()))
	// closing twice is safe
	require.NoError(t, tk.Close(context.Background()))
}

func TestNew_GraphConnectFailure(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Neo4j.URI = "bogus://localhost:7687"
	cfg.Neo4j.Username = "neo4j"
	cfg.Neo4j.Password = "password"
	// keep the backoff between driver attempts short
	cfg.Neo4j.ConnectionTimeout = 10 * time.Millisecond
	cfg.Audit.Path = filepath.Join(t.TempDir(), "audit.db")

	_, err := New(context.Background(), cfg)
	require.Error(t, err)

	var terr *types.ToolkitError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, graph.ErrCodeConnectionFailed, terr.Code)
}

func TestNewFromMap_MissingKeys(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"empty map", map[string]any{}},
		{"missing password", map[string]any{
			"neo4j_uri":  "bolt://localhost:7687",
			"neo4j_user": "neo4j",
		}},
		{"missing uri", map[string]any{
			"neo4j_user":     "neo4j",
			"neo4j_password": "password",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFromMap(context.Background(), tt.raw)
			require.Error(t, err)

			var terr *types.ToolkitError
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, types.CONFIG_KEY_MISSING, terr.Code)
		})
	}
}
