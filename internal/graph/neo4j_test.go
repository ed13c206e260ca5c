package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/agentkit/internal/config"
	"github.com/zero-day-ai/agentkit/internal/types"
)

func testConfig() ClientConfig {
	return ClientConfig{
		URI:                     "bolt://localhost:7687",
		Username:                "neo4j",
		Password:                "password",
		MaxConnectionPoolSize:   50,
		ConnectionTimeout:       30 * time.Second,
		MaxTransactionRetryTime: 30 * time.Second,
	}
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ClientConfig)
		wantErr bool
	}{
		{name: "valid config", mutate: func(c *ClientConfig) {}},
		{name: "empty URI", mutate: func(c *ClientConfig) { c.URI = "" }, wantErr: true},
		{name: "empty username", mutate: func(c *ClientConfig) { c.Username = "" }, wantErr: true},
		{name: "empty password", mutate: func(c *ClientConfig) { c.Password = "" }, wantErr: true},
		{name: "zero connection timeout", mutate: func(c *ClientConfig) { c.ConnectionTimeout = 0 }, wantErr: true},
		{name: "negative retry time", mutate: func(c *ClientConfig) { c.MaxTransactionRetryTime = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			var terr *types.ToolkitError
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, ErrCodeInvalidConfig, terr.Code)
		})
	}
}

func TestConfigFromNeo4j(t *testing.T) {
	cfg := ConfigFromNeo4j(config.Neo4jConfig{
		URI:                     "bolt://graph:7687",
		Username:                "neo4j",
		Password:                "password",
		Database:                "agents",
		MaxConnectionPoolSize:   10,
		ConnectionTimeout:       5 * time.Second,
		MaxTransactionRetryTime: 10 * time.Second,
	})

	assert.Equal(t, "bolt://graph:7687", cfg.URI)
	assert.Equal(t, "agents", cfg.Database)
	assert.Equal(t, 10, cfg.MaxConnectionPoolSize)
	require.NoError(t, cfg.Validate())
}

func TestNewNeo4jClient(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		client, err := NewNeo4jClient(testConfig())
		require.NoError(t, err)
		require.NotNil(t, client)
		assert.Nil(t, client.driver)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := testConfig()
		cfg.URI = ""

		client, err := NewNeo4jClient(cfg)
		require.Error(t, err)
		assert.Nil(t, client)
	})
}

func TestNeo4jClient_NotConnected(t *testing.T) {
	client, err := NewNeo4jClient(testConfig())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("query fails", func(t *testing.T) {
		_, err := client.Query(ctx, "MATCH (n) RETURN n", nil)
		require.Error(t, err)
		var terr *types.ToolkitError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, ErrCodeConnectionClosed, terr.Code)
	})

	t.Run("execute fails", func(t *testing.T) {
		_, err := client.Execute(ctx, "CREATE (n:Test)", nil)
		require.Error(t, err)
	})

	t.Run("health unhealthy", func(t *testing.T) {
		assert.True(t, client.Health(ctx).IsUnhealthy())
	})

	t.Run("close is a no-op", func(t *testing.T) {
		assert.NoError(t, client.Close(ctx))
		assert.NoError(t, client.Close(ctx))
	})
}

func TestConvertNeo4jResult_Empty(t *testing.T) {
	result := convertNeo4jResult(nil, nil)

	assert.Empty(t, result.Records)
	assert.Empty(t, result.Columns)
	assert.Equal(t, QuerySummary{}, result.Summary)
}

func TestMockClient(t *testing.T) {
	ctx := context.Background()
	mock := NewMockClient()

	require.NoError(t, mock.Connect(ctx))
	assert.True(t, mock.Health(ctx).IsHealthy())

	t.Run("configured query result", func(t *testing.T) {
		mock.QueryResults["MATCH (n) RETURN n.name AS name"] = QueryResult{
			Records: []map[string]any{{"name": "recon-agent"}},
			Columns: []string{"name"},
		}

		result, err := mock.Query(ctx, "MATCH (n) RETURN n.name AS name", nil)
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "recon-agent", result.Records[0]["name"])
	})

	t.Run("query error propagates", func(t *testing.T) {
		mock.QueryErr = errors.New("boom")
		_, err := mock.Query(ctx, "MATCH (n) RETURN n", nil)
		require.Error(t, err)
		mock.QueryErr = nil
	})

	t.Run("relationship requires both nodes", func(t *testing.T) {
		fromID, err := mock.CreateNode(ctx, []string{"Agent"}, map[string]any{"name": "a"})
		require.NoError(t, err)
		toID, err := mock.CreateNode(ctx, []string{"Agent"}, map[string]any{"name": "b"})
		require.NoError(t, err)

		require.NoError(t, mock.CreateRelationship(ctx, fromID, toID, "KNOWS", nil))
		require.Error(t, mock.CreateRelationship(ctx, fromID, "missing", "KNOWS", nil))
	})

	t.Run("calls recorded", func(t *testing.T) {
		calls := mock.Calls()
		require.NotEmpty(t, calls)
		assert.Equal(t, "Connect", calls[0].Method)
	})
}
