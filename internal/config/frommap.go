package config

import (
	"github.com/mitchellh/mapstructure"
	"github.com/zero-day-ai/agentkit/internal/types"
)

// flatConfig is the flat key mapping agents historically pass at toolkit
// construction. Only the three neo4j_* keys are required; everything else
// falls back to defaults.
type flatConfig struct {
	Neo4jURI      string `mapstructure:"neo4j_uri"`
	Neo4jUser     string `mapstructure:"neo4j_user"`
	Neo4jPassword string `mapstructure:"neo4j_password"`
	Neo4jDatabase string `mapstructure:"neo4j_database"`

	AuditPath       string `mapstructure:"audit_path"`
	KnowledgePath   string `mapstructure:"knowledge_path"`
	EmbedderAPIKey  string `mapstructure:"embedder_api_key"`
	EmbedderModel   string `mapstructure:"embedder_model"`
	EmbedderBaseURL string `mapstructure:"embedder_base_url"`
}

// FromMap builds a Config from a flat configuration mapping.
// Returns a CONFIG_KEY_MISSING error if any of neo4j_uri, neo4j_user, or
// neo4j_password is absent or empty.
func FromMap(raw map[string]any) (*Config, error) {
	var flat flatConfig

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &flat,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to build config decoder", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to decode config map", err)
	}

	if flat.Neo4jURI == "" {
		return nil, types.NewError(types.CONFIG_KEY_MISSING, "config key neo4j_uri is required")
	}
	if flat.Neo4jUser == "" {
		return nil, types.NewError(types.CONFIG_KEY_MISSING, "config key neo4j_user is required")
	}
	if flat.Neo4jPassword == "" {
		return nil, types.NewError(types.CONFIG_KEY_MISSING, "config key neo4j_password is required")
	}

	cfg := DefaultConfig()
	cfg.Neo4j.URI = flat.Neo4jURI
	cfg.Neo4j.Username = flat.Neo4jUser
	cfg.Neo4j.Password = flat.Neo4jPassword
	cfg.Neo4j.Database = flat.Neo4jDatabase

	if flat.AuditPath != "" {
		cfg.Audit.Path = flat.AuditPath
	}
	if flat.KnowledgePath != "" {
		cfg.Validation.KnowledgePath = flat.KnowledgePath
	}
	if flat.EmbedderAPIKey != "" {
		cfg.Embedder.APIKey = flat.EmbedderAPIKey
	}
	if flat.EmbedderModel != "" {
		cfg.Embedder.Model = flat.EmbedderModel
	}
	if flat.EmbedderBaseURL != "" {
		cfg.Embedder.BaseURL = flat.EmbedderBaseURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
