package config

import (
	"time"

	"github.com/zero-day-ai/agentkit/internal/types"
)

// Config is the root configuration for the agent toolkit.
type Config struct {
	Neo4j      Neo4jConfig      `mapstructure:"neo4j" yaml:"neo4j"`
	Audit      AuditConfig      `mapstructure:"audit" yaml:"audit"`
	Embedder   EmbedderConfig   `mapstructure:"embedder" yaml:"embedder"`
	Validation ValidationConfig `mapstructure:"validation" yaml:"validation"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
	Tracing    TracingConfig    `mapstructure:"tracing" yaml:"tracing"`
}

// Neo4jConfig contains Neo4j connection settings.
type Neo4jConfig struct {
	// URI is the connection URI for the graph database.
	// Use "bolt://host:port" for unencrypted connections, "bolt+s://" for TLS,
	// or "neo4j://" / "neo4j+s://" for routing.
	URI      string `mapstructure:"uri" yaml:"uri"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`

	// Database name to connect to. Empty string uses the default database.
	Database string `mapstructure:"database" yaml:"database"`

	MaxConnectionPoolSize   int           `mapstructure:"max_connection_pool_size" yaml:"max_connection_pool_size"`
	ConnectionTimeout       time.Duration `mapstructure:"connection_timeout" yaml:"connection_timeout"`
	MaxTransactionRetryTime time.Duration `mapstructure:"max_transaction_retry_time" yaml:"max_transaction_retry_time"`
}

// AuditConfig contains audit trail storage settings.
type AuditConfig struct {
	// Path is the SQLite database file for the audit trail.
	Path string `mapstructure:"path" yaml:"path"`

	// Enabled controls whether agent actions are persisted.
	// Structured log emission happens regardless.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// EmbedderConfig holds configuration for the embedding provider.
type EmbedderConfig struct {
	// Provider specifies which embedder implementation to use.
	// Options: "openai", "mock"
	Provider string `mapstructure:"provider" yaml:"provider"`

	// Model is the embedding model, e.g. "text-embedding-3-small" (1536 dims).
	Model string `mapstructure:"model" yaml:"model"`

	// APIKey for the provider. Can also come from OPENAI_API_KEY via
	// ${OPENAI_API_KEY} interpolation in the config file.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// BaseURL overrides the provider API endpoint (optional).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Dimensions is the embedding vector size produced by Model.
	Dimensions int `mapstructure:"dimensions" yaml:"dimensions"`
}

// ValidationConfig tunes the GraphRAG validation pipeline.
type ValidationConfig struct {
	// KnowledgePath is the SQLite file backing the vector index of
	// validation knowledge.
	KnowledgePath string `mapstructure:"knowledge_path" yaml:"knowledge_path"`

	// TopK is the number of evidence candidates retrieved per validation.
	TopK int `mapstructure:"top_k" yaml:"top_k"`

	// MinSimilarity filters out evidence below this cosine similarity.
	MinSimilarity float64 `mapstructure:"min_similarity" yaml:"min_similarity"`

	// MaxHops is the graph expansion depth from vector hits. 0 disables
	// graph expansion and runs vector-only validation.
	MaxHops int `mapstructure:"max_hops" yaml:"max_hops"`

	// SupportThreshold is the minimum confidence for a "supported" verdict.
	SupportThreshold float64 `mapstructure:"support_threshold" yaml:"support_threshold"`

	// RejectThreshold is the confidence below which content is "unsupported".
	RejectThreshold float64 `mapstructure:"reject_threshold" yaml:"reject_threshold"`

	// EvidenceWeights combine ranked evidence similarities into the final
	// confidence score. Pairing truncates to the shorter sequence.
	EvidenceWeights []float64 `mapstructure:"evidence_weights" yaml:"evidence_weights"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector endpoint, e.g. "localhost:4317".
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// Insecure disables TLS to the collector. Local development only.
	Insecure bool `mapstructure:"insecure" yaml:"insecure"`

	ServiceName string `mapstructure:"service_name" yaml:"service_name"`

	// SampleRate is the fraction of traces recorded, 0.0 to 1.0.
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
}

// DefaultConfig returns a Config with sensible defaults.
// Neo4j credentials have no defaults and must be provided.
func DefaultConfig() *Config {
	return &Config{
		Neo4j: Neo4jConfig{
			Database:                "",
			MaxConnectionPoolSize:   50,
			ConnectionTimeout:       30 * time.Second,
			MaxTransactionRetryTime: 30 * time.Second,
		},
		Audit: AuditConfig{
			Path:    "agentkit-audit.db",
			Enabled: true,
		},
		Embedder: EmbedderConfig{
			Provider:   "openai",
			Model:      "text-embedding-3-small",
			Dimensions: 1536,
		},
		Validation: ValidationConfig{
			KnowledgePath:    "agentkit-knowledge.db",
			TopK:             5,
			MinSimilarity:    0.3,
			MaxHops:          1,
			SupportThreshold: 0.7,
			RejectThreshold:  0.4,
			EvidenceWeights:  []float64{0.5, 0.2, 0.15, 0.1, 0.05},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Tracing: TracingConfig{
			Enabled:     false,
			ServiceName: "agentkit",
			SampleRate:  1.0,
		},
	}
}

// Validate checks the configuration for required values and consistency.
func (c *Config) Validate() error {
	if c.Neo4j.URI == "" {
		return types.NewError(types.CONFIG_KEY_MISSING, "neo4j uri is required")
	}
	if c.Neo4j.Username == "" {
		return types.NewError(types.CONFIG_KEY_MISSING, "neo4j username is required")
	}
	if c.Neo4j.Password == "" {
		return types.NewError(types.CONFIG_KEY_MISSING, "neo4j password is required")
	}
	if c.Neo4j.ConnectionTimeout <= 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "neo4j connection_timeout must be positive")
	}
	if c.Neo4j.MaxTransactionRetryTime <= 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "neo4j max_transaction_retry_time must be positive")
	}

	if c.Audit.Enabled && c.Audit.Path == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "audit path is required when audit is enabled")
	}

	if c.Embedder.Provider == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "embedder provider cannot be empty")
	}
	if c.Embedder.Dimensions <= 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "embedder dimensions must be positive")
	}

	if c.Validation.TopK <= 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "validation top_k must be positive")
	}
	if c.Validation.MinSimilarity < 0 || c.Validation.MinSimilarity > 1 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "validation min_similarity must be in [0,1]")
	}
	if c.Validation.MaxHops < 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "validation max_hops cannot be negative")
	}
	if c.Validation.SupportThreshold < c.Validation.RejectThreshold {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			"validation support_threshold must be >= reject_threshold")
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "logging level must be one of debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "", "json", "text":
	default:
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "logging format must be json or text")
	}

	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "tracing endpoint is required when tracing is enabled")
	}

	return nil
}
