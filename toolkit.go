// Package agentkit is a toolkit for AI agents operating against a security
// knowledge graph. It provides Cypher query access to Neo4j, GraphRAG
// validation of agent-produced findings, confidence scoring, and a
// persistent audit trail of agent actions.
package agentkit

import (
	"context"
	"fmt"
	"log/slog"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/zero-day-ai/agentkit/internal/audit"
	"github.com/zero-day-ai/agentkit/internal/config"
	"github.com/zero-day-ai/agentkit/internal/embedder"
	"github.com/zero-day-ai/agentkit/internal/graph"
	"github.com/zero-day-ai/agentkit/internal/observability"
	"github.com/zero-day-ai/agentkit/internal/types"
	"github.com/zero-day-ai/agentkit/internal/validation"
	"github.com/zero-day-ai/agentkit/internal/vector"
)

// Toolkit is the entry point for agent integrations. Construct one with New
// or NewFromMap, use it from any number of goroutines, and Close it when the
// agent shuts down.
type Toolkit struct {
	cfg *config.Config
	log *slog.Logger

	graph       graph.Client
	auditStore  *audit.Store
	auditLogger *audit.Logger
	vectors     vector.Store
	validator   *validation.Validator
	tracer      *sdktrace.TracerProvider
}

// New builds a Toolkit from a validated configuration and connects to the
// graph database. Validation components degrade gracefully: if the embedder
// cannot be constructed (for example, no API key), graph queries and audit
// logging still work and only ValidateWithGraphRAG is unavailable.
func New(ctx context.Context, cfg *config.Config) (*Toolkit, error) {
	if cfg == nil {
		return nil, types.NewError(types.CONFIG_VALIDATION_FAILED, "config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := observability.NewLogger(cfg.Logging)

	tracer, err := observability.InitTracing(ctx, cfg.Tracing)
	if err != nil {
		return nil, types.WrapError(types.CONFIG_VALIDATION_FAILED,
			"failed to initialize tracing", err)
	}

	// every failure past this point must release the tracer's exporter
	fail := func(err error) (*Toolkit, error) {
		if shutdownErr := observability.ShutdownTracing(ctx, tracer); shutdownErr != nil {
			log.WarnContext(ctx, "tracer shutdown during failed construction",
				slog.String("error", shutdownErr.Error()))
		}
		return nil, err
	}

	client, err := graph.NewNeo4jClient(graph.ConfigFromNeo4j(cfg.Neo4j))
	if err != nil {
		return fail(err)
	}
	if err := client.Connect(ctx); err != nil {
		return fail(err)
	}

	t := &Toolkit{
		cfg:    cfg,
		log:    log,
		graph:  client,
		tracer: tracer,
	}

	if cfg.Audit.Enabled {
		store, err := audit.NewStore(cfg.Audit.Path)
		if err != nil {
			client.Close(ctx)
			return fail(err)
		}
		t.auditStore = store
	}
	t.auditLogger = audit.NewLogger(t.auditStore, log, cfg.Audit.Enabled)

	if err := t.initValidation(ctx); err != nil {
		log.WarnContext(ctx, "validation unavailable",
			slog.String("error", err.Error()))
	}

	return t, nil
}

// NewFromMap builds a Toolkit from a flat configuration map, as passed by
// agent frameworks. Required keys: neo4j_uri, neo4j_user, neo4j_password.
func NewFromMap(ctx context.Context, raw map[string]any) (*Toolkit, error) {
	cfg, err := config.FromMap(raw)
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg)
}

// initValidation wires the embedder, knowledge index, and validator.
// Failure leaves the toolkit usable without validation.
func (t *Toolkit) initValidation(ctx context.Context) error {
	emb, err := embedder.New(t.cfg.Embedder)
	if err != nil {
		return err
	}

	store, err := vector.NewSqliteStore(t.cfg.Validation.KnowledgePath)
	if err != nil {
		return err
	}

	t.vectors = store
	t.validator = validation.New(emb, store, t.graph, t.cfg.Validation, t.log)
	return nil
}

// QueryGraph executes a read Cypher query and returns the result rows as
// maps of column name to value. Each call runs in its own session and
// managed read transaction.
func (t *Toolkit) QueryGraph(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	result, err := t.graph.Query(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

// ExecuteGraph executes a write Cypher query in a managed write transaction
// and returns the result rows.
func (t *Toolkit) ExecuteGraph(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	result, err := t.graph.Execute(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

// ValidateWithGraphRAG checks agent-produced content against the knowledge
// base: the content is embedded, matched against indexed knowledge, expanded
// through the graph when configured, and scored into a verdict. The vctx
// mapping scopes the evidence pool by exact metadata match; pass nil to
// search all knowledge.
func (t *Toolkit) ValidateWithGraphRAG(ctx context.Context, content string, vctx map[string]any) (validation.Result, error) {
	if t.validator == nil {
		return validation.Result{}, types.NewError(types.VALIDATION_FAILED,
			"validation is not available (embedder or knowledge index failed to initialize)")
	}
	return t.validator.Validate(ctx, content, vctx)
}

// LogAgentAction records an agent action in the audit trail and emits it as
// a structured log line with trace correlation.
func (t *Toolkit) LogAgentAction(ctx context.Context, actor, action string, metadata map[string]any) (audit.Record, error) {
	return t.auditLogger.Log(ctx, actor, action, metadata)
}

// AuditTrail returns recorded agent actions matching the filter, most
// recent first.
func (t *Toolkit) AuditTrail(ctx context.Context, filter audit.Filter) ([]audit.Record, error) {
	if t.auditStore == nil {
		return nil, types.NewError(types.AUDIT_STORE_CLOSED, "audit trail is not enabled")
	}
	return t.auditStore.List(ctx, filter)
}

// CalculateConfidence aggregates scores into a confidence value. See
// Confidence for the weighting semantics.
func (t *Toolkit) CalculateConfidence(scores, weights []float64) (float64, error) {
	return Confidence(scores, weights)
}

// Health reports the status of every toolkit component.
func (t *Toolkit) Health(ctx context.Context) map[string]types.HealthStatus {
	health := map[string]types.HealthStatus{
		"graph": t.graph.Health(ctx),
	}

	if t.auditStore != nil {
		health["audit"] = t.auditStore.Health(ctx)
	}
	if t.vectors != nil {
		health["knowledge"] = t.vectors.Health(ctx)
	}

	return health
}

// KnowledgeStore exposes the vector index for knowledge ingestion.
// Returns nil when validation is unavailable.
func (t *Toolkit) KnowledgeStore() vector.Store {
	return t.vectors
}

// Close releases all toolkit resources. Safe to call more than once.
func (t *Toolkit) Close(ctx context.Context) error {
	var errs []error

	if t.vectors != nil {
		if err := t.vectors.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if t.auditStore != nil {
		if err := t.auditStore.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if t.graph != nil {
		if err := t.graph.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if t.tracer != nil {
		if err := observability.ShutdownTracing(ctx, t.tracer); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("toolkit close: %d component(s) failed: %v", len(errs), errs)
	}
	return nil
}
