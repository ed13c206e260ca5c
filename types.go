package agentkit

import (
	"github.com/zero-day-ai/agentkit/internal/audit"
	"github.com/zero-day-ai/agentkit/internal/config"
	"github.com/zero-day-ai/agentkit/internal/types"
	"github.com/zero-day-ai/agentkit/internal/validation"
)

// Aliases let importers name the toolkit's argument and result types
// without reaching into internal packages.

// Config is the toolkit configuration. Obtain one from LoadConfig,
// DefaultConfig, or build it directly.
type Config = config.Config

// ValidationResult is the outcome of ValidateWithGraphRAG.
type ValidationResult = validation.Result

// Evidence is a single piece of knowledge backing a validation verdict.
type Evidence = validation.Evidence

// Verdict classifies validated content.
type Verdict = validation.Verdict

// Validation verdicts.
const (
	VerdictSupported   = validation.VerdictSupported
	VerdictUnverified  = validation.VerdictUnverified
	VerdictUnsupported = validation.VerdictUnsupported
)

// AuditRecord is an entry in the agent action audit trail.
type AuditRecord = audit.Record

// AuditFilter narrows AuditTrail queries.
type AuditFilter = audit.Filter

// HealthStatus reports the state of a toolkit component.
type HealthStatus = types.HealthStatus

// ToolkitError is the structured error type returned by all toolkit
// operations. Match on its Code, or use IsRetryable for transient failures.
type ToolkitError = types.ToolkitError

// LoadConfig reads a YAML configuration file with ${ENV_VAR} interpolation
// and validates it.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// DefaultConfig returns a configuration with sensible defaults. Neo4j
// credentials have no defaults and must be filled in before use.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// IsRetryable reports whether err is a transient failure worth retrying.
func IsRetryable(err error) bool {
	return types.IsRetryable(err)
}
