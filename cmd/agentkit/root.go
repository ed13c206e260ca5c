package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zero-day-ai/agentkit/internal/config"
)

var (
	configFile string
	outputJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "agentkit",
	Short: "Agentkit - graph-backed toolkit for AI security agents",
	Long: `Agentkit gives AI agents grounded access to a security knowledge
graph: Cypher queries against Neo4j, GraphRAG validation of findings,
confidence scoring, and a persistent audit trail of agent actions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with signal handling.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default agentkit.yaml)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "emit JSON output")

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(knowledgeCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration for a command invocation.
func loadConfig() (*config.Config, error) {
	path := configFile
	if path == "" {
		path = "agentkit.yaml"
	}
	return config.LoadWithDefaults(path)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("agentkit v0.1.0")
	},
}
