package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/zero-day-ai/agentkit/internal/embedder"
	"github.com/zero-day-ai/agentkit/internal/vector"
)

var knowledgeGraphID string

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Manage the validation knowledge index",
}

var knowledgeAddCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Embed content and add it to the knowledge index",
	Long: `Embed a piece of knowledge and add it to the vector index used by
validation. Link it to a graph node with --graph-id so validation can
expand evidence through the graph.`,
	Example: `  agentkit knowledge add 'log4j 2.14 allows JNDI injection'
  agentkit knowledge add 'JNDI lookups reach attacker LDAP' --graph-id 4:abc:17`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		// ingestion only needs the embedder and the index, not a live
		// graph connection
		emb, err := embedder.New(cfg.Embedder)
		if err != nil {
			return err
		}

		store, err := vector.NewSqliteStore(cfg.Validation.KnowledgePath)
		if err != nil {
			return err
		}
		defer store.Close()

		embedding, err := emb.Embed(ctx, args[0])
		if err != nil {
			return err
		}

		record := vector.NewRecord(args[0], embedding)
		if knowledgeGraphID != "" {
			record.Metadata = map[string]any{"graph_id": knowledgeGraphID}
		}

		if err := store.Add(ctx, record); err != nil {
			return err
		}

		cmd.Println(color.GreenString("added %s", record.ID))
		return nil
	},
}

var knowledgeCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show the number of indexed knowledge entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := vector.NewSqliteStore(cfg.Validation.KnowledgePath)
		if err != nil {
			return err
		}
		defer store.Close()

		count, err := store.Count(cmd.Context())
		if err != nil {
			return err
		}

		cmd.Printf("%d entries\n", count)
		return nil
	},
}

func init() {
	knowledgeAddCmd.Flags().StringVar(&knowledgeGraphID, "graph-id", "", "graph node element ID to link the entry to")

	knowledgeCmd.AddCommand(knowledgeAddCmd)
	knowledgeCmd.AddCommand(knowledgeCountCmd)
}
