package main

import (
	"encoding/json"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	agentkit "github.com/zero-day-ai/agentkit"
	"github.com/zero-day-ai/agentkit/internal/audit"
)

var (
	auditActor  string
	auditAction string
	auditSince  string
	auditLimit  int
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the agent action audit trail",
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded agent actions, most recent first",
	Example: `  agentkit audit list --actor recon-agent --limit 20
  agentkit audit list --since 2026-08-01T00:00:00Z`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		tk, err := agentkit.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer tk.Close(ctx)

		filter := audit.Filter{
			Actor:  auditActor,
			Action: auditAction,
			Limit:  auditLimit,
		}
		if auditSince != "" {
			since, err := time.Parse(time.RFC3339, auditSince)
			if err != nil {
				return err
			}
			filter.Since = since
		}

		records, err := tk.AuditTrail(ctx, filter)
		if err != nil {
			return err
		}

		if outputJSON {
			data, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(data))
			return nil
		}

		if len(records) == 0 {
			cmd.Println(color.YellowString("no audit records"))
			return nil
		}

		for _, record := range records {
			cmd.Printf("%s  %s  %s",
				record.CreatedAt.Format(time.RFC3339),
				color.CyanString(record.Actor),
				record.Action,
			)
			if record.TraceID != "" {
				cmd.Printf("  trace=%s", record.TraceID)
			}
			cmd.Println()
		}
		return nil
	},
}

func init() {
	auditListCmd.Flags().StringVar(&auditActor, "actor", "", "filter by actor")
	auditListCmd.Flags().StringVar(&auditAction, "action", "", "filter by action")
	auditListCmd.Flags().StringVar(&auditSince, "since", "", "only records at or after this RFC3339 time")
	auditListCmd.Flags().IntVar(&auditLimit, "limit", 50, "maximum records to show")

	auditCmd.AddCommand(auditListCmd)
}
