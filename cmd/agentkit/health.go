package main

import (
	"encoding/json"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	agentkit "github.com/zero-day-ai/agentkit"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of all toolkit components",
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

		health := tk.Health(ctx)

		if outputJSON {
			data, err := json.MarshalIndent(health, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(data))
			return nil
		}

		names := make([]string, 0, len(health))
		for name := range health {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			status := health[name]
			state := status.State.String()
			switch {
			case status.IsHealthy():
				state = color.GreenString(state)
			case status.IsDegraded():
				state = color.YellowString(state)
			default:
				state = color.RedString(state)
			}
			cmd.Printf("%-10s %s  %s\n", name, state, status.Message)
		}
		return nil
	},
}
