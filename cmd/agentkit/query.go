package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	agentkit "github.com/zero-day-ai/agentkit"
)

var queryParams []string

var queryCmd = &cobra.Command{
	Use:   "query <cypher>",
	Short: "Run a read Cypher query against the knowledge graph",
	Long: `Run a read Cypher query against the knowledge graph and print the
result rows. Parameters are passed with repeated --param key=value flags
and are available in the query as $key.`,
	Example: `  agentkit query 'MATCH (h:Host) RETURN h.ip AS ip LIMIT 10'
  agentkit query 'MATCH (h:Host {ip: $ip}) RETURN h' --param ip=10.0.0.5`,
	Args: cobra.ExactArgs(1),
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

		params, err := parseParams(queryParams)
		if err != nil {
			return err
		}

		rows, err := tk.QueryGraph(ctx, args[0], params)
		if err != nil {
			return err
		}

		return printRows(cmd, rows)
	},
}

func init() {
	queryCmd.Flags().StringArrayVar(&queryParams, "param", nil, "query parameter as key=value (repeatable)")
}

func parseParams(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := cutParam(pair)
		if !found {
			return nil, fmt.Errorf("invalid --param %q: expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

func cutParam(pair string) (string, string, bool) {
	for i := 0; i < len(pair); i++ {
		if pair[i] == '=' {
			return pair[:i], pair[i+1:], i > 0
		}
	}
	return "", "", false
}

func printRows(cmd *cobra.Command, rows []map[string]any) error {
	if outputJSON {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	if len(rows) == 0 {
		cmd.Println(color.YellowString("no rows"))
		return nil
	}

	bold := color.New(color.Bold)
	for i, row := range rows {
		bold.Fprintf(cmd.OutOrStdout(), "row %d\n", i+1)

		keys := make([]string, 0, len(row))
		for key := range row {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			cmd.Printf("  %s: %v\n", key, row[key])
		}
	}
	cmd.Println(color.GreenString("%d row(s)", len(rows)))
	return nil
}
