package main

import (
	"encoding/json"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	agentkit "github.com/zero-day-ai/agentkit"
	"github.com/zero-day-ai/agentkit/internal/validation"
)

var validateContext []string

var validateCmd = &cobra.Command{
	Use:   "validate <content>",
	Short: "Validate content against the knowledge base",
	Long: `Validate a claim against the knowledge base using GraphRAG: the
content is embedded, matched against indexed knowledge, expanded through
the graph when configured, and scored into a verdict. Context pairs
restrict the evidence pool to knowledge whose metadata matches exactly.`,
	Example: `  agentkit validate 'CVE-2024-3094 backdoors liblzma via the build system'
  agentkit validate 'host runs telnet' --context target=10.0.0.5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vctx, err := parseParams(validateContext)
		if err != nil {
			return err
		}

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

		result, err := tk.ValidateWithGraphRAG(ctx, args[0], vctx)
		if err != nil {
			return err
		}

		if outputJSON {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(data))
			return nil
		}

		printVerdict(cmd, result)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringArrayVar(&validateContext, "context", nil, "metadata filter as key=value (repeatable)")
}

func printVerdict(cmd *cobra.Command, result validation.Result) {
	verdict := string(result.Verdict)
	switch result.Verdict {
	case validation.VerdictSupported:
		verdict = color.GreenString(verdict)
	case validation.VerdictUnsupported:
		verdict = color.RedString(verdict)
	default:
		verdict = color.YellowString(verdict)
	}

	cmd.Printf("verdict:    %s\n", verdict)
	cmd.Printf("confidence: %.3f\n", result.Confidence)

	if len(result.Evidence) > 0 {
		cmd.Println("evidence:")
		for _, e := range result.Evidence {
			cmd.Printf("  [%.3f] (%s) %s\n", e.Similarity, e.Source, e.Content)
		}
	}
}
