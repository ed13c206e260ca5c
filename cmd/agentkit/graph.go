package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/zero-day-ai/agentkit/internal/graph"
)

var (
	graphNodeLabels []string
	graphNodeProps  []string
	graphRelType    string
	graphRelProps   []string
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Manage nodes and relationships in the knowledge graph",
}

// connectGraph builds a connected client for graph management commands.
func connectGraph(cmd *cobra.Command) (*graph.Neo4jClient, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	client, err := graph.NewNeo4jClient(graph.ConfigFromNeo4j(cfg.Neo4j))
	if err != nil {
		return nil, err
	}
	if err := client.Connect(cmd.Context()); err != nil {
		return nil, err
	}
	return client, nil
}

var graphCreateNodeCmd = &cobra.Command{
	Use:   "create-node",
	Short: "Create a node and print its element ID",
	Long: `Create a node in the knowledge graph. The printed element ID can be
passed to 'knowledge add --graph-id' to link an indexed entry to the node
so validation expands evidence through it.`,
	Example: `  agentkit graph create-node --label Vulnerability --prop cve=CVE-2021-44228
  agentkit graph create-node --label Host --label Asset --prop ip=10.0.0.5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connectGraph(cmd)
		if err != nil {
			return err
		}
		defer client.Close(cmd.Context())

		props, err := parseParams(graphNodeProps)
		if err != nil {
			return err
		}

		labels, err := cleanLabels(graphNodeLabels)
		if err != nil {
			return err
		}

		id, err := client.CreateNode(cmd.Context(), labels, props)
		if err != nil {
			return err
		}

		cmd.Println(color.GreenString("created %s", id))
		return nil
	},
}

var graphRelateCmd = &cobra.Command{
	Use:   "relate <from-id> <to-id>",
	Short: "Create a relationship between two nodes by element ID",
	Example: `  agentkit graph relate 4:abc:1 4:abc:2 --type AFFECTS
  agentkit graph relate 4:abc:1 4:abc:2 --type RELATED_TO --prop weight=0.8`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		relType, err := cleanRelType(graphRelType)
		if err != nil {
			return err
		}

		props, err := parseParams(graphRelProps)
		if err != nil {
			return err
		}

		client, err := connectGraph(cmd)
		if err != nil {
			return err
		}
		defer client.Close(cmd.Context())

		if err := client.CreateRelationship(cmd.Context(), args[0], args[1], relType, props); err != nil {
			return err
		}

		cmd.Println(color.GreenString("related %s -[%s]-> %s", args[0], relType, args[1]))
		return nil
	},
}

var graphDeleteNodeCmd = &cobra.Command{
	Use:     "delete-node <id>",
	Short:   "Delete a node and its relationships by element ID",
	Example: `  agentkit graph delete-node 4:abc:17`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connectGraph(cmd)
		if err != nil {
			return err
		}
		defer client.Close(cmd.Context())

		if err := client.DeleteNode(cmd.Context(), args[0]); err != nil {
			return err
		}

		cmd.Println(color.GreenString("deleted %s", args[0]))
		return nil
	},
}

func init() {
	graphCreateNodeCmd.Flags().StringArrayVar(&graphNodeLabels, "label", nil, "node label (repeatable)")
	graphCreateNodeCmd.Flags().StringArrayVar(&graphNodeProps, "prop", nil, "node property as key=value (repeatable)")

	graphRelateCmd.Flags().StringVar(&graphRelType, "type", "RELATED_TO", "relationship type")
	graphRelateCmd.Flags().StringArrayVar(&graphRelProps, "prop", nil, "relationship property as key=value (repeatable)")

	graphCmd.AddCommand(graphCreateNodeCmd)
	graphCmd.AddCommand(graphRelateCmd)
	graphCmd.AddCommand(graphDeleteNodeCmd)
}

// cleanLabels validates labels destined for Cypher label syntax, which
// cannot be parameterized.
func cleanLabels(labels []string) ([]string, error) {
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if !isCypherIdentifier(label) {
			return nil, invalidIdentifierErr("label", label)
		}
		out = append(out, label)
	}
	return out, nil
}

// cleanRelType validates a relationship type the same way.
func cleanRelType(relType string) (string, error) {
	relType = strings.TrimSpace(relType)
	if !isCypherIdentifier(relType) {
		return "", invalidIdentifierErr("relationship type", relType)
	}
	return relType, nil
}

func invalidIdentifierErr(kind, value string) error {
	return fmt.Errorf("invalid %s %q: use letters, digits, and underscores, not starting with a digit", kind, value)
}

// isCypherIdentifier accepts letters, digits, and underscores with a
// non-digit first character.
func isCypherIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
