package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-latticegraph/pkg/export"
)

func newInspectCmd() *cobra.Command {
	var showEdges bool
	cmd := &cobra.Command{
		Use:   "inspect [export file]",
		Short: "Summarise an exported network",
		Long:  `Reads a file written by build (json, yaml, optionally .sz compressed) and prints its summary.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := export.ReadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderSummary(doc, nil, -1))
			if showEdges {
				for _, e := range doc.Edges {
					fmt.Fprintf(out, "%d -> %d (weight %d)\n", e.From, e.To, e.Weight)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showEdges, "edges", false, "list every edge")
	return cmd
}
