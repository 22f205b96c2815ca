package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/go-xbrl/dts-engine/pkg/xbrl"
)

var rootCmd = &cobra.Command{
	Use:   "xbrl <instance.xbrl>",
	Short: "xbrl is a CLI for working with XBRL instance documents",
	Long: `xbrl is a CLI tool for discovering and validating XBRL taxonomies
and instance documents.

By default it prints a summary of the instance document:
  - number of schemaRefs and resolved DTSes
  - number of contexts, and how many carry a dimensional segment
  - number of units
  - number of facts
  - the root and additional namespaces declared on the document

Use the 'facts' subcommand to inspect individual facts with filters,
'dts' to explore a taxonomy's discovered schemas and presentation
trees, and 'validate' to run calculation validation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		doc, err := xbrl.ParseFile(path)
		if err != nil {
			return fmt.Errorf("parse instance: %w", err)
		}

		dimensioned := 0
		for _, ctx := range doc.Contexts() {
			if ctx.Segment() != nil {
				dimensioned++
			}
		}

		fmt.Printf("schemaRefs: %d (%d DTS resolved)\n", len(doc.SchemaRefs()), len(doc.DTSSet()))
		fmt.Printf("contexts  : %d (%d with a dimensional segment)\n", len(doc.Contexts()), dimensioned)
		fmt.Printf("units     : %d\n", len(doc.Units()))
		fmt.Printf("facts     : %d\n", len(doc.Facts()))
		fmt.Printf("namespace : %s\n", doc.RootNamespace())
		for prefix, uri := range doc.AdditionalNamespaces() {
			fmt.Printf("  xmlns:%s = %s\n", prefix, uri)
		}

		return nil
	},
}

func init() {
	bi, ok := debug.ReadBuildInfo()
	if ok {
		rootCmd.Version = bi.Main.Version
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
