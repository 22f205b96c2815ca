package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-xbrl/dts-engine/pkg/xbrl"
)

var validateCmd = &cobra.Command{
	Use:   "validate <instance.xbrl>",
	Short: "Validate an XBRL instance document against its DTS",
	Long: `Validate an XBRL instance document against its DTS.

Every fact must bind to a concept known in some DTS discovered from the
instance's <schemaRef> entries, and every calculation base set must
balance (weighted sum of summand facts equals the total fact exactly;
the reported decimals are not taken into account).

Examples:

  xbrl validate sample.xbrl
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		in, err := xbrl.ParseFile(path)
		if err != nil {
			return fmt.Errorf("parse instance: %w", err)
		}

		if err := xbrl.ValidateInstance(in); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		fmt.Printf("OK: %d facts validated against %d DTS(es)\n", len(in.Facts()), len(in.DTSSet()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
