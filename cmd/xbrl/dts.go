package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-xbrl/dts-engine/pkg/xbrl"
)

var dtsRole string

var dtsCmd = &cobra.Command{
	Use:   "dts <root-schema.xsd>",
	Short: "Discover a DTS from a root schema and print its structure",
	Long: `Discover a Discoverable Taxonomy Set (DTS) from a root schema
file and print its discovered schemas, extended link roles, and
presentation trees.

Examples:

  # Print every schema and presentation role discovered
  xbrl dts company.xsd

  # Print the presentation tree for one role
  xbrl dts --role http://example.com/role/statement company.xsd
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		dts, err := xbrl.CreateDTS(path)
		if err != nil {
			return fmt.Errorf("build DTS: %w", err)
		}

		fmt.Printf("root schema: %s\n", dts.RootSchema())
		fmt.Println("schemas:")
		for _, s := range dts.Schemas() {
			fmt.Printf("  %s  namespace=%s  concepts=%d\n", s.Name(), s.Namespace(), len(s.Concepts()))
		}

		roles := dts.PresentationLinkbase().ExtendedLinkRoles()
		fmt.Println("presentation roles:")
		for _, role := range roles {
			fmt.Printf("  %s\n", role)
		}

		if dtsRole != "" {
			fmt.Printf("presentation tree for role %s:\n", dtsRole)
			printPresentationRoots(dts.Presentation().Root(dtsRole), 0)
		}

		return nil
	},
}

func printPresentationRoots(nodes []*xbrl.PresentationLinkbaseElement, depth int) {
	for _, n := range nodes {
		fmt.Printf("%s- %s\n", strings.Repeat("  ", depth), n.Concept.Name())
		printPresentationRoots(n.Children(), depth+1)
	}
}

func init() {
	rootCmd.AddCommand(dtsCmd)
	dtsCmd.Flags().StringVar(&dtsRole, "role", "", "print the presentation tree for this extended link role")
}
