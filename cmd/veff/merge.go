package main

import (
	"github.com/spf13/cobra"

	"github.com/inodb/veff/internal/merge"
)

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <input.tsv>... <output.tsv>",
		Short: "Merge scoring TSVs into one table keyed by variant",
		Long: `Outer-join two or more scoring output files on the five variant
identity columns (#CHROM, POS, ID, REF, ALT). Rows whose key appears in
only some inputs are kept, with empty cells for the others.`,
		Example: `  veff merge deltaLogitPSI.tsv pathogenicity.tsv merged.tsv`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := args[:len(args)-1]
			output := args[len(args)-1]
			return merge.Tables(inputs, output)
		},
	}
}
