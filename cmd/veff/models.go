package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inodb/veff/internal/scoring"
	"github.com/inodb/veff/internal/zoo"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List supported models and their outputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range scoring.Models() {
				desc, err := zoo.Describe(name)
				if err != nil {
					return err
				}

				width := 0
				if len(desc.Targets.Shape) > 0 {
					width = desc.Targets.Shape[0]
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d output(s)", name, width)
				if len(desc.Targets.ColumnLabels) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "\t%s", strings.Join(desc.Targets.ColumnLabels, ","))
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
}
