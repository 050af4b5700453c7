package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/altrinid/IFC-Extractor/internal/model"
)

var classesCmd = &cobra.Command{
	Use:   "classes <model.ifc>",
	Short: "List the entity classes present in a model",
	Long: `Classes opens an IFC model and prints every rooted entity class with its
instance count, sorted by name. Useful for choosing a --classes filter
before extracting.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := model.Open(args[0])
		if err != nil {
			return err
		}
		total := 0
		for _, c := range m.ClassCounts() {
			fmt.Fprintf(cmd.OutOrStdout(), "%8d  %s\n", c.Count, c.Name)
			total += c.Count
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%8d  total\n", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classesCmd)
}
