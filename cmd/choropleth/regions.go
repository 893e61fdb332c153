package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	regionsCmd = &cobra.Command{
		Use:   "regions",
		Short: "List the region tables in use",
		Long: `List every subregion with its main region and member countries.
With --yaml the tables are printed in the format accepted by --regions.`,
		Args: cobra.NoArgs,
		RunE: runRegions,
	}

	regionsYAML bool
)

func init() {
	rootCmd.AddCommand(regionsCmd)
	regionsCmd.Flags().BoolVar(&regionsYAML, "yaml", false, "print the tables as YAML")
}

func runRegions(cmd *cobra.Command, _ []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if regionsYAML {
		return tables.WriteYAML(out)
	}

	for _, main := range tables.MainRegions() {
		fmt.Fprintln(out, main)
		for _, sub := range tables.MainToSubregions()[main] {
			fmt.Fprintf(out, "  %-14s %s\n", sub, strings.Join(tables.Countries(sub), ", "))
		}
	}
	return nil
}
