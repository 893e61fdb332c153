package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sekarsister/choropleth/internal/regions"
)

var (
	rootCmd = &cobra.Command{
		Use:           "choropleth",
		Short:         "Render choropleth world maps from spreadsheet data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	regionsFile string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&regionsFile, "regions", "", "YAML file replacing the built-in region tables")
}

// loadTables returns the region tables selected by --regions.
func loadTables() (*regions.Tables, error) {
	if regionsFile == "" {
		return regions.Default(), nil
	}
	return regions.LoadFile(regionsFile)
}

func main() {
	// Optional; the environment wins over the file.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("error:", err)
		os.Exit(1)
	}
}
