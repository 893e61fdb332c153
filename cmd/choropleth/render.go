package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sekarsister/choropleth/internal/basemap"
	"github.com/sekarsister/choropleth/internal/choropleth"
	"github.com/sekarsister/choropleth/internal/config"
	"github.com/sekarsister/choropleth/internal/observability"
	"github.com/sekarsister/choropleth/internal/render"
)

var (
	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Render one PDF map per value column and year",
		Example: `  choropleth render --input animal_number_df.xlsx --sheet Sheet1 --out o2 \
      --column "Number of~Animals SSP5" --main-regions --year 2050 --year 2060`,
		RunE: runRender,
	}

	renderOpts choropleth.Options
)

func init() {
	rootCmd.AddCommand(renderCmd)

	flags := renderCmd.Flags()
	flags.StringVarP(&renderOpts.Input, "input", "i", "", "input workbook (.xlsx) or .csv file")
	flags.StringVar(&renderOpts.Sheet, "sheet", "Sheet1", "sheet to read from the workbook")
	flags.StringVarP(&renderOpts.OutDir, "out", "o", "", "output directory for the PDFs")
	flags.StringArrayVarP(&renderOpts.Columns, "column", "c", nil, "value column to map; repeatable, glob patterns allowed")
	flags.BoolVar(&renderOpts.MainRegions, "main-regions", false, "draw main regions instead of subregions")
	flags.IntSliceVar(&renderOpts.Years, "year", nil, "year to draw; repeatable (default: all rows in one map)")
	flags.StringVar(&renderOpts.MainCol, "main-col", "", "main-region column (default: detected)")
	flags.StringVar(&renderOpts.SubCol, "sub-col", "", "subregion column (default: detected)")
	flags.BoolVar(&renderOpts.Summary, "summary", false, "also write summary.xlsx with the mapped values")

	_ = renderCmd.MarkFlagRequired("input")
	_ = renderCmd.MarkFlagRequired("out")
	_ = renderCmd.MarkFlagRequired("column")
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := observability.NewLogger(cfg, os.Stderr)

	tables, err := loadTables()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := choropleth.Run(ctx, renderOpts, choropleth.Deps{
		Tables:   tables,
		Basemap:  basemap.NewLoader(basemap.SourcesFromConfig(cfg), logger),
		Renderer: render.NewRenderer(logger),
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	logger.Info("done", "written", len(res.Written), "skipped", len(res.Skipped))
	for _, path := range res.Written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	if res.Summary != "" {
		fmt.Fprintln(cmd.OutOrStdout(), res.Summary)
	}
	return nil
}
