package main

import (
	"fmt"
	"log/slog"

	"github.com/rpgo/lifetable/internal/calculation"
	"github.com/rpgo/lifetable/internal/config"
	"github.com/rpgo/lifetable/internal/domain"
	"github.com/rpgo/lifetable/internal/output"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	basisFile string
	format    string
	outputDir string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "lifetab",
		Short: "Life contingency calculator",
		Long: `lifetab canonicalises mortality tables and values life insurances
and annuities against a basis file (YAML or TOML).

The basis names a CSV table or a parametric law, the fractional-age
assumption, the interest rate and the values to compute.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.basisFile, "config", "c", "basis.yaml", "basis file (YAML or TOML)")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", "console", "output format: console, csv, json, yaml")
	root.PersistentFlags().StringVar(&opts.outputDir, "output-dir", "", "write the report to a timestamped file in this directory")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log table loading and each evaluation")

	root.AddCommand(
		newTableCmd(opts),
		newCommuteCmd(opts),
		newSurvivalCmd(opts),
		newValueCmd(opts),
		newFunctionsCmd(),
		newExampleCmd(),
	)
	return root
}

// session is a loaded basis with its canonical table.
type session struct {
	basis  *domain.Basis
	table  *calculation.MortTableConfig
	engine *calculation.CalculationEngine
}

func (o *rootOptions) load(cmd *cobra.Command) (*session, error) {
	engine := calculation.NewCalculationEngine()
	if o.verbose {
		handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
		engine.SetLogger(calculation.NewSlogLogger(slog.New(handler)))
	}

	parser := config.NewInputParser()
	basis, err := parser.LoadFromFile(o.basisFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load basis: %w", err)
	}
	raw, err := parser.LoadTable(basis)
	if err != nil {
		return nil, err
	}
	mt, err := engine.BuildConfig(basis, raw)
	if err != nil {
		return nil, err
	}
	return &session{basis: basis, table: mt, engine: engine}, nil
}

func (o *rootOptions) emit(cmd *cobra.Command, report *domain.Report) error {
	if o.outputDir == "" {
		return output.GenerateReport(cmd.OutOrStdout(), report, o.format)
	}
	f := output.GetFormatterByName(o.format)
	if f == nil {
		return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, o.format)
	}
	path, err := output.WriteFormatted(f, report, o.outputDir, output.Extension(o.format))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	return nil
}

// entryAgeFlag returns nil unless the flag was set.
func entryAgeFlag(cmd *cobra.Command, v int) *int {
	if !cmd.Flags().Changed("entry-age") {
		return nil
	}
	return &v
}
