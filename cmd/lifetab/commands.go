package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/rpgo/lifetable/internal/calculation"
	"github.com/rpgo/lifetable/internal/config"
	"github.com/rpgo/lifetable/internal/domain"
	"github.com/rpgo/lifetable/internal/output"
	"github.com/rpgo/lifetable/pkg/decimal"
	"github.com/spf13/cobra"
)

func newTableCmd(opts *rootOptions) *cobra.Command {
	var entryAge int
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the canonical mortality table",
		Long: `Print age, qx and lx for every age of the canonical table. With
--entry-age a select table is projected onto the entry age first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd)
			if err != nil {
				return err
			}
			report, err := s.engine.TableReport(s.table, s.basis, entryAgeFlag(cmd, entryAge))
			if err != nil {
				return err
			}
			return opts.emit(cmd, report)
		},
	}
	cmd.Flags().IntVar(&entryAge, "entry-age", 0, "entry age for a select table")
	return cmd
}

func newCommuteCmd(opts *rootOptions) *cobra.Command {
	var entryAge int
	cmd := &cobra.Command{
		Use:     "commute",
		Aliases: []string{"commutations"},
		Short:   "Print commutation functions at the basis interest rate",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd)
			if err != nil {
				return err
			}
			report, err := s.engine.CommutationReport(s.table, s.basis, entryAgeFlag(cmd, entryAge))
			if err != nil {
				return err
			}
			return opts.emit(cmd, report)
		},
	}
	cmd.Flags().IntVar(&entryAge, "entry-age", 0, "entry age for a select table")
	return cmd
}

func newSurvivalCmd(opts *rootOptions) *cobra.Command {
	var (
		x, t, k  float64
		entryAge int
	)
	cmd := &cobra.Command{
		Use:   "survival",
		Short: "Evaluate tpx and tqx",
		Long: `Evaluate the probability that a life aged x survives k+t years, and
the probability that it survives k years then dies within t. Fractional
ages and times use the basis assumption.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd)
			if err != nil {
				return err
			}
			q := calculation.SurvivalQuery{X: x, T: t, K: k, EntryAge: entryAgeFlag(cmd, entryAge)}
			report, err := s.engine.SurvivalReport(s.table, s.basis, []calculation.SurvivalQuery{q})
			if err != nil {
				return err
			}
			return opts.emit(cmd, report)
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "age")
	cmd.Flags().Float64Var(&t, "t", 1, "years")
	cmd.Flags().Float64Var(&k, "k", 0, "deferral in years")
	cmd.Flags().IntVar(&entryAge, "entry-age", 0, "entry age for a select table")
	_ = cmd.MarkFlagRequired("x")
	return cmd
}

func newValueCmd(opts *rootOptions) *cobra.Command {
	var (
		function string
		req      domain.ValueRequest
		x        int
		entryAge int
		growth   string
		sum      string
	)
	cmd := &cobra.Command{
		Use:   "value",
		Short: "Compute insurance and annuity values",
		Long: `Compute the values listed in the basis file. With --function a single
value is computed instead, e.g.

  lifetab value --function Axn --x 40 --n 20
  lifetab value --function aax --m 12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if function != "" {
				req.Function = function
				if cmd.Flags().Changed("x") {
					req.X = &x
				}
				req.EntryAge = entryAgeFlag(cmd, entryAge)
				if req.Growth, err = decimal.NewRateFromString(growth); err != nil {
					return err
				}
				s.basis.Values = []domain.ValueRequest{req}
			}
			if sum != "" {
				amount, err := decimal.NewMoneyFromString(sum)
				if err != nil {
					return err
				}
				s.basis.SumAssured = &amount
			}
			if function != "" || sum != "" {
				if err := config.NewInputParser().ValidateBasis(s.basis); err != nil {
					return err
				}
			}
			if len(s.basis.Values) == 0 {
				return fmt.Errorf("basis %q lists no values; pass --function", s.basis.Name)
			}
			report, err := s.engine.Evaluate(s.table, s.basis)
			if err != nil {
				return err
			}
			return opts.emit(cmd, report)
		},
	}
	cmd.Flags().StringVar(&function, "function", "", "notation of a single function to compute (see 'lifetab functions')")
	cmd.Flags().IntVar(&x, "x", 0, "age; defaults to the basis life's age")
	cmd.Flags().IntVar(&req.N, "n", 0, "term in years")
	cmd.Flags().IntVar(&req.T, "t", 0, "deferral in years")
	cmd.Flags().IntVar(&req.M, "m", 1, "payments per year")
	cmd.Flags().IntVar(&req.Moment, "moment", 1, "moment of the present value")
	cmd.Flags().IntVar(&entryAge, "entry-age", 0, "entry age for a select table")
	cmd.Flags().StringVar(&growth, "growth", "0", "geometric growth rate for the g-functions")
	cmd.Flags().StringVar(&sum, "sum-assured", "", "amount the values are scaled by, overriding the basis")
	return cmd
}

var headingStyle = lipgloss.NewStyle().Bold(true)

func newFunctionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the actuarial functions by notation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headingStyle.Render("Actuarial functions"))
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, f := range calculation.ValueFunctions() {
				term := "n"
				if f.WholeLife {
					term = "whole life"
				}
				fmt.Fprintf(tw, "  %s\t%s\t%s\n", f.Notation, term, f.Description)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nOutput formats: %v\n", output.AvailableFormatterNames())
			return nil
		},
	}
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [file]",
		Short: "Write an example basis file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "basis.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			if err := output.SaveBasis(config.NewInputParser().CreateExampleBasis(), filename); err != nil {
				return fmt.Errorf("failed to write example basis: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example basis written to %s\n", filename)
			return nil
		},
	}
}
