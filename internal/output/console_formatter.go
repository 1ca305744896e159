package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rpgo/lifetable/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
)

// ConsoleFormatter renders a report as aligned plain-text tables.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, titleStyle.Render(strings.ToUpper(report.Title)))
	fmt.Fprintln(&buf, strings.Repeat("=", 64))
	writeBasis(&buf, report.Basis)

	if len(report.Table) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, sectionStyle.Render("Mortality table"))
		if report.Select {
			fmt.Fprintf(&buf, "%5s %5s %12s %16s\n", "Age", "Dur", "qx", "lx")
		} else {
			fmt.Fprintf(&buf, "%5s %12s %16s\n", "Age", "qx", "lx")
		}
		for _, r := range report.Table {
			if report.Select {
				fmt.Fprintf(&buf, "%5d %5d %12s %16s\n", r.Age, r.Duration, FormatValue(r.Qx, 6), FormatValue(r.Lx, 4))
			} else {
				fmt.Fprintf(&buf, "%5d %12s %16s\n", r.Age, FormatValue(r.Qx, 6), FormatValue(r.Lx, 4))
			}
		}
	}

	if len(report.Commutations) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, sectionStyle.Render("Commutation functions"))
		fmt.Fprintf(&buf, "%5s %14s %14s %16s %14s %18s %16s\n", "Age", "Dx", "Cx", "Nx", "Mx", "Sx", "Rx")
		for _, r := range report.Commutations {
			fmt.Fprintf(&buf, "%5d %14s %14s %16s %14s %18s %16s\n", r.Age,
				FormatValue(r.Dx, 4), FormatValue(r.Cx, 4), FormatValue(r.Nx, 4),
				FormatValue(r.Mx, 4), FormatValue(r.Sx, 4), FormatValue(r.Rx, 4))
		}
	}

	if len(report.Survival) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, sectionStyle.Render("Survival"))
		fmt.Fprintf(&buf, "%8s %8s %8s %12s %12s\n", "x", "t", "k", "tpx", "tqx")
		for _, r := range report.Survival {
			fmt.Fprintf(&buf, "%8g %8g %8g %12s %12s\n", r.X, r.T, r.K, FormatValue(r.Tpx, 8), FormatValue(r.Tqx, 8))
		}
	}

	if len(report.Values) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, sectionStyle.Render("Values"))
		fmt.Fprintf(&buf, "%-7s %-40s %4s %4s %4s %3s %3s %5s %12s %14s\n",
			"Fn", "Description", "x", "n", "t", "m", "mom", "entry", "value", "amount")
		for _, r := range report.Values {
			fmt.Fprintf(&buf, "%-7s %-40s %4d %4d %4d %3d %3d %5s %12s %14s\n",
				r.Function, r.Description, r.X, r.N, r.T, r.M, r.Moment,
				formatEntryAge(r.EntryAge), FormatValue(r.Value, 6), r.Amount)
		}
	}
	return buf.Bytes(), nil
}

func writeBasis(buf *bytes.Buffer, b domain.BasisSummary) {
	fmt.Fprintf(buf, "Table:      %s\n", b.Table)
	fmt.Fprintf(buf, "Ages:       %d-%d\n", b.MinAge, b.MaxAge)
	fmt.Fprintf(buf, "Radix:      %d (pct %g)\n", b.Radix, b.Pct)
	fmt.Fprintf(buf, "Assumption: %s\n", b.Assumption)
	if b.Interest != "" {
		fmt.Fprintf(buf, "Interest:   %s\n", b.Interest)
	}
	if b.EntryAge != nil {
		fmt.Fprintf(buf, "Entry age:  %d\n", *b.EntryAge)
	}
}
