package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/lifetable/internal/domain"
)

// CSVFormatter writes each populated section of a report as its own CSV
// block with a header row; blocks are separated by an empty line.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	var blocks [][][]string
	if len(report.Table) > 0 {
		blocks = append(blocks, tableRecords(report))
	}
	if len(report.Commutations) > 0 {
		blocks = append(blocks, commutationRecords(report.Commutations))
	}
	if len(report.Survival) > 0 {
		blocks = append(blocks, survivalRecords(report.Survival))
	}
	if len(report.Values) > 0 {
		blocks = append(blocks, valueRecords(report.Values))
	}

	for i, block := range blocks {
		if i > 0 {
			if err := w.Write(nil); err != nil {
				return nil, err
			}
		}
		if err := w.WriteAll(block); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func tableRecords(report *domain.Report) [][]string {
	header := []string{"age", "qx", "lx"}
	if report.Select {
		header = []string{"age", "duration", "qx", "lx"}
	}
	out := [][]string{header}
	for _, r := range report.Table {
		rec := []string{intToString(r.Age)}
		if report.Select {
			rec = append(rec, intToString(r.Duration))
		}
		out = append(out, append(rec, formatFloat(r.Qx), formatFloat(r.Lx)))
	}
	return out
}

func commutationRecords(rows []domain.CommutationRow) [][]string {
	out := [][]string{{"age", "Dx", "Cx", "Nx", "Mx", "Sx", "Rx"}}
	for _, r := range rows {
		out = append(out, []string{
			intToString(r.Age),
			formatFloat(r.Dx),
			formatFloat(r.Cx),
			formatFloat(r.Nx),
			formatFloat(r.Mx),
			formatFloat(r.Sx),
			formatFloat(r.Rx),
		})
	}
	return out
}

func survivalRecords(rows []domain.SurvivalResult) [][]string {
	out := [][]string{{"x", "t", "k", "tpx", "tqx"}}
	for _, r := range rows {
		out = append(out, []string{formatFloat(r.X), formatFloat(r.T), formatFloat(r.K), formatFloat(r.Tpx), formatFloat(r.Tqx)})
	}
	return out
}

func valueRecords(rows []domain.ValueResult) [][]string {
	out := [][]string{{"function", "description", "x", "n", "t", "m", "moment", "entry_age", "value", "amount"}}
	for _, r := range rows {
		entry := ""
		if r.EntryAge != nil {
			entry = intToString(*r.EntryAge)
		}
		out = append(out, []string{
			r.Function,
			r.Description,
			intToString(r.X),
			intToString(r.N),
			intToString(r.T),
			intToString(r.M),
			intToString(r.Moment),
			entry,
			formatFloat(r.Value),
			r.Amount,
		})
	}
	return out
}
