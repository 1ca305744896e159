package domain

import (
	"math"
	"sort"
)

// Column names a mortality table column.
type Column string

const (
	ColumnAge      Column = "age"
	ColumnQx       Column = "qx"
	ColumnLx       Column = "lx"
	ColumnDuration Column = "duration"
)

// Row is one cell of a mortality table. Only the fields named by the
// table's columns carry meaning; Duration is zero for ultimate-only tables.
type Row struct {
	Age      int     `json:"age" yaml:"age"`
	Duration int     `json:"duration,omitempty" yaml:"duration,omitempty"`
	Qx       float64 `json:"qx" yaml:"qx"`
	Lx       float64 `json:"lx" yaml:"lx"`
}

type cellKey struct {
	age      int
	duration int
}

// MortalityTable is an immutable, schema-checked mortality table. Rows are
// kept sorted by age then duration and are never modified after
// construction; accessors hand out copies.
type MortalityTable struct {
	columns []Column
	rows    []Row
	index   map[cellKey]int
	minAge  int
	maxAge  int
	minDur  int
	maxDur  int
}

// NewMortalityTable checks the schema and values of rows and returns the table.
//
// Accepted column sets are age plus at least one of qx and lx, optionally
// with duration. Ages must form a contiguous step-1 range. For select
// tables every age must carry a contiguous run of durations ending at the
// maximum (ultimate) duration; a gap inside the select period is rejected.
func NewMortalityTable(columns []Column, rows []Row) (*MortalityTable, error) {
	cols, err := checkColumns(columns)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, NewFormatError("table has no rows")
	}

	t := &MortalityTable{
		columns: cols,
		rows:    append([]Row(nil), rows...),
		index:   make(map[cellKey]int, len(rows)),
	}
	select2D := t.Has(ColumnDuration)
	hasQx, hasLx := t.Has(ColumnQx), t.Has(ColumnLx)

	for i := range t.rows {
		r := &t.rows[i]
		if !select2D {
			r.Duration = 0
		}
		if !hasQx {
			r.Qx = 0
		}
		if !hasLx {
			r.Lx = 0
		}
		if err := checkRow(*r, select2D, hasQx, hasLx); err != nil {
			return nil, err
		}
	}
	sort.SliceStable(t.rows, func(i, j int) bool {
		if t.rows[i].Age != t.rows[j].Age {
			return t.rows[i].Age < t.rows[j].Age
		}
		return t.rows[i].Duration < t.rows[j].Duration
	})

	t.minAge, t.maxAge = t.rows[0].Age, t.rows[len(t.rows)-1].Age
	t.minDur, t.maxDur = t.rows[0].Duration, t.rows[0].Duration
	for i, r := range t.rows {
		key := cellKey{r.Age, r.Duration}
		if _, dup := t.index[key]; dup {
			if select2D {
				return nil, NewFormatError("duplicate cell at age %d duration %d", r.Age, r.Duration)
			}
			return nil, NewFormatError("duplicate age %d", r.Age)
		}
		t.index[key] = i
		t.minDur = min(t.minDur, r.Duration)
		t.maxDur = max(t.maxDur, r.Duration)
	}

	if err := t.checkAxes(); err != nil {
		return nil, err
	}
	return t, nil
}

func checkColumns(columns []Column) ([]Column, error) {
	seen := make(map[Column]bool, len(columns))
	for _, c := range columns {
		switch c {
		case ColumnAge, ColumnQx, ColumnLx, ColumnDuration:
		default:
			return nil, NewFormatError("unrecognized column %q", c)
		}
		if seen[c] {
			return nil, NewFormatError("column %q given twice", c)
		}
		seen[c] = true
	}
	if !seen[ColumnAge] {
		return nil, NewFormatError("missing age column")
	}
	if !seen[ColumnQx] && !seen[ColumnLx] {
		return nil, NewFormatError("neither qx nor lx column present")
	}
	// canonical order
	var out []Column
	for _, c := range []Column{ColumnAge, ColumnQx, ColumnLx, ColumnDuration} {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out, nil
}

func checkRow(r Row, select2D, hasQx, hasLx bool) error {
	if r.Age < 0 {
		return NewFormatError("negative age %d", r.Age)
	}
	if select2D && r.Duration < 0 {
		return NewFormatError("negative duration %d at age %d", r.Duration, r.Age)
	}
	if hasQx && (math.IsNaN(r.Qx) || r.Qx < 0 || r.Qx > 1) {
		return NewFormatError("qx=%v at age %d must lie in [0, 1]", r.Qx, r.Age)
	}
	if hasLx && (math.IsNaN(r.Lx) || math.IsInf(r.Lx, 0) || r.Lx < 0) {
		return NewFormatError("lx=%v at age %d must be finite and non-negative", r.Lx, r.Age)
	}
	return nil
}

func (t *MortalityTable) checkAxes() error {
	durations := make(map[int][]int, t.maxAge-t.minAge+1)
	for _, r := range t.rows {
		durations[r.Age] = append(durations[r.Age], r.Duration)
	}
	for age := t.minAge; age <= t.maxAge; age++ {
		ds, ok := durations[age]
		if !ok {
			return NewFormatError("ages are not contiguous: age %d missing", age)
		}
		if !t.IsSelect() {
			continue
		}
		// rows are sorted, so ds is ascending
		if ds[len(ds)-1] != t.maxDur {
			return NewFormatError("age %d has no ultimate (duration %d) cell", age, t.maxDur)
		}
		for i := 1; i < len(ds); i++ {
			if ds[i] != ds[i-1]+1 {
				return NewFormatError("age %d skips duration %d inside the select period", age, ds[i-1]+1)
			}
		}
	}
	return nil
}

// Columns returns the column names in canonical order.
func (t *MortalityTable) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

// Has reports whether the table carries column c.
func (t *MortalityTable) Has(c Column) bool {
	for _, col := range t.columns {
		if col == c {
			return true
		}
	}
	return false
}

// IsSelect reports whether the table has a duration axis.
func (t *MortalityTable) IsSelect() bool { return t.Has(ColumnDuration) }

// Rows returns a copy of the rows sorted by age then duration.
func (t *MortalityTable) Rows() []Row { return append([]Row(nil), t.rows...) }

// Len is the number of cells.
func (t *MortalityTable) Len() int { return len(t.rows) }

func (t *MortalityTable) MinAge() int { return t.minAge }
func (t *MortalityTable) MaxAge() int { return t.maxAge }

// MinDuration returns the smallest duration of a select table.
func (t *MortalityTable) MinDuration() (int, error) {
	if !t.IsSelect() {
		return 0, NewFormatError("table has no duration column")
	}
	return t.minDur, nil
}

// MaxDuration returns the ultimate duration of a select table.
func (t *MortalityTable) MaxDuration() (int, error) {
	if !t.IsSelect() {
		return 0, NewFormatError("table has no duration column")
	}
	return t.maxDur, nil
}

// Cell returns the row at (age, duration). Ultimate-only tables ignore duration.
func (t *MortalityTable) Cell(age, duration int) (Row, bool) {
	if !t.IsSelect() {
		duration = 0
	}
	i, ok := t.index[cellKey{age, duration}]
	if !ok {
		return Row{}, false
	}
	return t.rows[i], true
}

// Lookup returns the ultimate row for age.
func (t *MortalityTable) Lookup(age int) (Row, bool) {
	return t.Cell(age, t.maxDur)
}
