package calculation

import (
	"github.com/rpgo/lifetable/internal/domain"
)

// lifeColumn is a one-dimensional view of the table, indexed by age from
// minAge. Every downstream query reads from one of these.
type lifeColumn struct {
	minAge int
	qx     []float64
	lx     []float64
}

func (c *lifeColumn) maxAge() int          { return c.minAge + len(c.qx) - 1 }
func (c *lifeColumn) qxAt(age int) float64 { return c.qx[age-c.minAge] }
func (c *lifeColumn) lxAt(age int) float64 { return c.lx[age-c.minAge] }

// dxAt is lx(age) - lx(age+1), or lx(age) at the ceiling.
func (c *lifeColumn) dxAt(age int) float64 {
	if age == c.maxAge() {
		return c.lxAt(age)
	}
	return c.lxAt(age) - c.lxAt(age+1)
}

// project builds the column for entryAge. Ultimate-only tables ignore the
// entry age; a nil entry age on a select table takes the ultimate slice;
// otherwise each age reads duration min(age-entry, maxDur) and ages below
// the entry age hold zeros.
func (mt *MortTableConfig) project(entryAge *int) (*lifeColumn, error) {
	t := mt.table
	n := t.MaxAge() - t.MinAge() + 1
	col := &lifeColumn{minAge: t.MinAge(), qx: make([]float64, n), lx: make([]float64, n)}

	if !t.IsSelect() || entryAge == nil {
		for age := t.MinAge(); age <= t.MaxAge(); age++ {
			r, ok := t.Lookup(age)
			if !ok {
				return nil, domain.NewRangeError("age", age, "no ultimate cell")
			}
			col.qx[age-col.minAge], col.lx[age-col.minAge] = r.Qx, r.Lx
		}
		return col, nil
	}

	e := *entryAge
	maxDur, _ := t.MaxDuration()
	for age := max(e, t.MinAge()); age <= t.MaxAge(); age++ {
		d := min(age-e, maxDur)
		r, ok := t.Cell(age, d)
		if !ok {
			return nil, domain.NewRangeError("entry_age", e, "no table cell at age %d duration %d", age, d)
		}
		col.qx[age-col.minAge], col.lx[age-col.minAge] = r.Qx, r.Lx
	}
	mt.logger.Debugf("projected select table for entry age %d", e)
	return col, nil
}

// SelectedTable returns the one-dimensional (age, qx, lx) table a life with
// the given entry age experiences. It spans every age of the table; ages
// below the entry age hold zeros and are never queried. A table without a
// duration axis is returned unchanged.
func (mt *MortTableConfig) SelectedTable(entryAge *int) (*domain.MortalityTable, error) {
	if !mt.table.IsSelect() {
		return mt.table, nil
	}
	if entryAge != nil && (*entryAge < mt.MinAge() || *entryAge > mt.MaxAge()) {
		return nil, domain.NewRangeError("entry_age", *entryAge, "outside table ages %d-%d", mt.MinAge(), mt.MaxAge())
	}
	col, err := mt.project(entryAge)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.Row, 0, len(col.qx))
	for age := col.minAge; age <= col.maxAge(); age++ {
		rows = append(rows, domain.Row{Age: age, Qx: col.qxAt(age), Lx: col.lxAt(age)})
	}
	return domain.NewMortalityTable([]domain.Column{domain.ColumnAge, domain.ColumnQx, domain.ColumnLx}, rows)
}
