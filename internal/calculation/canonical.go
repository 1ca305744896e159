package calculation

import (
	"math"

	"github.com/rpgo/lifetable/internal/domain"
)

// canonicalize returns a table carrying both qx and lx. A table that
// already has both passes through unchanged.
func canonicalize(t *domain.MortalityTable, s Settings, log Logger) (*domain.MortalityTable, error) {
	hasQx, hasLx := t.Has(domain.ColumnQx), t.Has(domain.ColumnLx)
	if hasLx && !hasQx && s.Pct != 1 {
		log.Warnf("pct=%g ignored: table is given as lx", s.Pct)
	}

	switch {
	case hasQx && hasLx:
		log.Debugf("table carries qx and lx, using as given")
		return t, nil
	case !t.IsSelect() && hasLx:
		return qxFromLx(t, log)
	case !t.IsSelect() && hasQx:
		return lxFromQx(t, s, log)
	case hasLx:
		return selectQxFromLx(t, log)
	case hasQx:
		return selectLxFromQx(t, s, log)
	}
	return nil, domain.NewFormatError("mortality table format not recognized")
}

func scaledQx(q, pct float64) float64 {
	return math.Min(1, q*pct)
}

// qxFromLx derives qx(a) = (lx(a) - lx(a+1)) / lx(a); the last age gets qx = 1.
func qxFromLx(t *domain.MortalityTable, log Logger) (*domain.MortalityTable, error) {
	rows := t.Rows()
	for i := range rows {
		switch {
		case i == len(rows)-1:
			rows[i].Qx = 1
		case rows[i].Lx <= 0:
			rows[i].Qx = 1
		default:
			rows[i].Qx = (rows[i].Lx - rows[i+1].Lx) / rows[i].Lx
		}
	}
	log.Debugf("derived qx from lx for %d ages", len(rows))
	return domain.NewMortalityTable([]domain.Column{domain.ColumnAge, domain.ColumnQx, domain.ColumnLx}, rows)
}

// lxFromQx compounds lx forward from the radix. The ceiling age is closed with qx = 1.
func lxFromQx(t *domain.MortalityTable, s Settings, log Logger) (*domain.MortalityTable, error) {
	rows := t.Rows()
	lx := float64(s.Radix)
	for i := range rows {
		rows[i].Qx = scaledQx(rows[i].Qx, s.Pct)
		rows[i].Lx = lx
		lx *= 1 - rows[i].Qx
	}
	last := &rows[len(rows)-1]
	if last.Qx != 1 {
		log.Debugf("closing table at age %d: qx %g -> 1", last.Age, last.Qx)
		last.Qx = 1
	}
	log.Debugf("derived lx from qx for %d ages, radix %d, pct %g", len(rows), s.Radix, s.Pct)
	return domain.NewMortalityTable([]domain.Column{domain.ColumnAge, domain.ColumnQx, domain.ColumnLx}, rows)
}

// cell is one (age, duration) slot of a pivoted select table.
type cell struct {
	qx, lx       float64
	hasQx, hasLx bool
}

// durationGrid is a select table pivoted to one column per duration,
// indexed [duration-minDur][age-minAge].
type durationGrid struct {
	minAge, maxAge int
	minDur, maxDur int
	cells          [][]cell
}

func pivot(t *domain.MortalityTable) *durationGrid {
	minDur, _ := t.MinDuration()
	maxDur, _ := t.MaxDuration()
	g := &durationGrid{
		minAge: t.MinAge(),
		maxAge: t.MaxAge(),
		minDur: minDur,
		maxDur: maxDur,
		cells:  make([][]cell, maxDur-minDur+1),
	}
	for d := range g.cells {
		g.cells[d] = make([]cell, g.maxAge-g.minAge+1)
	}
	hasQx, hasLx := t.Has(domain.ColumnQx), t.Has(domain.ColumnLx)
	for _, r := range t.Rows() {
		c := g.at(r.Age, r.Duration)
		c.qx, c.hasQx = r.Qx, hasQx
		c.lx, c.hasLx = r.Lx, hasLx
	}
	return g
}

// at returns the slot for (age, duration), or nil outside the grid.
func (g *durationGrid) at(age, duration int) *cell {
	if age < g.minAge || age > g.maxAge || duration < g.minDur || duration > g.maxDur {
		return nil
	}
	return &g.cells[duration-g.minDur][age-g.minAge]
}

// unpivot keeps only the cells holding both values.
func (g *durationGrid) unpivot(log Logger) (*domain.MortalityTable, error) {
	var rows []domain.Row
	dropped := 0
	for age := g.minAge; age <= g.maxAge; age++ {
		for d := g.minDur; d <= g.maxDur; d++ {
			c := g.at(age, d)
			switch {
			case c.hasQx && c.hasLx:
				rows = append(rows, domain.Row{Age: age, Duration: d, Qx: c.qx, Lx: c.lx})
			case c.hasQx || c.hasLx:
				dropped++
			}
		}
	}
	if dropped > 0 {
		log.Debugf("dropped %d select cells with no neighbour to derive from", dropped)
	}
	return domain.NewMortalityTable(
		[]domain.Column{domain.ColumnAge, domain.ColumnQx, domain.ColumnLx, domain.ColumnDuration}, rows)
}

// selectQxFromLx fills qx_d(a) = 1 - lx_{min(d+1,maxDur)}(a+1) / lx_d(a),
// walking from the ultimate duration down. Every duration at the ceiling
// age gets qx = 1.
func selectQxFromLx(t *domain.MortalityTable, log Logger) (*domain.MortalityTable, error) {
	g := pivot(t)
	for d := g.maxDur; d >= g.minDur; d-- {
		next := min(d+1, g.maxDur)
		for age := g.minAge; age <= g.maxAge; age++ {
			c := g.at(age, d)
			if !c.hasLx {
				continue
			}
			if age == g.maxAge || c.lx <= 0 {
				c.qx, c.hasQx = 1, true
				continue
			}
			if n := g.at(age+1, next); n.hasLx {
				c.qx, c.hasQx = 1-n.lx/c.lx, true
			}
		}
	}
	log.Debugf("derived select qx from lx over durations %d-%d", g.minDur, g.maxDur)
	return g.unpivot(log)
}

// selectLxFromQx compounds the ultimate lx from the radix, then fills
// lx_d(a) = lx_{d+1}(a+1) / (1 - qx_d(a)) from maxDur-1 down to minDur.
// Select cells at the ceiling age have no successor: they are closed with
// qx = 1 and take lx from the next duration at the same age.
func selectLxFromQx(t *domain.MortalityTable, s Settings, log Logger) (*domain.MortalityTable, error) {
	g := pivot(t)
	for d := g.minDur; d <= g.maxDur; d++ {
		for age := g.minAge; age <= g.maxAge; age++ {
			if c := g.at(age, d); c.hasQx {
				c.qx = scaledQx(c.qx, s.Pct)
			}
		}
	}

	lx := float64(s.Radix)
	for age := g.minAge; age <= g.maxAge; age++ {
		c := g.at(age, g.maxDur)
		if age == g.maxAge && c.qx != 1 {
			log.Debugf("closing ultimate column at age %d: qx %g -> 1", age, c.qx)
			c.qx = 1
		}
		c.lx, c.hasLx = lx, true
		lx *= 1 - c.qx
	}

	for d := g.maxDur - 1; d >= g.minDur; d-- {
		for age := g.minAge; age <= g.maxAge; age++ {
			c := g.at(age, d)
			if !c.hasQx {
				continue
			}
			if age == g.maxAge {
				if n := g.at(age, d+1); n.hasLx {
					if c.qx != 1 {
						log.Debugf("closing select cell at age %d duration %d: qx %g -> 1", age, d, c.qx)
					}
					c.qx, c.lx, c.hasLx = 1, n.lx, true
				}
				continue
			}
			n := g.at(age+1, d+1)
			if !n.hasLx {
				continue
			}
			denom := 1 - c.qx
			if denom <= 0 {
				return nil, domain.NewFormatError("qx=%g at age %d duration %d leaves lx undefined", c.qx, age, d)
			}
			c.lx, c.hasLx = n.lx/denom, true
		}
	}
	log.Debugf("derived select lx from qx over durations %d-%d, radix %d", g.minDur, g.maxDur, s.Radix)
	return g.unpivot(log)
}
