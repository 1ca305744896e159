package calculation

import (
	"math"

	"github.com/rpgo/lifetable/internal/domain"
)

// CommutationQuery selects an age, interest rate and optional entry age.
type CommutationQuery struct {
	I        float64 `json:"i" validate:"rate"`
	X        int     `json:"x"`
	EntryAge *int    `json:"entry_age"`
}

// commutationColumns holds Dx..Rx for every age of a projected column.
type commutationColumns struct {
	minAge                 int
	dx, cx, nx, mx, sx, rx []float64
}

// commutations computes Dx = v^x lx and Cx = v^(x+1) dx, then the running
// sums Nx, Mx and their sums Sx, Rx, each taken to the table ceiling.
func (c *lifeColumn) commutations(i float64) *commutationColumns {
	v := discountFactor(i)
	size := len(c.lx)
	cc := &commutationColumns{
		minAge: c.minAge,
		dx:     make([]float64, size),
		cx:     make([]float64, size),
		nx:     make([]float64, size+1),
		mx:     make([]float64, size+1),
		sx:     make([]float64, size+1),
		rx:     make([]float64, size+1),
	}
	for k := 0; k < size; k++ {
		age := c.minAge + k
		cc.dx[k] = math.Pow(v, float64(age)) * c.lx[k]
		cc.cx[k] = math.Pow(v, float64(age+1)) * c.dxAt(age)
	}
	for k := size - 1; k >= 0; k-- {
		cc.nx[k] = cc.dx[k] + cc.nx[k+1]
		cc.mx[k] = cc.cx[k] + cc.mx[k+1]
	}
	for k := size - 1; k >= 0; k-- {
		cc.sx[k] = cc.nx[k] + cc.sx[k+1]
		cc.rx[k] = cc.mx[k] + cc.rx[k+1]
	}
	return cc
}

func (cc *commutationColumns) row(age int) domain.CommutationRow {
	k := age - cc.minAge
	return domain.CommutationRow{
		Age: age,
		Dx:  cc.dx[k],
		Cx:  cc.cx[k],
		Nx:  cc.nx[k],
		Mx:  cc.mx[k],
		Sx:  cc.sx[k],
		Rx:  cc.rx[k],
	}
}

// commutationRow validates q, projects the table once and returns every
// commutation value at q.X.
func (mt *MortTableConfig) commutationRow(q CommutationQuery) (domain.CommutationRow, error) {
	v := structViolations(q)
	v = append(v, checkAges(mt.bounds(), float64(q.X), 0, 0, q.EntryAge)...)
	if err := v.Err(); err != nil {
		return domain.CommutationRow{}, err
	}
	col, err := mt.project(q.EntryAge)
	if err != nil {
		return domain.CommutationRow{}, err
	}
	return col.commutations(q.I).row(q.X), nil
}

// Dx returns v^x lx.
func (mt *MortTableConfig) Dx(q CommutationQuery) (float64, error) {
	r, err := mt.commutationRow(q)
	return r.Dx, err
}

// Cx returns v^(x+1) dx.
func (mt *MortTableConfig) Cx(q CommutationQuery) (float64, error) {
	r, err := mt.commutationRow(q)
	return r.Cx, err
}

// Nx returns the sum of Dy for y from x to the ceiling.
func (mt *MortTableConfig) Nx(q CommutationQuery) (float64, error) {
	r, err := mt.commutationRow(q)
	return r.Nx, err
}

// Mx returns the sum of Cy for y from x to the ceiling.
func (mt *MortTableConfig) Mx(q CommutationQuery) (float64, error) {
	r, err := mt.commutationRow(q)
	return r.Mx, err
}

// Sx returns the sum of Ny for y from x to the ceiling.
func (mt *MortTableConfig) Sx(q CommutationQuery) (float64, error) {
	r, err := mt.commutationRow(q)
	return r.Sx, err
}

// Rx returns the sum of My for y from x to the ceiling.
func (mt *MortTableConfig) Rx(q CommutationQuery) (float64, error) {
	r, err := mt.commutationRow(q)
	return r.Rx, err
}

// CommutationTable returns every commutation column for every reachable age:
// all table ages, or those from the entry age on when one is given.
func (mt *MortTableConfig) CommutationTable(i float64, entryAge *int) ([]domain.CommutationRow, error) {
	from := mt.MinAge()
	if entryAge != nil {
		from = *entryAge
	}
	q := CommutationQuery{I: i, X: from, EntryAge: entryAge}
	v := structViolations(q)
	v = append(v, checkAges(mt.bounds(), float64(from), 0, 0, entryAge)...)
	if err := v.Err(); err != nil {
		return nil, err
	}
	col, err := mt.project(entryAge)
	if err != nil {
		return nil, err
	}
	cc := col.commutations(i)
	rows := make([]domain.CommutationRow, 0, mt.MaxAge()-from+1)
	for age := from; age <= mt.MaxAge(); age++ {
		rows = append(rows, cc.row(age))
	}
	return rows, nil
}
