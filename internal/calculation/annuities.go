package calculation

import "github.com/rpgo/lifetable/pkg/decimal"

// Life annuities paying 1 a year in M instalments of 1/M, starting after a
// deferral of T years.

var (
	levelAnnuityDue            = cashFlow{kind: annuityFlow, structure: Flat, timing: InAdvance}
	increasingAnnuityDue       = cashFlow{kind: annuityFlow, structure: Increasing, timing: InAdvance}
	decreasingAnnuityDue       = cashFlow{kind: annuityFlow, structure: Decreasing, timing: InAdvance}
	levelAnnuityImmediate      = cashFlow{kind: annuityFlow, structure: Flat, timing: InArrears}
	increasingAnnuityImmediate = cashFlow{kind: annuityFlow, structure: Increasing, timing: InArrears}
	decreasingAnnuityImmediate = cashFlow{kind: annuityFlow, structure: Decreasing, timing: InArrears}
)

// WholeLifeAnnuityDue returns äx, payable in advance to the table ceiling. N is ignored.
func (mt *MortTableConfig) WholeLifeAnnuityDue(q Query) (float64, error) {
	return mt.presentValue(mt.wholeLife(q), levelAnnuityDue)
}

// TemporaryAnnuityDue returns äx:n.
func (mt *MortTableConfig) TemporaryAnnuityDue(q Query) (float64, error) {
	return mt.presentValue(q, levelAnnuityDue)
}

// IncreasingWholeLifeAnnuityDue returns (Iä)x.
func (mt *MortTableConfig) IncreasingWholeLifeAnnuityDue(q Query) (float64, error) {
	return mt.presentValue(mt.wholeLife(q), increasingAnnuityDue)
}

// IncreasingTemporaryAnnuityDue returns (Iä)x:n.
func (mt *MortTableConfig) IncreasingTemporaryAnnuityDue(q Query) (float64, error) {
	return mt.presentValue(q, increasingAnnuityDue)
}

// DecreasingTemporaryAnnuityDue returns (Dä)x:n.
func (mt *MortTableConfig) DecreasingTemporaryAnnuityDue(q Query) (float64, error) {
	return mt.presentValue(q, decreasingAnnuityDue)
}

// GeometricWholeLifeAnnuityDue values a whole life annuity due growing at G a year.
func (mt *MortTableConfig) GeometricWholeLifeAnnuityDue(q Query) (float64, error) {
	return mt.geometric(mt.wholeLife(q), mt.TemporaryAnnuityDue)
}

// GeometricTemporaryAnnuityDue values a temporary annuity due growing at G a year.
func (mt *MortTableConfig) GeometricTemporaryAnnuityDue(q Query) (float64, error) {
	return mt.geometric(q, mt.TemporaryAnnuityDue)
}

// WholeLifeAnnuityImmediate returns ax, payable in arrears. N is ignored.
func (mt *MortTableConfig) WholeLifeAnnuityImmediate(q Query) (float64, error) {
	return mt.presentValue(mt.wholeLife(q), levelAnnuityImmediate)
}

// TemporaryAnnuityImmediate returns ax:n.
func (mt *MortTableConfig) TemporaryAnnuityImmediate(q Query) (float64, error) {
	return mt.presentValue(q, levelAnnuityImmediate)
}

// IncreasingWholeLifeAnnuityImmediate returns (Ia)x.
func (mt *MortTableConfig) IncreasingWholeLifeAnnuityImmediate(q Query) (float64, error) {
	return mt.presentValue(mt.wholeLife(q), increasingAnnuityImmediate)
}

// IncreasingTemporaryAnnuityImmediate returns (Ia)x:n.
func (mt *MortTableConfig) IncreasingTemporaryAnnuityImmediate(q Query) (float64, error) {
	return mt.presentValue(q, increasingAnnuityImmediate)
}

// DecreasingTemporaryAnnuityImmediate returns (Da)x:n.
func (mt *MortTableConfig) DecreasingTemporaryAnnuityImmediate(q Query) (float64, error) {
	return mt.presentValue(q, decreasingAnnuityImmediate)
}

// GeometricWholeLifeAnnuityImmediate values a whole life annuity immediate growing at G a year.
func (mt *MortTableConfig) GeometricWholeLifeAnnuityImmediate(q Query) (float64, error) {
	return mt.geometric(mt.wholeLife(q), mt.TemporaryAnnuityImmediate)
}

// GeometricTemporaryAnnuityImmediate values a temporary annuity immediate growing at G a year.
func (mt *MortTableConfig) GeometricTemporaryAnnuityImmediate(q Query) (float64, error) {
	return mt.geometric(q, mt.TemporaryAnnuityImmediate)
}

// AnnuityDueVariance returns Var[Y] = (2A - A^2) / d^2 for the present value
// Y of a whole life annuity due, from the first and second moments of the
// matching whole life insurance at rate i.
func AnnuityDueVariance(a1, a2 float64, i decimal.Rate) float64 {
	d := i.DiscountRate().InexactFloat64()
	return (a2 - a1*a1) / (d * d)
}
