package calculation

// Insurance benefits. Each function documents its actuarial notation; a
// deferral T shifts the cover to start at age X+T and multiplies the value
// by v^T TpX. Death benefits are paid at the end of the 1/M year of death.

var (
	levelBenefit      = cashFlow{kind: benefitFlow, structure: Flat}
	increasingBenefit = cashFlow{kind: benefitFlow, structure: Increasing}
	decreasingBenefit = cashFlow{kind: benefitFlow, structure: Decreasing}
)

// PureEndowment returns nEx = v^n npx: 1 paid at time T+N if the life survives.
// N = 0 with no deferral returns 1.
func (mt *MortTableConfig) PureEndowment(q Query) (float64, error) {
	return mt.pureEndowment(q)
}

// TermInsurance returns A1x:n, paying 1 on death within N years. N = 0 returns 0.
func (mt *MortTableConfig) TermInsurance(q Query) (float64, error) {
	return mt.presentValue(q, levelBenefit)
}

// WholeLifeInsurance returns Ax, paying 1 on death at any age up to the table ceiling.
// N is ignored.
func (mt *MortTableConfig) WholeLifeInsurance(q Query) (float64, error) {
	return mt.presentValue(mt.wholeLife(q), levelBenefit)
}

// EndowmentInsurance returns Ax:n = A1x:n + nEx.
func (mt *MortTableConfig) EndowmentInsurance(q Query) (float64, error) {
	return mt.withPureEndowment(q, mt.TermInsurance)
}

// IncreasingTermInsurance returns (IA)1x:n: k+1 paid on death in policy year k.
func (mt *MortTableConfig) IncreasingTermInsurance(q Query) (float64, error) {
	return mt.presentValue(q, increasingBenefit)
}

// IncreasingWholeLifeInsurance returns (IA)x.
func (mt *MortTableConfig) IncreasingWholeLifeInsurance(q Query) (float64, error) {
	return mt.presentValue(mt.wholeLife(q), increasingBenefit)
}

// IncreasingEndowmentInsurance returns (IA)x:n = (IA)1x:n + nEx.
func (mt *MortTableConfig) IncreasingEndowmentInsurance(q Query) (float64, error) {
	return mt.withPureEndowment(q, mt.IncreasingTermInsurance)
}

// DecreasingTermInsurance returns (DA)1x:n: n-k paid on death in policy year k.
func (mt *MortTableConfig) DecreasingTermInsurance(q Query) (float64, error) {
	return mt.presentValue(q, decreasingBenefit)
}

// DecreasingEndowmentInsurance returns (DA)x:n = (DA)1x:n + nEx.
func (mt *MortTableConfig) DecreasingEndowmentInsurance(q Query) (float64, error) {
	return mt.withPureEndowment(q, mt.DecreasingTermInsurance)
}

// GeometricWholeLifeInsurance values a whole life benefit growing at G a year.
func (mt *MortTableConfig) GeometricWholeLifeInsurance(q Query) (float64, error) {
	return mt.geometric(mt.wholeLife(q), mt.TermInsurance)
}

// GeometricTermInsurance values a term benefit growing at G a year.
func (mt *MortTableConfig) GeometricTermInsurance(q Query) (float64, error) {
	return mt.geometric(q, mt.TermInsurance)
}

// GeometricEndowmentInsurance values an endowment growing at G a year.
func (mt *MortTableConfig) GeometricEndowmentInsurance(q Query) (float64, error) {
	return mt.geometric(q, mt.EndowmentInsurance)
}

// withPureEndowment adds nEx to the term value; the first failure is returned.
func (mt *MortTableConfig) withPureEndowment(q Query, term func(Query) (float64, error)) (float64, error) {
	a, err := term(q)
	if err != nil {
		return 0, err
	}
	e, err := mt.pureEndowment(q)
	if err != nil {
		return 0, err
	}
	return a + e, nil
}
