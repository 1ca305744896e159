package calculation

// ValueFunction is one member of the insurance and annuity family, keyed by
// its usual actuarial notation.
type ValueFunction struct {
	Notation    string
	Description string
	// WholeLife functions run to the table ceiling and ignore Query.N.
	WholeLife bool
	Eval      func(mt *MortTableConfig, q Query) (float64, error)
}

var valueFunctions = []ValueFunction{
	{"Exn", "pure endowment", false, (*MortTableConfig).PureEndowment},
	{"Ax1n", "term insurance", false, (*MortTableConfig).TermInsurance},
	{"Ax", "whole life insurance", true, (*MortTableConfig).WholeLifeInsurance},
	{"Axn", "endowment insurance", false, (*MortTableConfig).EndowmentInsurance},
	{"IAx1n", "increasing term insurance", false, (*MortTableConfig).IncreasingTermInsurance},
	{"IAx", "increasing whole life insurance", true, (*MortTableConfig).IncreasingWholeLifeInsurance},
	{"IAxn", "increasing endowment insurance", false, (*MortTableConfig).IncreasingEndowmentInsurance},
	{"DAx1n", "decreasing term insurance", false, (*MortTableConfig).DecreasingTermInsurance},
	{"DAxn", "decreasing endowment insurance", false, (*MortTableConfig).DecreasingEndowmentInsurance},
	{"gAx", "geometric whole life insurance", true, (*MortTableConfig).GeometricWholeLifeInsurance},
	{"gAx1n", "geometric term insurance", false, (*MortTableConfig).GeometricTermInsurance},
	{"gAxn", "geometric endowment insurance", false, (*MortTableConfig).GeometricEndowmentInsurance},
	{"aax", "whole life annuity due", true, (*MortTableConfig).WholeLifeAnnuityDue},
	{"aaxn", "temporary annuity due", false, (*MortTableConfig).TemporaryAnnuityDue},
	{"Iaax", "increasing whole life annuity due", true, (*MortTableConfig).IncreasingWholeLifeAnnuityDue},
	{"Iaaxn", "increasing temporary annuity due", false, (*MortTableConfig).IncreasingTemporaryAnnuityDue},
	{"Daaxn", "decreasing temporary annuity due", false, (*MortTableConfig).DecreasingTemporaryAnnuityDue},
	{"gaax", "geometric whole life annuity due", true, (*MortTableConfig).GeometricWholeLifeAnnuityDue},
	{"gaaxn", "geometric temporary annuity due", false, (*MortTableConfig).GeometricTemporaryAnnuityDue},
	{"ax", "whole life annuity immediate", true, (*MortTableConfig).WholeLifeAnnuityImmediate},
	{"axn", "temporary annuity immediate", false, (*MortTableConfig).TemporaryAnnuityImmediate},
	{"Iax", "increasing whole life annuity immediate", true, (*MortTableConfig).IncreasingWholeLifeAnnuityImmediate},
	{"Iaxn", "increasing temporary annuity immediate", false, (*MortTableConfig).IncreasingTemporaryAnnuityImmediate},
	{"Daxn", "decreasing temporary annuity immediate", false, (*MortTableConfig).DecreasingTemporaryAnnuityImmediate},
	{"gax", "geometric whole life annuity immediate", true, (*MortTableConfig).GeometricWholeLifeAnnuityImmediate},
	{"gaxn", "geometric temporary annuity immediate", false, (*MortTableConfig).GeometricTemporaryAnnuityImmediate},
}

// notationAliases maps alternative spellings to a registered notation.
var notationAliases = map[string]string{
	"Axn1": "Exn",
	"nEx":  "Exn",
	"A1xn": "Ax1n",
}

// ValueFunctions lists every registered function in display order.
func ValueFunctions() []ValueFunction {
	return append([]ValueFunction(nil), valueFunctions...)
}

// LookupValueFunction finds a function by notation. Notation is case
// sensitive: "Ax" is an insurance, "ax" an annuity.
func LookupValueFunction(notation string) (ValueFunction, bool) {
	if alias, ok := notationAliases[notation]; ok {
		notation = alias
	}
	for _, f := range valueFunctions {
		if f.Notation == notation {
			return f, true
		}
	}
	return ValueFunction{}, false
}
