package calculation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpgo/lifetable/internal/domain"
)

// validate checks struct tags on settings and query bundles.
var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("assumption", func(fl validator.FieldLevel) bool {
		a, ok := fl.Field().Interface().(domain.Assumption)
		return ok && a.Valid()
	})
	_ = validate.RegisterValidation("rate", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f > -1 && !math.IsInf(f, 1)
	})
}

// structViolations runs the tag validator and converts each failure into a
// *domain.ParameterError.
func structViolations(s any) domain.Violations {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.Violations{err}
	}
	out := make(domain.Violations, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out.Add(domain.NewParameterError(fe.Field(), fe.Value(), "%s", describeTag(fe)))
	}
	return out
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "assumption":
		return "expected one of UDD, CFM, HPB"
	case "rate":
		return "must be finite and greater than -1"
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}

// ageBounds is the populated age range of a table.
type ageBounds struct {
	min, max int
}

// checkAges is the cross-field check shared by every query: x inside the
// table, x+t+n not past the ceiling, and min_age <= entry_age <= x. All
// violations are reported, not just the first.
func checkAges(b ageBounds, x, t, n float64, entryAge *int) domain.Violations {
	var v domain.Violations
	switch {
	case x < float64(b.min):
		v.Add(domain.NewRangeError("x", x, "below minimum age %d", b.min))
	case x > float64(b.max):
		v.Add(domain.NewRangeError("x", x, "above maximum age %d", b.max))
	case x+t+n > float64(b.max)+wholeTolerance:
		v.Add(domain.NewRangeError("x+t+n", x+t+n, "exceeds maximum age %d", b.max))
	}
	if entryAge != nil {
		e := *entryAge
		if e < b.min {
			v.Add(domain.NewRangeError("entry_age", e, "below minimum age %d", b.min))
		}
		if float64(e) > x {
			v.Add(domain.NewRangeError("entry_age", e, "exceeds age x=%g", x))
		}
	}
	return v
}
