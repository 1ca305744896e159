package domain

import (
	"fmt"
	"strings"
)

// Assumption selects how mortality is spread within a year of age.
type Assumption int

const (
	// UDD assumes a uniform distribution of deaths over the year.
	UDD Assumption = iota
	// CFM assumes a constant force of mortality over the year.
	CFM
	// HPB is the hyperbolic (Balducci) assumption.
	HPB
)

func (a Assumption) String() string {
	switch a {
	case UDD:
		return "UDD"
	case CFM:
		return "CFM"
	case HPB:
		return "HPB"
	default:
		return fmt.Sprintf("Assumption(%d)", int(a))
	}
}

// Valid reports whether a is one of the known assumptions.
func (a Assumption) Valid() bool {
	return a == UDD || a == CFM || a == HPB
}

// ParseAssumption accepts the short codes case-insensitively, plus a few long names.
func ParseAssumption(s string) (Assumption, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "udd", "uniform":
		return UDD, nil
	case "cfm", "constant_force", "constant-force":
		return CFM, nil
	case "hpb", "balducci", "hyperbolic":
		return HPB, nil
	}
	return UDD, NewParameterError("assumption", s, "expected one of UDD, CFM, HPB")
}

func (a Assumption) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, NewParameterError("assumption", int(a), "unknown assumption")
	}
	return []byte(a.String()), nil
}

func (a *Assumption) UnmarshalText(text []byte) error {
	parsed, err := ParseAssumption(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
