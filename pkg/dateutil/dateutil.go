package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// Age calculates the age last birthday at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// ExactAge returns the age in years including the fraction of the current
// year of age that has elapsed, measured in days between birthdays.
func ExactAge(birthDate, atDate time.Time) float64 {
	age := Age(birthDate, atDate)
	last := birthDate.AddDate(age, 0, 0)
	next := birthDate.AddDate(age+1, 0, 0)
	frac := atDate.Sub(last).Hours() / next.Sub(last).Hours()
	return float64(age) + frac
}

// AgeNearestBirthday rounds the exact age to the nearest whole year; half a year rounds up.
func AgeNearestBirthday(birthDate, atDate time.Time) int {
	exact := ExactAge(birthDate, atDate)
	age := Age(birthDate, atDate)
	if exact-float64(age) >= 0.5 {
		return age + 1
	}
	return age
}

// AgeOnBasis applies an age definition by name: "last" (the default) or "nearest".
func AgeOnBasis(basis string, birthDate, atDate time.Time) (int, error) {
	if atDate.Before(birthDate) {
		return 0, fmt.Errorf("valuation date %s precedes birth date %s",
			atDate.Format("2006-01-02"), birthDate.Format("2006-01-02"))
	}
	switch strings.ToLower(basis) {
	case "", "last", "alb":
		return Age(birthDate, atDate), nil
	case "nearest", "anb":
		return AgeNearestBirthday(birthDate, atDate), nil
	}
	return 0, fmt.Errorf("unknown age basis %q", basis)
}
