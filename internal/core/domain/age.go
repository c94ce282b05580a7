package domain

import "time"

// Age returns whole years between birthdate and reference.
// It compares day-of-year to decide whether this year's birthday has passed.
// An unparseable birthdate yields 0; validate before relying on the result.
func Age(birthdate string, reference time.Time) int {
	birth, err := ParseDate(birthdate)
	if err != nil {
		return 0
	}
	age := reference.Year() - birth.Year()
	if reference.YearDay() < birth.YearDay() {
		age--
	}
	return age
}
