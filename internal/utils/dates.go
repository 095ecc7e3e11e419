package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// CalculateNextOptionsExpiration returns the next third Friday for options expiration
// This implements the standard options expiration business logic:
// - Third Friday of current month if we haven't reached the expiration week yet
// - Third Friday of next month if we're in or past the expiration week
func CalculateNextOptionsExpiration(today time.Time) string {
	thirdFriday := thirdFridayOf(today.Year(), today.Month(), today.Location())

	// If current day is in the week of 3rd Friday or past it, use next month's 3rd Friday
	weekStart := thirdFriday.AddDate(0, 0, -7)

	if today.After(weekStart) || today.Equal(weekStart) {
		next := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, today.Location())
		return thirdFridayOf(next.Year(), next.Month(), today.Location()).Format(dateLayout)
	}

	return thirdFriday.Format(dateLayout)
}

func thirdFridayOf(year int, month time.Month, loc *time.Location) time.Time {
	firstFriday := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	for firstFriday.Weekday() != time.Friday {
		firstFriday = firstFriday.AddDate(0, 0, 1)
	}
	return firstFriday.AddDate(0, 0, 14)
}

// YearsToExpiration is the ACT/365 year fraction from today's date to the
// expiration date. Past dates give 0.
func YearsToExpiration(expiration string, today time.Time) (float64, error) {
	exp, err := time.Parse(dateLayout, expiration)
	if err != nil {
		return 0, fmt.Errorf("invalid expiration date format: %w", err)
	}

	// Whole calendar days, counted in UTC so a DST change in today's zone
	// never yields a fractional day.
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	days := int(exp.Sub(start).Hours() / 24)
	if days <= 0 {
		return 0, nil
	}
	return float64(days) / 365.0, nil
}
