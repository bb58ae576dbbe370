// Package jstdate computes calendar days in the fixed reporting timezone (JST).
// Day boundaries are the same absolute instant for every user regardless of the
// device timezone.
package jstdate

import "time"

const Layout = "2006-01-02"

var JST = time.FixedZone("JST", 9*60*60)

// Day formats t as YYYY-MM-DD in JST.
func Day(t time.Time) string {
	return t.In(JST).Format(Layout)
}

// Today is the current JST calendar day.
func Today() string {
	return Day(time.Now())
}

// DaysAgo is the JST day n days before today.
func DaysAgo(n int) string {
	return Day(time.Now().AddDate(0, 0, -n))
}

// Monday is the JST day of the Monday of the current week (weeks start Monday).
func Monday() string {
	now := time.Now().In(JST)
	diff := int(now.Weekday()) - int(time.Monday)
	if diff < 0 {
		diff += 7
	}
	return Day(now.AddDate(0, 0, -diff))
}

// Parse reads a YYYY-MM-DD string as a JST midnight instant.
func Parse(s string) (time.Time, error) {
	return time.ParseInLocation(Layout, s, JST)
}

// Valid reports whether s is a well-formed YYYY-MM-DD day.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}
