package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exist")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrHabitNotFound    = errors.New("habit doesn't exist")
	ErrHabitArchived    = errors.New("habit is archived")
	ErrWrongOwner       = errors.New("resource has a different owner")
	ErrGoalNotFound     = errors.New("goal doesn't exist")
	ErrCategoryNotFound = errors.New("category doesn't exist")
	ErrCategoryExists   = errors.New("category with such name already exists")

	// ErrCompletionExists is the at-most-once-per-day guarantee surfacing:
	// a log for this habit and day is already recorded.
	ErrCompletionExists = errors.New("completion already recorded for this day")
	ErrDateNotAllowed   = errors.New("completion date not allowed")
)
