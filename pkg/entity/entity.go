package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	HabitStatusActive   = "active"
	HabitStatusArchived = "archived"
)

type User struct {
	ID           uuid.UUID
	Name         string
	PasswordHash string
}

type Category struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"uid"`
	Name   string    `json:"name"`
	Color  string    `json:"color"`
}

type Goal struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"uid"`
	Title       string     `json:"title"`
	Description string     `json:"desc,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Habit struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"uid"`
	GoalID          *uuid.UUID `json:"goal_id,omitempty"`
	Title           string     `json:"title"`
	Trigger         string     `json:"trigger,omitempty"`
	Steps           string     `json:"steps,omitempty"`
	UnitAmount      int        `json:"unit_amount"`
	TargetDays      int        `json:"target_days"`
	TotalInvestment int        `json:"total_investment"`
	TotalDays       int        `json:"total_days"`
	Status          string     `json:"status"`
	ArchivedAt      *time.Time `json:"archived_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CompletionLog rows are append-only and back the habit's running totals.
type CompletionLog struct {
	ID        int64     `json:"id"`
	HabitID   uuid.UUID `json:"habit_id"`
	LogDate   string    `json:"date"`
	Amount    int       `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// CompletionResult carries the habit totals after a recorded completion.
type CompletionResult struct {
	TotalInvestment int `json:"total_investment"`
	TotalDays       int `json:"total_days"`
}

// DailyRow is one log joined with its habit title, for the seven-day chart.
type DailyRow struct {
	Date       string `json:"date"`
	Amount     int    `json:"amount"`
	HabitTitle string `json:"habit_title"`
}

// CategoryTotal is the portfolio breakdown for one category.
type CategoryTotal struct {
	Category string `json:"category"`
	Color    string `json:"color"`
	Total    int    `json:"total"`
}
