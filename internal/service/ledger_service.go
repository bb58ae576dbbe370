package service

import (
	"context"
	"errors"
	"log"
	"log/slog"

	"github.com/google/uuid"
	errorvalues "github.com/mokkun/habitfolio/internal/error_values"
	"github.com/mokkun/habitfolio/internal/repository"
	"github.com/mokkun/habitfolio/pkg/entity"
	"github.com/mokkun/habitfolio/pkg/jstdate"
)

// LedgerService fronts the completion ledger: the one atomic record operation
// plus its read queries. Ownership and date checks live here; the at-most-once
// per day guarantee lives in the store's unique index, not in any pre-check.
type LedgerService struct {
	habitsRepo repository.HabitsRepositoryI
	ledgerRepo repository.LedgerRepositoryI
}

func NewLedgerService(habitsRepo repository.HabitsRepositoryI, ledgerRepo repository.LedgerRepositoryI) *LedgerService {
	if habitsRepo == nil || ledgerRepo == nil {
		log.Fatal("provided nil repos to ledger service")
	}
	return &LedgerService{
		habitsRepo: habitsRepo,
		ledgerRepo: ledgerRepo,
	}
}

func (serv *LedgerService) RecordCompletion(ctx context.Context, habitID, userID uuid.UUID, date string) (*entity.CompletionResult, error) {
	if !jstdate.Valid(date) || date > jstdate.Today() {
		return nil, errorvalues.ErrDateNotAllowed
	}
	habit, err := serv.habitsRepo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	if habit.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	if habit.Status == entity.HabitStatusArchived {
		return nil, errorvalues.ErrHabitArchived
	}
	result, err := serv.ledgerRepo.RecordCompletion(ctx, habitID, date)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrCompletionExists), errors.Is(err, errorvalues.ErrHabitNotFound):
			return nil, err
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	// Reaching the target graduates the habit to the archive. A failed
	// archive is non-fatal, the totals are already committed.
	if result.TotalDays >= habit.TargetDays {
		if err := serv.habitsRepo.Archive(ctx, habitID); err != nil {
			slog.Error("archiving graduated habit failed",
				slog.String("habit_id", habitID.String()),
				slog.String("error", err.Error()))
		}
	}
	return result, nil
}

func (serv *LedgerService) CompletedHabitIDs(ctx context.Context, uid uuid.UUID, date string) ([]uuid.UUID, error) {
	if !jstdate.Valid(date) {
		return nil, errorvalues.ErrDateNotAllowed
	}
	ids, err := serv.ledgerRepo.CompletedHabitIDs(ctx, uid, date)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return ids, nil
}

func (serv *LedgerService) GetHabitLogs(ctx context.Context, habitID, userID uuid.UUID, from, to string) ([]entity.CompletionLog, error) {
	habit, err := serv.habitsRepo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	if habit.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	logs, err := serv.ledgerRepo.GetByHabitAndDateRange(ctx, habitID, from, to)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return logs, nil
}
