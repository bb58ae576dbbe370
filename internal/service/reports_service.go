package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/mokkun/habitfolio/internal/repository"
	"github.com/mokkun/habitfolio/pkg/entity"
	"github.com/mokkun/habitfolio/pkg/jstdate"
)

// Uncategorized is the portfolio bucket for logs whose habit has no goal or
// whose goal has no category.
const Uncategorized = "uncategorized"

type ReportsService struct {
	ledgerRepo repository.LedgerRepositoryI
}

func NewReportsService(ledgerRepo repository.LedgerRepositoryI) *ReportsService {
	if ledgerRepo == nil {
		log.Fatal("provided nil ledgerRepo")
	}
	return &ReportsService{
		ledgerRepo: ledgerRepo,
	}
}

// Daily returns log rows for the last days JST days including today.
func (rs *ReportsService) Daily(ctx context.Context, uid uuid.UUID, days int) ([]entity.DailyRow, error) {
	if days < 1 {
		days = 7
	}
	since := jstdate.DaysAgo(days - 1)
	rows, err := rs.ledgerRepo.DailyRows(ctx, uid, since)
	if err != nil {
		return nil, errors.New("ledger repository error: " + err.Error())
	}
	return rows, nil
}

// Portfolio sums amounts per category from Monday of the current JST week.
func (rs *ReportsService) Portfolio(ctx context.Context, uid uuid.UUID) ([]entity.CategoryTotal, error) {
	totals, err := rs.ledgerRepo.CategoryTotals(ctx, uid, jstdate.Monday())
	if err != nil {
		return nil, errors.New("ledger repository error: " + err.Error())
	}
	for i := range totals {
		if totals[i].Category == "" {
			totals[i].Category = Uncategorized
		}
	}
	return totals, nil
}
