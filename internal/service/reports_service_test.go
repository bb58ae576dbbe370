package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/mokkun/habitfolio/internal/repository/mocks"
	"github.com/mokkun/habitfolio/internal/service"
	"github.com/mokkun/habitfolio/pkg/entity"
	"github.com/mokkun/habitfolio/pkg/jstdate"
	"github.com/stretchr/testify/assert"
)

func TestDaily(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	ledgerRepo := mocks.NewMockLedgerRepositoryI(ctrl)
	serv := service.NewReportsService(ledgerRepo)
	uid := uuid.New()
	rows := []entity.DailyRow{
		{Date: jstdate.DaysAgo(1), Amount: 2, HabitTitle: "running"},
		{Date: jstdate.Today(), Amount: 1, HabitTitle: "reading"},
	}

	t.Run("seven day window", func(t *testing.T) {
		ledgerRepo.EXPECT().DailyRows(gomock.Any(), uid, jstdate.DaysAgo(6)).Return(rows, nil)
		result, err := serv.Daily(context.Background(), uid, 7)
		assert.NoError(t, err)
		assert.Equal(t, rows, result)
	})
	t.Run("non-positive days falls back to seven", func(t *testing.T) {
		ledgerRepo.EXPECT().DailyRows(gomock.Any(), uid, jstdate.DaysAgo(6)).Return(rows, nil)
		result, err := serv.Daily(context.Background(), uid, 0)
		assert.NoError(t, err)
		assert.Equal(t, rows, result)
	})
}

func TestPortfolio(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	ledgerRepo := mocks.NewMockLedgerRepositoryI(ctrl)
	serv := service.NewReportsService(ledgerRepo)
	uid := uuid.New()

	ledgerRepo.EXPECT().CategoryTotals(gomock.Any(), uid, jstdate.Monday()).Return([]entity.CategoryTotal{
		{Category: "health", Color: "#40c057", Total: 9},
		{Category: "", Color: "", Total: 3},
	}, nil)
	totals, err := serv.Portfolio(context.Background(), uid)
	assert.NoError(t, err)
	assert.Equal(t, []entity.CategoryTotal{
		{Category: "health", Color: "#40c057", Total: 9},
		{Category: service.Uncategorized, Color: "", Total: 3},
	}, totals)
}
