// @title Habitfolio API
// @description API for the habit investment tracker
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"

	"github.com/mokkun/habitfolio/internal/api"
	"github.com/mokkun/habitfolio/internal/bus"
	"github.com/mokkun/habitfolio/internal/repository"
	"github.com/mokkun/habitfolio/internal/service"
	"github.com/mokkun/habitfolio/pkg/cleanup"
	"github.com/mokkun/habitfolio/pkg/config"
	jwtservice "github.com/mokkun/habitfolio/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	usersRepo := repository.NewUsersRepo(&dbCfg)
	habitsRepo := repository.NewHabitsRepo(&dbCfg)
	goalsRepo := repository.NewGoalsRepo(&dbCfg)
	categoriesRepo := repository.NewCategoriesRepo(&dbCfg)
	ledgerRepo := repository.NewLedgerRepo(&dbCfg)

	serv := api.New(&api.ServicesList{
		UserService:       service.NewUserService(usersRepo),
		HabitsService:     service.NewHabitsService(habitsRepo, goalsRepo),
		GoalsService:      service.NewGoalsService(goalsRepo, categoriesRepo),
		CategoriesService: service.NewCategoriesService(categoriesRepo),
		LedgerService:     service.NewLedgerService(habitsRepo, ledgerRepo),
		ReportsService:    service.NewReportsService(ledgerRepo),
		JwtService:        jwtservice.New(cfg.GetString("JWT_SECRET")),
		Bus:               bus.NewBus(),
	})
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
