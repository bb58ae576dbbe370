package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mokkun/habitfolio/internal/bus"
	"github.com/mokkun/habitfolio/internal/service"
	"github.com/rs/cors"
)

type Server struct {
	mx                *chi.Mux
	userService       service.UserServiceI
	habitsService     service.HabitsServiceI
	goalsService      service.GoalsServiceI
	categoriesService service.CategoriesServiceI
	ledgerService     service.LedgerServiceI
	reportsService    service.ReportsServiceI
	jwtService        JWTServiceI
	bus               *bus.Bus
}

type ServicesList struct {
	UserService       service.UserServiceI
	HabitsService     service.HabitsServiceI
	GoalsService      service.GoalsServiceI
	CategoriesService service.CategoriesServiceI
	LedgerService     service.LedgerServiceI
	ReportsService    service.ReportsServiceI
	JwtService        JWTServiceI
	Bus               *bus.Bus
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:                chi.NewMux(),
		userService:       servicesOptions.UserService,
		habitsService:     servicesOptions.HabitsService,
		goalsService:      servicesOptions.GoalsService,
		categoriesService: servicesOptions.CategoriesService,
		ledgerService:     servicesOptions.LedgerService,
		reportsService:    servicesOptions.ReportsService,
		jwtService:        servicesOptions.JwtService,
		bus:               servicesOptions.Bus,
	}
}

func (s *Server) setupRoutes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.Register)
			r.Post("/login", s.Login)
		})
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Delete("/account", s.DeleteAccount)
			r.Route("/habits", func(r chi.Router) {
				r.Post("/", s.CreateHabit)
				r.Get("/", s.GetHabits)
				r.Get("/archived", s.GetArchivedHabits)
				r.Get("/{id}", s.GetHabit)
				r.Delete("/{id}", s.DeleteHabit)
				r.Post("/{id}/complete", s.RecordCompletion)
				r.Get("/{id}/logs", s.GetHabitLogs)
			})
			r.Get("/completions", s.GetCompletions)
			r.Route("/goals", func(r chi.Router) {
				r.Post("/", s.CreateGoal)
				r.Get("/", s.GetGoals)
				r.Delete("/{id}", s.DeleteGoal)
			})
			r.Route("/categories", func(r chi.Router) {
				r.Post("/", s.CreateCategory)
				r.Get("/", s.GetCategories)
			})
			r.Route("/reports", func(r chi.Router) {
				r.Get("/daily", s.GetDailyReport)
				r.Get("/portfolio", s.GetPortfolioReport)
			})
			r.Get("/ws", s.ServeEvents)
		})
	})
}

func (s *Server) Run(address string) error {
	s.setupRoutes()
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return http.ListenAndServe(address, c.Handler(s.mx))
}
