package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/mokkun/habitfolio/internal/bus"
	errorvalues "github.com/mokkun/habitfolio/internal/error_values"
	"github.com/mokkun/habitfolio/internal/service"
	"github.com/mokkun/habitfolio/pkg/entity"
	"github.com/mokkun/habitfolio/pkg/httputil"
	"github.com/mokkun/habitfolio/pkg/jstdate"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type CreateHabitRequest struct {
	Title      string     `json:"title"`
	Trigger    string     `json:"trigger"`
	Steps      string     `json:"steps"`
	TargetDays int        `json:"target_days"`
	UnitAmount int        `json:"unit_amount"`
	GoalID     *uuid.UUID `json:"goal_id,omitempty"`
}

type CreateGoalRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"desc"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
}

type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type RecordCompletionRequest struct {
	Date string `json:"date,omitempty"`
}

type GetHabitsResponse struct {
	UserID string          `json:"uid"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
	Habits []*entity.Habit `json:"habits"`
}

type GetCompletionsResponse struct {
	Date     string      `json:"date"`
	HabitIDs []uuid.UUID `json:"habit_ids"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Register(ctx, &service.RegisterRequest{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserExists) {
			logger.Error("registering error: existed user")
			httputil.WriteErrorResponse(w, http.StatusConflict, "user with such name already exists", nil)
			return
		}
		logger.Error("registering error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during registration", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"uid": user.ID.String(),
	})
	logger.Info("successful registration")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Login(ctx, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("login error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user with such name doesn't exist", nil)
			return
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("login error: wrong password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "invalid username or password", nil)
			return
		default:
			logger.Error("login error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login", nil)
			return
		}
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":   user.ID.String(),
		"token": token,
	})
	logger.Info("successful login")
}

func (s *Server) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("account deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req DeleteAccountRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("account deletion error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.userService.DeleteAccount(ctx, uid, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("account deletion error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("account deletion error: wrong password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "invalid password", nil)
		default:
			logger.Error("account deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting account", nil)
		}
		return
	}
	logger.Info("account deleted")
}

func (s *Server) CreateHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create habit error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req CreateHabitRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create habit error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	habit, err := s.habitsService.CreateHabit(ctx, uid, &service.CreateHabitRequest{
		Title:      req.Title,
		Trigger:    req.Trigger,
		Steps:      req.Steps,
		TargetDays: req.TargetDays,
		UnitAmount: req.UnitAmount,
		GoalID:     req.GoalID,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrGoalNotFound):
			logger.Error("create habit error: unexist goal")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "goal doesn't exist", nil)
		default:
			logger.Error("create habit error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating habit", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, habit)
	logger.Info("habit created")
}

func (s *Server) GetHabits(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get habits error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	habits, err := s.habitsService.GetUserHabits(ctx, uid, service.PaginationOpts{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error("getting habits list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting habits list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetHabitsResponse{
		UserID: uid.String(),
		Page:   page,
		Limit:  limit,
		Habits: habits,
	})
	logger.Info("habits provided")
}

func (s *Server) GetArchivedHabits(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get archived habits error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	habits, err := s.habitsService.GetArchivedHabits(ctx, uid)
	if err != nil {
		logger.Error("getting archived habits error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting archived habits", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"habits": habits})
	logger.Info("archived habits provided")
}

func (s *Server) GetHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get habit error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get habit error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	habit, err := s.habitsService.GetHabit(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("get habit error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		default:
			logger.Error("get habit error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting habit", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, habit)
}

func (s *Server) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("habit deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("habit deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.habitsService.DeleteHabit(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound):
			logger.Error("habit deletion error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("habit deletion error: habit has different owner")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		default:
			logger.Error("habit deletion error: service error")
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting habit", nil)
		}
		return
	}
	if s.bus != nil {
		s.bus.Publish(bus.Event{
			Kind:    bus.EventDelete,
			Date:    jstdate.Today(),
			HabitID: id,
		})
	}
	logger.Info("habit deleted")
}

// RecordCompletion books one completion of a habit on a JST day, defaulting to
// today. A repeat on the same day is a conflict and leaves totals untouched.
func (s *Server) RecordCompletion(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("record completion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("record completion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	var req RecordCompletionRequest
	defer r.Body.Close()
	// Body is optional, an empty one means "today"
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		req.Date = ""
	}
	if req.Date == "" {
		req.Date = jstdate.Today()
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	result, err := s.ledgerService.RecordCompletion(ctx, id, uid, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrCompletionExists):
			logger.Error("record completion error: already completed on this day")
			httputil.WriteErrorResponse(w, http.StatusConflict, "habit already completed on this day", nil)
		case errors.Is(err, errorvalues.ErrHabitNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("record completion error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrHabitArchived):
			logger.Error("record completion error: habit is archived")
			httputil.WriteErrorResponse(w, http.StatusConflict, "habit is archived", nil)
		case errors.Is(err, errorvalues.ErrDateNotAllowed):
			logger.Error("record completion error: bad date")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "date is malformed or in the future", nil)
		default:
			logger.Error("record completion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while recording completion", nil)
		}
		return
	}
	s.publishCompletion(r.Context(), id, uid, req.Date)
	httputil.WriteJSONResponse(w, http.StatusOK, result)
	logger.Info("completion recorded", slog.String("habit_id", id.String()), slog.String("date", req.Date))
}

// publishCompletion pushes a ledger insert event to live subscribers. The
// habit lookup is best effort, listeners can refetch on a bare event.
func (s *Server) publishCompletion(ctx context.Context, habitID, uid uuid.UUID, date string) {
	if s.bus == nil {
		return
	}
	ev := bus.Event{
		Kind:    bus.EventInsert,
		Date:    date,
		HabitID: habitID,
	}
	habit, err := s.habitsService.GetHabit(ctx, habitID, uid)
	if err == nil {
		ev.Amount = habit.UnitAmount
		ev.HabitTitle = habit.Title
	}
	s.bus.Publish(ev)
}

func (s *Server) GetCompletions(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get completions error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = jstdate.Today()
	}
	if !jstdate.Valid(date) {
		logger.Error("get completions error: malformed date")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	ids, err := s.ledgerService.CompletedHabitIDs(ctx, uid, date)
	if err != nil {
		logger.Error("get completions error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting completions", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetCompletionsResponse{
		Date:     date,
		HabitIDs: ids,
	})
}

func (s *Server) GetHabitLogs(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get habit logs error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get habit logs error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	from := r.URL.Query().Get("from")
	if from == "" {
		from = jstdate.DaysAgo(29)
	}
	to := r.URL.Query().Get("to")
	if to == "" {
		to = jstdate.Today()
	}
	if !jstdate.Valid(from) || !jstdate.Valid(to) {
		logger.Error("get habit logs error: malformed date range")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date range, expected YYYY-MM-DD", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	logs, err := s.ledgerService.GetHabitLogs(ctx, id, uid, from, to)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("get habit logs error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		default:
			logger.Error("get habit logs error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting habit logs", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"logs": logs})
}

func (s *Server) CreateGoal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create goal error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req CreateGoalRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create goal error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	id, err := s.goalsService.CreateGoal(ctx, uid, &service.CreateGoalRequest{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrCategoryNotFound):
			logger.Error("create goal error: unexist category")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "category doesn't exist", nil)
		default:
			logger.Error("create goal error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating goal", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{"goal_id": id.String()})
	logger.Info("goal created")
}

func (s *Server) GetGoals(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get goals error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	goals, err := s.goalsService.GetUserGoals(ctx, uid)
	if err != nil {
		logger.Error("getting goals list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting goals list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"goals": goals})
}

func (s *Server) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("goal deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("goal deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid goal id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.goalsService.DeleteGoal(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrGoalNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("goal deletion error: unexist goal")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "goal doesn't exist", nil)
		default:
			logger.Error("goal deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting goal", nil)
		}
		return
	}
	logger.Info("goal deleted")
}

func (s *Server) CreateCategory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create category error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req CreateCategoryRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create category error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	category, err := s.categoriesService.CreateCategory(ctx, uid, &service.CreateCategoryRequest{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrCategoryExists):
			logger.Error("create category error: duplicate name")
			httputil.WriteErrorResponse(w, http.StatusConflict, "category with such name already exists", nil)
		default:
			logger.Error("create category error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating category", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, category)
	logger.Info("category created")
}

func (s *Server) GetCategories(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get categories error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	categories, err := s.categoriesService.GetUserCategories(ctx, uid)
	if err != nil {
		logger.Error("getting categories list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting categories list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) GetDailyReport(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("daily report error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days < 1 || days > 90 {
		days = 7
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	rows, err := s.reportsService.Daily(ctx, uid, days)
	if err != nil {
		logger.Error("daily report error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while building daily report", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"days": days,
		"rows": rows,
	})
}

func (s *Server) GetPortfolioReport(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("portfolio report error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	totals, err := s.reportsService.Portfolio(ctx, uid)
	if err != nil {
		logger.Error("portfolio report error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while building portfolio report", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"totals": totals})
}
