// Package client talks to the habitfolio API. It implements the ledger
// surface the dashboard package reconciles against, so a terminal dashboard
// and the server share the same semantics.
package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/mokkun/habitfolio/internal/error_values"
	"github.com/mokkun/habitfolio/pkg/entity"
	"github.com/mokkun/habitfolio/pkg/httputil"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
}

// Token returns the bearer token obtained by Login.
func (c *Client) Token() string {
	return c.token
}

// SetToken installs a previously issued token.
func (c *Client) SetToken(token string) {
	c.token = token
}

type loginResponse struct {
	UID   string `json:"uid"`
	Token string `json:"token"`
}

// Register creates an account. The server enforces name and password rules.
func (c *Client) Register(ctx context.Context, name, password string) error {
	body := map[string]string{"name": name, "password": password}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/register", body, nil)
}

// Login authenticates and stores the bearer token on the client.
func (c *Client) Login(ctx context.Context, name, password string) error {
	body := map[string]string{"name": name, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// RecordCompletion books a completion for a JST day and returns the updated
// totals. Duplicate days surface as ErrCompletionExists.
func (c *Client) RecordCompletion(ctx context.Context, habitID uuid.UUID, date string) (*entity.CompletionResult, error) {
	body := map[string]string{"date": date}
	var result entity.CompletionResult
	err := c.do(ctx, http.MethodPost, "/api/v1/habits/"+habitID.String()+"/complete", body, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type habitsResponse struct {
	Habits []*entity.Habit `json:"habits"`
}

// ActiveHabits lists the user's active habits.
func (c *Client) ActiveHabits(ctx context.Context) ([]*entity.Habit, error) {
	var resp habitsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/habits?limit=50", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Habits, nil
}

// ArchivedHabits lists the hall of fame.
func (c *Client) ArchivedHabits(ctx context.Context) ([]*entity.Habit, error) {
	var resp habitsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/habits/archived", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Habits, nil
}

type completionsResponse struct {
	Date     string      `json:"date"`
	HabitIDs []uuid.UUID `json:"habit_ids"`
}

// CompletedHabitIDs lists the habits already completed on date.
func (c *Client) CompletedHabitIDs(ctx context.Context, date string) ([]uuid.UUID, error) {
	var resp completionsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/completions?date="+date, nil, &resp); err != nil {
		return nil, err
	}
	return resp.HabitIDs, nil
}

type dailyResponse struct {
	Days int              `json:"days"`
	Rows []entity.DailyRow `json:"rows"`
}

// Daily fetches log rows for the last `days` JST days.
func (c *Client) Daily(ctx context.Context, days int) ([]entity.DailyRow, error) {
	var resp dailyResponse
	path := "/api/v1/reports/daily"
	if days > 0 {
		path += "?days=" + strconv.Itoa(days)
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Rows, nil
}

type portfolioResponse struct {
	Totals []entity.CategoryTotal `json:"totals"`
}

// Portfolio fetches per-category investment totals for the current week.
func (c *Client) Portfolio(ctx context.Context) ([]entity.CategoryTotal, error) {
	var resp portfolioResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/reports/portfolio", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Totals, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := sonic.ConfigDefault.Marshal(body)
		if err != nil {
			return errors.New("encoding request error: " + err.Error())
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.New("building request error: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.New("request error: " + err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return apiError(resp)
	}
	if out != nil {
		if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.New("decoding response error: " + err.Error())
		}
	}
	return nil
}

// apiError maps the server's error envelope back to the sentinels callers
// branch on.
func apiError(resp *http.Response) error {
	var envelope httputil.ErrorResponse
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return errors.New("api error: status " + resp.Status)
	}
	switch resp.StatusCode {
	case http.StatusConflict:
		return errorvalues.ErrCompletionExists
	case http.StatusNotFound:
		return errorvalues.ErrHabitNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return errorvalues.ErrInvalidToken
	default:
		return errors.New("api error: " + envelope.Message)
	}
}
