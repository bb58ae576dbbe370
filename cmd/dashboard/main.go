package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/mokkun/habitfolio/internal/dashboard"
	"github.com/mokkun/habitfolio/pkg/client"
)

type appContext struct {
	api *client.Client
}

var CLI struct {
	Version kong.VersionFlag
	Addr    string `help:"API base URL." default:"http://localhost:8080" env:"HABITFOLIO_ADDR"`
	Token   string `help:"Bearer token from a previous login." env:"HABITFOLIO_TOKEN"`

	Login  LoginCmd  `cmd:"" help:"Log in and print a token."`
	Habits HabitsCmd `cmd:"" help:"Show today's habits and completion marks."`
	Fame   FameCmd   `cmd:"" help:"Show archived habits (the hall of fame)."`
	Done   DoneCmd   `cmd:"" help:"Mark a habit done for today."`
	Watch  WatchCmd  `cmd:"" help:"Follow the dashboard live." default:"1"`
	Report ReportCmd `cmd:"" help:"Investment reports."`
}

type LoginCmd struct {
	Name     string `arg:"" help:"Account name."`
	Password string `arg:"" help:"Account password."`
}

func (c *LoginCmd) Run(ctx *appContext) error {
	if err := ctx.api.Login(context.Background(), c.Name, c.Password); err != nil {
		return err
	}
	fmt.Println(ctx.api.Token())
	return nil
}

type HabitsCmd struct{}

func (c *HabitsCmd) Run(ctx *appContext) error {
	cache := dashboard.NewViewCache(dashboard.DefaultDisplayLimit)
	rf := dashboard.NewRefresher(cache, ctx.api)
	if err := rf.Refresh(context.Background()); err != nil {
		return err
	}
	printDashboard(cache)
	return nil
}

type FameCmd struct{}

func (c *FameCmd) Run(ctx *appContext) error {
	habits, err := ctx.api.ArchivedHabits(context.Background())
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("The hall of fame is empty, keep going")
		return nil
	}
	for _, h := range habits {
		fmt.Printf("* %s: %d days, %d invested\n", h.Title, h.TotalDays, h.TotalInvestment)
	}
	return nil
}

type DoneCmd struct {
	ID uuid.UUID `arg:"" help:"Habit id."`
}

func (c *DoneCmd) Run(ctx *appContext) error {
	cache := dashboard.NewViewCache(dashboard.DefaultDisplayLimit)
	rf := dashboard.NewRefresher(cache, ctx.api)
	if err := rf.Refresh(context.Background()); err != nil {
		return err
	}
	feed, err := client.DialFeed(CLI.Addr, ctx.api.Token())
	var ctrl *dashboard.Controller
	if err != nil {
		// Events are best effort, completion still works without the feed
		ctrl = dashboard.NewController(cache, ctx.api, nil)
	} else {
		defer feed.Close()
		ctrl = dashboard.NewController(cache, ctx.api, feed)
	}
	outcome, err := ctrl.Complete(context.Background(), c.ID)
	switch outcome {
	case dashboard.OutcomeCommitted:
		if habit, ok := cache.Habit(c.ID); ok {
			fmt.Printf("done: %s is at %d/%d days\n", habit.Title, habit.TotalDays, habit.TargetDays)
		} else {
			// Reached its target and left the active view
			fmt.Println("done: habit completed its run, see the hall of fame")
		}
	case dashboard.OutcomeSkipped:
		if err != nil {
			return err
		}
		fmt.Println("already done today")
	case dashboard.OutcomeRolledBack:
		return err
	}
	return nil
}

type WatchCmd struct {
	Interval time.Duration `help:"Redraw interval." default:"15s"`
}

func (c *WatchCmd) Run(ctx *appContext) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := dashboard.NewViewCache(dashboard.DefaultDisplayLimit)
	rf := dashboard.NewRefresher(cache, ctx.api).WithIntervals(c.Interval, time.Minute)
	go rf.Run(runCtx)

	feed, err := client.DialFeed(CLI.Addr, ctx.api.Token())
	if err == nil {
		defer feed.Close()
		go func() {
			for ev := range feed.Events() {
				fmt.Printf("\n[%s] %s %s\n", ev.Date, ev.Kind, ev.HabitTitle)
				rf.Refresh(runCtx)
			}
		}()
	}

	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()
	printDashboard(cache)
	for {
		select {
		case <-runCtx.Done():
			return nil
		case <-ticker.C:
			printDashboard(cache)
		}
	}
}

type ReportCmd struct {
	Daily     DailyReportCmd     `cmd:"" help:"Amounts per habit for recent days."`
	Portfolio PortfolioReportCmd `cmd:"" help:"Per-category totals since Monday."`
}

type DailyReportCmd struct {
	Days int `help:"Window in days." default:"7"`
}

func (c *DailyReportCmd) Run(ctx *appContext) error {
	rows, err := ctx.api.Daily(context.Background(), c.Days)
	if err != nil {
		return err
	}
	for _, row := range rows {
		fmt.Printf("%s  %-30s %d\n", row.Date, row.HabitTitle, row.Amount)
	}
	return nil
}

type PortfolioReportCmd struct{}

func (c *PortfolioReportCmd) Run(ctx *appContext) error {
	totals, err := ctx.api.Portfolio(context.Background())
	if err != nil {
		return err
	}
	for _, t := range totals {
		fmt.Printf("%-20s %d\n", t.Category, t.Total)
	}
	return nil
}

func printDashboard(cache *dashboard.ViewCache) {
	fmt.Printf("-- %s --\n", cache.Today())
	for _, h := range cache.Display() {
		mark := " "
		if cache.IsDone(h.ID) {
			mark = "x"
		}
		fmt.Printf("[%s] %-30s %3d/%3d days  (%d invested)  %s\n",
			mark, h.Title, h.TotalDays, h.TargetDays, h.TotalInvestment, h.ID)
	}
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitfolio"),
		kong.Description("Terminal dashboard for the habit investment tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)
	api := client.New(CLI.Addr)
	if CLI.Token != "" {
		api.SetToken(CLI.Token)
	}
	if err := ctx.Run(&appContext{api: api}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
