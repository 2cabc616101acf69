package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"studyroutine/internal/api/httpapi"
	"studyroutine/internal/api/mcpserver"
	goalsinadapter "studyroutine/internal/modules/goals/adapter/in"
	goalsoutadapter "studyroutine/internal/modules/goals/adapter/out"
	goalsin "studyroutine/internal/modules/goals/port/in"
	goalsservice "studyroutine/internal/modules/goals/service"
	goalsusecase "studyroutine/internal/modules/goals/usecase"
	reportinadapter "studyroutine/internal/modules/report/adapter/in"
	reportoutadapter "studyroutine/internal/modules/report/adapter/out"
	reportin "studyroutine/internal/modules/report/port/in"
	reportservice "studyroutine/internal/modules/report/service"
	reportusecase "studyroutine/internal/modules/report/usecase"
	scheduleinadapter "studyroutine/internal/modules/schedule/adapter/in"
	scheduleoutadapter "studyroutine/internal/modules/schedule/adapter/out"
	"studyroutine/internal/modules/schedule/domain"
	schedulein "studyroutine/internal/modules/schedule/port/in"
	scheduleout "studyroutine/internal/modules/schedule/port/out"
	scheduleservice "studyroutine/internal/modules/schedule/service"
	scheduleusecase "studyroutine/internal/modules/schedule/usecase"
	"studyroutine/internal/platform/clock"
	"studyroutine/internal/platform/config"
	uiapp "studyroutine/internal/ui/app"
)

type App struct {
	Config config.Config
	Logger *log.Logger

	ScheduleCLI scheduleinadapter.CLIHandler
	GoalsCLI    goalsinadapter.CLIHandler
	ReportCLI   reportinadapter.CLIHandler

	Schedule schedulein.Usecase
	Goals    goalsin.Usecase
	Report   reportin.Usecase

	closers []io.Closer
}

func New(cfg config.Config, logger *log.Logger) (*App, error) {
	plan := domain.Plan{BaseDate: cfg.BaseDate, Subjects: cfg.Subjects, WeekCount: cfg.WeekCount}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	clk := clock.SystemClock{}
	app := &App{Config: cfg, Logger: logger}

	// The index is a derived read model; the CSV stays authoritative
	// when it cannot be opened.
	var projector scheduleout.WeekIndexProjector
	if p, err := scheduleoutadapter.NewSQLiteWeekProjector(cfg.IndexPath); err != nil {
		logger.Warn("week index disabled", "path", cfg.IndexPath, "err", err)
	} else {
		projector = p
		if c, ok := p.(io.Closer); ok {
			app.closers = append(app.closers, c)
		}
	}

	scheduleUC := scheduleusecase.NewInteractor(scheduleservice.NewScheduleService(
		plan,
		clk,
		cfg.Location,
		scheduleoutadapter.NewCSVTableStore(cfg.TablePath),
		projector,
		logger.WithPrefix("schedule"),
	))
	goalsUC := goalsusecase.NewInteractor(goalsservice.NewGoalService(
		goalsoutadapter.NewCSVGoalStore(cfg.GoalsPath),
		logger.WithPrefix("goals"),
	))
	reportUC := reportusecase.NewInteractor(reportservice.NewReportService(
		reportoutadapter.NewScheduleWeekSource(scheduleUC),
		reportoutadapter.NewGoalsSource(goalsUC),
		reportoutadapter.NewCSVTableEncoder(),
		reportoutadapter.NewLocalFileSink(),
		reportservice.Options{
			Clock:        clk,
			Location:     cfg.Location,
			ExportPrefix: cfg.ExportPrefix,
			Logger:       logger.WithPrefix("report"),
		},
	))

	app.Schedule = scheduleUC
	app.Goals = goalsUC
	app.Report = reportUC
	app.ScheduleCLI = scheduleinadapter.NewCLIHandler(scheduleUC)
	app.GoalsCLI = goalsinadapter.NewCLIHandler(goalsUC)
	app.ReportCLI = reportinadapter.NewCLIHandler(reportUC)
	return app, nil
}

// Close releases the week index.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func RunTUI(app *App, mode uiapp.Mode) error {
	model := uiapp.NewModel(mode, app.Config.DataDir, app.Schedule, app.Goals, app.Report)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// RunHTTP serves the API until SIGINT or SIGTERM.
func RunHTTP(ctx context.Context, app *App, addr string) error {
	srv := httpapi.NewServer(httpapi.Options{
		Address:  addr,
		Schedule: app.Schedule,
		Goals:    app.Goals,
		Report:   app.Report,
		Logger:   app.Logger.WithPrefix("http"),
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		app.Logger.Info("shutting down http api")
		if err := srv.Stop(context.Background()); err != nil {
			return fmt.Errorf("stop http api: %w", err)
		}
		return <-errCh
	}
}

// RunMCP serves the MCP tools over stdio until the client disconnects.
func RunMCP(app *App, version string) error {
	mcpserver.Version = version
	s := mcpserver.New(mcpserver.Deps{
		Schedule: app.Schedule,
		Goals:    app.Goals,
		Report:   app.Report,
	})
	return server.ServeStdio(s)
}
