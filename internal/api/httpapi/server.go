// Package httpapi serves the routine over HTTP with echo.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	goalsin "studyroutine/internal/modules/goals/port/in"
	reportin "studyroutine/internal/modules/report/port/in"
	schedulein "studyroutine/internal/modules/schedule/port/in"
	"studyroutine/internal/platform/logging"
)

type Options struct {
	Address        string
	DisableReqLogs bool
	Schedule       schedulein.Usecase
	Goals          goalsin.Usecase
	Report         reportin.Usecase
	Logger         *log.Logger
}

type Server struct {
	opts      Options
	app       *echo.Echo
	validator *requestValidator
	logger    *log.Logger
}

func NewServer(opts Options) *Server {
	s := &Server{
		opts:      opts,
		app:       echo.New(),
		validator: newRequestValidator(),
		logger:    logging.OrDiscard(opts.Logger),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.HidePort = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogMethod:  true,
			LogURI:     true,
			LogStatus:  true,
			LogLatency: true,
			LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
				s.logger.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
				return nil
			},
		}))
	}
	s.app.Use(middleware.Recover())
	s.app.HTTPErrorHandler = newHTTPErrorHandler(s.logger, s.validator)

	h := handlers{
		schedule: s.opts.Schedule,
		goals:    s.opts.Goals,
		report:   s.opts.Report,
		validate: s.validator,
	}
	s.app.GET("/", h.home)

	api := s.app.Group("/api")
	api.GET("/months", h.listMonths)
	api.GET("/months/:month/weeks", h.monthWeeks)
	api.GET("/weeks/:index", h.getWeek)
	api.PATCH("/weeks/:index", h.patchWeek)
	api.GET("/reminders", h.reminders)
	api.GET("/today", h.today)
	api.GET("/stats", h.stats)
	api.GET("/goals", h.listGoals)
	api.GET("/goals/:month", h.getGoal)
	api.PUT("/goals/:month", h.putGoal)
	api.GET("/export", h.export)
}

// Start blocks until the server stops. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("http api listening", "addr", s.opts.Address)
	if err := s.app.Start(s.opts.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.app.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}
