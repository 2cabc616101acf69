package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	_ "time/tzdata"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"studyroutine/internal/bootstrap"
	scheduledto "studyroutine/internal/modules/schedule/dto"
	"studyroutine/internal/platform/config"
	apperrors "studyroutine/internal/platform/errors"
	"studyroutine/internal/platform/logging"
	uiapp "studyroutine/internal/ui/app"
	"studyroutine/internal/widget"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	dataDir    string
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "studyroutine",
		Short:         "감정평가사 156주 학습 루틴 트래커",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data", ".", "data directory holding the routine files")
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: <data>/studyroutine.{yaml,toml,json})")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug|info|warn|error")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newTodayCmd(opts))
	root.AddCommand(newMonthsCmd(opts))
	root.AddCommand(newMonthCmd(opts))
	root.AddCommand(newEditCmd(opts))
	root.AddCommand(newDoneCmd(opts, "done", true))
	root.AddCommand(newDoneCmd(opts, "undone", false))
	root.AddCommand(newRemindersCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newGoalCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newNoteCmd(opts))
	root.AddCommand(newReindexCmd(opts))
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newMCPCmd(opts))
	return root
}

// loadApp wires the application. Commands that own the terminal or stdio
// pass logToFile so log lines go to the configured log file.
func loadApp(opts *rootOptions, logToFile bool) (*bootstrap.App, func(), error) {
	cfg, err := config.Load(config.Options{
		DataDir:    opts.dataDir,
		ConfigFile: opts.configFile,
		LogLevel:   opts.logLevel,
	})
	if err != nil {
		return nil, nil, err
	}

	var logger *log.Logger
	var logCloser io.Closer
	if logToFile {
		logger, logCloser, err = logging.OpenFile(cfg.LogPath, cfg.LogLevel)
		if err != nil {
			return nil, nil, err
		}
	} else {
		logger = logging.New(os.Stderr, cfg.LogLevel)
	}

	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		if logCloser != nil {
			_ = logCloser.Close()
		}
		return nil, nil, err
	}
	cleanup := func() {
		if err := app.Close(); err != nil {
			logger.Warn("close", "err", err)
		}
		if logCloser != nil {
			_ = logCloser.Close()
		}
	}
	return app, cleanup, nil
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			m, err := uiapp.ParseMode(mode)
			if err != nil {
				return err
			}
			app, cleanup, err := loadApp(opts, true)
			if err != nil {
				return err
			}
			defer cleanup()
			return bootstrap.RunTUI(app, m)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(uiapp.ModeFull), "full|today")
	return cmd
}

func newTodayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show the week in progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			ctx := context.Background()
			week, err := app.ScheduleCLI.Today(ctx)
			if errors.Is(err, apperrors.ErrNoActiveWeek) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), widget.NoActiveRoutine)
				return nil
			}
			if err != nil {
				return err
			}
			goal, err := app.GoalsCLI.Get(ctx, week.Month)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), widget.Today(week, goal.Text))
			return nil
		},
	}
}

func newMonthsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List months with completion",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			summary, err := app.ReportCLI.Summary(context.Background())
			if err != nil {
				return err
			}
			for _, r := range summary.Months {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%5.1f%%\t%d/%d\n", r.Key, r.Percent, r.Done, r.Total)
			}
			return nil
		},
	}
}

func newMonthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "month <YYYY-MM>",
		Short: "Show the weeks of a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			ctx := context.Background()
			weeks, err := app.ScheduleCLI.Month(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(weeks) == 0 {
				_, _ = fmt.Fprintln(out, widget.NoActiveRoutine)
				return nil
			}
			rate, err := app.ReportCLI.MonthRate(ctx, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "%s  완료율 %.1f%% (%d/%d)\n", args[0], rate.Percent, rate.Done, rate.Total)
			for _, w := range weeks {
				printWeek(out, w)
			}
			return nil
		},
	}
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	var subject, plan, question string
	var done bool
	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Edit one week; only the flags given are changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			input := scheduledto.UpdateWeekInput{Index: index}
			flags := cmd.Flags()
			if flags.Changed("subject") {
				input.Subject = &subject
			}
			if flags.Changed("plan") {
				input.PlanText = &plan
			}
			if flags.Changed("question") {
				input.SampleQuestion = &question
			}
			if flags.Changed("done") {
				input.Done = &done
			}
			if input.Subject == nil && input.PlanText == nil && input.SampleQuestion == nil && input.Done == nil {
				return fmt.Errorf("%w: nothing to update", apperrors.ErrInvalidInput)
			}

			app, cleanup, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			week, err := app.ScheduleCLI.Edit(context.Background(), input)
			if err != nil {
				return err
			}
			printWeek(cmd.OutOrStdout(), week)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "subject (one of the configured subjects)")
	cmd.Flags().StringVar(&plan, "plan", "", "detailed plan")
	cmd.Flags().StringVar(&question, "question", "", "sample question")
	cmd.Flags().BoolVar(&done, "done", false, "completion flag")
	return cmd
}

func newDoneCmd(opts *rootOptions, use string, done bool) *cobra.Command {
	short := "Mark a week done"
	if !done {
		short = "Mark a week not done"
	}
	return &cobra.Command{
		Use:   use + " <index>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			app, cleanup, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			week, err := app.ScheduleCLI.SetDone(context.Background(), index, done)
			if err != nil {
				return err
			}
			printWeek(cmd.OutOrStdout(), week)
			return nil
		},
	}
}

func newRemindersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reminders",
		Short: "List weeks not yet done",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			weeks, err := app.ScheduleCLI.Reminders(context.Background())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(weeks) == 0 {
				_, _ = fmt.Fprintln(out, widget.AllDone)
				return nil
			}
			for _, w := range weeks {
				_, _ = fmt.Fprintf(out, "#%-4d %s\n", w.Index, widget.Reminder(w))
			}
			return nil
		},
	}
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completion rates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			ctx := context.Background()
			out := cmd.OutOrStdout()
			if month != "" {
				rate, err := app.ReportCLI.MonthRate(ctx, month)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "%s 완료율: %.1f%% (%d/%d)\n", month, rate.Percent, rate.Done, rate.Total)
				return nil
			}
			summary, err := app.ReportCLI.Summary(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "전체: %.1f%% (%d/%d)\n\n과목별\n", summary.Overall.Percent, summary.Overall.Done, summary.Overall.Total)
			for _, r := range summary.Subjects {
				_, _ = fmt.Fprintf(out, "  %s\t%.1f%% 완료\n", r.Key, r.Percent)
			}
			_, _ = fmt.Fprintln(out, "\n월별")
			for _, r := range summary.Months {
				_, _ = fmt.Fprintf(out, "  %s\t%5.1f%%\t%d/%d\n", r.Key, r.Percent, r.Done, r.Total)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "only this month (YYYY-MM)")
	return cmd
}

func newGoalCmd(opts *rootOptions) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Monthly goals"}

	goal.AddCommand(&cobra.Command{
		Use:   "get <YYYY-MM>",
		Short: "Show the goal of a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			out, err := app.GoalsCLI.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Text)
			return nil
		},
	})

	goal.AddCommand(&cobra.Command{
		Use:   "set <YYYY-MM> <text>",
		Short: "Write the goal of a month",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			out, err := app.GoalsCLI.Set(context.Background(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal saved for %s\n", out.Month)
			return nil
		},
	})

	goal.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List goals by month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			goals, err := app.GoalsCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(goals) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no goals")
				return nil
			}
			for _, g := range goals {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", g.Month, g.Text)
			}
			return nil
		},
	})
	return goal
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var full bool
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the table as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			if dir == "" {
				dir = app.Config.DataDir
			}
			out, err := app.ReportCLI.Export(context.Background(), full, dir)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s\n", out.Rows, out.Path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "keep the 고유주차 and 시작일 columns")
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default: data directory)")
	return cmd
}

func newNoteCmd(opts *rootOptions) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "note <YYYY-MM>",
		Short: "Render the month review note (stdout unless --dir)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			out, err := app.ReportCLI.Note(context.Background(), args[0], dir)
			if err != nil {
				return err
			}
			if out.Path == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Content)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note written to %s\n", out.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "write <YYYY-MM>.md into this directory")
	return cmd
}

func newReindexCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite week index from the table file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			out, err := app.ScheduleCLI.Reindex(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindexed %d weeks\n", out.Weeks)
			return nil
		},
	}
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer cleanup()
			if addr == "" {
				addr = app.Config.HTTPAddr
			}
			return bootstrap.RunHTTP(context.Background(), app, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: http_addr from config)")
	return cmd
}

func newMCPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the MCP tools over stdio",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(opts, true)
			if err != nil {
				return err
			}
			defer cleanup()
			return bootstrap.RunMCP(app, version)
		},
	}
}

func parseIndex(raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("%w: week index must be a non-negative integer, got %q", apperrors.ErrInvalidInput, raw)
	}
	return index, nil
}

func printWeek(out io.Writer, w scheduledto.WeekOutput) {
	mark := "[ ]"
	if w.Done {
		mark = "[x]"
	}
	_, _ = fmt.Fprintf(out, "%s #%-4d %s %s  %-10s %s\n", mark, w.Index, w.Month, w.WeekLabel, w.Subject, w.StartDate)
	if plan := strings.TrimSpace(w.PlanText); plan != "" {
		_, _ = fmt.Fprintf(out, "      계획: %s\n", strings.Join(strings.Fields(plan), " "))
	}
	if q := strings.TrimSpace(w.SampleQuestion); q != "" {
		_, _ = fmt.Fprintf(out, "      질문: %s\n", strings.Join(strings.Fields(q), " "))
	}
}
