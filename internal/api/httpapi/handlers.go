package httpapi

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	goalsdto "studyroutine/internal/modules/goals/dto"
	goalsin "studyroutine/internal/modules/goals/port/in"
	reportdto "studyroutine/internal/modules/report/dto"
	reportin "studyroutine/internal/modules/report/port/in"
	scheduledto "studyroutine/internal/modules/schedule/dto"
	schedulein "studyroutine/internal/modules/schedule/port/in"
	apperrors "studyroutine/internal/platform/errors"
	"studyroutine/internal/widget"
)

const mimeMarkdown = "text/markdown; charset=utf-8"

type handlers struct {
	schedule schedulein.Usecase
	goals    goalsin.Usecase
	report   reportin.Usecase
	validate *requestValidator
}

type patchWeekRequest struct {
	Subject        *string `json:"subject" validate:"omitempty,notblank"`
	PlanText       *string `json:"plan_text" validate:"omitempty,max=4000"`
	SampleQuestion *string `json:"sample_question" validate:"omitempty,max=4000"`
	Done           *bool   `json:"done"`
}

type putGoalRequest struct {
	Text string `json:"text" validate:"max=2000"`
}

type homeResponse struct {
	Summary reportdto.SummaryOutput `json:"summary"`
	Today   *scheduledto.WeekOutput `json:"today,omitempty"`
}

func (h handlers) home(c echo.Context) error {
	ctx := c.Request().Context()
	week, err := h.schedule.Today(ctx)
	if c.QueryParam("mode") == "today" {
		if errors.Is(err, apperrors.ErrNoActiveWeek) {
			return c.Blob(http.StatusOK, mimeMarkdown, []byte(widget.NoActiveRoutine+"\n"))
		}
		if err != nil {
			return err
		}
		goal, err := h.goals.GetGoal(ctx, week.Month)
		if err != nil {
			return err
		}
		return c.Blob(http.StatusOK, mimeMarkdown, []byte(widget.Today(week, goal.Text)))
	}

	resp := homeResponse{}
	switch {
	case err == nil:
		resp.Today = &week
	case !errors.Is(err, apperrors.ErrNoActiveWeek):
		return err
	}
	if resp.Summary, err = h.report.Summary(ctx); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (h handlers) listMonths(c echo.Context) error {
	ctx := c.Request().Context()
	months, err := h.schedule.ListMonths(ctx)
	if err != nil {
		return err
	}
	rates, err := h.report.MonthProgress(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"months": months, "progress": rates})
}

func (h handlers) monthWeeks(c echo.Context) error {
	month, err := h.month(c)
	if err != nil {
		return err
	}
	weeks, err := h.schedule.MonthWeeks(c.Request().Context(), month)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, weeks)
}

func (h handlers) getWeek(c echo.Context) error {
	index, err := weekIndex(c)
	if err != nil {
		return err
	}
	week, err := h.schedule.GetWeek(c.Request().Context(), index)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, week)
}

func (h handlers) patchWeek(c echo.Context) error {
	index, err := weekIndex(c)
	if err != nil {
		return err
	}
	var req patchWeekRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := h.validate.Struct(req); err != nil {
		return err
	}
	if req.Subject == nil && req.PlanText == nil && req.SampleQuestion == nil && req.Done == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "nothing to update")
	}
	week, err := h.schedule.UpdateWeek(c.Request().Context(), scheduledto.UpdateWeekInput{
		Index:          index,
		Subject:        req.Subject,
		PlanText:       req.PlanText,
		SampleQuestion: req.SampleQuestion,
		Done:           req.Done,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, week)
}

func (h handlers) reminders(c echo.Context) error {
	weeks, err := h.schedule.Reminders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, weeks)
}

func (h handlers) today(c echo.Context) error {
	week, err := h.schedule.Today(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, week)
}

func (h handlers) stats(c echo.Context) error {
	ctx := c.Request().Context()
	if c.QueryParam("month") != "" {
		month := c.QueryParam("month")
		if err := h.validate.Var(month, yearMonthTag); err != nil {
			return err
		}
		rate, err := h.report.MonthCompletion(ctx, month)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, rate)
	}
	summary, err := h.report.Summary(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

func (h handlers) listGoals(c echo.Context) error {
	goals, err := h.goals.ListGoals(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, goals)
}

func (h handlers) getGoal(c echo.Context) error {
	month, err := h.month(c)
	if err != nil {
		return err
	}
	goal, err := h.goals.GetGoal(c.Request().Context(), month)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, goal)
}

func (h handlers) putGoal(c echo.Context) error {
	month, err := h.month(c)
	if err != nil {
		return err
	}
	var req putGoalRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := h.validate.Struct(req); err != nil {
		return err
	}
	goal, err := h.goals.SetGoal(c.Request().Context(), goalsdto.SetGoalInput{Month: month, Text: req.Text})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, goal)
}

func (h handlers) export(c echo.Context) error {
	full, _ := strconv.ParseBool(c.QueryParam("full"))
	out, err := h.report.Export(c.Request().Context(), reportdto.ExportInput{Full: full})
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": out.FileName}))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", out.Content)
}

func (h handlers) month(c echo.Context) (string, error) {
	month := c.Param("month")
	if err := h.validate.Var(month, yearMonthTag); err != nil {
		return "", err
	}
	return month, nil
}

func weekIndex(c echo.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid week index %q", c.Param("index")))
	}
	return index, nil
}
