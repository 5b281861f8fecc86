package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/evolvlearn/portal/core"
	"github.com/evolvlearn/portal/core/calendar"
)

type calendarAPI struct {
	api      calendar.API
	logger   core.Logger
	validate *validator.Validate
}

func registerCalendarAPI(g *echo.Group, api calendar.API, logger core.Logger, validate *validator.Validate) {
	capi := calendarAPI{api: api, logger: logger, validate: validate}

	cg := g.Group("/calendar")
	cg.GET("", capi.month)
	cg.POST("/navigate", capi.navigate)
}

type (
	calendarQuery struct {
		Year     int    `json:"year" query:"year" validate:"omitempty,min=1970,max=9999"`
		Month    int    `json:"month" query:"month" validate:"omitempty,min=1,max=12"`
		Location string `json:"location" query:"location"`
		Course   string `json:"course" query:"course"`
		Compact  bool   `json:"compact" query:"compact"`
	}

	navigateRequest struct {
		calendarQuery
		Direction string `json:"direction" validate:"required,oneof=prev next"`
	}
)

// activeMonth defaults the missing parts of the query to the current month.
func (q calendarQuery) activeMonth(now time.Time) calendar.Month {
	m := calendar.MonthOf(now)
	if q.Year != 0 {
		m.Year = q.Year
	}
	if q.Month != 0 {
		m.Month = time.Month(q.Month)
	}
	return m
}

func (capi *calendarAPI) load(ctx echo.Context, q calendarQuery, month calendar.Month) *calendar.Calendar {
	cal := calendar.New(capi.api, capi.logger, getContextSession(ctx), month)
	cal.Load(ctx.Request().Context())
	cal.SetFilter(q.Location, q.Course)
	return cal
}

// Handlers

func (capi *calendarAPI) month(ctx echo.Context) error {
	var q calendarQuery
	if err := ctx.Bind(&q); err != nil {
		return errors.Wrap(err, "binding to calendarQuery")
	}
	if err := capi.validate.Struct(q); err != nil {
		return err
	}

	now := core.NowFunc()
	cal := capi.load(ctx, q, q.activeMonth(now))
	return ctx.JSON(http.StatusOK, cal.View(now, getContextSession(ctx).Role(), q.Compact))
}

func (capi *calendarAPI) navigate(ctx echo.Context) error {
	var req navigateRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to navigateRequest")
	}
	if err := capi.validate.Struct(req); err != nil {
		return err
	}
	dir, err := calendar.ParseDirection(req.Direction)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "direction", Error: err.Error()})
	}

	now := core.NowFunc()
	cal := capi.load(ctx, req.calendarQuery, req.activeMonth(now).Navigate(dir))
	return ctx.JSON(http.StatusOK, cal.View(now, getContextSession(ctx).Role(), req.Compact))
}
