package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/evolvlearn/portal/core"
	"github.com/evolvlearn/portal/core/admission"
)

type admissionAPI struct {
	svc      *admission.Service
	validate *validator.Validate
}

func registerAdmissionAPI(g *echo.Group, svc *admission.Service, validate *validator.Validate) {
	api := admissionAPI{svc: svc, validate: validate}

	ag := g.Group("/admission")
	ag.GET("/steps", api.steps)
	ag.POST("/init", api.initialize)
	ag.POST("/transition", api.transition)
	ag.POST("/submit", api.submit)
}

type (
	stepsResponse struct {
		Steps   []admission.StepInfo `json:"steps"`
		Options admission.Options    `json:"options"`
	}

	initResponse struct {
		admission.Init
		Steps   []admission.StepInfo `json:"steps"`
		Options admission.Options    `json:"options"`
	}

	transitionRequest struct {
		State  admission.State  `json:"state" validate:"-"`
		Action admission.Action `json:"action" validate:"required,oneof=advance retreat"`
	}

	transitionResponse struct {
		State    admission.State `json:"state"`
		Progress float64         `json:"progress"`
	}

	submitRequest struct {
		Draft admission.Draft `json:"draft"`
	}
)

// Handlers

func (api *admissionAPI) steps(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, stepsResponse{
		Steps:   admission.Steps(),
		Options: admission.FormOptions(),
	})
}

func (api *admissionAPI) initialize(ctx echo.Context) error {
	start := api.svc.Initialize(ctx.Request().Context(), getContextSession(ctx))
	return ctx.JSON(http.StatusOK, initResponse{
		Init:    start,
		Steps:   admission.Steps(),
		Options: admission.FormOptions(),
	})
}

func (api *admissionAPI) transition(ctx echo.Context) error {
	var req transitionRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to transitionRequest")
	}
	if err := api.validate.Struct(req); err != nil {
		return err
	}

	next, err := admission.Transition(req.State, req.Action)
	if err != nil {
		if _, ok := errors.Cause(err).(*core.ValidationError); ok { // the step gate failed
			return ctx.JSON(http.StatusBadRequest, transitionResponse{State: next, Progress: next.Progress()})
		}
		return core.NewValidationError(err)
	}
	return ctx.JSON(http.StatusOK, transitionResponse{State: next, Progress: next.Progress()})
}

func (api *admissionAPI) submit(ctx echo.Context) error {
	var req submitRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to submitRequest")
	}

	res, err := api.svc.Submit(ctx.Request().Context(), getContextSession(ctx), req.Draft)
	if err != nil {
		if err == admission.ErrLoginRequired {
			return echo.NewHTTPError(http.StatusUnauthorized, echo.Map{"error": err.Error(), "redirect": res.Redirect})
		}
		return err
	}

	code := http.StatusOK
	if res.Created {
		code = http.StatusCreated
	}
	return ctx.JSON(code, res)
}
