package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lefika/ripota/core/report"
	"github.com/lefika/ripota/core/user"
)

type reportApi struct {
	svc      report.Service
	validate *validator.Validate
}

func registerReportRoutes(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := reportApi{svc: deps.ReportSvc, validate: deps.Validate}

	rg := g.Group("/reports", jwt)
	rg.GET("", api.query, roleMiddleware(user.RoleLecturer, user.RolePRL, user.RolePL))
	rg.POST("", api.submit, roleMiddleware(user.RoleLecturer))
	rg.PUT("/:id/feedback", api.addFeedback, roleMiddleware(user.RolePRL))
}

// query returns a lecturer's own reports; leadership sees all.
func (api *reportApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var reports []report.Report
	if claims.Role == user.RoleLecturer {
		reports, err = api.svc.QueryByLecturer(ctx.Request().Context(), claims.Name)
	} else {
		reports, err = api.svc.QueryAll(ctx.Request().Context())
	}
	if err != nil {
		return errors.Wrap(err, "querying reports")
	}
	if reports == nil {
		reports = []report.Report{}
	}
	return ctx.JSON(http.StatusOK, reports)
}

func (api *reportApi) submit(ctx echo.Context) error {
	var data report.NewReport
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewReport")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	rpt, err := api.svc.Submit(ctx.Request().Context(), data, claims.Name)
	if err != nil {
		return errors.Wrap(err, "submitting report")
	}
	return ctx.JSON(http.StatusCreated, rpt)
}

func (api *reportApi) addFeedback(ctx echo.Context) error {
	var data report.Feedback
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Feedback")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rpt, err := api.svc.AddFeedback(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == report.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "adding feedback")
	}
	return ctx.JSON(http.StatusOK, rpt)
}
