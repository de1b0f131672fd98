package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lefika/ripota/core/rating"
	"github.com/lefika/ripota/core/user"
)

type ratingApi struct {
	svc      rating.Service
	usrSvc   user.Service
	validate *validator.Validate
}

func registerRatingRoutes(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := ratingApi{svc: deps.RatingSvc, usrSvc: deps.UserSvc, validate: deps.Validate}

	rg := g.Group("/ratings", jwt)
	rg.GET("", api.query)
	rg.POST("", api.submit)
	rg.DELETE("/:id", api.destroy)
	rg.GET("/averages", api.queryAverages)
}

func (api *ratingApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	ratings, err := api.svc.QueryVisible(ctx.Request().Context(), usr)
	if err != nil {
		return errors.Wrap(err, "querying ratings")
	}
	if ratings == nil {
		ratings = []rating.Rating{}
	}
	return ctx.JSON(http.StatusOK, ratings)
}

func (api *ratingApi) submit(ctx echo.Context) error {
	var data rating.NewRating
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRating")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	rtg, err := api.svc.Submit(ctx.Request().Context(), data, usr)
	if err != nil {
		return errors.Wrap(err, "submitting rating")
	}
	return ctx.JSON(http.StatusCreated, rtg)
}

// destroy is owner-only; the service enforces ownership.
func (api *ratingApi) destroy(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id"), usr); err != nil {
		switch errors.Cause(err) {
		case rating.ErrNotFound:
			return errHttpNotFound
		case rating.ErrNotOwner:
			return errHttpForbidden
		}
		return errors.Wrap(err, "deleting rating")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *ratingApi) queryAverages(ctx echo.Context) error {
	avgs, err := api.svc.CourseAverages(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying course averages")
	}
	if avgs == nil {
		avgs = []rating.CourseAverage{}
	}
	return ctx.JSON(http.StatusOK, avgs)
}
