package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lefika/ripota/core"
	"github.com/lefika/ripota/core/user"
)

type userApi struct {
	svc        user.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerUserRoutes(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := userApi{
		svc:        deps.UserSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	g.POST("/login", api.login(deps.Conf))
	g.POST("/register", api.register)

	ag := g.Group("", jwt)
	ag.GET("/profile", api.profile)
	ag.GET("/users", api.query)
	ag.GET("/lecturers", api.queryLecturers)
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}

func (api *userApi) login(conf *core.Config) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var data LoginRequest
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to LoginRequest")
		}
		if err := data.Validate(api.validate); err != nil {
			return err
		}

		usr, err := authenticate(ctx.Request().Context(), data.Email, data.Password, api.svc)
		if err != nil {
			return err
		}
		token, err := GenerateToken(conf, GetUserClaims(conf, usr))
		if err != nil {
			return errors.Wrap(err, "generating token")
		}

		return ctx.JSON(http.StatusOK, LoginResponse{Token: token, User: usr})
	}
}

func (api *userApi) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	usr, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) profile(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) query(ctx echo.Context) error {
	filter := new(user.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []user.User{})
	}
	filter.Clean()

	users, err := api.svc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) queryLecturers(ctx echo.Context) error {
	users, err := api.svc.Filter(ctx.Request().Context(), user.QueryFilter{Role: user.RoleLecturer})
	if err != nil {
		return errors.Wrap(err, "querying lecturers")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}
