package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/taskistry/collabo/core"
	"github.com/taskistry/collabo/core/session"
	"github.com/taskistry/collabo/core/user"
)

type authApi struct {
	conf     *core.Config
	validate *validator.Validate
	sessions *session.Store
	userSvc  *user.Service
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := authApi{
		conf:     opts.Conf,
		validate: opts.Validate,
		sessions: opts.Sessions,
		userSvc:  opts.UserSvc,
	}

	ag := g.Group("/auth")

	// un-authed endpoints
	ag.POST("/login", api.login)
	ag.POST("/register", api.register)
	ag.POST("/password-reset", api.resetPassword)
	ag.POST("/password-reset-confirm", api.confirmPasswordReset)

	// authed endpoints
	ag.POST("/logout", api.logout, jwt)
	ag.GET("/session", api.sessionState, jwt)
}

func (api *authApi) login(ctx echo.Context) error {
	data := new(LoginRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.sessions.Login(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		return err
	}
	token, err := GenerateToken(api.conf, GetUserClaims(api.conf, usr))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, User: usr})
}

func (api *authApi) register(ctx echo.Context) error {
	data := new(user.NewUser)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate, api.userSvc); err != nil {
		return err
	}

	usr, err := api.sessions.Register(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}
	token, err := GenerateToken(api.conf, GetUserClaims(api.conf, usr))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, LoginResponse{Token: token, User: usr})
}

func (api *authApi) logout(ctx echo.Context) error {
	if err := api.sessions.Logout(ctx.Request().Context()); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "logged out"})
}

func (api *authApi) sessionState(ctx echo.Context) error {
	res := SessionResponse{State: api.sessions.State().String()}
	if usr, ok := api.sessions.Current(); ok {
		res.User = &usr
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *authApi) resetPassword(ctx echo.Context) error {
	data := new(PasswordResetRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	// no feedback on whether the account exists
	if err := api.userSvc.RequestPasswordReset(data.Email); err != nil && err != user.ErrNotFound {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "If the email address supplied is associated " +
		"with an active account on this system, an email will be sent to it with instructions."})
}

func (api *authApi) confirmPasswordReset(ctx echo.Context) error {
	data := new(user.ResetUserPassword)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.userSvc.ResetPassword(*data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "password has been reset"})
}
