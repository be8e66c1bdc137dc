package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskistry/collabo/core/user"
)

type userApi struct {
	service *user.Service
}

// registerUserAPI mounts the user directory. The whole group is
// admin-only: teachers and students never browse other accounts.
func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := userApi{service: opts.UserSvc}

	ug := g.Group("/users", jwt, adminMiddleware())
	ug.GET("", api.userQuery)
	ug.GET("/roles", api.userQueryRoles)
	ug.GET("/:id", api.userRetrieve)
}

func (api *userApi) userQuery(ctx echo.Context) error {
	filter := user.QueryFilter{Search: ctx.QueryParam("search")}
	for _, role := range ctx.QueryParams()["role"] {
		filter.Roles = append(filter.Roles, user.Role(role))
	}
	if rawActive := ctx.QueryParam("is_active"); rawActive != "" {
		isActive, err := strconv.ParseBool(rawActive)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid is_active")
		}
		filter.IsActive = &isActive
	}

	users, err := api.service.Filter(filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) userQueryRoles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, user.Roles)
}

func (api *userApi) userRetrieve(ctx echo.Context) error {
	usr, err := api.service.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}
