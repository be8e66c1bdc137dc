package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/taskistry/collabo/core/project"
	"github.com/taskistry/collabo/core/user"
)

type projectApi struct {
	validate *validator.Validate
	service  *project.Service
	userSvc  *user.Service
}

func registerProjectAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := projectApi{
		validate: opts.Validate,
		service:  opts.ProjectSvc,
		userSvc:  opts.UserSvc,
	}

	pg := g.Group("/projects", jwt)
	pg.POST("", api.projectCreate)
	pg.GET("", api.projectQuery)
	pg.GET("/:id", api.projectRetrieve)
	pg.POST("/:id/members", api.projectAddMember)
	pg.DELETE("/:id/members/:userID", api.projectRemoveMember)
}

func (api *projectApi) projectCreate(ctx echo.Context) error {
	data := new(project.NewProject)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	creator, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return err
	}
	proj, err := api.service.Create(creator, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, proj)
}

func (api *projectApi) projectQuery(ctx echo.Context) error {
	projects, err := api.service.QueryAll()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, projects)
}

func (api *projectApi) projectRetrieve(ctx echo.Context) error {
	proj, err := api.service.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, proj)
}

func (api *projectApi) projectAddMember(ctx echo.Context) error {
	data := new(AddMemberRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	proj, err := api.service.AddMember(ctx.Param("id"), data.UserID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, proj)
}

func (api *projectApi) projectRemoveMember(ctx echo.Context) error {
	proj, err := api.service.RemoveMember(ctx.Param("id"), ctx.Param("userID"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, proj)
}
