package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/taskistry/collabo/core/task"
	"github.com/taskistry/collabo/core/user"
)

type taskApi struct {
	validate *validator.Validate
	service  *task.Service
	userSvc  *user.Service
}

func registerTaskAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := taskApi{
		validate: opts.Validate,
		service:  opts.TaskSvc,
		userSvc:  opts.UserSvc,
	}

	tg := g.Group("/tasks", jwt)
	tg.POST("", api.taskCreate)
	tg.GET("", api.taskQuery)
	tg.GET("/:id", api.taskRetrieve)
	tg.PUT("/:id/status", api.taskChangeStatus)
	tg.PUT("/:id/assignee", api.taskReassign)
}

func (api *taskApi) taskCreate(ctx echo.Context) error {
	data := new(task.NewTask)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return err
	}
	tsk, err := api.service.Create(actor, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, tsk)
}

func (api *taskApi) taskQuery(ctx echo.Context) error {
	if projectID := ctx.QueryParam("project_id"); projectID != "" {
		tasks, err := api.service.QueryForProject(projectID)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, tasks)
	}

	tasks, err := api.service.QueryAll()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tasks)
}

func (api *taskApi) taskRetrieve(ctx echo.Context) error {
	tsk, err := api.service.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tsk)
}

func (api *taskApi) taskChangeStatus(ctx echo.Context) error {
	data := new(ChangeStatusRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	tsk, err := api.service.ChangeStatus(ctx.Param("id"), data.Status)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tsk)
}

func (api *taskApi) taskReassign(ctx echo.Context) error {
	data := new(ReassignRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	actor, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return err
	}
	tsk, err := api.service.Reassign(actor, ctx.Param("id"), data.AssignedTo)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tsk)
}
