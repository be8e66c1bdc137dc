package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskistry/collabo/core/stats"
	"github.com/taskistry/collabo/core/task"
	"github.com/taskistry/collabo/core/user"
)

type statsApi struct {
	taskSvc *task.Service
	userSvc *user.Service
}

func registerStatsAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := statsApi{taskSvc: opts.TaskSvc, userSvc: opts.UserSvc}

	sg := g.Group("/stats", jwt)
	sg.GET("/overview", api.statsOverview)
	sg.GET("/performance", api.statsPerformance)
}

func (api *statsApi) statsOverview(ctx echo.Context) error {
	var tasks []task.Task
	var err error
	if projectID := ctx.QueryParam("project_id"); projectID != "" {
		tasks, err = api.taskSvc.QueryForProject(projectID)
	} else {
		tasks, err = api.taskSvc.QueryAll()
	}
	if err != nil {
		return err
	}

	overview := stats.ComputeOverview(tasks)
	return ctx.JSON(http.StatusOK, OverviewResponse{
		Overview:    overview,
		Percentages: overview.Percentages(),
		Overdue:     overdueCount(tasks, time.Now()),
	})
}

// statsPerformance ranks teachers by their completion score and tags
// each entry with the bonus tier the score earns.
func (api *statsApi) statsPerformance(ctx echo.Context) error {
	tasks, err := api.taskSvc.QueryAll()
	if err != nil {
		return err
	}
	users, err := api.userSvc.QueryAll()
	if err != nil {
		return err
	}

	ranking := stats.TeacherRanking(stats.ComputePerformances(tasks, users), users)
	entries := make([]PerformanceEntry, 0, len(ranking))
	for _, perf := range ranking {
		entries = append(entries, PerformanceEntry{
			Performance: perf,
			Bonus:       stats.BonusForScore(perf.Score),
		})
	}
	return ctx.JSON(http.StatusOK, entries)
}
