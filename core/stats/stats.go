// Package stats computes dashboard figures from snapshots of task, project
// and user collections. All functions are pure: they never mutate their
// inputs and have no side effects.
package stats

import (
	"math"
	"sort"

	"github.com/taskistry/collabo/core/task"
	"github.com/taskistry/collabo/core/user"
)

type (
	Counts struct {
		Todo       int `json:"todo"`
		InProgress int `json:"in_progress"`
		Completed  int `json:"completed"`
		Total      int `json:"total"`
	}

	Percentages struct {
		Todo       int `json:"todo"`
		InProgress int `json:"in_progress"`
		Completed  int `json:"completed"`
	}

	// Overview extends the raw counts with on-time/late accounting for
	// completed tasks. A completed task is on time when it was last updated
	// no later than its due date.
	Overview struct {
		Counts
		OnTime int `json:"on_time"`
		Late   int `json:"late"`
	}

	Performance struct {
		UserID               string `json:"user_id"`
		UserName             string `json:"user_name"`
		CompletedTasks       int    `json:"completed_tasks"`
		OnTimeCompletionRate int    `json:"on_time_completion_rate"`
		Score                int    `json:"score"` // 0-100; drives teacher bonuses
	}
)

func CountTasks(tasks []task.Task) Counts {
	var c Counts
	for _, t := range tasks {
		switch t.Status {
		case task.StatusTodo:
			c.Todo++
		case task.StatusInProgress:
			c.InProgress++
		case task.StatusCompleted:
			c.Completed++
		}
	}
	c.Total = len(tasks)
	return c
}

// Percentages rounds each status share to the nearest whole percent.
// All shares are 0 when there are no tasks.
func (c Counts) Percentages() Percentages {
	if c.Total == 0 {
		return Percentages{}
	}
	return Percentages{
		Todo:       percent(c.Todo, c.Total),
		InProgress: percent(c.InProgress, c.Total),
		Completed:  percent(c.Completed, c.Total),
	}
}

func ProjectTaskCount(tasks []task.Task, projectID string) int {
	var n int
	for _, t := range tasks {
		if t.ProjectID == projectID {
			n++
		}
	}
	return n
}

func ComputeOverview(tasks []task.Task) Overview {
	ov := Overview{Counts: CountTasks(tasks)}
	for _, t := range tasks {
		if t.Status != task.StatusCompleted {
			continue
		}
		if t.UpdatedAt.After(t.DueDate) {
			ov.Late++
		} else {
			ov.OnTime++
		}
	}
	return ov
}

// TeacherRanking filters the performances down to users holding the teacher
// role and sorts them by descending score. Ties keep their input order.
func TeacherRanking(perfs []Performance, users []user.User) []Performance {
	teachers := make(map[string]bool, len(users))
	for _, u := range users {
		if u.IsTeacher() {
			teachers[u.ID] = true
		}
	}

	ranked := make([]Performance, 0, len(perfs))
	for _, p := range perfs {
		if teachers[p.UserID] {
			ranked = append(ranked, p)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}

// ComputePerformances derives per-assignee completion figures from the task
// snapshot. The score blends the on-time rate (60%) with completed volume
// capped at 10 tasks (40%).
func ComputePerformances(tasks []task.Task, users []user.User) []Performance {
	type acc struct {
		completed int
		onTime    int
	}
	accs := make(map[string]*acc, len(users))

	for _, t := range tasks {
		if t.Status != task.StatusCompleted || t.AssignedTo == nil {
			continue
		}
		a, ok := accs[*t.AssignedTo]
		if !ok {
			a = &acc{}
			accs[*t.AssignedTo] = a
		}
		a.completed++
		if !t.UpdatedAt.After(t.DueDate) {
			a.onTime++
		}
	}

	perfs := make([]Performance, 0, len(accs))
	for _, u := range users {
		a, ok := accs[u.ID]
		if !ok {
			continue
		}
		rate := percent(a.onTime, a.completed)
		volume := a.completed
		if volume > 10 {
			volume = 10
		}
		perfs = append(perfs, Performance{
			UserID:               u.ID,
			UserName:             u.Name,
			CompletedTasks:       a.completed,
			OnTimeCompletionRate: rate,
			Score:                int(math.Round(0.6*float64(rate) + 0.4*float64(volume)*10)),
		})
	}
	return perfs
}

func percent(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}
