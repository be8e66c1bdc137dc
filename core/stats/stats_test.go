package stats

import (
	"testing"
	"time"

	"github.com/taskistry/collabo/core/task"
	"github.com/taskistry/collabo/core/user"
)

func strPtr(s string) *string { return &s }

func TestCountTasks_Empty(t *testing.T) {
	c := CountTasks(nil)
	if c != (Counts{}) {
		t.Errorf("CountTasks(nil) = %+v, want all zero", c)
	}
	if p := c.Percentages(); p != (Percentages{}) {
		t.Errorf("Percentages() = %+v, want all zero", p)
	}
}

func TestCountTasks(t *testing.T) {
	tasks := []task.Task{
		{Status: task.StatusCompleted},
		{Status: task.StatusCompleted},
		{Status: task.StatusInProgress},
		{Status: task.StatusTodo},
		{Status: task.StatusTodo},
		{Status: task.StatusTodo},
	}
	c := CountTasks(tasks)
	want := Counts{Todo: 3, InProgress: 1, Completed: 2, Total: 6}
	if c != want {
		t.Errorf("CountTasks() = %+v, want %+v", c, want)
	}

	p := c.Percentages()
	if p.Todo != 50 || p.InProgress != 17 || p.Completed != 33 {
		t.Errorf("Percentages() = %+v, want {50 17 33}", p)
	}
}

// Three-way rounding can drift the sum, but never by more than 2.
func TestPercentagesSum(t *testing.T) {
	for todo := 0; todo <= 7; todo++ {
		for inProg := 0; inProg <= 7; inProg++ {
			for compl := 0; compl <= 7; compl++ {
				c := Counts{Todo: todo, InProgress: inProg, Completed: compl, Total: todo + inProg + compl}
				if c.Total == 0 {
					continue
				}
				p := c.Percentages()
				sum := p.Todo + p.InProgress + p.Completed
				if sum < 98 || sum > 102 {
					t.Errorf("Percentages of %+v sum to %d, want 100±2", c, sum)
				}
			}
		}
	}
}

func TestProjectTaskCount(t *testing.T) {
	tasks := []task.Task{
		{ProjectID: "p1"},
		{ProjectID: "p2"},
		{ProjectID: "p1"},
	}
	if n := ProjectTaskCount(tasks, "p1"); n != 2 {
		t.Errorf("ProjectTaskCount(p1) = %d, want 2", n)
	}
	if n := ProjectTaskCount(tasks, "p3"); n != 0 {
		t.Errorf("ProjectTaskCount(p3) = %d, want 0", n)
	}
}

func TestComputeOverview(t *testing.T) {
	due := time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC)
	tasks := []task.Task{
		{Status: task.StatusCompleted, DueDate: due, UpdatedAt: due.Add(-24 * time.Hour)},
		{Status: task.StatusCompleted, DueDate: due, UpdatedAt: due}, // on the day still counts
		{Status: task.StatusCompleted, DueDate: due, UpdatedAt: due.Add(time.Hour)},
		{Status: task.StatusInProgress, DueDate: due, UpdatedAt: due.Add(time.Hour)},
	}
	ov := ComputeOverview(tasks)
	if ov.OnTime != 2 || ov.Late != 1 {
		t.Errorf("ComputeOverview() = {OnTime: %d, Late: %d}, want {2 1}", ov.OnTime, ov.Late)
	}
}

func TestTeacherRanking(t *testing.T) {
	users := []user.User{
		{ID: "1", Role: user.RoleTeacher},
		{ID: "2", Role: user.RoleTeacher},
		{ID: "3", Role: user.RoleStudent},
		{ID: "4", Role: user.RoleAdmin},
	}
	perfs := []Performance{
		{UserID: "3", Score: 99},
		{UserID: "1", Score: 78},
		{UserID: "2", Score: 87},
		{UserID: "4", Score: 80},
	}

	ranked := TeacherRanking(perfs, users)
	if len(ranked) != 2 {
		t.Fatalf("TeacherRanking() returned %d entries, want 2", len(ranked))
	}
	if ranked[0].UserID != "2" || ranked[1].UserID != "1" {
		t.Errorf("TeacherRanking() order = [%s %s], want [2 1]", ranked[0].UserID, ranked[1].UserID)
	}
}

func TestComputePerformances(t *testing.T) {
	due := time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC)
	users := []user.User{{ID: "t1", Name: "Dr. Moussa Diop", Role: user.RoleTeacher}}
	tasks := []task.Task{
		{Status: task.StatusCompleted, AssignedTo: strPtr("t1"), DueDate: due, UpdatedAt: due.Add(-time.Hour)},
		{Status: task.StatusCompleted, AssignedTo: strPtr("t1"), DueDate: due, UpdatedAt: due.Add(time.Hour)},
		{Status: task.StatusTodo, AssignedTo: strPtr("t1"), DueDate: due},
		{Status: task.StatusCompleted, AssignedTo: nil, DueDate: due, UpdatedAt: due},
	}

	perfs := ComputePerformances(tasks, users)
	if len(perfs) != 1 {
		t.Fatalf("ComputePerformances() returned %d entries, want 1", len(perfs))
	}
	p := perfs[0]
	if p.CompletedTasks != 2 || p.OnTimeCompletionRate != 50 {
		t.Errorf("got completed=%d rate=%d, want completed=2 rate=50", p.CompletedTasks, p.OnTimeCompletionRate)
	}
	// 0.6*50 + 0.4*2*10 = 38
	if p.Score != 38 {
		t.Errorf("Score = %d, want 38", p.Score)
	}
}

func TestBonusForScore(t *testing.T) {
	tests := []struct {
		score int
		want  BonusTier
	}{
		{100, TierExcellent},
		{90, TierExcellent},
		{89, TierSuperior},
		{75, TierSuperior},
		{74, TierStandard},
		{60, TierStandard},
		{59, TierNone},
		{0, TierNone},
	}
	for _, tt := range tests {
		if got := BonusForScore(tt.score); got != tt.want {
			t.Errorf("BonusForScore(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
