package task_test

import (
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/taskistry/collabo/core"
	"github.com/taskistry/collabo/core/project"
	"github.com/taskistry/collabo/core/task"
	"github.com/taskistry/collabo/core/user"
	dummydb "github.com/taskistry/collabo/storage/database/dummy"
	testutil "github.com/taskistry/collabo/tests"
)

type testEnv struct {
	svc     *task.Service
	repo    task.Repository
	usrRepo user.Repository

	teacher user.User
	student user.User
	proj    project.Project
}

func setup(t *testing.T) testEnv {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	usrRepo := dummydb.NewUserRepository(db)
	taskRepo := dummydb.NewTaskRepository(db)
	usrSvc := user.NewService(usrRepo, nil)
	projSvc := project.NewService(dummydb.NewProjectRepository(db), usrSvc, taskRepo)

	teacher := testutil.CreateUser(t, usrRepo, "Dr. Moussa Diop", "moussa.diop@esmt.sn", "", user.RoleTeacher, true)
	student := testutil.CreateUser(t, usrRepo, "Omar Faye", "omar.faye@esmt.sn", "", user.RoleStudent, true)

	proj, err := projSvc.Create(teacher, project.NewProject{Title: "Réseaux"})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	if proj, err = projSvc.AddMember(proj.ID, student.ID); err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	return testEnv{
		svc:     task.NewService(taskRepo, projSvc, usrSvc),
		repo:    taskRepo,
		usrRepo: usrRepo,
		teacher: teacher,
		student: student,
		proj:    proj,
	}
}

func TestService_Create(t *testing.T) {
	env := setup(t)
	due := time.Now().Add(24 * time.Hour)

	// status defaults to todo
	tsk, err := env.svc.Create(env.teacher, task.NewTask{Title: "Rapport TP", ProjectID: env.proj.ID, DueDate: due})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if tsk.Status != task.StatusTodo {
		t.Errorf("Status = %v, want %v", tsk.Status, task.StatusTodo)
	}
	if tsk.CreatedBy != env.teacher.ID {
		t.Errorf("CreatedBy = %s, want %s", tsk.CreatedBy, env.teacher.ID)
	}

	// assigned at creation
	tsk, err = env.svc.Create(env.teacher, task.NewTask{
		Title:      "Maquette VLAN",
		ProjectID:  env.proj.ID,
		DueDate:    due,
		AssignedTo: &env.student.ID,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if tsk.AssignedTo == nil || *tsk.AssignedTo != env.student.ID {
		t.Error("AssignedTo not set")
	}

	// unknown project
	_, err = env.svc.Create(env.teacher, task.NewTask{Title: "x", ProjectID: "nope", DueDate: due})
	if errors.Cause(err) != project.ErrNotFound {
		t.Errorf("Create() error = %v, want %v", err, project.ErrNotFound)
	}
}

func TestService_Create_rejectsBadAssignment(t *testing.T) {
	env := setup(t)
	due := time.Now().Add(24 * time.Hour)

	outsider := testutil.CreateUser(t, env.usrRepo, "Aminata Sow", "aminata.sow@esmt.sn", "", user.RoleStudent, true)

	tests := []struct {
		name       string
		actor      user.User
		assignedTo string
		wantErr    error
	}{
		{"assignee not a member", env.teacher, outsider.ID, task.ErrAssigneeNotMember},
		{"student assigning to teacher", env.student, env.teacher.ID, user.ErrPermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Create(tt.actor, task.NewTask{
				Title:      "Rapport TP",
				ProjectID:  env.proj.ID,
				DueDate:    due,
				AssignedTo: &tt.assignedTo,
			})
			if err != tt.wantErr {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// a rejected creation leaves no record behind
	tasks, err := env.svc.QueryForProject(env.proj.ID)
	if err != nil {
		t.Fatalf("QueryForProject() failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("len(tasks) = %d after rejected creations, want 0", len(tasks))
	}
}

func TestService_ChangeStatus(t *testing.T) {
	env := setup(t)
	due := time.Now().Add(24 * time.Hour)
	tsk := testutil.CreateTask(t, env.repo, "Rapport TP", env.proj.ID, task.StatusTodo, nil, due)

	tsk, err := env.svc.ChangeStatus(tsk.ID, task.StatusInProgress)
	if err != nil {
		t.Fatalf("ChangeStatus() failed: %v", err)
	}
	if tsk.Status != task.StatusInProgress {
		t.Errorf("Status = %v, want %v", tsk.Status, task.StatusInProgress)
	}

	// re-setting the current status still succeeds
	if _, err = env.svc.ChangeStatus(tsk.ID, task.StatusInProgress); err != nil {
		t.Errorf("ChangeStatus() failed: %v", err)
	}

	// invalid status
	var vErr *core.ValidationError
	_, err = env.svc.ChangeStatus(tsk.ID, "paused")
	if !errors.As(err, &vErr) {
		t.Errorf("ChangeStatus() error = %v, want a *core.ValidationError", err)
	}

	// unknown task
	if _, err = env.svc.ChangeStatus("nope", task.StatusCompleted); err != task.ErrNotFound {
		t.Errorf("ChangeStatus() error = %v, want %v", err, task.ErrNotFound)
	}
}

func TestService_Reassign(t *testing.T) {
	env := setup(t)
	due := time.Now().Add(24 * time.Hour)
	tsk := testutil.CreateTask(t, env.repo, "Rapport TP", env.proj.ID, task.StatusTodo, &env.teacher.ID, due)

	// teacher -> student is allowed
	tsk, err := env.svc.Reassign(env.teacher, tsk.ID, &env.student.ID)
	if err != nil {
		t.Fatalf("Reassign() failed: %v", err)
	}
	if tsk.AssignedTo == nil || *tsk.AssignedTo != env.student.ID {
		t.Error("AssignedTo not updated")
	}

	// student -> teacher is denied, assignment untouched
	if _, err = env.svc.Reassign(env.student, tsk.ID, &env.teacher.ID); err != user.ErrPermissionDenied {
		t.Errorf("Reassign() error = %v, want %v", err, user.ErrPermissionDenied)
	}
	got, err := env.svc.GetByID(tsk.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if got.AssignedTo == nil || *got.AssignedTo != env.student.ID {
		t.Error("AssignedTo changed by a denied reassignment")
	}

	// nil clears the assignment; no capability check involved
	tsk, err = env.svc.Reassign(env.student, tsk.ID, nil)
	if err != nil {
		t.Fatalf("Reassign() failed: %v", err)
	}
	if tsk.AssignedTo != nil {
		t.Errorf("AssignedTo = %v, want nil", *tsk.AssignedTo)
	}
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name   string
		status task.Status
		due    time.Time
		want   bool
	}{
		{"due in the future", task.StatusTodo, now.Add(time.Hour), false},
		{"past due, todo", task.StatusTodo, now.Add(-time.Hour), true},
		{"past due, in progress", task.StatusInProgress, now.Add(-time.Hour), true},
		{"past due, completed", task.StatusCompleted, now.Add(-time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tsk := task.Task{Status: tt.status, DueDate: tt.due}
			if got := tsk.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}
