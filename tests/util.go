package testutil

import (
	"testing"
	"time"

	"github.com/taskistry/collabo/core/project"
	"github.com/taskistry/collabo/core/task"
	"github.com/taskistry/collabo/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd string,
	role user.Role,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		AvatarURL: user.DefaultAvatarURL(name),
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateProject(
	t *testing.T,
	repo project.Repository,
	title string,
	createdBy string,
	members ...string,
) project.Project {
	t.Helper()

	tstamp := time.Now().UTC()
	proj := project.Project{
		Title:     title,
		CreatedBy: createdBy,
		Members:   append([]string{createdBy}, members...),
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	proj, err := repo.CreateProject(proj)
	if err != nil {
		t.Fatalf("CreateProject() failed: %v", err)
	}
	return proj
}

func CreateTask(
	t *testing.T,
	repo task.Repository,
	title, projectID string,
	status task.Status,
	assignedTo *string,
	dueDate time.Time,
) task.Task {
	t.Helper()

	tstamp := time.Now().UTC()
	tsk := task.Task{
		Title:      title,
		ProjectID:  projectID,
		Status:     status,
		AssignedTo: assignedTo,
		DueDate:    dueDate,
		CreatedAt:  tstamp,
		UpdatedAt:  tstamp,
	}
	tsk, err := repo.CreateTask(tsk)
	if err != nil {
		t.Fatalf("CreateTask() failed: %v", err)
	}
	return tsk
}
